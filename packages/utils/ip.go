package utils

import (
	"net"
	"net/http"
)

func NetAddrToIpStr(addr string) (string, error) {
	ip, _, err := net.SplitHostPort(addr)

	if err != nil {
		return "", err
	}

	return ip, nil
}

// RemoteIP returns the ip of the client, or the raw remote address if it
// cannot be split.
func RemoteIP(r *http.Request) string {
	ip, err := NetAddrToIpStr(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
