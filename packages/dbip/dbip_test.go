package dbip_test

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/l3montree-dev/honeypot-dashboard/packages/dbip"
)

const countryCSV = `1.1.0.0,1.1.0.255,CN
1.0.0.0,1.0.0.255,AU
64.233.160.0,64.233.191.255,US
not-an-ip,1.2.3.4,XX
2a00:1450::,2a00:1450:ffff:ffff:ffff:ffff:ffff:ffff,IE
`

func newLookup(t *testing.T) *dbip.IpToCountry {
	path := filepath.Join(t.TempDir(), "dbip-country.csv")
	if err := os.WriteFile(path, []byte(countryCSV), 0644); err != nil {
		t.Fatal(err)
	}
	dbIp, err := dbip.NewIpToCountry(path)
	if err != nil {
		t.Fatal(err)
	}
	return dbIp
}

func TestLookup(t *testing.T) {
	dbIp := newLookup(t)
	if dbIp.Len() != 4 {
		t.Errorf("expected 4 entries, got %d", dbIp.Len())
	}

	cases := map[string]string{
		"1.1.0.0":          "CN",
		"1.0.0.17":         "AU",
		"64.233.187.99":    "US",
		"2a00:1450:4001::": "IE",
		"8.8.8.8":          "Unknown",
	}
	for ip, expected := range cases {
		if country := dbIp.Lookup(net.ParseIP(ip)); country != expected {
			t.Errorf("%s: expected %s, got %s", ip, expected, country)
		}
	}
}

func TestLookupInvalidIP(t *testing.T) {
	dbIp := newLookup(t)
	if country := dbIp.Lookup(net.ParseIP("not-an-ip")); country != "Unknown" {
		t.Errorf("expected Unknown, got %s", country)
	}
}

func TestMissingFile(t *testing.T) {
	if _, err := dbip.NewIpToCountry(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}
