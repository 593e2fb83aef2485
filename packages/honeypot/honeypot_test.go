package honeypot

import (
	"testing"

	"github.com/l3montree-dev/honeypot-dashboard/packages/types"
)

func TestStatus(t *testing.T) {
	attacks := []types.Attack{
		{Honeypot: "ssh-honeypot"},
		{Honeypot: "ssh-honeypot"},
		{Honeypot: "http-honeypot"},
		{Honeypot: "mysql-honeypot"},
		{Honeypot: "SSH-HONEYPOT"},
		{Honeypot: ""},
	}
	expected := map[string]int{
		"FTP Honeypot":   0,
		"HTTP Honeypot":  1,
		"SSH Honeypot":   2,
		"RDP Honeypot":   0,
		"MySQL Honeypot": 1,
	}

	status := Status(attacks)
	if len(status) != len(Known()) {
		t.Fatalf("expected %d entries, got %d", len(Known()), len(status))
	}
	for _, s := range status {
		if s.Status != StatusActive {
			t.Errorf("%s: expected active, got %s", s.Name, s.Status)
		}
		if s.Attacks != expected[s.Name] {
			t.Errorf("%s: expected %d attacks, got %d", s.Name, expected[s.Name], s.Attacks)
		}
	}
}
