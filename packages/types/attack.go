package types

import (
	"errors"
	"time"

	"github.com/l3montree-dev/honeypot-dashboard/packages/severity"
)

// Attack is a single event as served by the upstream /api/attacks endpoint.
type Attack struct {
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	SourceIP  string `json:"source_ip"`
	Details   string `json:"details"`
	Honeypot  string `json:"honeypot"`
	// only set when the server classified the attack itself
	Severity string `json:"severity,omitempty"`
}

type AttacksResponse struct {
	Attacks []Attack `json:"attacks"`
}

// the upstream api emits python isoformat timestamps without a zone
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

var ErrInvalidTimestamp = errors.New("invalid timestamp")

// ParseTimestamp parses the timestamp formats the upstream api produces.
// Timestamps without a zone are read as local time.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTimestamp
}

func (a Attack) Time() (time.Time, error) {
	return ParseTimestamp(a.Timestamp)
}

// AttackRecord is an attack prepared for the log tables.
type AttackRecord struct {
	ID        int            `json:"id"`
	Timestamp string         `json:"timestamp"`
	IP        string         `json:"ip"`
	Type      string         `json:"type"`
	Severity  severity.Level `json:"severity"`
	Country   string         `json:"country"`
	Payload   string         `json:"payload"`
	Honeypot  string         `json:"honeypot"`
	Status    string         `json:"status"`
}

const (
	StatusDetected  = "detected"
	StatusBlocked   = "blocked"
	StatusMonitored = "monitored"

	UnknownCountry = "Unknown"
)
