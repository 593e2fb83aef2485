package apiclient

import (
	"time"

	"github.com/l3montree-dev/honeypot-dashboard/packages/severity"
	"github.com/l3montree-dev/honeypot-dashboard/packages/types"
)

// FallbackAttacks is returned by GetAttacks when the api is not reachable.
func FallbackAttacks(now time.Time) []types.Attack {
	return []types.Attack{
		{
			Timestamp: now.UTC().Format(time.RFC3339Nano),
			Type:      "SSH Brute Force",
			SourceIP:  "192.168.1.100",
			Details:   "Multiple login attempts",
			Honeypot:  "ssh-honeypot",
		},
	}
}

func FallbackStats() types.Stats {
	return types.Stats{
		TotalAttacks:    0,
		AttacksToday:    0,
		UniqueAttackers: 0,
		HoneypotsActive: 5,
		ThreatLevel:     "Low",
	}
}

func MockSummary() types.Summary {
	return types.Summary{
		TotalAttacks:    1247,
		BlockedIPs:      892,
		ActiveHoneypots: 5,
		ThreatLevel:     "High",
		AttacksToday:    45,
		UniqueAttackers: 156,
	}
}

func MockLogs(now time.Time) []types.AttackRecord {
	return []types.AttackRecord{
		{
			ID:        1,
			Timestamp: now.UTC().Format(time.RFC3339Nano),
			IP:        "192.168.1.100",
			Type:      "SSH Brute Force",
			Severity:  severity.High,
			Country:   "United States",
			Payload:   "Failed password for root",
			Honeypot:  "ssh-honeypot",
			Status:    types.StatusBlocked,
		},
		{
			ID:        2,
			Timestamp: now.Add(-5 * time.Minute).UTC().Format(time.RFC3339Nano),
			IP:        "10.0.0.45",
			Type:      "Port Scanning",
			Severity:  severity.Medium,
			Country:   "China",
			Payload:   "SYN packet to port 22",
			Honeypot:  "ssh-honeypot",
			Status:    types.StatusMonitored,
		},
	}
}

func MockAnalytics() types.Analytics {
	return types.Analytics{
		TotalAttacks:    1247,
		BlockedAttacks:  892,
		UniqueAttackers: 156,
		AttackTypes: []types.AttackTypeStats{
			{Type: "SSH Brute Force", Count: 245, Percentage: 35},
			{Type: "Port Scanning", Count: 189, Percentage: 27},
			{Type: "SQL Injection", Count: 98, Percentage: 14},
			{Type: "FTP Login Attempt", Count: 76, Percentage: 11},
			{Type: "HTTP Request", Count: 54, Percentage: 8},
			{Type: "Other", Count: 38, Percentage: 5},
		},
		Timeline: []types.TimelinePoint{
			{Hour: "00:00", Attacks: 12},
			{Hour: "02:00", Attacks: 8},
			{Hour: "04:00", Attacks: 5},
			{Hour: "06:00", Attacks: 15},
			{Hour: "08:00", Attacks: 28},
			{Hour: "10:00", Attacks: 45},
			{Hour: "12:00", Attacks: 38},
			{Hour: "14:00", Attacks: 52},
			{Hour: "16:00", Attacks: 67},
			{Hour: "18:00", Attacks: 48},
			{Hour: "20:00", Attacks: 35},
			{Hour: "22:00", Attacks: 22},
		},
	}
}
