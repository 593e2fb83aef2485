package severity

import "strings"

type Level string

const (
	Low      Level = "low"
	Medium   Level = "medium"
	High     Level = "high"
	Critical Level = "critical"
)

// Default is used for every attack type missing from the lookup table.
const Default = Medium

var byAttackType = map[string]Level{
	"SSH Brute Force":   High,
	"SQL Injection":     Critical,
	"Port Scanning":     Medium,
	"FTP Login Attempt": Medium,
	"HTTP Request":      Low,
	"RDP Connection":    High,
	"MySQL Connection":  High,
}

// ForAttackType maps a literal attack type string to its severity.
// The match is exact and case sensitive.
func ForAttackType(attackType string) Level {
	if level, ok := byAttackType[attackType]; ok {
		return level
	}
	return Default
}

// KnownAttackTypes returns a copy of the lookup table.
func KnownAttackTypes() map[string]Level {
	res := make(map[string]Level, len(byAttackType))
	for k, v := range byAttackType {
		res[k] = v
	}
	return res
}

// Parse reads a level from user or server input. The second return value is
// false when s is not one of the four levels.
func Parse(s string) (Level, bool) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case Low:
		return Low, true
	case Medium:
		return Medium, true
	case High:
		return High, true
	case Critical:
		return Critical, true
	}
	return "", false
}

// Rank orders levels from 1 (low) to 4 (critical). Unknown levels rank 0.
func (l Level) Rank() int {
	switch l {
	case Low:
		return 1
	case Medium:
		return 2
	case High:
		return 3
	case Critical:
		return 4
	}
	return 0
}

func (l Level) String() string {
	return string(l)
}
