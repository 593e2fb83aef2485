package analysis

import (
	"math"

	"github.com/l3montree-dev/honeypot-dashboard/packages/types"
)

const (
	// share of attacks assumed to come from blocked ips
	blockedRatio = 0.7

	defaultActiveHoneypots = 5
	defaultThreatLevel     = "Medium"
)

func BlockedEstimate(totalAttacks int) int {
	return int(math.Floor(float64(totalAttacks) * blockedRatio))
}

// Summarize turns upstream stats into the stat card summary. Zero values are
// treated as missing and replaced by an estimate or a default.
func Summarize(stats types.Stats) types.Summary {
	summary := types.Summary{
		TotalAttacks:    stats.TotalAttacks,
		BlockedIPs:      BlockedEstimate(stats.TotalAttacks),
		ActiveHoneypots: stats.HoneypotsActive,
		ThreatLevel:     stats.ThreatLevel,
		AttacksToday:    stats.AttacksToday,
		UniqueAttackers: stats.UniqueAttackers,
	}
	if summary.ActiveHoneypots == 0 {
		summary.ActiveHoneypots = defaultActiveHoneypots
	}
	if summary.ThreatLevel == "" {
		summary.ThreatLevel = defaultThreatLevel
	}
	if summary.AttacksToday == 0 {
		summary.AttacksToday = stats.TotalAttacks / 10
	}
	if summary.UniqueAttackers == 0 {
		summary.UniqueAttackers = stats.TotalAttacks / 8
	}
	return summary
}

// BuildAnalytics combines both upstream payloads into the analytics page.
func BuildAnalytics(attacks []types.Attack, stats types.Stats, timeline []types.TimelinePoint) types.Analytics {
	return types.Analytics{
		TotalAttacks:    stats.TotalAttacks,
		BlockedAttacks:  BlockedEstimate(stats.TotalAttacks),
		UniqueAttackers: stats.UniqueAttackers,
		AttackTypes:     AttackTypes(attacks),
		Timeline:        timeline,
	}
}
