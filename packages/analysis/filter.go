package analysis

import (
	"strings"

	"github.com/l3montree-dev/honeypot-dashboard/packages/severity"
	"github.com/l3montree-dev/honeypot-dashboard/packages/types"
	"github.com/l3montree-dev/honeypot-dashboard/packages/utils"
)

const AllLevels = "all"

// FilterRecords implements the log search. term is matched case-insensitively
// against payload and type and as-is against the ip. level is a severity name,
// "all" or empty. Any other level matches no record.
func FilterRecords(records []types.AttackRecord, term string, level string) []types.AttackRecord {
	lowerTerm := strings.ToLower(term)
	levelFilter := level != "" && level != AllLevels
	wantLevel, ok := severity.Parse(level)
	if levelFilter && !ok {
		return []types.AttackRecord{}
	}

	return utils.Filter(records, func(record types.AttackRecord) bool {
		matchesSearch := strings.Contains(strings.ToLower(record.Payload), lowerTerm) ||
			strings.Contains(record.IP, term) ||
			strings.Contains(strings.ToLower(record.Type), lowerTerm)
		matchesLevel := !levelFilter || record.Severity == wantLevel
		return matchesSearch && matchesLevel
	})
}
