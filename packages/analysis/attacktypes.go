package analysis

import (
	"math"

	"github.com/l3montree-dev/honeypot-dashboard/packages/types"
)

// AttackTypes counts attacks per type. Types keep the order of their first
// appearance.
func AttackTypes(attacks []types.Attack) []types.AttackTypeStats {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, attack := range attacks {
		if _, ok := counts[attack.Type]; !ok {
			order = append(order, attack.Type)
		}
		counts[attack.Type]++
	}

	total := len(attacks)
	res := make([]types.AttackTypeStats, 0, len(order))
	for _, attackType := range order {
		percentage := 0
		if total > 0 {
			percentage = int(math.Round(float64(counts[attackType]) / float64(total) * 100))
		}
		res = append(res, types.AttackTypeStats{
			Type:       attackType,
			Count:      counts[attackType],
			Percentage: percentage,
		})
	}
	return res
}
