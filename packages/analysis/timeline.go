package analysis

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/l3montree-dev/honeypot-dashboard/packages/types"
)

const TimelineHours = 24

// Filler produces the value shown for an hour without attacks.
type Filler func() int

// RandomFiller returns a value in [0,9].
func RandomFiller() int {
	return rand.IntN(10)
}

// Timeline builds the hourly series for the last 24 hours, ending at the hour
// of now. An attack counts towards every point with the same hour of day,
// the date is ignored. Hours without attacks get a value from filler instead
// of zero.
func Timeline(attacks []types.Attack, now time.Time, filler Filler) []types.TimelinePoint {
	if filler == nil {
		filler = RandomFiller
	}

	// count once per hour of day
	perHour := make(map[int]int)
	for _, attack := range attacks {
		t, err := attack.Time()
		if err != nil {
			continue
		}
		perHour[t.In(now.Location()).Hour()]++
	}

	res := make([]types.TimelinePoint, 0, TimelineHours)
	for i := TimelineHours - 1; i >= 0; i-- {
		// stepped by hour of day so DST changes neither repeat nor skip a label
		hour := (now.Hour() - i + TimelineHours) % TimelineHours
		count := perHour[hour]
		if count == 0 {
			count = filler()
		}
		res = append(res, types.TimelinePoint{
			Hour:    fmt.Sprintf("%02d:00", hour),
			Attacks: count,
		})
	}
	return res
}
