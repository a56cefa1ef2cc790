package calculator

import (
	"math"
	"time"

	"MarketLens/internal/model"
)

// DetectCrossovers scans two aligned moving-average series and reports every
// point where the fast MA crossed the slow one. A golden cross is fast
// crossing above slow, a death cross is fast crossing below slow. Both
// series must be defined at two consecutive points for a cross to register.
func DetectCrossovers(times []time.Time, fast, slow []float64) []model.CrossoverEvent {
	var events []model.CrossoverEvent
	for i := 1; i < len(times) && i < len(fast) && i < len(slow); i++ {
		if math.IsNaN(fast[i-1]) || math.IsNaN(slow[i-1]) || math.IsNaN(fast[i]) || math.IsNaN(slow[i]) {
			continue
		}
		prevDiff := fast[i-1] - slow[i-1]
		diff := fast[i] - slow[i]
		date := times[i].Format("2006-01-02")
		if prevDiff <= 0 && diff > 0 {
			events = append(events, model.CrossoverEvent{Date: date, Type: model.GoldenCross})
		} else if prevDiff >= 0 && diff < 0 {
			events = append(events, model.CrossoverEvent{Date: date, Type: model.DeathCross})
		}
	}
	return events
}
