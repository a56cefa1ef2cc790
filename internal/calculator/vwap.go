package calculator

import (
	"math"

	"MarketLens/internal/model"
)

// VWAPSeries computes the cumulative volume-weighted average price over the
// given bars: cumsum(typical*volume)/cumsum(volume), with typical price
// (High+Low+Close)/3. Positions before any volume has traded hold NaN.
func VWAPSeries(bars []model.OHLCV) []float64 {
	out := make([]float64, len(bars))
	var cumPV, cumVol float64
	for i, b := range bars {
		cumPV += b.TypicalPrice() * b.Volume
		cumVol += b.Volume
		if cumVol == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = cumPV / cumVol
	}
	return out
}
