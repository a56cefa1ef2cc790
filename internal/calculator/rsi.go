package calculator

import (
	"errors"
	"math"
)

// RSISeries computes a rolling RSI aligned to the input closes.
//
// RS is the ratio of the simple rolling mean of gains to the simple rolling
// mean of losses over the lookback window. The first `period` positions have
// no full lookback and hold NaN. A window with gains but zero losses yields
// 100; a flat window (zero gains and zero losses) is 0/0 and holds NaN.
func RSISeries(closes []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	out := make([]float64, len(closes))
	var sumGain, sumLoss float64
	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))

	for i := range closes {
		if i == 0 {
			out[i] = math.NaN()
			continue
		}
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
		sumGain += gains[i]
		sumLoss += losses[i]
		if i > period {
			sumGain -= gains[i-period]
			sumLoss -= losses[i-period]
		}
		if i < period {
			out[i] = math.NaN()
			continue
		}
		if sumLoss == 0 {
			if sumGain == 0 {
				// flat window, the ratio is 0/0
				out[i] = math.NaN()
			} else {
				out[i] = 100.0
			}
			continue
		}
		rs := sumGain / sumLoss
		out[i] = 100.0 - 100.0/(1.0+rs)
	}
	return out, nil
}

// CalculateRSI computes the latest Wilder-smoothed RSI over the given period.
// Requires at least period+1 closes. Returns 50.0 if data is insufficient.
func CalculateRSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(closes) < period+1 {
		return 50.0, nil // default when data insufficient
	}

	// Initial average gain/loss over the first `period` changes
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change // make positive
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	// Wilder smoothing for remaining closes
	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}
