package indicator

import (
	"errors"
	"fmt"

	"ChartSense/internal/domain/models"
)

const (
	// ShortWindow and LongWindow are the moving-average spans.
	ShortWindow = 5
	LongWindow  = 20
	// RSIPeriod is the RSI lookback in sessions.
	RSIPeriod = 14
	// MinBars is the hard floor on input length: the 20-day average and a
	// 14-period RSI both need it.
	MinBars = LongWindow
)

// ErrInsufficientData is returned when fewer than MinBars bars are supplied.
var ErrInsufficientData = errors.New("not enough bars for indicator computation")

// Compute derives the indicator snapshot from ascending daily bars.
// Purely functional; the input is read but never modified.
func Compute(bars []models.Bar) (models.IndicatorSnapshot, error) {
	if len(bars) < MinBars {
		return models.IndicatorSnapshot{}, fmt.Errorf("%w: got %d, need %d", ErrInsufficientData, len(bars), MinBars)
	}

	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	ma5, err := SMA(closes, ShortWindow)
	if err != nil {
		return models.IndicatorSnapshot{}, err
	}
	ma20, err := SMA(closes, LongWindow)
	if err != nil {
		return models.IndicatorSnapshot{}, err
	}

	last := bars[len(bars)-1]
	prev := bars[len(bars)-2]

	return models.IndicatorSnapshot{
		Close:       last.Close,
		MA5:         ma5,
		MA20:        ma20,
		VolumeToday: last.Volume,
		VolumePrev:  prev.Volume,
		RSI:         RSI(closes, RSIPeriod),
	}, nil
}

// SMA computes the simple moving average over the trailing period.
func SMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(values) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(period), nil
}

// RSI computes the RSI over the trailing period using rolling simple means
// of gains and losses (not Wilder's exponential smoothing). Returns nil when
// fewer than period+1 closes are available, or when the average loss over
// the window is exactly zero: RS is undefined then and the value must not
// collapse to 100.
func RSI(closes []float64, period int) *float64 {
	if period <= 0 || len(closes) < period+1 {
		return nil
	}

	var sumGain, sumLoss float64
	for i := len(closes) - period; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			sumGain += change
		} else {
			sumLoss -= change
		}
	}

	avgGain := sumGain / float64(period)
	avgLoss := sumLoss / float64(period)

	if avgLoss == 0 {
		return nil
	}

	rs := avgGain / avgLoss
	rsi := 100.0 - 100.0/(1.0+rs)
	return &rsi
}
