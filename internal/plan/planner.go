package plan

import (
	"math"

	"ChartSense/internal/domain/models"
)

const (
	// stopLossRatio and the take-profit ratios are fixed offsets from the
	// latest close.
	stopLossRatio = 0.97
	tp1Ratio      = 1.05
	tp2Ratio      = 1.07

	// riskFraction caps one instrument at a tenth of total capital.
	riskFraction = 0.10

	// Tranche split for staged entries.
	tranche1Ratio = 0.4
	tranche2Ratio = 0.3
)

// Levels derives stop-loss and take-profit prices from the latest close.
// Prices are quoted in whole won, so rounding to integers is part of the
// level definition, not a presentation concern.
func Levels(todayClose float64) models.StrategyLevels {
	return models.StrategyLevels{
		StopLoss: math.Round(todayClose * stopLossRatio),
		TP1:      math.Round(todayClose * tp1Ratio),
		TP2:      math.Round(todayClose * tp2Ratio),
	}
}

// Build computes the three-tranche allocation for the given capital.
// Returns nil when capital is absent or non-positive, or when the close is
// not a positive price; callers treat nil as "no plan requested". A plan
// with zero shares is returned as-is: capital too small for one share is a
// legitimate outcome, not an error.
func Build(todayClose float64, capital *float64) *models.PositionPlan {
	if capital == nil || *capital <= 0 || todayClose <= 0 {
		return nil
	}

	budget := *capital * riskFraction
	sharesTotal := int64(math.Floor(budget / todayClose))

	pos1 := int64(math.Floor(float64(sharesTotal) * tranche1Ratio))
	pos2 := int64(math.Floor(float64(sharesTotal) * tranche2Ratio))
	// The last tranche absorbs all rounding error so the three counts sum
	// exactly to sharesTotal.
	pos3 := sharesTotal - pos1 - pos2

	return &models.PositionPlan{
		Budget:      budget,
		SharesTotal: sharesTotal,
		Tranches: [3]models.Tranche{
			{Shares: pos1, Amount: float64(pos1) * todayClose},
			{Shares: pos2, Amount: float64(pos2) * todayClose},
			{Shares: pos3, Amount: float64(pos3) * todayClose},
		},
	}
}
