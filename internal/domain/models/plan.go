package models

// StrategyLevels are the stop-loss and take-profit prices derived from the
// latest close by fixed percentage offsets, rounded to whole prices.
type StrategyLevels struct {
	StopLoss float64
	TP1      float64
	TP2      float64
}

// Tranche is one of three sequential partial entries.
type Tranche struct {
	Shares int64
	Amount float64
}

// PositionPlan is the fixed-ratio allocation for one instrument. A zeroed
// plan (no affordable shares) is a legitimate outcome, not an error.
type PositionPlan struct {
	Budget      float64
	SharesTotal int64
	Tranches    [3]Tranche
}
