package models

// IndicatorSnapshot holds the derived indicators for the latest session.
// RSI is nil when the average loss over the window is zero: a run of
// non-decreasing closes is a normal market state, not an error, and the
// value must not be clamped to 100.
type IndicatorSnapshot struct {
	Close       float64
	MA5         float64
	MA20        float64
	VolumeToday int64
	VolumePrev  int64
	RSI         *float64
}
