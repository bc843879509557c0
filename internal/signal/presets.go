package signal

import (
	"fmt"

	"ChartSense/internal/domain/models"
)

const (
	// PresetScalperA is the scored four-rule set used for short-horizon
	// entries. It is the default.
	PresetScalperA = "scalper-a"
	// PresetSwingBasic is the simpler threshold set keyed off the 20-day
	// average and a wider RSI band.
	PresetSwingBasic = "swing-basic"

	// volumeSurgeRatio is the day-over-day volume multiple counted as a
	// surge.
	volumeSurgeRatio = 1.5
)

// Preset returns the named rule set. The two presets deliberately keep
// their differing thresholds; they encode different trading styles and are
// not meant to be merged.
func Preset(name string) (RuleSet, error) {
	switch name {
	case "", PresetScalperA:
		return scalperA(), nil
	case PresetSwingBasic:
		return swingBasic(), nil
	default:
		return RuleSet{}, fmt.Errorf("unknown signal preset %q", name)
	}
}

func scalperA() RuleSet {
	return RuleSet{
		Name: PresetScalperA,
		Rules: []Rule{
			{
				Name:   "above-ma20",
				Weight: 1,
				Eval: func(s models.IndicatorSnapshot) (bool, string) {
					if s.Close > s.MA20 {
						return true, "above 20-day average (safer)"
					}
					return false, "below 20-day average -> risk"
				},
			},
			{
				Name:   "ma-crossover",
				Weight: 1,
				Eval: func(s models.IndicatorSnapshot) (bool, string) {
					if s.MA5 > s.MA20 {
						return true, "5-day average crossed above 20-day average"
					}
					return false, ""
				},
			},
			{
				Name:   "volume-surge",
				Weight: 1,
				Eval: func(s models.IndicatorSnapshot) (bool, string) {
					if float64(s.VolumeToday) > float64(s.VolumePrev)*volumeSurgeRatio {
						return true, "volume up 50%+ vs previous session"
					}
					return false, "volume normal or declining"
				},
			},
			{
				Name:   "rsi-healthy",
				Weight: 1,
				Eval: func(s models.IndicatorSnapshot) (bool, string) {
					if s.RSI == nil {
						// Undefined RSI contributes neither points nor text.
						return false, ""
					}
					rsi := *s.RSI
					switch {
					case rsi >= 45 && rsi <= 60:
						return true, "RSI in healthy band (45-60)"
					case rsi > 70:
						return false, "RSI overheated (70+)"
					case rsi < 30:
						return false, "RSI oversold (30-)"
					default:
						return false, ""
					}
				},
			},
		},
	}
}

func swingBasic() RuleSet {
	return RuleSet{
		Name: PresetSwingBasic,
		Rules: []Rule{
			{
				Name:   "above-ma20",
				Weight: 2,
				Eval: func(s models.IndicatorSnapshot) (bool, string) {
					if s.Close > s.MA20 {
						return true, "price holding above the 20-day average"
					}
					return false, "price below the 20-day average"
				},
			},
			{
				Name:   "ma-crossover",
				Weight: 1,
				Eval: func(s models.IndicatorSnapshot) (bool, string) {
					if s.MA5 > s.MA20 {
						return true, "short-term trend turned up"
					}
					return false, ""
				},
			},
			{
				Name:   "rsi-band",
				Weight: 1,
				Eval: func(s models.IndicatorSnapshot) (bool, string) {
					if s.RSI == nil {
						return false, ""
					}
					rsi := *s.RSI
					switch {
					case rsi >= 30 && rsi <= 65:
						return true, "RSI inside the 30-65 band"
					case rsi > 65:
						return false, "RSI stretched above 65"
					default:
						return false, "RSI washed out below 30"
					}
				},
			},
		},
	}
}
