package signal

import (
	"ChartSense/internal/domain/models"
)

// Rule is a named predicate over the indicator snapshot. Eval reports
// whether the rule passed and an optional reason string; a passing rule
// contributes Weight points. A failing rule may still contribute a reason
// (e.g. "below 20-day average -> risk").
type Rule struct {
	Name   string
	Weight int
	Eval   func(snap models.IndicatorSnapshot) (pass bool, reason string)
}

// RuleSet is an ordered list of rules sharing one score-to-class mapping.
// Rules are evaluated in order and reasons are appended in that same order.
type RuleSet struct {
	Name  string
	Rules []Rule
}

// Classify evaluates the rule set against a snapshot. The result is a pure
// function of the snapshot: same input, same score, same reason order.
func (rs RuleSet) Classify(snap models.IndicatorSnapshot) models.Signal {
	score := 0
	reasons := make([]string, 0, len(rs.Rules))

	for _, r := range rs.Rules {
		pass, reason := r.Eval(snap)
		if pass {
			score += r.Weight
		}
		if reason != "" {
			reasons = append(reasons, reason)
		}
	}

	return models.Signal{
		Class:   classify(score),
		Score:   score,
		Reasons: reasons,
	}
}

// classify maps the integer score to a class. Total over 0..4:
// {0,1} -> AVOID, {2} -> WATCH, {3,4} -> BUY_STRONG.
func classify(score int) models.SignalClass {
	switch {
	case score >= 3:
		return models.SignalBuyStrong
	case score == 2:
		return models.SignalWatch
	default:
		return models.SignalAvoid
	}
}
