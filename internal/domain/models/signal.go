package models

// SignalClass is the discrete recommendation category.
type SignalClass string

const (
	SignalBuyStrong SignalClass = "BUY_STRONG"
	SignalWatch     SignalClass = "WATCH"
	SignalAvoid     SignalClass = "AVOID"
)

// Label returns the human-readable label for the class.
func (s SignalClass) Label() string {
	switch s {
	case SignalBuyStrong:
		return "Strong buy candidate"
	case SignalWatch:
		return "Watch"
	default:
		return "Avoid"
	}
}

// Signal is the classifier output: a class, the integer rule score that
// produced it, and the reasons in fixed rule order. The reason order is a
// contract the presentation layer depends on.
type Signal struct {
	Class   SignalClass
	Score   int
	Reasons []string
}
