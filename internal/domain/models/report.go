package models

// AnalysisReport is the aggregate result for one analyze request.
// CapitalInput and Plan are nil when the caller supplied no usable capital;
// the transport layer renders them as explicit nulls, never omits them.
type AnalysisReport struct {
	SymbolInput  string
	SymbolUsed   string
	Snapshot     IndicatorSnapshot
	Signal       Signal
	Levels       StrategyLevels
	CapitalInput *float64
	Plan         *PositionPlan
	Narrative    string
}
