package models

// AnalyzeRequest carries the query parameters of the analyze endpoint.
// Capital is free-form ("10,000,000" is accepted); parsing happens in the
// usecase so degenerate values degrade to "no capital" instead of a 400.
type AnalyzeRequest struct {
	Symbol  string `query:"symbol" json:"symbol" validate:"required"`
	Capital string `query:"capital" json:"capital"`
	Preset  string `query:"preset" json:"preset" validate:"omitempty,oneof=scalper-a swing-basic"`
}
