package usecase

import "fmt"

// ErrorKind discriminates analysis failures so the transport layer can
// pick a status code and the metrics layer can label counters.
type ErrorKind string

const (
	KindNoSymbol         ErrorKind = "no_symbol"
	KindInvalidSymbol    ErrorKind = "invalid_symbol"
	KindDownloadFailed   ErrorKind = "download_failed"
	KindEmptyData        ErrorKind = "empty_data"
	KindInsufficientData ErrorKind = "insufficient_data"
	KindInternal         ErrorKind = "internal"
)

// AnalysisError carries a kind plus a caller-facing message. Symbol holds
// the normalized instrument code when normalization succeeded.
type AnalysisError struct {
	Kind    ErrorKind
	Message string
	Symbol  string
	Err     error
}

func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

func (e *AnalysisError) withSymbol(code string) *AnalysisError {
	e.Symbol = code
	return e
}

func newError(kind ErrorKind, message string, err error) *AnalysisError {
	return &AnalysisError{Kind: kind, Message: message, Err: err}
}
