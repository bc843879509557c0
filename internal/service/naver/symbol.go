package naver

import (
	"errors"

	"ChartSense/pkg/util"
)

// codeLen is the KOSPI/KOSDAQ item code length.
const codeLen = 6

var (
	ErrNoSymbol      = errors.New("symbol is empty")
	ErrInvalidSymbol = errors.New("symbol does not contain a 6-digit item code")
)

// BuildSymbol extracts a 6-digit KOSPI/KOSDAQ item code from free-form
// input. Everything except digits is discarded and the last six digits
// are used, so "005930", "005930.KS" and "Samsung 005930" all resolve
// to "005930".
func BuildSymbol(raw string) (string, error) {
	if raw == "" {
		return "", ErrNoSymbol
	}
	digits := util.ExtractDigits(raw)
	if len(digits) < codeLen {
		return "", ErrInvalidSymbol
	}
	return digits[len(digits)-codeLen:], nil
}
