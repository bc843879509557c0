package util

import (
	"strconv"
	"strings"
)

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// CleanNumber strips everything except digits and decimal points from a
// user-entered numeric string ("10,000,000원" -> "10000000").
func CleanNumber(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseCapital converts a free-form capital string to a positive amount.
// Returns (0, false) when the input is empty, unparseable, or non-positive;
// the caller treats that as "no capital supplied".
func ParseCapital(raw string) (float64, bool) {
	cleaned := CleanNumber(raw)
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// ExtractDigits returns only the digit runes of s.
func ExtractDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
