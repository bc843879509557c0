package models

import "time"

// Bar represents one trading day's OHLCV record. Immutable once built by
// the data provider; consumed read-only downstream.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}
