package repository

import (
	"context"

	"ChartSense/internal/domain/models"
)

// BarSource supplies chronologically ascending daily bars for an
// instrument code. Missing trading days are simply absent.
type BarSource interface {
	DailyBars(ctx context.Context, code string, pages int) ([]models.Bar, error)
}

// Metrics abstracts analysis metrics recording.
type Metrics interface {
	RecordAnalysis(signal string)
	RecordError(kind string)
	RecordLastClose(symbol string, price float64)
	RecordLatency(op string, seconds float64)
}
