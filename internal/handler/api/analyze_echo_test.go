package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"ChartSense/internal/domain/models"
	"ChartSense/internal/service/naver"
	"ChartSense/internal/usecase"
	"ChartSense/pkg/cache"
	"ChartSense/pkg/logger"
)

type fakeSource struct {
	bars []models.Bar
	err  error
}

func (s *fakeSource) DailyBars(context.Context, string, int) ([]models.Bar, error) {
	return s.bars, s.err
}

type noopMetrics struct{}

func (noopMetrics) RecordAnalysis(string)           {}
func (noopMetrics) RecordError(string)              {}
func (noopMetrics) RecordLastClose(string, float64) {}
func (noopMetrics) RecordLatency(string, float64)   {}

func trendBars(n int) []models.Bar {
	bars := make([]models.Bar, n)
	base := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		price := 50_000 + float64(i)*100
		bars[i] = models.Bar{Date: base.AddDate(0, 0, i), Open: price, High: price, Low: price, Close: price, Volume: 1_000_000}
	}
	bars[n-1].Volume = 2_000_000
	return bars
}

func newTestHandler(t *testing.T, source *fakeSource) *AnalyzeEchoHandler {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "disabled", Format: "json", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	mem := cache.NewMemoryCache()
	t.Cleanup(func() { mem.Close() })
	analyzer := usecase.NewAnalyzer(source, mem, noopMetrics{}, log)
	return NewAnalyzeEchoHandler(log, analyzer)
}

func doRequest(t *testing.T, h *AnalyzeEchoHandler, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h.RegisterRoutes(e)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeEndpoint(t *testing.T) {
	h := newTestHandler(t, &fakeSource{bars: trendBars(30)})
	rec := doRequest(t, h, "/api/analyze?symbol=005930.KS&capital=10000000")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Status int             `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("envelope: %v", err)
	}
	var resp AnalyzeResponse
	if err := json.Unmarshal(envelope.Data, &resp); err != nil {
		t.Fatalf("data: %v", err)
	}

	if resp.SymbolUsed != "005930" {
		t.Errorf("symbol_used = %q", resp.SymbolUsed)
	}
	if resp.Signal != string(models.SignalBuyStrong) {
		t.Errorf("signal = %q (score %d)", resp.Signal, resp.Score)
	}
	if resp.SharesTotal == nil || *resp.SharesTotal <= 0 {
		t.Errorf("shares_total = %v", resp.SharesTotal)
	}
	if resp.Pos1Shares == nil || resp.Pos2Shares == nil || resp.Pos3Shares == nil {
		t.Error("tranche shares missing")
	}
	if resp.StrategyText == "" {
		t.Error("strategy_text empty")
	}
	// Monotone rises leave RSI undefined; the field must render as null.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(envelope.Data, &raw); err != nil {
		t.Fatalf("raw data: %v", err)
	}
	if string(raw["rsi"]) != "null" {
		t.Errorf("rsi = %s, want null", raw["rsi"])
	}
}

func TestAnalyzeWithoutCapitalRendersNulls(t *testing.T) {
	h := newTestHandler(t, &fakeSource{bars: trendBars(30)})
	rec := doRequest(t, h, "/api/analyze?symbol=005930")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var envelope struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("envelope: %v", err)
	}
	for _, field := range []string{"capital_input", "position_budget", "shares_total", "pos1_shares", "pos1_amount"} {
		raw, ok := envelope.Data[field]
		if !ok {
			t.Errorf("field %s omitted, want explicit null", field)
			continue
		}
		if string(raw) != "null" {
			t.Errorf("%s = %s, want null", field, raw)
		}
	}
}

func TestAnalyzeMissingSymbol(t *testing.T) {
	h := newTestHandler(t, &fakeSource{bars: trendBars(30)})
	rec := doRequest(t, h, "/api/analyze")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	// The omitted symbol must surface as the dedicated no_symbol code,
	// not the generic required-field validation shape.
	var envelope struct {
		Data []struct {
			Code string `json:"code"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("envelope: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Code != "no_symbol" {
		t.Errorf("error body = %s, want single no_symbol error", rec.Body.String())
	}
}

func TestAnalyzeInvalidPreset(t *testing.T) {
	h := newTestHandler(t, &fakeSource{bars: trendBars(30)})
	rec := doRequest(t, h, "/api/analyze?symbol=005930&preset=bogus")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAnalyzeErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		target string
		source *fakeSource
		want   int
	}{
		{"invalid symbol", "/api/analyze?symbol=12", &fakeSource{}, http.StatusBadRequest},
		{"download failed", "/api/analyze?symbol=005930", &fakeSource{err: naver.ErrDownloadFailed}, http.StatusBadGateway},
		{"empty data", "/api/analyze?symbol=005930", &fakeSource{err: naver.ErrEmptyData}, http.StatusNotFound},
		{"insufficient data", "/api/analyze?symbol=005930", &fakeSource{bars: trendBars(5)}, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandler(t, tc.source)
			rec := doRequest(t, h, tc.target)
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d; body = %s", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(t, &fakeSource{bars: trendBars(30)})
	rec := doRequest(t, h, "/healthz")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}
