// Package usecase orchestrates one analysis request end to end: symbol
// normalization, bar retrieval (cache-first), indicator computation,
// signal classification, position planning and narrative rendering.
package usecase

import (
	"context"
	"errors"
	"time"

	"ChartSense/internal/domain/models"
	"ChartSense/internal/domain/repository"
	"ChartSense/internal/indicator"
	"ChartSense/internal/narrative"
	"ChartSense/internal/plan"
	"ChartSense/internal/service/naver"
	"ChartSense/internal/signal"
	"ChartSense/pkg/cache"
	"ChartSense/pkg/logger"
	"ChartSense/pkg/util"
)

const (
	defaultPages    = 15
	defaultCacheTTL = 10 * time.Minute
)

type Option func(*Analyzer)

// WithPreset sets the rule preset used when a request does not name one.
func WithPreset(name string) Option {
	return func(a *Analyzer) {
		if name != "" {
			a.preset = name
		}
	}
}

// WithMinBars raises the minimum history length. Values below the
// indicator floor are ignored.
func WithMinBars(n int) Option {
	return func(a *Analyzer) {
		if n > indicator.MinBars {
			a.minBars = n
		}
	}
}

// WithPages sets how many daily-quote pages to request per fetch.
func WithPages(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.pages = n
		}
	}
}

// WithCacheTTL sets how long fetched bars stay cached.
func WithCacheTTL(d time.Duration) Option {
	return func(a *Analyzer) {
		if d > 0 {
			a.cacheTTL = d
		}
	}
}

// Analyzer is stateless across requests and safe for concurrent use.
type Analyzer struct {
	source   repository.BarSource
	cache    cache.Service
	metrics  repository.Metrics
	log      *logger.Logger
	preset   string
	minBars  int
	pages    int
	cacheTTL time.Duration
}

func NewAnalyzer(source repository.BarSource, cacheSvc cache.Service, metrics repository.Metrics, log *logger.Logger, opts ...Option) *Analyzer {
	a := &Analyzer{
		source:   source,
		cache:    cacheSvc,
		metrics:  metrics,
		log:      log,
		preset:   signal.PresetScalperA,
		minBars:  indicator.MinBars,
		pages:    defaultPages,
		cacheTTL: defaultCacheTTL,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs the full pipeline for one request. rawSymbol is free-form
// user input; rawCapital and presetName may be empty.
func (a *Analyzer) Analyze(ctx context.Context, rawSymbol, rawCapital, presetName string) (*models.AnalysisReport, error) {
	started := time.Now()

	code, err := naver.BuildSymbol(rawSymbol)
	if err != nil {
		switch {
		case errors.Is(err, naver.ErrNoSymbol):
			return nil, a.fail(KindNoSymbol, "symbol is required", err)
		default:
			return nil, a.fail(KindInvalidSymbol, "symbol must contain a 6-digit KOSPI/KOSDAQ code", err)
		}
	}

	bars, err := a.dailyBars(ctx, code)
	if err != nil {
		switch {
		case errors.Is(err, naver.ErrEmptyData):
			return nil, a.fail(KindEmptyData, "no price data found for "+code, err).withSymbol(code)
		default:
			return nil, a.fail(KindDownloadFailed, "price download failed for "+code, err).withSymbol(code)
		}
	}
	if len(bars) < a.minBars {
		return nil, a.fail(KindInsufficientData, "not enough price history for "+code, nil).withSymbol(code)
	}

	snap, err := indicator.Compute(bars)
	if err != nil {
		if errors.Is(err, indicator.ErrInsufficientData) {
			return nil, a.fail(KindInsufficientData, "not enough price history for "+code, err).withSymbol(code)
		}
		return nil, a.fail(KindInternal, "indicator computation failed", err).withSymbol(code)
	}

	if presetName == "" {
		presetName = a.preset
	}
	rules, err := signal.Preset(presetName)
	if err != nil {
		return nil, a.fail(KindInternal, "signal preset unavailable", err).withSymbol(code)
	}
	sig := rules.Classify(snap)

	levels := plan.Levels(snap.Close)

	var capital *float64
	if v, ok := util.ParseCapital(rawCapital); ok {
		capital = &v
	}
	position := plan.Build(snap.Close, capital)

	report := &models.AnalysisReport{
		SymbolInput:  rawSymbol,
		SymbolUsed:   code,
		Snapshot:     snap,
		Signal:       sig,
		Levels:       levels,
		CapitalInput: capital,
		Plan:         position,
		Narrative:    narrative.Build(snap, sig, levels, capital, position),
	}

	a.metrics.RecordAnalysis(string(sig.Class))
	a.metrics.RecordLastClose(code, snap.Close)
	a.metrics.RecordLatency("analyze", time.Since(started).Seconds())

	a.log.Info("analysis completed",
		logger.String("symbol", code),
		logger.String("signal", string(sig.Class)),
		logger.Int("score", sig.Score),
		logger.Int("bars", len(bars)),
		logger.Duration("elapsed", time.Since(started)),
	)
	return report, nil
}

// dailyBars returns cached bars when available and otherwise fetches and
// caches them. Cache failures are logged and never fail the request.
func (a *Analyzer) dailyBars(ctx context.Context, code string) ([]models.Bar, error) {
	key := cache.GenerateKeyWithParams("bars", code, a.pages)

	var cached []models.Bar
	if err := a.cache.Get(ctx, key, &cached); err == nil && len(cached) > 0 {
		a.log.Debug("bar cache hit", logger.String("key", key), logger.Int("bars", len(cached)))
		return cached, nil
	} else if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		a.log.Warn("bar cache read failed", logger.String("key", key), logger.Error(err))
	}

	fetchStarted := time.Now()
	bars, err := a.source.DailyBars(ctx, code, a.pages)
	if err != nil {
		return nil, err
	}
	a.metrics.RecordLatency("fetch", time.Since(fetchStarted).Seconds())

	if err := a.cache.Set(ctx, key, bars, a.cacheTTL); err != nil {
		a.log.Warn("bar cache write failed", logger.String("key", key), logger.Error(err))
	}
	return bars, nil
}

func (a *Analyzer) fail(kind ErrorKind, message string, err error) *AnalysisError {
	a.metrics.RecordError(string(kind))
	a.log.Warn("analysis failed",
		logger.String("kind", string(kind)),
		logger.String("message", message),
		logger.Error(err),
	)
	return newError(kind, message, err)
}
