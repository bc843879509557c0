package di

import (
	"fmt"

	"ChartSense/internal/domain/repository"
	"ChartSense/internal/handler/api"
	"ChartSense/internal/service/naver"
	"ChartSense/internal/usecase"
	"ChartSense/pkg/cache"
	"ChartSense/pkg/config"
	xhttp "ChartSense/pkg/http"
	"ChartSense/pkg/logger"
	"ChartSense/pkg/metrics"
	"ChartSense/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the configured cache backend.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	switch cfg.Cache.Backend {
	case "redis":
		c, err := cache.NewRedisCache(
			cache.WithRedisAddr(cfg.Cache.Redis.Addr),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return c, nil
	default:
		return cache.NewMemoryCache(), nil
	}
}

// ProvideBarSource creates the Naver daily-price client.
func ProvideBarSource(cfg *config.Config, l *logger.Logger) repository.BarSource {
	return naver.NewClient(
		naver.WithBaseURL(cfg.Provider.BaseURL),
		naver.WithTimeout(cfg.Provider.Timeout),
		naver.WithRetry(cfg.Provider.RetryMax, cfg.Provider.RetryBackoff),
		naver.WithUserAgent(cfg.Provider.UserAgent),
		naver.WithLogger(l),
	)
}

// ProvideAnalyzer creates the analysis use case.
func ProvideAnalyzer(
	source repository.BarSource,
	cacheSvc cache.Service,
	m repository.Metrics,
	l *logger.Logger,
	cfg *config.Config,
) *usecase.Analyzer {
	return usecase.NewAnalyzer(source, cacheSvc, m, l,
		usecase.WithPreset(cfg.Analysis.Preset),
		usecase.WithMinBars(cfg.Analysis.MinBars),
		usecase.WithPages(cfg.Provider.Pages),
		usecase.WithCacheTTL(cfg.Cache.TTL),
	)
}

// ProvideHandler creates the Echo route handler.
func ProvideHandler(l *logger.Logger, analyzer *usecase.Analyzer) xhttp.Handler {
	return api.NewAnalyzeEchoHandler(l, analyzer)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *logger.Logger, handler xhttp.Handler, cacheSvc cache.Service) *server.App {
	return server.New(cfg, l, handler, cacheSvc)
}
