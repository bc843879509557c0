// Package server ties the HTTP server and shared infrastructure into one
// application lifecycle.
package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"ChartSense/pkg/cache"
	"ChartSense/pkg/config"
	xhttp "ChartSense/pkg/http"
	applogger "ChartSense/pkg/logger"
)

// App encapsulates the application lifecycle: it owns the HTTP server and
// the cache backend and shuts both down on SIGINT/SIGTERM.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	handler    xhttp.Handler
	cacheSvc   cache.Service
	httpServer *xhttp.Server
}

func New(cfg *config.Config, log *applogger.Logger, handler xhttp.Handler, cacheSvc cache.Service) *App {
	return &App{
		cfg:      cfg,
		log:      log,
		handler:  handler,
		cacheSvc: cacheSvc,
	}
}

// Run starts the HTTP server and blocks until an interrupt or termination
// signal arrives, then shuts everything down gracefully.
func (a *App) Run() error {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithLogger(a.log),
	}
	if a.cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetricsPath(a.cfg.Metrics.Path))
	} else {
		opts = append(opts, xhttp.WithMetricsPath(""))
	}
	a.httpServer = xhttp.NewServer(a.handler, opts...)

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("server started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("environment", a.cfg.Environment),
		applogger.String("preset", a.cfg.Analysis.Preset),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown()
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}
	if a.cacheSvc != nil {
		if err := a.cacheSvc.Close(); err != nil {
			a.log.Warn("cache close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
