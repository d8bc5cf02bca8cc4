package app

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"jira_webhook_mock/internal/config"
	"jira_webhook_mock/internal/service/capture"
	"jira_webhook_mock/internal/sse"
	"jira_webhook_mock/internal/telemetry"
)

type App struct {
	cfg           *config.Config
	hub           *sse.Hub
	svc           *capture.Service
	server        *http.Server
	logger        *zap.Logger
	wg            sync.WaitGroup
	mu            sync.Mutex
	traceShutdown telemetry.ShutdownFunc
}

func NewApp(cfg *config.Config, hub *sse.Hub, svc *capture.Service, router *gin.Engine, logger *zap.Logger) *App {
	return &App{
		cfg: cfg,
		hub: hub,
		svc: svc,
		server: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

func (a *App) Run(ctx context.Context) error {
	shutdown, err := telemetry.Init(ctx, a.cfg, a.logger)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.traceShutdown = shutdown
	a.mu.Unlock()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.hub.Run(ctx)
	}()

	a.logger.Info("starting mock Jira webhook server", zap.String("addr", a.cfg.HTTPAddr))
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("graceful shutdown started")
	shutdownErr := a.server.Shutdown(ctx)
	if err := a.svc.Drain(ctx); err != nil {
		a.logger.Error("queue mirror drain failed", zap.Error(err))
	}
	a.mu.Lock()
	traceShutdown := a.traceShutdown
	a.mu.Unlock()
	if traceShutdown != nil {
		if err := traceShutdown(ctx); err != nil {
			a.logger.Error("tracer shutdown failed", zap.Error(err))
		}
	}

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.logger.Info("graceful shutdown completed")
		return shutdownErr
	case <-ctx.Done():
		if shutdownErr != nil {
			return shutdownErr
		}
		return ctx.Err()
	}
}

func (a *App) Logger() *zap.Logger {
	return a.logger
}
