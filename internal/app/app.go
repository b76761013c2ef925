package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockpulse/config"
	"github.com/guttosm/stockpulse/internal/api"
	"github.com/guttosm/stockpulse/internal/quote"
	"github.com/guttosm/stockpulse/internal/service"
	"github.com/guttosm/stockpulse/internal/web"
)

// NewChartClient builds the upstream chart client from configuration.
func NewChartClient(cfg config.Config) *quote.Client {
	return quote.NewClient(quote.Options{
		BaseURL:   cfg.Chart.BaseURL,
		Interval:  cfg.Chart.Interval,
		Range:     cfg.Chart.Range,
		UserAgent: cfg.Chart.UserAgent,
		Timeout:   cfg.Chart.Timeout,
	})
}

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the upstream chart client and the chart service.
//   - Creates the JSON API handler and the Gin router.
//   - Registers health and readiness probes.
//   - Mounts the tracker pages and schedules the idle view sweep.
//   - Provides a cleanup function that stops the sweep.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	client := NewChartClient(cfg)
	svc := service.NewChartService(client, cfg.View.Location())

	router := api.NewRouter(api.NewHandler(svc), cfg.Server.RateLimitPerMinute)
	api.NewHealthHandler(client.Ping).Register(router)

	store := web.NewViewStore(svc, cfg.View.DefaultSymbol, cfg.View.TTL)
	stopSweep, err := store.StartSweeper(cfg.View.SweepSpec)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start view sweeper: %w", err)
	}
	web.NewHandler(store).Register(router)

	cleanup := func() {
		stopSweep()
	}

	return router, cleanup, nil
}
