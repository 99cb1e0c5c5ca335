package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/kaleidoswap/market-explorer/internal/market"
	"github.com/kaleidoswap/market-explorer/internal/query"
	"github.com/kaleidoswap/market-explorer/internal/rate"
	"github.com/kaleidoswap/market-explorer/internal/web"
	"github.com/kaleidoswap/market-explorer/pkg/config"
	"github.com/kaleidoswap/market-explorer/pkg/logger"
	"github.com/kaleidoswap/market-explorer/pkg/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Load configuration ---
	cfg := config.Load()

	logger.Init(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	logg := logger.S()
	logg.Infof("starting [%s]...", cfg.ServiceName)

	// --- Rate limiter (one bucket per network) ---
	rateMgr := rate.NewManager(rate.Config{
		RequestsPerSecond: cfg.MarketRPS,
		Burst:             cfg.MarketBurst,
	})

	// --- Market API client ---
	marketClient := market.NewClient(
		logg.Desugar(),
		rateMgr,
		&http.Client{Timeout: cfg.MarketHTTPTimeout},
		cfg.BaseURLs(),
	)

	// --- Query caches ---
	opts := query.Options{StaleTime: cfg.QueryStaleTime, CacheTime: cfg.QueryCacheTime}
	assets := query.New(market.ResourceAssets, marketClient.ListAssets, opts, logg.Desugar())
	pairs := query.New(market.ResourcePairs, marketClient.ListPairs, opts, logg.Desugar())

	stopCleaner := make(chan struct{})
	go assets.StartCleaner(cfg.QueryCleanupFreq, stopCleaner)
	go pairs.StartCleaner(cfg.QueryCleanupFreq, stopCleaner)

	// warm the default network
	assets.Refetch(cfg.DefaultNetwork)
	pairs.Refetch(cfg.DefaultNetwork)

	// --- Fiber HTTP Server ---
	app := fiber.New(fiber.Config{
		ReadTimeout:           cfg.HTTPReadTimeout,
		WriteTimeout:          cfg.HTTPWriteTimeout,
		IdleTimeout:           cfg.HTTPIdleTimeout,
		DisableStartupMessage: cfg.Env != "dev",
	})

	handler := web.NewHandler(logg.Desugar(), assets, pairs, cfg.DefaultNetwork, cfg.PageLoadTimeout)
	web.RegisterRoutes(app, handler)

	go func() {
		logg.Infof("HTTP listening on :%d", cfg.Port)
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			logg.Fatalw("fiber.listen_failed", "error", err)
		}
	}()

	logg.Infow("[market-explorer] running",
		"env", cfg.Env,
		"default_network", cfg.DefaultNetwork,
		"signet_api", utils.MaskURL(cfg.SignetAPIURL),
		"regtest_api", utils.MaskURL(cfg.RegtestAPIURL))

	<-ctx.Done()
	logg.Info("shutting down [market-explorer]...")

	close(stopCleaner)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logg.Warnw("fiber.shutdown_failed", "error", err)
	}
}
