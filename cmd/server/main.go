package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/dining-sim/internal/config"
	"github.com/iliyamo/dining-sim/internal/database"
	"github.com/iliyamo/dining-sim/internal/handler"
	"github.com/iliyamo/dining-sim/internal/logger"
	"github.com/iliyamo/dining-sim/internal/middleware"
	"github.com/iliyamo/dining-sim/internal/queue"
	"github.com/iliyamo/dining-sim/internal/repository"
	"github.com/iliyamo/dining-sim/internal/router"
	"github.com/iliyamo/dining-sim/internal/service"
)

// memoryRunCapacity bounds run history when no database is configured.
const memoryRunCapacity = 1000

func main() {
	cfg := config.Load()
	logg := logger.New(os.Stderr, cfg.LogLevel, "dining-sim")

	defaults, err := config.LoadSimulationConfig(cfg.LayoutPath)
	if err != nil {
		logg.Fatal("load layout", "path", cfg.LayoutPath, "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim := &service.Simulator{Log: logg}
	if cfg.DatabaseEnabled() {
		db, err := database.Open(cfg)
		if err != nil {
			logg.Fatal("mysql: open failed", "err", err)
		}
		defer db.Close()
		runs := repository.NewRunRepo(db)
		if err := runs.EnsureSchema(ctx); err != nil {
			logg.Fatal("mysql: schema failed", "err", err)
		}
		sim.Runs = runs
		logg.Info("mysql: run history enabled", "host", cfg.DBHost, "db", cfg.DBName)
	} else {
		sim.Runs = repository.NewMemoryRuns(memoryRunCapacity)
		logg.Info("run history kept in memory", "capacity", memoryRunCapacity)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		logg.Warn("redis: unavailable, cache and rate limiting disabled")
	} else {
		defer rdb.Close()
	}
	cacheCfg := config.LoadCacheConfig()
	// Only assign when non-nil so the interface stays nil.
	if rc := service.NewResultCache(rdb, cacheCfg); rc != nil {
		sim.Results = rc
	}

	amqpURL := config.AMQPURL()
	if pub := service.NewPublisher(amqpURL, logg.WithPrefix("publisher")); pub != nil {
		sim.Events = pub
	}
	if cfg.ConsumerEnabled && amqpURL != "" {
		c := &queue.Consumer{URL: amqpURL, LogDir: cfg.ConsumerLogDir, Log: logg.WithPrefix("simulation-consumer")}
		go func() {
			if err := c.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logg.Error("simulation-consumer stopped", "err", err)
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg))
	router.RegisterSimulations(e,
		handler.NewSimulationHandler(sim, defaults),
		cfg.JWTSecret,
		middleware.NewRedisCache(cacheCfg, rdb),
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
	)

	addr := ":" + cfg.Port
	go func() {
		logg.Info("listening", "addr", addr, "env", cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("server failed", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logg.Error("shutdown", "err", err)
	}
}
