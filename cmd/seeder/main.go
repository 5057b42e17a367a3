package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"roamio/gazetteer/internal/common"
	"roamio/gazetteer/internal/config"
	"roamio/gazetteer/internal/constants"
	"roamio/gazetteer/internal/logging"
	"roamio/gazetteer/internal/metrics"
	"roamio/gazetteer/internal/pipeline"
	"roamio/gazetteer/internal/routes"
	"roamio/gazetteer/internal/sources"
	"roamio/gazetteer/internal/store"
)

func main() {
	serve := flag.Bool("serve", false, "start the admin server instead of running once")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logging.Init(cfg.AppEnv); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logging.Close() }()

	logging.Info("gazetteer seeder starting up",
		"environment", cfg.AppEnv,
		"store", string(cfg.DB.Type),
		"mode", string(cfg.Seeder.Mode),
		"data_dir", cfg.Seeder.DataDir,
	)

	docStore, err := openStore(cfg.DB)
	if err != nil {
		logging.Error("failed to open document store", "error", err.Error())
		os.Exit(1)
	}

	cache := openCache(cfg)
	defer func() { _ = cache.Close() }()

	metricsReg := metrics.NewMetricsRegistry()

	fetcher := sources.NewFetcher(cfg.Seeder.FetchTimeout, cfg.Seeder.FetchRatePerSec, cache, cfg.Seeder.FetchCacheTTL)
	fetcher.Observe(func(result string) {
		metricsReg.FetchesTotal.WithLabelValues(result).Inc()
	})

	instrumented := store.NewInstrumentedStore(docStore, func(op, collection string) {
		metricsReg.StoreOpsTotal.WithLabelValues(op, collection).Inc()
	})
	p := pipeline.New(cfg.Seeder, instrumented, fetcher, metricsReg)

	if *serve {
		runServer(cfg, instrumented, p, metricsReg)
		return
	}

	report, err := p.Run(context.Background())
	if err != nil {
		logging.Error("seed run aborted", "error", err.Error())
		os.Exit(1)
	}
	totals := report.Totals()
	logging.Info("seed run finished",
		"created", totals.Created,
		"updated", totals.Updated,
		"skipped", totals.Skipped,
		"errors", totals.Errors,
	)
	if report.CountStatus(constants.StageStatusFailed) > 0 {
		os.Exit(1)
	}
}

func runServer(cfg *config.Config, docStore store.Store, p *pipeline.Pipeline, metricsReg *metrics.MetricsRegistry) {
	upSince := time.Now()
	router := routes.RegisterRoutes(cfg.Server, docStore, p, metricsReg, upSince)

	addr := ":" + cfg.Server.Port
	logging.Info("admin server starting", "addr", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		logging.Error("admin server stopped", "error", err.Error())
		os.Exit(1)
	}
}

func openStore(cfg config.DBConfig) (store.Store, error) {
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}

	switch cfg.Type {
	case config.DBTypePostgres:
		db, err := gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return store.NewGormStore(db), nil
	case config.DBTypeSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.DSN()), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return store.NewGormStore(db), nil
	default:
		return store.NewMemoryStore(), nil
	}
}

// openCache picks the fetch cache backend: Redis when configured, the
// in-process cache otherwise
func openCache(cfg *config.Config) common.CacheInterface {
	if cfg.Redis.Enabled {
		redisCache, err := common.NewRedisCacheService(cfg.Redis)
		if err == nil {
			logging.Info("using redis fetch cache", "host", cfg.Redis.Host)
			return redisCache
		}
		logging.Warn("redis unavailable, falling back to in-process cache", "error", err.Error())
	}
	return common.NewCacheService(cfg.Seeder.FetchCacheTTL, 10*time.Minute)
}
