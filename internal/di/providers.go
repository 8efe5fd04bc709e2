package di

import (
	"context"
	"fmt"
	"time"

	"TrendBoard/internal/dataset"
	"TrendBoard/internal/handler/api"
	"TrendBoard/internal/query"
	"TrendBoard/internal/repository"
	icache "TrendBoard/internal/service/cache"
	"TrendBoard/pkg/config"
	xhttp "TrendBoard/pkg/http"
	applogger "TrendBoard/pkg/logger"
	"TrendBoard/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideInstrumentStore opens the SQLite store and seeds it from the
// bundled dataset when configured and empty.
func ProvideInstrumentStore(cfg *config.Config) (*repository.InstrumentStore, error) {
	store, err := repository.NewInstrumentStore(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("instrument store: %w", err)
	}

	if cfg.Dataset.Seed {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.SeedIfEmpty(ctx, dataset.Instruments()); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("seed dataset: %w", err)
		}
	}

	return store, nil
}

// ProvideEngine creates the query engine.
func ProvideEngine() *query.Engine {
	return query.NewEngine()
}

// ProvideCache selects the response cache backend.
func ProvideCache(cfg *config.Config) icache.BytesCache {
	if cfg.Cache.Redis.Enabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideInstrumentsHandler assembles the HTTP handler.
func ProvideInstrumentsHandler(
	cfg *config.Config,
	log *applogger.Logger,
	store *repository.InstrumentStore,
	engine *query.Engine,
	cache icache.BytesCache,
) xhttp.Handler {
	h := api.NewInstrumentsHandler(log, store, engine)
	h.SetCache(cache, cfg.Cache.TTL)
	if cfg.RateLimit.Capacity > 0 {
		h.SetRateLimit(cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSec)
	}
	return h
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	handler xhttp.Handler,
	store *repository.InstrumentStore,
) *server.App {
	return server.New(cfg, log, handler, store)
}
