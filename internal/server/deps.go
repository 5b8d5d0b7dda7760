package server

import (
	"context"

	"codetrek/configs"
	"codetrek/internal/conceptstore"
	"codetrek/internal/dbs"
	"codetrek/internal/logger"
	"codetrek/internal/repositories"
	"codetrek/internal/services"
	"codetrek/internal/tutor"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// OpenCache returns the Redis session cache, or an in-process cache when
// REDIS_ADDR is unset. The returned func releases the connection.
func OpenCache(ctx context.Context, cfg *configs.Config) (services.Cache, func(), error) {
	client, err := dbs.OpenRedis(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		logger.Log.Warn("REDIS_ADDR not set, sessions are kept in memory")
		return services.NewMemoryCache(), func() {}, nil
	}
	return services.NewRedisCache(client), func() {
		if err := client.Close(); err != nil {
			logger.Log.Warn("Failed to close redis", zap.Error(err))
		}
	}, nil
}

func NewConceptStore(db *sqlx.DB, cfg *configs.Config) (*conceptstore.Store, error) {
	embedder, err := tutor.NewEmbedder(cfg)
	if err != nil {
		return nil, err
	}
	return conceptstore.New(
		repositories.NewConceptRepository(db),
		embedder,
		cfg.ConceptCollection,
		cfg.IngestWorkers,
	), nil
}
