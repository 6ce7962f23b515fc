// Package backend opens the session store selected by configuration.
package backend

import (
	"context"

	"mealorders/pkg/config"
	"mealorders/pkg/session"
	"mealorders/pkg/session/memory"
	pg "mealorders/pkg/session/postgres"
	rds "mealorders/pkg/session/redis"
)

// Open connects the configured backend. The returned func releases its
// connections.
func Open(ctx context.Context, cfg config.Config) (session.Store, func(), error) {
	switch cfg.SessionBackend {
	case config.BackendRedis:
		client, err := rds.Connect(ctx, cfg.RedisURL, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return rds.New(client, cfg.SessionTTL), func() { _ = client.Close() }, nil
	case config.BackendPostgres:
		db, err := pg.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		store := pg.New(db)
		if err := store.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return store, func() { _ = db.Close() }, nil
	default:
		return memory.New(), func() {}, nil
	}
}
