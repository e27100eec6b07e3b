package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type Options struct {
	Backend string

	FileDir string

	RedisURL    string
	RedisPrefix string

	MongoURI      string
	MongoDatabase string

	SQLDSN string

	// ExpireAfter drops snapshots untouched for this long on backends that
	// support expiry (redis, mongo). Zero keeps them forever.
	ExpireAfter time.Duration

	Breaker BreakerSettings
}

// Open builds the configured backend. Remote backends are wrapped in a
// circuit breaker.
func Open(ctx context.Context, opts Options, logger *slog.Logger) (Store, error) {
	switch opts.Backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "file":
		return NewFileStore(opts.FileDir)
	case "redis":
		client, err := ConnectRedis(ctx, opts.RedisURL)
		if err != nil {
			return nil, err
		}
		return NewBreakerStore(NewRedisStore(client, opts.RedisPrefix, opts.ExpireAfter), "redis", opts.Breaker, logger), nil
	case "mongo":
		db, err := ConnectMongoDB(ctx, opts.MongoURI, opts.MongoDatabase)
		if err != nil {
			return nil, err
		}
		s := NewMongoStore(db)
		if err := s.CreateIndexes(ctx, opts.ExpireAfter); err != nil {
			s.Close()
			return nil, err
		}
		return NewBreakerStore(s, "mongo", opts.Breaker, logger), nil
	case "sqlite":
		return OpenSQL(ctx, DialectSQLite, opts.SQLDSN)
	case "postgres":
		s, err := OpenSQL(ctx, DialectPostgres, opts.SQLDSN)
		if err != nil {
			return nil, err
		}
		return NewBreakerStore(s, "postgres", opts.Breaker, logger), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
