package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationName = "cultureland"

// PoolConfig holds the connection settings read from the environment.
type PoolConfig struct {
	Addr        string
	MaxConns    int32
	MaxIdleTime string
}

// New opens the pgx pool the review and reaction repositories share and
// verifies it with a ping before returning.
func New(ctx context.Context, cfg PoolConfig) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("parse database address: %w", err)
	}

	config.MaxConns = cfg.MaxConns

	idle, err := time.ParseDuration(cfg.MaxIdleTime)
	if err != nil {
		return nil, fmt.Errorf("parse max idle time %q: %w", cfg.MaxIdleTime, err)
	}
	config.MaxConnIdleTime = idle
	config.ConnConfig.RuntimeParams["application_name"] = applicationName

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
