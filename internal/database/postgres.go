package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresConnector connects through a pgx connection pool
type PostgresConnector struct {
	opts ConnectOptions
}

// NewPostgresConnector creates a PostgreSQL connector
func NewPostgresConnector(opts ConnectOptions) *PostgresConnector {
	return &PostgresConnector{opts: opts}
}

// Connect implements Connector: build the pool, then ping
func (c *PostgresConnector) Connect(ctx context.Context, uri string) (Connection, error) {
	poolConfig, err := pgxpool.ParseConfig(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURI, err)
	}

	poolConfig.MaxConns = int32(c.opts.MaxPoolSize)
	poolConfig.ConnConfig.ConnectTimeout = c.opts.ServerSelectionTimeout

	poolConfig.HealthCheckPeriod = 1 * time.Minute
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, c.opts.ServerSelectionTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	return &postgresConnection{
		pool: pool,
		host: poolConfig.ConnConfig.Host,
		name: poolConfig.ConnConfig.Database,
	}, nil
}

type postgresConnection struct {
	pool *pgxpool.Pool
	host string
	name string
}

func (p *postgresConnection) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close waits for acquired connections to be released
func (p *postgresConnection) Close(ctx context.Context) error {
	p.pool.Close()
	return nil
}

func (p *postgresConnection) Host() string { return p.host }

func (p *postgresConnection) Name() string { return p.name }
