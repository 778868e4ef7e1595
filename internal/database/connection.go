// Package database owns the single database connection of the service:
// connectors per URI scheme, the shared connection handle and the bounded
// startup retry loop.
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chybatronik/driftiAPI/internal/config"
)

// Connection is an established, pinged database connection
type Connection interface {
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	Host() string
	Name() string
}

// Connector opens a Connection for a URI. One call is one connection attempt.
type Connector interface {
	Connect(ctx context.Context, uri string) (Connection, error)
}

// ConnectOptions bounds a single connection attempt and sizes the pool
type ConnectOptions struct {
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration
	MaxPoolSize            int
}

// DefaultConnectOptions returns the driver options used when nothing is configured
func DefaultConnectOptions() ConnectOptions {
	return ConnectOptions{
		ServerSelectionTimeout: 5 * time.Second,
		SocketTimeout:          45 * time.Second,
		MaxPoolSize:            10,
	}
}

// OptionsFromConfig maps database configuration onto connect options
func OptionsFromConfig(cfg config.DatabaseConfig) ConnectOptions {
	opts := DefaultConnectOptions()
	if cfg.ServerSelectionTimeout > 0 {
		opts.ServerSelectionTimeout = cfg.ServerSelectionTimeout
	}
	if cfg.SocketTimeout > 0 {
		opts.SocketTimeout = cfg.SocketTimeout
	}
	if cfg.MaxPoolSize > 0 {
		opts.MaxPoolSize = cfg.MaxPoolSize
	}
	return opts
}

// SchemeConnector dispatches to a driver-specific connector by URI scheme
type SchemeConnector struct {
	Mongo    Connector
	Postgres Connector
}

// NewConnector creates the connector used by the server and the dbcheck tool
func NewConnector(opts ConnectOptions) *SchemeConnector {
	return &SchemeConnector{
		Mongo:    NewMongoConnector(opts),
		Postgres: NewPostgresConnector(opts),
	}
}

// Connect implements Connector
func (s *SchemeConnector) Connect(ctx context.Context, uri string) (Connection, error) {
	if uri == "" {
		return nil, ErrEmptyURI
	}

	switch scheme := uriScheme(uri); scheme {
	case "mongodb", "mongodb+srv":
		return s.Mongo.Connect(ctx, uri)
	case "postgres", "postgresql":
		return s.Postgres.Connect(ctx, uri)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
}

func uriScheme(uri string) string {
	idx := strings.Index(uri, "://")
	if idx <= 0 {
		return ""
	}
	return strings.ToLower(uri[:idx])
}
