package database

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

var (
	// ErrEmptyURI is returned when no connection string is configured
	ErrEmptyURI = errors.New("database URI is not defined")
	// ErrUnsupportedScheme is returned for URIs no connector handles
	ErrUnsupportedScheme = errors.New("unsupported database URI scheme")
	// ErrInvalidURI is returned when the driver cannot parse the URI
	ErrInvalidURI = errors.New("invalid database URI")
	// ErrRetriesExhausted is returned once every startup attempt has failed
	ErrRetriesExhausted = errors.New("database connection retries exhausted")
	// ErrNotConnected is returned by operations on a handle without a connection
	ErrNotConnected = errors.New("database not connected")
)

// ErrorKind classifies a failed connection attempt for logs
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindConfig
	KindTransient
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// Classify reports whether err stems from configuration, a transient
// network condition, or something else. Every kind is retried the same way.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}

	if errors.Is(err, ErrEmptyURI) || errors.Is(err, ErrUnsupportedScheme) || errors.Is(err, ErrInvalidURI) {
		return KindConfig
	}

	if isConnectionError(err) {
		return KindTransient
	}

	return KindUnknown
}

// isConnectionError checks if error is a connection-related error
func isConnectionError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return true
	}

	var selectionErr topology.ServerSelectionError
	if errors.As(err, &selectionErr) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) || pgconn.Timeout(err) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "08"): // connection exceptions
			return true
		case pgErr.Code == "53300", pgErr.Code == "57P03": // too many connections, cannot connect now
			return true
		}
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
