package database

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected ErrorKind
	}{
		{"nil", nil, KindUnknown},
		{"empty uri", ErrEmptyURI, KindConfig},
		{"unsupported scheme", fmt.Errorf("%w: %q", ErrUnsupportedScheme, "redis"), KindConfig},
		{"invalid uri", fmt.Errorf("%w: bad port", ErrInvalidURI), KindConfig},
		{"deadline", fmt.Errorf("ping: %w", context.DeadlineExceeded), KindTransient},
		{"net op error", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, KindTransient},
		{"pg connection failure", &pgconn.PgError{Code: "08006"}, KindTransient},
		{"pg too many connections", &pgconn.PgError{Code: "53300"}, KindTransient},
		{"pg auth failure", &pgconn.PgError{Code: "28P01"}, KindUnknown},
		{"plain error", errors.New("something odd"), KindUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classify(tc.err))
		})
	}
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "config", KindConfig.String())
	assert.Equal(t, "transient", KindTransient.String())
	assert.Equal(t, "unknown", KindUnknown.String())
	assert.Equal(t, "unknown", ErrorKind(42).String())
}
