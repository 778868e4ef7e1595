package database

import (
	"context"
	"io"
	"sync"

	"github.com/chybatronik/driftiAPI/internal/logging"
)

type fakeConnection struct {
	host    string
	name    string
	pingErr error
	closed  bool
}

func (f *fakeConnection) Ping(ctx context.Context) error  { return f.pingErr }
func (f *fakeConnection) Close(ctx context.Context) error { f.closed = true; return nil }
func (f *fakeConnection) Host() string                    { return f.host }
func (f *fakeConnection) Name() string                    { return f.name }

// fakeConnector fails with errs in order, then succeeds
type fakeConnector struct {
	mu    sync.Mutex
	errs  []error
	calls int
	uris  []string
	conn  *fakeConnection
}

func (f *fakeConnector) Connect(ctx context.Context, uri string) (Connection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.uris = append(f.uris, uri)
	if f.calls <= len(f.errs) {
		return nil, f.errs[f.calls-1]
	}
	if f.conn == nil {
		f.conn = &fakeConnection{host: "localhost", name: "drifti"}
	}
	return f.conn, nil
}

func discardLogger() *logging.Logger {
	return logging.New(logging.Options{Level: "error", Output: io.Discard})
}
