package database

import (
	"context"
	"sync"

	"github.com/chybatronik/driftiAPI/internal/types"
)

// Handle is the process-wide database connection shared by the startup
// controller, the health endpoint and shutdown
type Handle struct {
	mu      sync.RWMutex
	state   types.ReadyState
	conn    Connection
	observe func(types.ReadyState)
}

// HandleOption configures a Handle
type HandleOption func(*Handle)

// WithStateObserver is called on every state transition
func WithStateObserver(fn func(types.ReadyState)) HandleOption {
	return func(h *Handle) {
		h.observe = fn
	}
}

// NewHandle creates a handle that has never attempted a connection
func NewHandle(opts ...HandleOption) *Handle {
	h := &Handle{state: types.StateUninitialized}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Connect performs one connection attempt through connector
func (h *Handle) Connect(ctx context.Context, connector Connector, uri string) error {
	h.setState(types.StateConnecting)

	conn, err := connector.Connect(ctx, uri)
	if err != nil {
		h.setState(types.StateDisconnected)
		return err
	}

	h.mu.Lock()
	h.conn = conn
	h.mu.Unlock()
	h.setState(types.StateConnected)
	return nil
}

// Close releases the connection. Closing an unconnected handle is a no-op.
func (h *Handle) Close(ctx context.Context) error {
	h.mu.Lock()
	conn := h.conn
	h.mu.Unlock()

	if conn == nil {
		return nil
	}

	h.setState(types.StateDisconnecting)
	err := conn.Close(ctx)

	h.mu.Lock()
	h.conn = nil
	h.mu.Unlock()
	h.setState(types.StateDisconnected)

	return err
}

// Ping checks the live connection
func (h *Handle) Ping(ctx context.Context) error {
	h.mu.RLock()
	conn := h.conn
	h.mu.RUnlock()

	if conn == nil {
		return ErrNotConnected
	}
	return conn.Ping(ctx)
}

// State returns the current ready state
func (h *Handle) State() types.ReadyState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// Host returns the connected host, or "not connected"
func (h *Handle) Host() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.conn == nil || h.conn.Host() == "" {
		return types.NotConnectedHost
	}
	return h.conn.Host()
}

// Name returns the database name of the live connection
func (h *Handle) Name() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.conn == nil {
		return ""
	}
	return h.conn.Name()
}

func (h *Handle) setState(state types.ReadyState) {
	h.mu.Lock()
	h.state = state
	observe := h.observe
	h.mu.Unlock()

	if observe != nil {
		observe(state)
	}
}
