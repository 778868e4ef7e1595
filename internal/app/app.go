// Package app wires configuration, the database handle and the HTTP server
// into the startup sequence: connect with bounded retries, then serve.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/chybatronik/driftiAPI/internal/config"
	"github.com/chybatronik/driftiAPI/internal/database"
	"github.com/chybatronik/driftiAPI/internal/logging"
	"github.com/chybatronik/driftiAPI/internal/metrics"
	"github.com/chybatronik/driftiAPI/internal/middleware"
	"github.com/chybatronik/driftiAPI/internal/supervisor"
)

// ServiceName identifies the service in logs and probes
const ServiceName = "driftiAPI"

// ErrServerStopped is returned when the HTTP server exits without a shutdown request
var ErrServerStopped = errors.New("http server stopped unexpectedly")

// ListenFunc opens the server listener
type ListenFunc func(network, address string) (net.Listener, error)

// App is the startup controller
type App struct {
	cfg        *config.Config
	logger     *logging.Logger
	version    string
	startedAt  time.Time
	connector  database.Connector
	listen     ListenFunc
	supervisor *supervisor.Supervisor
	retrySleep func(context.Context, time.Duration) error
	onServing  func(net.Addr)

	metrics *metrics.Metrics
	handle  *database.Handle
	limiter *middleware.RateLimiter
	router  http.Handler
}

// Option configures an App
type Option func(*App)

// WithConnector replaces the scheme-dispatching database connector
func WithConnector(connector database.Connector) Option {
	return func(a *App) { a.connector = connector }
}

// WithListen replaces net.Listen
func WithListen(listen ListenFunc) Option {
	return func(a *App) { a.listen = listen }
}

// WithStartTime sets the process start used for uptime
func WithStartTime(t time.Time) Option {
	return func(a *App) { a.startedAt = t }
}

// WithVersion sets the build version reported by probes
func WithVersion(version string) Option {
	return func(a *App) { a.version = version }
}

// WithSupervisor runs background work under the process supervisor
func WithSupervisor(s *supervisor.Supervisor) Option {
	return func(a *App) { a.supervisor = s }
}

// WithRetrySleep replaces the wait between connection attempts
func WithRetrySleep(fn func(context.Context, time.Duration) error) Option {
	return func(a *App) { a.retrySleep = fn }
}

// WithOnServing is called with the bound address once the server accepts connections
func WithOnServing(fn func(net.Addr)) Option {
	return func(a *App) { a.onServing = fn }
}

// New builds the controller and its HTTP surface. Nothing is connected or bound yet.
func New(cfg *config.Config, logger *logging.Logger, opts ...Option) *App {
	a := &App{
		cfg:       cfg,
		logger:    logger,
		version:   "dev",
		startedAt: time.Now(),
		listen:    net.Listen,
		metrics:   metrics.New(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.connector == nil {
		a.connector = database.NewConnector(database.OptionsFromConfig(cfg.Database))
	}
	if a.supervisor == nil {
		a.supervisor = supervisor.New(logger)
	}

	a.handle = database.NewHandle(database.WithStateObserver(a.metrics.SetReadyState))
	a.limiter = middleware.NewRateLimiter(cfg.RateLimitPerSecond(), rateLimitBurst(cfg), rateLimitWindow(cfg), logger)
	a.router = a.routes()
	return a
}

// Handler returns the full middleware chain and router
func (a *App) Handler() http.Handler {
	return a.router
}

// Database returns the shared connection handle
func (a *App) Database() *database.Handle {
	return a.handle
}

// Run connects to the database and only then binds the listener and serves
// until ctx is cancelled. Any error means the process should exit non-zero.
func (a *App) Run(ctx context.Context) error {
	a.logBanner()

	retryOpts := []database.RetryOption{database.WithAttemptObserver(a.metrics.ObserveConnectAttempt)}
	if a.retrySleep != nil {
		retryOpts = append(retryOpts, database.WithSleep(a.retrySleep))
	}

	policy := database.RetryPolicy{
		MaxRetries: a.cfg.Database.MaxRetries,
		Delay:      a.cfg.Database.RetryDelay,
	}
	if _, err := database.ConnectWithRetry(ctx, a.handle, a.connector, a.cfg.Database.URI, policy, a.logger, retryOpts...); err != nil {
		return err
	}

	listener, err := a.listen("tcp", a.cfg.Addr())
	if err != nil {
		a.closeDatabase()
		return fmt.Errorf("listen on %s: %w", a.cfg.Addr(), err)
	}

	server := &http.Server{
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.cfg.Server.IdleTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(a.logger.Handler(), slog.LevelError),
	}

	serveDone := make(chan struct{})
	a.supervisor.Go(ctx, "http-server", func(ctx context.Context) error {
		defer close(serveDone)
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	a.supervisor.Go(ctx, "rate-limit-cleanup", a.limiter.RunCleanup)

	a.logger.Startup("server listening",
		"addr", listener.Addr().String(),
		"environment", a.cfg.Application.Environment,
	)
	if a.onServing != nil {
		a.onServing(listener.Addr())
	}

	select {
	case <-ctx.Done():
		a.shutdown(server)
		return nil
	case <-serveDone:
		a.closeDatabase()
		return ErrServerStopped
	}
}

func (a *App) shutdown(server *http.Server) {
	a.logger.Startup("shutdown requested, draining connections")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(a.cfg.Application.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		a.logger.Error("HTTP server shutdown failed", logging.FieldError, err)
	} else {
		a.logger.Startup("HTTP server shutdown completed")
	}

	a.closeDatabaseWith(ctx)
	a.logger.Startup("service shutdown completed")
}

func (a *App) closeDatabase() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(a.cfg.Application.ShutdownTimeout)*time.Second)
	defer cancel()
	a.closeDatabaseWith(ctx)
}

func (a *App) closeDatabaseWith(ctx context.Context) {
	if err := a.handle.Close(ctx); err != nil {
		a.logger.DatabaseError("close failed", err)
		return
	}
	a.logger.Database("connection closed")
}

// logBanner logs the effective configuration without secret values
func (a *App) logBanner() {
	a.logger.Startup("driftiAPI service starting up",
		logging.FieldVersion, a.version,
		"environment", a.cfg.Application.Environment,
		"port", a.cfg.Server.Port,
		"database_uri_set", a.cfg.Database.URI != "",
		"jwt_secret_set", !a.cfg.UsesPlaceholderSecret(),
		"allowed_origin", a.cfg.Security.AllowedOrigin,
		"metrics_enabled", a.cfg.Application.MetricsEnabled,
	)

	if a.cfg.UsesPlaceholderSecret() {
		msg := "JWT_SECRET not set, using the placeholder signing secret"
		if a.cfg.IsDevelopment() {
			a.logger.Warn(msg)
		} else {
			a.logger.Error(msg, "environment", a.cfg.Application.Environment)
		}
	}
}

func rateLimitBurst(cfg *config.Config) int {
	burst := cfg.Application.RateLimitRequests / 5
	if burst < 1 {
		return 1
	}
	return burst
}

func rateLimitWindow(cfg *config.Config) time.Duration {
	window, err := time.ParseDuration(cfg.Application.RateLimitWindow)
	if err != nil || window <= 0 {
		return time.Minute
	}
	return window
}
