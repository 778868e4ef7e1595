package database

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chybatronik/driftiAPI/internal/logging"
	"github.com/chybatronik/driftiAPI/internal/types"
)

const testURI = "mongodb://localhost:27017/drifti"

type sleepRecorder struct {
	waits []time.Duration
}

func (s *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	s.waits = append(s.waits, d)
	return nil
}

func TestConnectWithRetry_FirstAttemptSucceeds(t *testing.T) {
	connector := &fakeConnector{}
	handle := NewHandle()
	sleeper := &sleepRecorder{}

	result, err := ConnectWithRetry(context.Background(), handle, connector, testURI, DefaultRetryPolicy(), discardLogger(), WithSleep(sleeper.sleep))

	require.NoError(t, err)
	assert.Equal(t, ConnectResult{Attempts: 1, Host: "localhost", Database: "drifti"}, result)
	assert.Equal(t, 1, connector.calls)
	assert.Empty(t, sleeper.waits)
	assert.Equal(t, types.StateConnected, handle.State())
}

func TestConnectWithRetry_SucceedsOnThirdAttempt(t *testing.T) {
	transient := errors.New("server selection timeout")
	connector := &fakeConnector{errs: []error{transient, transient}}
	handle := NewHandle()
	sleeper := &sleepRecorder{}

	result, err := ConnectWithRetry(context.Background(), handle, connector, testURI, DefaultRetryPolicy(), discardLogger(), WithSleep(sleeper.sleep))

	require.NoError(t, err)
	assert.Equal(t, 3, result.Attempts)
	assert.Equal(t, 3, connector.calls)
	assert.Equal(t, []time.Duration{5 * time.Second, 5 * time.Second}, sleeper.waits)
	assert.Equal(t, types.StateConnected, handle.State())
}

func TestConnectWithRetry_ExhaustsAfterMaxRetries(t *testing.T) {
	lastErr := errors.New("connection refused")
	connector := &fakeConnector{errs: []error{lastErr, lastErr, lastErr, lastErr, lastErr, lastErr}}
	handle := NewHandle()
	sleeper := &sleepRecorder{}

	result, err := ConnectWithRetry(context.Background(), handle, connector, testURI, DefaultRetryPolicy(), discardLogger(), WithSleep(sleeper.sleep))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.ErrorIs(t, err, lastErr)
	assert.Equal(t, 5, result.Attempts)
	assert.Equal(t, 5, connector.calls)
	assert.Equal(t, []time.Duration{5 * time.Second, 5 * time.Second, 5 * time.Second, 5 * time.Second}, sleeper.waits)
	assert.Equal(t, types.StateDisconnected, handle.State())
	assert.Equal(t, types.NotConnectedHost, handle.Host())
}

func TestConnectWithRetry_EmptyURICountsAsAttempt(t *testing.T) {
	connector := &fakeConnector{}
	handle := NewHandle()
	sleeper := &sleepRecorder{}

	result, err := ConnectWithRetry(context.Background(), handle, connector, "", DefaultRetryPolicy(), discardLogger(), WithSleep(sleeper.sleep))

	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.ErrorIs(t, err, ErrEmptyURI)
	assert.Equal(t, 5, result.Attempts)
	assert.Zero(t, connector.calls)
	assert.Len(t, sleeper.waits, 4)
	assert.Equal(t, types.StateUninitialized, handle.State())
}

func TestConnectWithRetry_CustomPolicy(t *testing.T) {
	failure := errors.New("down")
	connector := &fakeConnector{errs: []error{failure, failure, failure}}
	sleeper := &sleepRecorder{}

	result, err := ConnectWithRetry(context.Background(), NewHandle(), connector, testURI,
		RetryPolicy{MaxRetries: 2, Delay: 10 * time.Millisecond}, discardLogger(), WithSleep(sleeper.sleep))

	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.Equal(t, 2, result.Attempts)
	assert.Equal(t, []time.Duration{10 * time.Millisecond}, sleeper.waits)
}

func TestConnectWithRetry_ZeroMaxRetriesStillAttemptsOnce(t *testing.T) {
	connector := &fakeConnector{errs: []error{errors.New("down")}}

	result, err := ConnectWithRetry(context.Background(), NewHandle(), connector, testURI,
		RetryPolicy{MaxRetries: 0, Delay: time.Second}, discardLogger())

	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.Equal(t, 1, result.Attempts)
	assert.Equal(t, 1, connector.calls)
}

func TestConnectWithRetry_CancelledDuringDelay(t *testing.T) {
	connector := &fakeConnector{errs: []error{errors.New("down"), errors.New("down")}}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.AfterFunc(20*time.Millisecond, cancel)

	start := time.Now()
	result, err := ConnectWithRetry(ctx, NewHandle(), connector, testURI,
		RetryPolicy{MaxRetries: 5, Delay: time.Minute}, discardLogger())

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrRetriesExhausted)
	assert.Equal(t, 1, result.Attempts)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestConnectWithRetry_AlreadyCancelled(t *testing.T) {
	connector := &fakeConnector{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ConnectWithRetry(ctx, NewHandle(), connector, testURI, DefaultRetryPolicy(), discardLogger())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, connector.calls)
}

func TestConnectWithRetry_ObserverSeesEveryAttempt(t *testing.T) {
	failure := errors.New("down")
	connector := &fakeConnector{errs: []error{failure}}

	type outcome struct {
		attempt int
		err     error
	}
	var seen []outcome

	_, err := ConnectWithRetry(context.Background(), NewHandle(), connector, testURI, DefaultRetryPolicy(), discardLogger(),
		WithSleep((&sleepRecorder{}).sleep),
		WithAttemptObserver(func(attempt int, err error) {
			seen = append(seen, outcome{attempt, err})
		}))

	require.NoError(t, err)
	assert.Equal(t, []outcome{{1, failure}, {2, nil}}, seen)
}

func TestConnectWithRetry_LogsAttemptsWithoutSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Options{Level: "info", Output: &buf})
	connector := &fakeConnector{errs: []error{ErrInvalidURI}}

	_, err := ConnectWithRetry(context.Background(), NewHandle(), connector, "mongodb://app:hunter2@db:27017/drifti",
		DefaultRetryPolicy(), logger, WithSleep((&sleepRecorder{}).sleep))
	require.NoError(t, err)

	out := buf.String()
	assert.NotContains(t, out, "hunter2")
	assert.Contains(t, out, "mongodb://app:****@db:27017/drifti")
	assert.Contains(t, out, `"error_kind":"config"`)
	assert.Contains(t, out, `"attempt":1`)
	assert.Contains(t, out, "database: connected")
}

func TestSleepContext(t *testing.T) {
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}
