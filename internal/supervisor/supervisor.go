// Package supervisor turns every fatal fault of the process into a logged
// fault and a non-zero exit code, leaving os.Exit to main.
package supervisor

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/chybatronik/driftiAPI/internal/logging"
)

// Exit codes returned by Run
const (
	ExitOK      = 0
	ExitFailure = 1
)

// FaultKind categorises a fatal fault
type FaultKind string

const (
	// FaultStartup is an error returned by the supervised main function
	FaultStartup FaultKind = "startup"
	// FaultPanic is a panic in the supervised main function
	FaultPanic FaultKind = "panic"
	// FaultAsync is a panic or error in background work started with Go
	FaultAsync FaultKind = "async"
)

// Fault is a fatal fault with the stack captured at recovery, if any
type Fault struct {
	Kind  FaultKind
	Name  string
	Err   error
	Stack []byte
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s fault in %s: %v", f.Kind, f.Name, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// Supervisor runs the main function of the process and its background work
type Supervisor struct {
	logger *logging.Logger
	faults chan *Fault
	once   sync.Once
}

// New creates a supervisor logging faults to logger
func New(logger *logging.Logger) *Supervisor {
	return &Supervisor{
		logger: logger,
		faults: make(chan *Fault, 1),
	}
}

// Run executes fn and returns the process exit code: ExitOK when fn returns
// nil, ExitFailure when it returns an error or panics, or when background
// work started with Go faults first. ctx passed to fn is cancelled when Run returns.
func (s *Supervisor) Run(ctx context.Context, fn func(ctx context.Context) error) int {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.call(ctx, "main", fn)
	}()

	select {
	case err := <-done:
		if err == nil {
			return ExitOK
		}
		s.log(asFault(err))
		return ExitFailure
	case fault := <-s.faults:
		s.log(fault)
		return ExitFailure
	}
}

// Go runs fn in the background. A panic or a non-nil error other than
// context cancellation is an asynchronous fault that makes Run return ExitFailure.
func (s *Supervisor) Go(ctx context.Context, name string, fn func(ctx context.Context) error) {
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				s.report(&Fault{Kind: FaultAsync, Name: name, Err: panicError(rec), Stack: debug.Stack()})
			}
		}()

		if err := fn(ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.report(&Fault{Kind: FaultAsync, Name: name, Err: err})
		}
	}()
}

func (s *Supervisor) call(ctx context.Context, name string, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &Fault{Kind: FaultPanic, Name: name, Err: panicError(rec), Stack: debug.Stack()}
		}
	}()

	if err := fn(ctx); err != nil {
		return &Fault{Kind: FaultStartup, Name: name, Err: err}
	}
	return nil
}

// report delivers the first async fault; later ones are only logged
func (s *Supervisor) report(fault *Fault) {
	delivered := false
	s.once.Do(func() {
		s.faults <- fault
		delivered = true
	})
	if !delivered {
		s.log(fault)
	}
}

func (s *Supervisor) log(fault *Fault) {
	s.logger.Fault("fatal fault, exiting", fault.Err, fault.Stack,
		logging.FieldFault, string(fault.Kind),
		"component", fault.Name,
	)
}

func asFault(err error) *Fault {
	var fault *Fault
	if errors.As(err, &fault) {
		return fault
	}
	return &Fault{Kind: FaultStartup, Name: "main", Err: err}
}

func panicError(rec any) error {
	if err, ok := rec.(error); ok {
		return err
	}
	return fmt.Errorf("%v", rec)
}
