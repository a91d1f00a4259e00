package goroutine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/shandysiswandi/authmigrate/internal/pkg/stacktrace"
)

// DefaultMaxGoroutine is multiplied by the CPU count when NewManager
// receives a non-positive limit.
const DefaultMaxGoroutine int = 100

// ErrPanic is joined into the Wait result for every recovered panic.
var ErrPanic = errors.New("goroutine: panic recovered")

// Manager runs functions in goroutines with a concurrency limit. Errors
// returned by the functions are collected and reported by Wait, which also
// closes the manager to new work.
type Manager struct {
	wg   sync.WaitGroup
	sema chan struct{}

	mu     sync.Mutex
	errs   []error
	closed bool
}

// NewManager creates a new Manager with the provided maximum concurrency.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = runtime.NumCPU() * DefaultMaxGoroutine
	}

	return &Manager{sema: make(chan struct{}, maxGoroutine)}
}

// Go runs f in a new goroutine and reports whether it was scheduled. It
// refuses work once the manager is closed or at its limit.
//
// A scheduled f always runs, even when ctx is already done, so it can
// release whatever it owns.
func (g *Manager) Go(ctx context.Context, f func(ctx context.Context) error) bool {
	if g == nil || !g.acquire(ctx) {
		return false
	}

	go func() {
		defer g.release(ctx)

		if err := f(ctx); err != nil {
			g.record(err)
		}
	}()

	return true
}

// acquire takes a slot and registers with the wait group under the same
// lock Wait uses to close, so Wait never misses a scheduled function.
func (g *Manager) acquire(ctx context.Context) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		slog.WarnContext(ctx, "goroutine manager is closed, skipping new goroutine")
		return false
	}

	select {
	case g.sema <- struct{}{}:
		g.wg.Add(1)
		return true
	default:
		slog.WarnContext(ctx, "maximum goroutine limit reached", "limit", cap(g.sema))
		return false
	}
}

func (g *Manager) release(ctx context.Context) {
	if rvr := recover(); rvr != nil {
		stack := debug.Stack()
		if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
			slog.ErrorContext(ctx, "panic occurred in goroutine", "panic", rvr, "stack", paths)
		} else {
			slog.ErrorContext(ctx, "panic occurred in goroutine", "panic", rvr, "stack", string(stack))
		}
		g.record(fmt.Errorf("%w: %v", ErrPanic, rvr))
	}

	<-g.sema
	g.wg.Done()
}

func (g *Manager) record(err error) {
	g.mu.Lock()
	g.errs = append(g.errs, err)
	g.mu.Unlock()
}

// Active returns the number of functions currently running.
func (g *Manager) Active() int {
	if g == nil {
		return 0
	}
	return len(g.sema)
}

// Wait closes the manager, blocks until every scheduled function returns
// and joins the collected errors.
func (g *Manager) Wait() error {
	if g == nil {
		return nil
	}

	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()

	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()
	return errors.Join(g.errs...)
}
