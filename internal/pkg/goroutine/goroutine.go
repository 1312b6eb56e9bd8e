package goroutine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/shandysiswandi/saltlock/internal/pkg/stacktrace"
)

// DefaultMaxGoroutine scales the limit used when NewManager receives a
// non-positive value.
const DefaultMaxGoroutine int = 100

var (
	// ErrClosed is returned by Go once Wait has been called.
	ErrClosed = errors.New("goroutine manager is closed")
	// ErrLimitReached is returned by Go when every slot is taken.
	ErrLimitReached = errors.New("goroutine limit reached")
)

// Task is a unit of work run by a Manager.
type Task func(ctx context.Context) error

// Manager runs named tasks under a concurrency limit. Task errors and panics
// are collected and returned by Wait, each prefixed with the task name.
type Manager struct {
	slots chan struct{}
	wg    sync.WaitGroup

	state  sync.RWMutex
	closed bool

	errMu sync.Mutex
	errs  []error
}

// NewManager creates a Manager that runs at most limit tasks at once.
func NewManager(limit int) *Manager {
	if limit < 1 {
		limit = runtime.NumCPU() * DefaultMaxGoroutine
	}

	return &Manager{slots: make(chan struct{}, limit)}
}

// Go starts task in its own goroutine. A task whose context is already done
// is skipped without error.
func (m *Manager) Go(ctx context.Context, name string, task Task) error {
	if m == nil {
		return ErrClosed
	}

	m.state.RLock()
	defer m.state.RUnlock()

	if m.closed {
		return ErrClosed
	}

	select {
	case m.slots <- struct{}{}:
	default:
		return ErrLimitReached
	}

	m.wg.Add(1)
	go m.run(ctx, name, task)

	return nil
}

func (m *Manager) run(ctx context.Context, name string, task Task) {
	defer m.wg.Done()
	defer func() { <-m.slots }()
	defer m.recoverTask(ctx, name)

	if err := ctx.Err(); err != nil {
		slog.WarnContext(ctx, "task skipped", "task", name, "because", err)
		return
	}

	if err := task(ctx); err != nil {
		m.record(fmt.Errorf("%s: %w", name, err))
	}
}

func (m *Manager) recoverTask(ctx context.Context, name string) {
	rvr := recover()
	if rvr == nil {
		return
	}

	stack := debug.Stack()
	if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
		slog.ErrorContext(ctx, "task panicked", "task", name, "because", rvr, "stack", paths)
	} else {
		slog.ErrorContext(ctx, "task panicked", "task", name, "because", rvr, "stack", string(stack))
	}

	m.record(fmt.Errorf("%s: panic: %v", name, rvr))
}

func (m *Manager) record(err error) {
	m.errMu.Lock()
	m.errs = append(m.errs, err)
	m.errMu.Unlock()
}

// Wait closes the manager to new tasks, blocks until running ones finish and
// returns their joined errors.
func (m *Manager) Wait() error {
	if m == nil {
		return nil
	}

	m.state.Lock()
	m.closed = true
	m.state.Unlock()

	m.wg.Wait()

	m.errMu.Lock()
	defer m.errMu.Unlock()

	return errors.Join(m.errs...)
}
