package goroutine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(context.Context) error { return nil }

func TestManager_CollectsErrors(t *testing.T) {
	t.Parallel()

	// Arrange
	m := NewManager(4)
	errA := errors.New("a")
	var ran atomic.Int32

	// Act
	require.NoError(t, m.Go(context.Background(), "first", func(context.Context) error { ran.Add(1); return errA }))
	require.NoError(t, m.Go(context.Background(), "second", func(context.Context) error { ran.Add(1); return nil }))
	err := m.Wait()

	// Assert
	require.ErrorIs(t, err, errA)
	assert.Contains(t, err.Error(), "first: a")
	assert.Equal(t, int32(2), ran.Load())
}

func TestManager_RecoversPanic(t *testing.T) {
	t.Parallel()

	m := NewManager(1)
	require.NoError(t, m.Go(context.Background(), "worker", func(context.Context) error { panic("boom") }))

	err := m.Wait()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "worker: panic: boom")
}

func TestManager_ClosedAfterWait(t *testing.T) {
	t.Parallel()

	m := NewManager(1)
	require.NoError(t, m.Wait())

	assert.ErrorIs(t, m.Go(context.Background(), "late", noop), ErrClosed)
}

func TestManager_LimitReached(t *testing.T) {
	t.Parallel()

	m := NewManager(1)
	release := make(chan struct{})
	started := make(chan struct{})

	require.NoError(t, m.Go(context.Background(), "blocking", func(context.Context) error {
		close(started)
		<-release
		return nil
	}))
	<-started

	assert.ErrorIs(t, m.Go(context.Background(), "extra", noop), ErrLimitReached)

	close(release)
	require.NoError(t, m.Wait())
}

func TestManager_SlotReleasedAfterTask(t *testing.T) {
	t.Parallel()

	m := NewManager(1)
	done := make(chan struct{})
	require.NoError(t, m.Go(context.Background(), "one", func(context.Context) error { close(done); return nil }))
	<-done

	assert.Eventually(t, func() bool {
		return m.Go(context.Background(), "two", noop) == nil
	}, time.Second, 5*time.Millisecond)
	require.NoError(t, m.Wait())
}

func TestManager_CanceledContextSkips(t *testing.T) {
	t.Parallel()

	m := NewManager(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Bool
	require.NoError(t, m.Go(ctx, "skipped", func(context.Context) error { ran.Store(true); return nil }))

	require.NoError(t, m.Wait())
	assert.False(t, ran.Load())
}

func TestManager_Nil(t *testing.T) {
	t.Parallel()

	var m *Manager
	assert.ErrorIs(t, m.Go(context.Background(), "nil", noop), ErrClosed)
	assert.NoError(t, m.Wait())
}
