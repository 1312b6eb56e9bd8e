package store

import (
	"context"
	"sync"

	"github.com/shandysiswandi/saltlock/internal/lock/entity"
	"github.com/shandysiswandi/saltlock/internal/pkg/goerror"
	"github.com/shandysiswandi/saltlock/internal/pkg/instrument"
)

// Memory is a process-local Store safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	locks map[string]entity.Lock
	ins   instrument.Instrumentation
}

func NewMemory(ins instrument.Instrumentation) *Memory {
	return &Memory{locks: make(map[string]entity.Lock), ins: ins}
}

func (m *Memory) Get(ctx context.Context, id string) (_ *entity.Lock, err error) {
	_, span := startSpan(ctx, m.ins, "Memory.Get")
	defer func() { endSpan(span, err) }()

	m.mu.RLock()
	defer m.mu.RUnlock()

	lock, ok := m.locks[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &lock, nil
}

func (m *Memory) Create(ctx context.Context, lock entity.Lock) (err error) {
	_, span := startSpan(ctx, m.ins, "Memory.Create")
	defer func() { endSpan(span, err) }()

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.locks[lock.ID]; ok {
		return goerror.ErrAlreadyExists
	}
	m.locks[lock.ID] = lock
	return nil
}

func (m *Memory) Save(ctx context.Context, lock entity.Lock) (err error) {
	_, span := startSpan(ctx, m.ins, "Memory.Save")
	defer func() { endSpan(span, err) }()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.locks[lock.ID] = lock
	return nil
}

func (m *Memory) Delete(ctx context.Context, id string) (err error) {
	_, span := startSpan(ctx, m.ins, "Memory.Delete")
	defer func() { endSpan(span, err) }()

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.locks[id]; !ok {
		return goerror.ErrNotFound
	}
	delete(m.locks, id)
	return nil
}
