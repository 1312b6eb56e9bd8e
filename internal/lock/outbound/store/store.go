// Package store persists lock records.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/saltlock/internal/lock/entity"
	"github.com/shandysiswandi/saltlock/internal/pkg/goerror"
	"github.com/shandysiswandi/saltlock/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DriverMemory keeps locks for the lifetime of the process.
	DriverMemory = "memory"
	// DriverRedis keeps locks in Redis.
	DriverRedis = "redis"
)

// ErrUnknownDriver indicates an unsupported store driver name.
var ErrUnknownDriver = errors.New("store: unknown driver")

// Store reads and writes lock records. Get and Delete return
// goerror.ErrNotFound when the lock does not exist, Create returns
// goerror.ErrAlreadyExists when it does.
//
// Create is atomic: of two concurrent Creates for one id exactly one wins.
// Save overwrites unconditionally, so concurrent Saves are last writer wins.
type Store interface {
	Get(ctx context.Context, id string) (*entity.Lock, error)
	Create(ctx context.Context, lock entity.Lock) error
	Save(ctx context.Context, lock entity.Lock) error
	Delete(ctx context.Context, id string) error
}

// Config selects and configures a driver.
type Config struct {
	Driver string
	// Redis is required by DriverRedis.
	Redis *redis.Client
	// Prefix namespaces redis keys.
	Prefix string
	// TTL expires redis keys; zero keeps them forever.
	TTL time.Duration
}

// New builds the Store named by cfg.Driver. An empty driver selects DriverMemory.
func New(cfg Config, ins instrument.Instrumentation) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverMemory:
		return NewMemory(ins), nil
	case DriverRedis:
		if cfg.Redis == nil {
			return nil, errors.New("store: redis driver requires a client")
		}
		return NewRedis(cfg.Redis, cfg.Prefix, cfg.TTL, ins), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, cfg.Driver)
	}
}

func startSpan(ctx context.Context, ins instrument.Instrumentation, name string) (context.Context, trace.Span) {
	return ins.Tracer("lock.outbound.store").Start(ctx, name)
}

func endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrAlreadyExists) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
