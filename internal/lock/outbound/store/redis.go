package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/saltlock/internal/lock/entity"
	"github.com/shandysiswandi/saltlock/internal/pkg/goerror"
	"github.com/shandysiswandi/saltlock/internal/pkg/instrument"
)

const defaultRedisPrefix = "saltlock:lock:"

// Redis stores each lock as a JSON value under prefix+id.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	ins    instrument.Instrumentation
}

func NewRedis(client *redis.Client, prefix string, ttl time.Duration, ins instrument.Instrumentation) *Redis {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Redis{client: client, prefix: prefix, ttl: ttl, ins: ins}
}

func (r *Redis) key(id string) string {
	return r.prefix + id
}

func (r *Redis) Get(ctx context.Context, id string) (_ *entity.Lock, err error) {
	ctx, span := startSpan(ctx, r.ins, "Redis.Get")
	defer func() { endSpan(span, err) }()

	raw, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, goerror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var lock entity.Lock
	if err := json.Unmarshal(raw, &lock); err != nil {
		return nil, err
	}
	return &lock, nil
}

func (r *Redis) Create(ctx context.Context, lock entity.Lock) (err error) {
	ctx, span := startSpan(ctx, r.ins, "Redis.Create")
	defer func() { endSpan(span, err) }()

	raw, err := json.Marshal(lock)
	if err != nil {
		return err
	}

	ok, err := r.client.SetNX(ctx, r.key(lock.ID), raw, r.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return goerror.ErrAlreadyExists
	}
	return nil
}

func (r *Redis) Save(ctx context.Context, lock entity.Lock) (err error) {
	ctx, span := startSpan(ctx, r.ins, "Redis.Save")
	defer func() { endSpan(span, err) }()

	raw, err := json.Marshal(lock)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(lock.ID), raw, r.ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, id string) (err error) {
	ctx, span := startSpan(ctx, r.ins, "Redis.Delete")
	defer func() { endSpan(span, err) }()

	n, err := r.client.Del(ctx, r.key(id)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return goerror.ErrNotFound
	}
	return nil
}
