package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/saltlock/internal/lock/entity"
	"github.com/shandysiswandi/saltlock/internal/pkg/goerror"
)

type (
	SetLockInput struct {
		LockID   string `validate:"required,lockid"`
		Password string
	}

	SetLockOutput struct {
		LockID string
		Hash   string
	}
)

// SetLock stores the hash of a new password under LockID, replacing any
// previous one. A new lock is created atomically, so concurrent first writers
// agree on CreatedAt; replacements are last writer wins and keep CreatedAt.
func (s *Usecase) SetLock(ctx context.Context, in SetLockInput) (*SetLockOutput, error) {
	ctx, span := s.startSpan(ctx, "SetLock")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.checkPasswordLength(in.Password); err != nil {
		return nil, err
	}

	h, err := s.hasher(ctx, "")
	if err != nil {
		return nil, err
	}

	hashed, err := h.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash lock password", "lock_id", in.LockID, "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	lock := entity.Lock{
		ID:        in.LockID,
		Hash:      string(hashed),
		Algorithm: s.algorithm,
		CreatedAt: now,
		UpdatedAt: now,
	}

	existing, err := s.store.Get(ctx, in.LockID)
	switch {
	case errors.Is(err, goerror.ErrNotFound):
		err = s.store.Create(ctx, lock)
		if errors.Is(err, goerror.ErrAlreadyExists) {
			existing, err = s.store.Get(ctx, in.LockID)
			if err == nil {
				err = s.replace(ctx, existing, lock)
			}
		}
	case err == nil:
		err = s.replace(ctx, existing, lock)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to store lock", "lock_id", in.LockID, "error", err)
		return nil, goerror.NewUnavailable(err)
	}

	slog.InfoContext(ctx, "lock password set", "lock_id", in.LockID, "algorithm", s.algorithm)

	return &SetLockOutput{LockID: lock.ID, Hash: lock.Hash}, nil
}

func (s *Usecase) replace(ctx context.Context, existing *entity.Lock, lock entity.Lock) error {
	lock.CreatedAt = existing.CreatedAt
	return s.store.Save(ctx, lock)
}
