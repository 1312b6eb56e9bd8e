package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/saltlock/internal/pkg/goerror"
)

type (
	GetLockInput struct {
		LockID string `validate:"required,lockid"`
	}

	GetLockOutput struct {
		LockID    string
		Hash      string
		Algorithm string
		CreatedAt time.Time
		UpdatedAt time.Time
	}
)

func (s *Usecase) GetLock(ctx context.Context, in GetLockInput) (*GetLockOutput, error) {
	ctx, span := s.startSpan(ctx, "GetLock")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	lock, err := s.store.Get(ctx, in.LockID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("lock not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get lock", "lock_id", in.LockID, "error", err)
		return nil, goerror.NewUnavailable(err)
	}

	return &GetLockOutput{
		LockID:    lock.ID,
		Hash:      lock.Hash,
		Algorithm: lock.Algorithm,
		CreatedAt: lock.CreatedAt,
		UpdatedAt: lock.UpdatedAt,
	}, nil
}
