package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/saltlock/internal/pkg/goerror"
)

type DeleteLockInput struct {
	LockID string `validate:"required,lockid"`
}

func (s *Usecase) DeleteLock(ctx context.Context, in DeleteLockInput) error {
	ctx, span := s.startSpan(ctx, "DeleteLock")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	err := s.store.Delete(ctx, in.LockID)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("lock not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to delete lock", "lock_id", in.LockID, "error", err)
		return goerror.NewUnavailable(err)
	}

	slog.InfoContext(ctx, "lock deleted", "lock_id", in.LockID)

	return nil
}
