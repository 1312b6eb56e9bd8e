package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/saltlock/internal/lock/entity"
	"github.com/shandysiswandi/saltlock/internal/pkg/goerror"
)

type (
	UnlockInput struct {
		LockID   string `validate:"required,lockid"`
		Password string
	}

	UnlockOutput struct {
		Unlocked bool
	}
)

// Unlock checks a candidate password against the stored lock. A wrong password
// is a normal outcome, not an error.
func (s *Usecase) Unlock(ctx context.Context, in UnlockInput) (*UnlockOutput, error) {
	ctx, span := s.startSpan(ctx, "Unlock")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.checkPasswordLength(in.Password); err != nil {
		return nil, err
	}

	lock, err := s.store.Get(ctx, in.LockID)
	if errors.Is(err, goerror.ErrNotFound) {
		s.countAttempt(ctx, entity.OutcomeNotFound)
		slog.WarnContext(ctx, "lock not found", "lock_id", in.LockID)
		return nil, goerror.NewBusiness("lock not found", goerror.CodeNotFound)
	}
	if err != nil {
		s.countAttempt(ctx, entity.OutcomeError)
		slog.ErrorContext(ctx, "failed to get lock", "lock_id", in.LockID, "error", err)
		return nil, goerror.NewUnavailable(err)
	}

	h, err := s.hasher(ctx, lock.Algorithm)
	if err != nil {
		s.countAttempt(ctx, entity.OutcomeError)
		return nil, err
	}

	if !h.Verify(lock.Hash, in.Password) {
		s.countAttempt(ctx, entity.OutcomeRejected)
		slog.WarnContext(ctx, "lock password mismatch", "lock_id", in.LockID)
		return &UnlockOutput{Unlocked: false}, nil
	}

	s.countAttempt(ctx, entity.OutcomeUnlocked)
	slog.InfoContext(ctx, "lock unlocked", "lock_id", in.LockID)

	return &UnlockOutput{Unlocked: true}, nil
}
