package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/saltlock/internal/pkg/goerror"
)

type (
	HashPasswordInput struct {
		Password string
	}

	HashPasswordOutput struct {
		Hash      string
		Algorithm string
	}
)

func (s *Usecase) HashPassword(ctx context.Context, in HashPasswordInput) (*HashPasswordOutput, error) {
	ctx, span := s.startSpan(ctx, "HashPassword")
	defer span.End()

	if err := s.checkPasswordLength(in.Password); err != nil {
		return nil, err
	}

	h, err := s.hasher(ctx, "")
	if err != nil {
		return nil, err
	}

	hashed, err := h.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "algorithm", s.algorithm, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &HashPasswordOutput{Hash: string(hashed), Algorithm: s.algorithm}, nil
}
