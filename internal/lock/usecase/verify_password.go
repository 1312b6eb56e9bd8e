package usecase

import (
	"context"

	"github.com/shandysiswandi/saltlock/internal/pkg/goerror"
	"github.com/shandysiswandi/saltlock/internal/pkg/hash"
)

type (
	VerifyPasswordInput struct {
		Password string
		Hash     string `validate:"required"`
	}

	VerifyPasswordOutput struct {
		Valid bool
	}

	saltedDigest struct {
		Hash string `validate:"hexdigest"`
	}
)

func (s *Usecase) VerifyPassword(ctx context.Context, in VerifyPasswordInput) (*VerifyPasswordOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyPassword")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.checkPasswordLength(in.Password); err != nil {
		return nil, err
	}

	if s.algorithm == hash.AlgorithmSaltedSHA256 {
		if err := s.validator.Validate(saltedDigest{Hash: in.Hash}); err != nil {
			return nil, goerror.NewInvalidInput(err)
		}
	}

	h, err := s.hasher(ctx, "")
	if err != nil {
		return nil, err
	}

	return &VerifyPasswordOutput{Valid: h.Verify(in.Hash, in.Password)}, nil
}
