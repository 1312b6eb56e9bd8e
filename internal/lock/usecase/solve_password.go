package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/saltlock/internal/lock/solver"
	"github.com/shandysiswandi/saltlock/internal/pkg/goerror"
	"github.com/shandysiswandi/saltlock/internal/pkg/hash"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type (
	SolvePasswordInput struct {
		Hash  string  `validate:"required,hexdigest"`
		Clues [][]int `validate:"max=32"`
	}

	SolvePasswordOutput struct {
		Password string
		Tries    int
		Strategy string
	}
)

// SolvePassword recovers the three digit password behind a salted SHA-256
// hash, narrowing candidates with the given clues.
func (s *Usecase) SolvePassword(ctx context.Context, in SolvePasswordInput) (*SolvePasswordOutput, error) {
	ctx, span := s.startSpan(ctx, "SolvePassword")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	constraints, err := solver.Parse(in.Clues)
	if err != nil {
		return nil, goerror.NewInvalidInput(nil, "clues", err.Error())
	}

	res, err := s.solver.Solve(ctx, constraints, func(candidate string) bool {
		return hash.VerifyPassword(candidate, in.Hash)
	})
	switch {
	case errors.Is(err, solver.ErrNoMatch):
		return nil, goerror.NewBusiness("No password matches the clues", goerror.CodeNotFound)
	case err != nil:
		slog.ErrorContext(ctx, "failed to solve password", "error", err)
		return nil, goerror.NewServer(err)
	}

	if s.solveTries != nil {
		s.solveTries.Record(ctx, int64(res.Tries), metric.WithAttributes(attribute.String("strategy", res.Strategy)))
	}

	slog.InfoContext(ctx, "password solved", "strategy", res.Strategy, "tries", res.Tries)

	return &SolvePasswordOutput{Password: res.Password, Tries: res.Tries, Strategy: res.Strategy}, nil
}
