package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shandysiswandi/saltlock/internal/lock/entity"
	"github.com/shandysiswandi/saltlock/internal/lock/solver"
	"github.com/shandysiswandi/saltlock/internal/pkg/clock"
	"github.com/shandysiswandi/saltlock/internal/pkg/goerror"
	"github.com/shandysiswandi/saltlock/internal/pkg/hash"
	"github.com/shandysiswandi/saltlock/internal/pkg/instrument"
	"github.com/shandysiswandi/saltlock/internal/pkg/validator"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// DefaultMaxPasswordLength bounds password size in bytes when none is configured.
const DefaultMaxPasswordLength = 1024

type store interface {
	Get(ctx context.Context, id string) (*entity.Lock, error)
	Create(ctx context.Context, lock entity.Lock) error
	Save(ctx context.Context, lock entity.Lock) error
	Delete(ctx context.Context, id string) error
}

type Usecase struct {
	store        store
	validator    validator.Validator
	hashers      map[string]hash.Hash
	algorithm    string
	maxPassword  int
	clock        clock.Clocker
	solver       *solver.Solver
	ins          instrument.Instrumentation
	verifyCounts metric.Int64Counter
	solveTries   metric.Int64Histogram
}

type Dependency struct {
	Store     store
	Validator validator.Validator
	// Hashers maps algorithm names to implementations. Locks stored under an
	// algorithm are verified with the matching hasher even after Algorithm changes.
	Hashers map[string]hash.Hash
	// Algorithm names the hasher used for new hashes.
	Algorithm         string
	MaxPasswordLength int
	Clock             clock.Clocker
	// Solver is optional; nil uses solver.New().
	Solver     *solver.Solver
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	algorithm := dep.Algorithm
	if algorithm == "" {
		algorithm = hash.AlgorithmSaltedSHA256
	}

	maxPassword := dep.MaxPasswordLength
	if maxPassword <= 0 {
		maxPassword = DefaultMaxPasswordLength
	}

	uc := &Usecase{
		store:       dep.Store,
		validator:   dep.Validator,
		hashers:     dep.Hashers,
		algorithm:   algorithm,
		maxPassword: maxPassword,
		clock:       dep.Clock,
		solver:      dep.Solver,
		ins:         dep.Instrument,
	}
	if uc.solver == nil {
		uc.solver = solver.New()
	}

	meter := dep.Instrument.Meter("lock.usecase")

	counter, err := meter.Int64Counter(
		"lock.verify.attempts",
		metric.WithDescription("Number of unlock attempts by outcome"),
	)
	if err != nil {
		slog.Error("failed to create lock verify counter", "error", err)
	}
	uc.verifyCounts = counter

	tries, err := meter.Int64Histogram(
		"lock.solve.tries",
		metric.WithDescription("Candidates checked by the winning solve strategy"),
	)
	if err != nil {
		slog.Error("failed to create lock solve histogram", "error", err)
	}
	uc.solveTries = tries

	return uc
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("lock.usecase").Start(ctx, name)
}

func (s *Usecase) countAttempt(ctx context.Context, outcome entity.Outcome) {
	if s.verifyCounts == nil {
		return
	}
	s.verifyCounts.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome.String())))
}

// hasher returns the hasher for algorithm, or for the configured default
// when algorithm is empty.
func (s *Usecase) hasher(ctx context.Context, algorithm string) (hash.Hash, error) {
	if algorithm == "" {
		algorithm = s.algorithm
	}

	h, ok := s.hashers[algorithm]
	if !ok {
		slog.ErrorContext(ctx, "no hasher configured for algorithm", "algorithm", algorithm)
		return nil, goerror.NewServer(hash.ErrUnknownAlgorithm)
	}
	return h, nil
}

func (s *Usecase) checkPasswordLength(password string) error {
	if len(password) > s.maxPassword {
		return goerror.NewInvalidInput(nil, "password", fmt.Sprintf("password must be at most %d bytes", s.maxPassword))
	}
	return nil
}
