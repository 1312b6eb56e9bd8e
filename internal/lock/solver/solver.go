package solver

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/shandysiswandi/saltlock/internal/pkg/goroutine"
)

// ErrNoMatch is returned when no admitted candidate matches.
var ErrNoMatch = errors.New("no password matches the clues")

// Result is the best outcome across strategies.
type Result struct {
	Password string
	// Tries counts candidates checked by Strategy up to and including the match.
	Tries    int
	Strategy string
}

// Solver runs every strategy against one target and keeps the cheapest.
type Solver struct {
	strategies []Strategy
	shuffle    func(n int, swap func(i, j int))
}

type Option func(*Solver)

// WithShuffle replaces the permutation used by shuffled strategies.
func WithShuffle(fn func(n int, swap func(i, j int))) Option {
	return func(s *Solver) { s.shuffle = fn }
}

func New(opts ...Option) *Solver {
	s := &Solver{strategies: Strategies(), shuffle: rand.Shuffle}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type outcome struct {
	password string
	tries    int
	found    bool
}

// Solve checks candidates with match until one is accepted. Strategies run
// concurrently; the fewest tries wins and ties go to the earlier strategy.
func (s *Solver) Solve(ctx context.Context, c Constraints, match func(candidate string) bool) (Result, error) {
	outcomes := make([]outcome, len(s.strategies))
	mgr := goroutine.NewManager(len(s.strategies))

	for i, st := range s.strategies {
		if err := mgr.Go(ctx, st.Name, func(ctx context.Context) error {
			o, err := s.run(ctx, st, c, match)
			outcomes[i] = o
			return err
		}); err != nil {
			_ = mgr.Wait()
			return Result{}, err
		}
	}

	if err := mgr.Wait(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	best := -1
	for i, o := range outcomes {
		if o.found && (best < 0 || o.tries < outcomes[best].tries) {
			best = i
		}
	}
	if best < 0 {
		return Result{}, ErrNoMatch
	}

	return Result{
		Password: outcomes[best].password,
		Tries:    outcomes[best].tries,
		Strategy: s.strategies[best].Name,
	}, nil
}

func (s *Solver) run(ctx context.Context, st Strategy, c Constraints, match func(string) bool) (outcome, error) {
	for i, candidate := range st.Candidates(c, s.shuffle) {
		if err := ctx.Err(); err != nil {
			return outcome{}, err
		}
		if match(candidate) {
			return outcome{password: candidate, tries: i + 1, found: true}, nil
		}
	}
	return outcome{}, nil
}
