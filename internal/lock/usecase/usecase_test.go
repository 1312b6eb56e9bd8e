package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/saltlock/internal/lock/entity"
	"github.com/shandysiswandi/saltlock/internal/lock/solver"
	"github.com/shandysiswandi/saltlock/internal/pkg/clock"
	"github.com/shandysiswandi/saltlock/internal/pkg/goerror"
	"github.com/shandysiswandi/saltlock/internal/pkg/hash"
	"github.com/shandysiswandi/saltlock/internal/pkg/instrument"
	"github.com/shandysiswandi/saltlock/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

var (
	errStoreDown = errors.New("store down")
	t0           = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

type fakeStore struct {
	locks  map[string]entity.Lock
	getErr error
	setErr error
	delErr error
	// rival is stored by Create just before it runs, as if another
	// writer created the same lock first.
	rival *entity.Lock
}

func newFakeStore() *fakeStore {
	return &fakeStore{locks: map[string]entity.Lock{}}
}

func (f *fakeStore) Get(_ context.Context, id string) (*entity.Lock, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	l, ok := f.locks[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &l, nil
}

func (f *fakeStore) Create(_ context.Context, lock entity.Lock) error {
	if f.setErr != nil {
		return f.setErr
	}
	if f.rival != nil {
		f.locks[f.rival.ID] = *f.rival
	}
	if _, ok := f.locks[lock.ID]; ok {
		return goerror.ErrAlreadyExists
	}
	f.locks[lock.ID] = lock
	return nil
}

func (f *fakeStore) Save(_ context.Context, lock entity.Lock) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.locks[lock.ID] = lock
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	if f.delErr != nil {
		return f.delErr
	}
	if _, ok := f.locks[id]; !ok {
		return goerror.ErrNotFound
	}
	delete(f.locks, id)
	return nil
}

// meteredInstrument records metrics in memory and discards spans.
type meteredInstrument struct {
	mp *sdkmetric.MeterProvider
}

func (m *meteredInstrument) Tracer(name string) trace.Tracer {
	return tracenoop.NewTracerProvider().Tracer(name)
}

func (m *meteredInstrument) Meter(name string) metric.Meter { return m.mp.Meter(name) }

func (m *meteredInstrument) Shutdown(ctx context.Context) error { return m.mp.Shutdown(ctx) }

type fixture struct {
	uc     *Usecase
	store  *fakeStore
	reader *sdkmetric.ManualReader
}

func newFixture(t *testing.T, algorithm string) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	hashers := map[string]hash.Hash{}
	for _, name := range hash.Algorithms() {
		h, err := hash.New(name, hash.Options{HMACSecret: "secret", BcryptCost: 4})
		require.NoError(t, err)
		hashers[name] = h
	}

	reader := sdkmetric.NewManualReader()
	st := newFakeStore()

	uc := New(Dependency{
		Store:             st,
		Validator:         v,
		Hashers:           hashers,
		Algorithm:         algorithm,
		MaxPasswordLength: 16,
		Clock:             clock.Fixed(t0),
		Solver:            solver.New(solver.WithShuffle(func(int, func(i, j int)) {})),
		Instrument:        &meteredInstrument{mp: sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))},
	})

	return &fixture{uc: uc, store: st, reader: reader}
}

func (f *fixture) attempts(t *testing.T) map[string]int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, f.reader.Collect(context.Background(), &rm))

	out := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "lock.verify.attempts" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				v, _ := dp.Attributes.Value(attribute.Key("outcome"))
				out[v.AsString()] = dp.Value
			}
		}
	}
	return out
}

func (f *fixture) solveTriesSum(t *testing.T) int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, f.reader.Collect(context.Background(), &rm))

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "lock.solve.tries" {
				continue
			}
			hist, ok := m.Data.(metricdata.Histogram[int64])
			require.True(t, ok)
			for _, dp := range hist.DataPoints {
				total += dp.Sum
			}
		}
	}
	return total
}

func requireCode(t *testing.T, err error, code goerror.Code) {
	t.Helper()

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, code, gerr.Code())
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	uc := New(Dependency{Instrument: instrument.NewNoop()})

	assert.Equal(t, hash.AlgorithmSaltedSHA256, uc.algorithm)
	assert.Equal(t, DefaultMaxPasswordLength, uc.maxPassword)
}

func TestHashPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		want     string
		wantCode *goerror.Code
	}{
		{name: "Digits", password: "123", want: "003a44b04e2e9eac5eb7597955068e745d78bb18b17a60d26645beebe111de40"},
		{name: "Empty", password: "", want: "b7cb4f7561565cbca6a745625b1f7e918a50d7a5bf9e801c450c3eb68d8ddcc3"},
		{name: "TooLong", password: strings.Repeat("x", 17), wantCode: ptr(goerror.CodeInvalidInput)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Arrange
			f := newFixture(t, "")

			// Act
			out, err := f.uc.HashPassword(context.Background(), HashPasswordInput{Password: tt.password})

			// Assert
			if tt.wantCode != nil {
				requireCode(t, err, *tt.wantCode)
				assert.Nil(t, out)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Hash)
			assert.Equal(t, hash.AlgorithmSaltedSHA256, out.Algorithm)
		})
	}
}

func TestHashPassword_UnknownAlgorithm(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "md5")

	_, err := f.uc.HashPassword(context.Background(), HashPasswordInput{Password: "x"})

	requireCode(t, err, goerror.CodeInternal)
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	stored := hash.HashPassword("123")

	tests := []struct {
		name      string
		algorithm string
		in        VerifyPasswordInput
		want      bool
		wantCode  *goerror.Code
	}{
		{name: "Match", in: VerifyPasswordInput{Password: "123", Hash: stored}, want: true},
		{name: "Mismatch", in: VerifyPasswordInput{Password: "124", Hash: stored}, want: false},
		{name: "MissingHash", in: VerifyPasswordInput{Password: "123"}, wantCode: ptr(goerror.CodeInvalidInput)},
		{name: "UppercaseHash", in: VerifyPasswordInput{Password: "123", Hash: strings.ToUpper(stored)}, wantCode: ptr(goerror.CodeInvalidInput)},
		{name: "ShortHash", in: VerifyPasswordInput{Password: "123", Hash: stored[:10]}, wantCode: ptr(goerror.CodeInvalidInput)},
		{name: "TooLong", in: VerifyPasswordInput{Password: strings.Repeat("x", 17), Hash: stored}, wantCode: ptr(goerror.CodeInvalidInput)},
		{name: "BcryptAcceptsAnyHashShape", algorithm: hash.AlgorithmBcrypt, in: VerifyPasswordInput{Password: "123", Hash: "not-a-bcrypt-hash"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, tt.algorithm)

			out, err := f.uc.VerifyPassword(context.Background(), tt.in)

			if tt.wantCode != nil {
				requireCode(t, err, *tt.wantCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Valid)
		})
	}
}

func TestVerifyPassword_FieldErrors(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")

	_, err := f.uc.VerifyPassword(context.Background(), VerifyPasswordInput{Password: "1", Hash: "zz"})

	var verr validator.V10ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Values(), "hash")
}

func TestSetLock(t *testing.T) {
	t.Parallel()

	t.Run("CreatesLock", func(t *testing.T) {
		t.Parallel()

		// Arrange
		f := newFixture(t, "")

		// Act
		out, err := f.uc.SetLock(context.Background(), SetLockInput{LockID: "front-door", Password: "123"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "front-door", out.LockID)
		assert.Equal(t, hash.HashPassword("123"), out.Hash)

		saved := f.store.locks["front-door"]
		assert.Equal(t, hash.AlgorithmSaltedSHA256, saved.Algorithm)
		assert.Equal(t, t0, saved.CreatedAt)
		assert.Equal(t, t0, saved.UpdatedAt)
	})

	t.Run("PreservesCreatedAt", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "")
		earlier := t0.Add(-24 * time.Hour)
		f.store.locks["door"] = entity.Lock{ID: "door", Hash: "old", CreatedAt: earlier, UpdatedAt: earlier}

		_, err := f.uc.SetLock(context.Background(), SetLockInput{LockID: "door", Password: "new"})
		require.NoError(t, err)

		saved := f.store.locks["door"]
		assert.Equal(t, earlier, saved.CreatedAt)
		assert.Equal(t, t0, saved.UpdatedAt)
		assert.Equal(t, hash.HashPassword("new"), saved.Hash)
	})

	t.Run("LosesCreateRace", func(t *testing.T) {
		t.Parallel()

		// Arrange
		f := newFixture(t, "")
		earlier := t0.Add(-time.Second)
		f.store.rival = &entity.Lock{ID: "gate", Hash: "rival", Algorithm: "salted_sha256", CreatedAt: earlier, UpdatedAt: earlier}

		// Act
		_, err := f.uc.SetLock(context.Background(), SetLockInput{LockID: "gate", Password: "mine"})

		// Assert
		require.NoError(t, err)
		saved := f.store.locks["gate"]
		assert.Equal(t, earlier, saved.CreatedAt)
		assert.Equal(t, t0, saved.UpdatedAt)
		assert.Equal(t, hash.HashPassword("mine"), saved.Hash)
	})

	t.Run("InvalidLockID", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "")

		for _, id := range []string{"", "has space", "slash/y", strings.Repeat("a", 65)} {
			_, err := f.uc.SetLock(context.Background(), SetLockInput{LockID: id, Password: "1"})
			requireCode(t, err, goerror.CodeInvalidInput)
		}
		assert.Empty(t, f.store.locks)
	})

	t.Run("StoreUnavailable", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "")
		f.store.getErr = errStoreDown

		_, err := f.uc.SetLock(context.Background(), SetLockInput{LockID: "door", Password: "1"})

		requireCode(t, err, goerror.CodeUnavailable)
		require.ErrorIs(t, err, errStoreDown)
	})

	t.Run("SaveFails", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "")
		f.store.setErr = errStoreDown

		_, err := f.uc.SetLock(context.Background(), SetLockInput{LockID: "door", Password: "1"})

		requireCode(t, err, goerror.CodeUnavailable)
	})
}

func TestUnlock(t *testing.T) {
	t.Parallel()

	t.Run("Outcomes", func(t *testing.T) {
		t.Parallel()

		// Arrange
		f := newFixture(t, "")
		ctx := context.Background()
		_, err := f.uc.SetLock(ctx, SetLockInput{LockID: "door", Password: "123"})
		require.NoError(t, err)

		// Act
		ok, err := f.uc.Unlock(ctx, UnlockInput{LockID: "door", Password: "123"})
		require.NoError(t, err)
		bad, err := f.uc.Unlock(ctx, UnlockInput{LockID: "door", Password: "321"})
		require.NoError(t, err)
		_, errMissing := f.uc.Unlock(ctx, UnlockInput{LockID: "window", Password: "123"})

		// Assert
		assert.True(t, ok.Unlocked)
		assert.False(t, bad.Unlocked)
		requireCode(t, errMissing, goerror.CodeNotFound)
		assert.Equal(t, map[string]int64{"unlocked": 1, "rejected": 1, "not_found": 1}, f.attempts(t))
	})

	t.Run("UsesStoredAlgorithm", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, hash.AlgorithmHMACSHA256)
		hmacHash, err := f.uc.hashers[hash.AlgorithmHMACSHA256].Hash("pw")
		require.NoError(t, err)
		f.store.locks["legacy"] = entity.Lock{ID: "legacy", Hash: hash.HashPassword("pw"), Algorithm: hash.AlgorithmSaltedSHA256}
		f.store.locks["current"] = entity.Lock{ID: "current", Hash: string(hmacHash), Algorithm: hash.AlgorithmHMACSHA256}

		legacy, err := f.uc.Unlock(context.Background(), UnlockInput{LockID: "legacy", Password: "pw"})
		require.NoError(t, err)
		current, err := f.uc.Unlock(context.Background(), UnlockInput{LockID: "current", Password: "pw"})
		require.NoError(t, err)

		assert.True(t, legacy.Unlocked)
		assert.True(t, current.Unlocked)
	})

	t.Run("UnknownStoredAlgorithm", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "")
		f.store.locks["odd"] = entity.Lock{ID: "odd", Hash: "x", Algorithm: "md5"}

		_, err := f.uc.Unlock(context.Background(), UnlockInput{LockID: "odd", Password: "pw"})

		requireCode(t, err, goerror.CodeInternal)
		assert.Equal(t, map[string]int64{"error": 1}, f.attempts(t))
	})

	t.Run("StoreUnavailable", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "")
		f.store.getErr = errStoreDown

		_, err := f.uc.Unlock(context.Background(), UnlockInput{LockID: "door", Password: "pw"})

		requireCode(t, err, goerror.CodeUnavailable)
	})

	t.Run("Validation", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "")

		_, err := f.uc.Unlock(context.Background(), UnlockInput{LockID: "bad id", Password: "pw"})
		requireCode(t, err, goerror.CodeInvalidInput)

		_, err = f.uc.Unlock(context.Background(), UnlockInput{LockID: "door", Password: strings.Repeat("x", 17)})
		requireCode(t, err, goerror.CodeInvalidInput)

		assert.Empty(t, f.attempts(t))
	})
}

func TestGetLock(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	f.store.locks["door"] = entity.Lock{ID: "door", Hash: "h", Algorithm: "salted_sha256", CreatedAt: t0, UpdatedAt: t0}

	out, err := f.uc.GetLock(context.Background(), GetLockInput{LockID: "door"})
	require.NoError(t, err)
	assert.Equal(t, &GetLockOutput{LockID: "door", Hash: "h", Algorithm: "salted_sha256", CreatedAt: t0, UpdatedAt: t0}, out)

	_, err = f.uc.GetLock(context.Background(), GetLockInput{LockID: "nope"})
	requireCode(t, err, goerror.CodeNotFound)

	f.store.getErr = errStoreDown
	_, err = f.uc.GetLock(context.Background(), GetLockInput{LockID: "door"})
	requireCode(t, err, goerror.CodeUnavailable)
}

func TestDeleteLock(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	f.store.locks["door"] = entity.Lock{ID: "door"}

	require.NoError(t, f.uc.DeleteLock(context.Background(), DeleteLockInput{LockID: "door"}))
	assert.NotContains(t, f.store.locks, "door")

	requireCode(t, f.uc.DeleteLock(context.Background(), DeleteLockInput{LockID: "door"}), goerror.CodeNotFound)
	requireCode(t, f.uc.DeleteLock(context.Background(), DeleteLockInput{LockID: ""}), goerror.CodeInvalidInput)

	f.store.delErr = errStoreDown
	requireCode(t, f.uc.DeleteLock(context.Background(), DeleteLockInput{LockID: "door"}), goerror.CodeUnavailable)
}

func ptr[T any](v T) *T { return &v }

func TestSolvePassword(t *testing.T) {
	t.Parallel()

	t.Run("Solved", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			password string
			clues    [][]int
			want     SolvePasswordOutput
		}{
			{"752", [][]int{{-1, -1}}, SolvePasswordOutput{Password: "752", Tries: 2, Strategy: solver.Descending}},
			{"523", [][]int{{-1, -1}, {3, 1}}, SolvePasswordOutput{Password: "523", Tries: 1, Strategy: solver.ReversePositions}},
			{"406", [][]int{{2, 0}, {3, 0}}, SolvePasswordOutput{Password: "406", Tries: 24, Strategy: solver.MiddleFirst}},
			{"183", [][]int{{-1, 8, -1}, {1, 1}}, SolvePasswordOutput{Password: "183", Tries: 4, Strategy: solver.Ascending}},
		}

		for _, tt := range tests {
			t.Run(tt.password, func(t *testing.T) {
				t.Parallel()

				f := newFixture(t, "")

				out, err := f.uc.SolvePassword(context.Background(), SolvePasswordInput{
					Hash:  hash.HashPassword(tt.password),
					Clues: tt.clues,
				})

				require.NoError(t, err)
				assert.Equal(t, &tt.want, out)
				assert.Equal(t, int64(tt.want.Tries), f.solveTriesSum(t))
			})
		}
	})

	t.Run("NoMatch", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "")

		_, err := f.uc.SolvePassword(context.Background(), SolvePasswordInput{
			Hash:  hash.HashPassword("357"),
			Clues: [][]int{{1, 0}},
		})

		requireCode(t, err, goerror.CodeNotFound)
	})

	t.Run("InvalidClue", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "")

		_, err := f.uc.SolvePassword(context.Background(), SolvePasswordInput{
			Hash:  hash.HashPassword("357"),
			Clues: [][]int{{5, 0}},
		})

		requireCode(t, err, goerror.CodeInvalidInput)
		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Contains(t, gerr.Fields(), "clues")
	})

	t.Run("InvalidHash", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "")

		_, err := f.uc.SolvePassword(context.Background(), SolvePasswordInput{Hash: "ABC"})

		requireCode(t, err, goerror.CodeInvalidInput)
	})
}
