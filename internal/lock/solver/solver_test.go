package solver

import (
	"context"
	"testing"

	"github.com/shandysiswandi/saltlock/internal/pkg/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keepOrder(int, func(i, j int)) {}

func matcher(password string) func(string) bool {
	target := hash.HashPassword(password)
	return func(candidate string) bool { return hash.VerifyPassword(candidate, target) }
}

func triesFor(t *testing.T, st Strategy, c Constraints, password string) int {
	t.Helper()

	for i, candidate := range st.Candidates(c, keepOrder) {
		if candidate == password {
			return i + 1
		}
	}
	t.Fatalf("%s never reaches %s", st.Name, password)
	return 0
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		clues   [][]int
		want    [Digits][]int
		prime   bool
		wantErr bool
	}{
		{
			name:  "NoClues",
			want:  [Digits][]int{allDigits, allDigits, allDigits},
			prime: false,
		},
		{
			name:  "PrimeDistinct",
			clues: [][]int{{-1, -1}},
			want:  [Digits][]int{primes, primes, primes},
			prime: true,
		},
		{
			name:  "Parity",
			clues: [][]int{{1, 0}, {3, 1}},
			want:  [Digits][]int{even, allDigits, odd},
		},
		{
			name:  "FixedReplacesEarlierParity",
			clues: [][]int{{2, 1}, {-1, 4, -1}},
			want:  [Digits][]int{allDigits, {4}, allDigits},
		},
		{
			name:  "ParityAfterFixed",
			clues: [][]int{{-1, 8, -1}, {1, 1}},
			want:  [Digits][]int{odd, {8}, allDigits},
		},
		{
			name:  "PrimeAppliedLast",
			clues: [][]int{{-1, -1}, {3, 1}, {4, -1, -1}},
			want:  [Digits][]int{{}, primes, {3, 5, 7}},
			prime: true,
		},
		{name: "PositionOutOfRange", clues: [][]int{{4, 0}}, wantErr: true},
		{name: "NegativePosition", clues: [][]int{{-1, 0}}, wantErr: true},
		{name: "BadParity", clues: [][]int{{1, 2}}, wantErr: true},
		{name: "BadDigit", clues: [][]int{{1, 10, -1}}, wantErr: true},
		{name: "WrongLength", clues: [][]int{{1}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tt.clues)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidClue)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.prime, got.Prime)
			for i := range tt.want {
				assert.ElementsMatch(t, tt.want[i], got.Allowed[i], "position %d", i)
			}
		})
	}
}

func TestStrategy_Tries(t *testing.T) {
	t.Parallel()

	// Counts per strategy: ascending, swap_five_six, descending,
	// reverse_positions, middle_first, frequency.
	tests := []struct {
		password string
		clues    [][]int
		tries    [6]int
	}{
		{"000", nil, [6]int{1, 1, 1000, 1, 1, 758}},
		{"999", nil, [6]int{1000, 1000, 1, 1000, 1000, 645}},
		{"565", nil, [6]int{566, 657, 435, 566, 656, 192}},
		{"357", [][]int{{-1, -1}}, [6]int{10, 10, 15, 24, 16, 13}},
		{"752", [][]int{{-1, -1}}, [6]int{23, 23, 2, 4, 17, 4}},
		{"523", [][]int{{-1, -1}, {3, 1}}, [6]int{11, 11, 8, 1, 3, 7}},
		{"406", [][]int{{2, 0}, {3, 0}}, [6]int{104, 104, 147, 155, 24, 210}},
		{"183", [][]int{{-1, 8, -1}, {1, 1}}, [6]int{4, 4, 47, 16, 4, 31}},
		{"713", [][]int{{3, 1}, {7, -1, -1}}, [6]int{7, 7, 44, 12, 7, 31}},
		{"123", [][]int{{1, 2, 3}}, [6]int{1, 1, 1, 1, 1, 1}},
	}

	strategies := Strategies()
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			t.Parallel()

			c, err := Parse(tt.clues)
			require.NoError(t, err)

			for i, want := range tt.tries {
				assert.Equal(t, want, triesFor(t, strategies[i], c, tt.password), strategies[i].Name)
			}
		})
	}
}

func TestStrategy_PrimeSkipsRepeatedDigits(t *testing.T) {
	t.Parallel()

	c, err := Parse([][]int{{-1, -1}})
	require.NoError(t, err)

	got := Strategies()[0].Candidates(c, keepOrder)

	assert.Len(t, got, 24)
	assert.Equal(t, "235", got[0])
	assert.NotContains(t, got, "223")
}

func TestStrategy_Shuffled(t *testing.T) {
	t.Parallel()

	c, err := Parse([][]int{{1, 2, -1}})
	require.NoError(t, err)

	var st Strategy
	for _, s := range Strategies() {
		if s.Name == Shuffled {
			st = s
		}
	}

	reversed := st.Candidates(c, func(n int, swap func(i, j int)) {
		for i := 0; i < n/2; i++ {
			swap(i, n-1-i)
		}
	})

	require.Len(t, reversed, 10)
	assert.Equal(t, "129", reversed[0])
	assert.Equal(t, "120", reversed[9])
}

func TestSolver_Solve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		password string
		clues    [][]int
		want     Result
	}{
		{"000", nil, Result{Password: "000", Tries: 1, Strategy: Ascending}},
		{"999", nil, Result{Password: "999", Tries: 1, Strategy: Descending}},
		{"565", nil, Result{Password: "565", Tries: 192, Strategy: Frequency}},
		{"357", [][]int{{-1, -1}}, Result{Password: "357", Tries: 10, Strategy: Ascending}},
		{"752", [][]int{{-1, -1}}, Result{Password: "752", Tries: 2, Strategy: Descending}},
		{"523", [][]int{{-1, -1}, {3, 1}}, Result{Password: "523", Tries: 1, Strategy: ReversePositions}},
		{"406", [][]int{{2, 0}, {3, 0}}, Result{Password: "406", Tries: 24, Strategy: MiddleFirst}},
		{"123", [][]int{{1, 2, 3}}, Result{Password: "123", Tries: 1, Strategy: Ascending}},
	}

	s := New(WithShuffle(keepOrder))
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			t.Parallel()

			c, err := Parse(tt.clues)
			require.NoError(t, err)

			got, err := s.Solve(context.Background(), c, matcher(tt.password))

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSolver_Solve_NoMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		clues    [][]int
	}{
		{name: "ExcludedByClues", password: "357", clues: [][]int{{1, 0}}},
		{name: "RepeatedPrime", password: "222", clues: [][]int{{-1, -1}}},
		{name: "NotThreeDigits", password: "1234"},
		{name: "EmptyPosition", password: "123", clues: [][]int{{-1, -1}, {4, -1, -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := Parse(tt.clues)
			require.NoError(t, err)

			_, err = New().Solve(context.Background(), c, matcher(tt.password))

			require.ErrorIs(t, err, ErrNoMatch)
		})
	}
}

func TestSolver_Solve_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, err := Parse(nil)
	require.NoError(t, err)

	_, err = New().Solve(ctx, c, matcher("999"))

	require.ErrorIs(t, err, context.Canceled)
}
