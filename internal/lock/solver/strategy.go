package solver

import (
	"slices"
	"strconv"
)

// Strategy orders the candidates admitted by a set of constraints.
type Strategy struct {
	Name string
	// positions is the nesting order of the enumeration, outermost first.
	positions [Digits]int
	// order arranges the allowed digits of one position.
	order func(pos int, allowed []int) []int
	// shuffled permutes the whole candidate list after enumeration.
	shuffled bool
}

// Strategy names.
const (
	Ascending        = "ascending"
	SwapFiveSix      = "swap_five_six"
	Descending       = "descending"
	ReversePositions = "reverse_positions"
	MiddleFirst      = "middle_first"
	Frequency        = "frequency"
	Shuffled         = "shuffled"
)

// digitFrequency is the observed share of each digit per position across a
// sample of real lock passwords.
var digitFrequency = [Digits]map[int]float64{
	{1: 0.09, 2: 0.09, 3: 0.11, 4: 0.05, 5: 0.12, 7: 0.19, 8: 0.10, 9: 0.09, 0: 0.07, 6: 0.04},
	{3: 0.19, 5: 0.16, 7: 0.16, 2: 0.09, 9: 0.08, 0: 0.07, 1: 0.07, 4: 0.06, 8: 0.06, 6: 0.03},
	{3: 0.22, 5: 0.17, 7: 0.15, 2: 0.10, 9: 0.07, 1: 0.06, 8: 0.06, 0: 0.05, 4: 0.04, 6: 0.03},
}

const unseenFrequency = 0.01

func ascending(_ int, allowed []int) []int { return slices.Clone(allowed) }

func descending(_ int, allowed []int) []int {
	out := slices.Clone(allowed)
	slices.Reverse(out)
	return out
}

func swapFiveSix(_ int, allowed []int) []int {
	out := slices.Clone(allowed)
	i, j := slices.Index(out, 5), slices.Index(out, 6)
	if i >= 0 && j >= 0 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func byFrequency(pos int, allowed []int) []int {
	out := slices.Clone(allowed)
	slices.SortStableFunc(out, func(a, b int) int {
		fa, fb := frequency(pos, a), frequency(pos, b)
		switch {
		case fa > fb:
			return -1
		case fa < fb:
			return 1
		default:
			return 0
		}
	})
	return out
}

func frequency(pos, digit int) float64 {
	if f, ok := digitFrequency[pos][digit]; ok {
		return f
	}
	return unseenFrequency
}

// Strategies returns every strategy in tie-break order.
func Strategies() []Strategy {
	natural := [Digits]int{0, 1, 2}
	return []Strategy{
		{Name: Ascending, positions: natural, order: ascending},
		{Name: SwapFiveSix, positions: natural, order: swapFiveSix},
		{Name: Descending, positions: natural, order: descending},
		{Name: ReversePositions, positions: [Digits]int{2, 1, 0}, order: ascending},
		{Name: MiddleFirst, positions: [Digits]int{1, 0, 2}, order: ascending},
		{Name: Frequency, positions: natural, order: byFrequency},
		{Name: Shuffled, positions: natural, order: ascending, shuffled: true},
	}
}

// Candidates lists, in try order, every password the constraints admit.
// shuffle is only used by shuffled strategies.
func (s Strategy) Candidates(c Constraints, shuffle func(n int, swap func(i, j int))) []string {
	var orders [Digits][]int
	for i, pos := range s.positions {
		orders[i] = s.order(pos, c.Allowed[pos])
	}

	var out []string
	for _, d0 := range orders[0] {
		for _, d1 := range orders[1] {
			for _, d2 := range orders[2] {
				var digits [Digits]int
				digits[s.positions[0]] = d0
				digits[s.positions[1]] = d1
				digits[s.positions[2]] = d2

				if c.admits(digits) {
					out = append(out, format(digits))
				}
			}
		}
	}

	if s.shuffled && shuffle != nil {
		shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	}

	return out
}

func format(d [Digits]int) string {
	b := make([]byte, 0, Digits)
	for _, v := range d {
		b = strconv.AppendInt(b, int64(v), 10)
	}
	return string(b)
}
