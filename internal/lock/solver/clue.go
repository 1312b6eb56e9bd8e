// Package solver recovers a three digit lock password from a salted hash and a
// set of clues by enumerating the candidates the clues allow.
package solver

import (
	"errors"
	"fmt"
	"slices"
)

// Digits is the length of every solvable password.
const Digits = 3

// ErrInvalidClue is wrapped by Parse for clues it cannot apply.
var ErrInvalidClue = errors.New("invalid clue")

var (
	allDigits = []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	even      = []int{0, 2, 4, 6, 8}
	odd       = []int{1, 3, 5, 7, 9}
	primes    = []int{2, 3, 5, 7}
)

// Constraints are the digits still allowed at each position.
type Constraints struct {
	// Allowed holds the ascending digits permitted at each position.
	Allowed [Digits][]int
	// Prime requires every digit to be prime and all three to differ.
	Prime bool
}

// Parse applies clues in order:
//
//	[-1, -1]         every digit is prime and the digits are distinct
//	[pos, parity]    digit at pos (1-3) is even (0) or odd (1)
//	[d1, d2, d3]     each d that is not -1 fixes that position
//
// A fixed digit replaces whatever an earlier clue allowed at its position.
func Parse(clues [][]int) (Constraints, error) {
	var c Constraints
	for i := range c.Allowed {
		c.Allowed[i] = slices.Clone(allDigits)
	}

	for i, clue := range clues {
		switch {
		case len(clue) == 2 && clue[0] == -1 && clue[1] == -1:
			c.Prime = true

		case len(clue) == 2:
			pos, parity := clue[0], clue[1]
			if pos < 1 || pos > Digits {
				return Constraints{}, fmt.Errorf("%w %d: position %d out of range 1-%d", ErrInvalidClue, i, pos, Digits)
			}
			switch parity {
			case 0:
				c.Allowed[pos-1] = intersect(c.Allowed[pos-1], even)
			case 1:
				c.Allowed[pos-1] = intersect(c.Allowed[pos-1], odd)
			default:
				return Constraints{}, fmt.Errorf("%w %d: parity must be 0 or 1", ErrInvalidClue, i)
			}

		case len(clue) == Digits:
			for pos, d := range clue {
				if d == -1 {
					continue
				}
				if d < 0 || d > 9 {
					return Constraints{}, fmt.Errorf("%w %d: digit %d out of range", ErrInvalidClue, i, d)
				}
				c.Allowed[pos] = []int{d}
			}

		default:
			return Constraints{}, fmt.Errorf("%w %d: want 2 or %d values, got %d", ErrInvalidClue, i, Digits, len(clue))
		}
	}

	if c.Prime {
		for i := range c.Allowed {
			c.Allowed[i] = intersect(c.Allowed[i], primes)
		}
	}

	return c, nil
}

// admits reports whether a full candidate passes the constraints that cannot
// be expressed per position.
func (c Constraints) admits(d [Digits]int) bool {
	if !c.Prime {
		return true
	}
	return d[0] != d[1] && d[0] != d[2] && d[1] != d[2]
}

func intersect(a, b []int) []int {
	out := make([]int, 0, len(a))
	for _, v := range a {
		if slices.Contains(b, v) {
			out = append(out, v)
		}
	}
	return out
}
