package hash

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

const (
	// AlgorithmSaltedSHA256 selects the fixed-salt SHA-256 hasher.
	AlgorithmSaltedSHA256 = "salted_sha256"
	// AlgorithmHMACSHA256 selects the keyed HMAC-SHA256 hasher.
	AlgorithmHMACSHA256 = "hmac_sha256"
	// AlgorithmBcrypt selects bcrypt.
	AlgorithmBcrypt = "bcrypt"
	// AlgorithmArgon2id selects Argon2id.
	AlgorithmArgon2id = "argon2id"
)

// ErrUnknownAlgorithm indicates an unsupported hash algorithm.
var ErrUnknownAlgorithm = errors.New("hash: unknown algorithm")

// Options groups configuration for every algorithm; only the fields of the
// selected algorithm are read.
type Options struct {
	HMACSecret     string
	BcryptCost     int
	BcryptPepper   string
	Argon2idPepper string
}

var constructors = map[string]func(Options) Hash{
	AlgorithmSaltedSHA256: func(Options) Hash { return NewSaltedSHA256() },
	AlgorithmHMACSHA256:   func(o Options) Hash { return NewHMACSHA256(o.HMACSecret) },
	AlgorithmBcrypt:       func(o Options) Hash { return NewBcrypt(o.BcryptCost, o.BcryptPepper) },
	AlgorithmArgon2id:     func(o Options) Hash { return NewArgon2id(o.Argon2idPepper) },
}

// New constructs a Hash by algorithm name. An empty name selects
// AlgorithmSaltedSHA256.
func New(algorithm string, opts Options) (Hash, error) {
	algorithm = Normalize(algorithm)

	ctor, ok := constructors[algorithm]
	if !ok {
		return nil, fmt.Errorf("%w: %s (supported: %s)", ErrUnknownAlgorithm, algorithm, strings.Join(Algorithms(), ", "))
	}

	return ctor(opts), nil
}

// Normalize lowercases and trims an algorithm name, mapping empty to
// AlgorithmSaltedSHA256.
func Normalize(algorithm string) string {
	algorithm = strings.ToLower(strings.TrimSpace(algorithm))
	if algorithm == "" {
		return AlgorithmSaltedSHA256
	}
	return algorithm
}

// Algorithms returns the supported algorithm names, sorted.
func Algorithms() []string {
	names := lo.Keys(constructors)
	slices.Sort(names)
	return names
}
