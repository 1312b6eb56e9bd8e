package hash

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var errArgon2idFormat = errors.New("hash: malformed argon2id hash")

type argon2idParams struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
}

// Argon2id implements Hash using Argon2id in the PHC string format
// ($argon2id$v=19$m=...,t=...,p=...$salt$key).
type Argon2id struct {
	params     argon2idParams
	saltLength uint32
	keyLength  uint32
	pepper     string
}

// NewArgon2id returns an Argon2id hasher with recommended defaults.
func NewArgon2id(pepper string) *Argon2id {
	return &Argon2id{
		params: argon2idParams{
			memory:      32 * 1024, // KiB
			iterations:  3,
			parallelism: 2,
		},
		saltLength: 16,
		keyLength:  32,
		pepper:     pepper,
	}
}

func (a *Argon2id) Hash(plaintext string) ([]byte, error) {
	salt := make([]byte, a.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key := a.key(plaintext, salt, a.params, a.keyLength)

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		a.params.memory,
		a.params.iterations,
		a.params.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return []byte(encoded), nil
}

// Verify recomputes the key with the parameters embedded in hashed.
func (a *Argon2id) Verify(hashed, plaintext string) bool {
	params, salt, want, err := decodeArgon2id(hashed)
	if err != nil {
		return false
	}

	got := a.key(plaintext, salt, params, uint32(len(want)))
	return subtle.ConstantTimeCompare(want, got) == 1
}

func (a *Argon2id) key(plaintext string, salt []byte, p argon2idParams, keyLen uint32) []byte {
	return argon2.IDKey([]byte(plaintext+a.pepper), salt, p.iterations, p.memory, p.parallelism, keyLen)
}

func decodeArgon2id(encoded string) (argon2idParams, []byte, []byte, error) {
	var p argon2idParams

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return p, nil, nil, errArgon2idFormat
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, errArgon2idFormat
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &p.parallelism); err != nil {
		return p, nil, nil, errArgon2idFormat
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, errArgon2idFormat
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, errArgon2idFormat
	}

	return p, salt, key, nil
}
