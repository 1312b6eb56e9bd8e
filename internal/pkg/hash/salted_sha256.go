package hash

import (
	"crypto/subtle"
	"encoding/hex"

	"github.com/shandysiswandi/saltlock/internal/pkg/digest"
)

// HexLength is the length of a hex-encoded SHA-256 digest.
const HexLength = digest.Size * 2

// salt is public and shared by every password. This format offers no
// per-record salt and no stretching; use bcrypt or argon2id for new data.
var salt = [16]byte{
	0xb2, 0x53, 0x22, 0x65, 0x7d, 0xdf, 0xb0, 0xfe,
	0x9c, 0xde, 0xde, 0xfe, 0xf3, 0x1d, 0xdc, 0x3e,
}

// HashPassword returns the lowercase hex SHA-256 digest of salt || password.
func HashPassword(password string) string {
	buf := make([]byte, 0, len(salt)+len(password))
	buf = append(buf, salt[:]...)
	buf = append(buf, password...)

	sum := digest.New().Compute(buf)
	return hex.EncodeToString(sum[:])
}

// VerifyPassword reports whether candidate hashes to exactly stored.
func VerifyPassword(candidate, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(HashPassword(candidate)), []byte(stored)) == 1
}

// SaltedSHA256 implements Hash using HashPassword and VerifyPassword.
type SaltedSHA256 struct{}

// NewSaltedSHA256 returns the fixed-salt SHA-256 hasher.
func NewSaltedSHA256() *SaltedSHA256 {
	return &SaltedSHA256{}
}

// Hash never fails.
func (*SaltedSHA256) Hash(plaintext string) ([]byte, error) {
	return []byte(HashPassword(plaintext)), nil
}

func (*SaltedSHA256) Verify(hashed, plaintext string) bool {
	return VerifyPassword(plaintext, hashed)
}
