package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	LockID   string `validate:"required,lockid"`
	Hash     string `validate:"required,hexdigest"`
	Password string `validate:"max=8"`
}

func TestV10Validator_Validate(t *testing.T) {
	t.Parallel()

	v, err := NewV10Validator()
	require.NoError(t, err)

	validHash := strings.Repeat("ab", 32)

	tests := []struct {
		name    string
		in      sample
		wantErr map[string]string
	}{
		{
			name: "Valid",
			in:   sample{LockID: "front-door_1", Hash: validHash, Password: "123"},
		},
		{
			name: "Required",
			in:   sample{},
			wantErr: map[string]string{
				"lock_id": "LockID is a required field",
				"hash":    "Hash is a required field",
			},
		},
		{
			name: "CustomRules",
			in:   sample{LockID: "bad id!", Hash: strings.ToUpper(validHash), Password: "too long password"},
			wantErr: map[string]string{
				"lock_id":  "LockID must be 1-64 letters, digits, '-' or '_'",
				"hash":     "Hash must be 64 lowercase hexadecimal characters",
				"password": "Password must be a maximum of 8 characters in length",
			},
		},
		{
			name: "ShortHash",
			in:   sample{LockID: "a", Hash: validHash[:63]},
			wantErr: map[string]string{
				"hash": "Hash must be 64 lowercase hexadecimal characters",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := v.Validate(tt.in)

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			var verr V10ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantErr, verr.Values())
			assert.NotEmpty(t, verr.Error())
		})
	}
}

func TestV10Validator_NonStruct(t *testing.T) {
	t.Parallel()

	v, err := NewV10Validator()
	require.NoError(t, err)

	err = v.Validate("not a struct")
	require.Error(t, err)

	var verr V10ValidationError
	assert.False(t, errors.As(err, &verr))
}

func TestToLowerSnake(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":           "",
		"Hash":       "hash",
		"LockID":     "lock_id",
		"HTTPServer": "http_server",
		"Sha256Hex":  "sha256_hex",
		"password":   "password",
	}

	for in, want := range tests {
		assert.Equal(t, want, toLowerSnake(in), in)
	}
}

func TestV10ValidationError_Empty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "validation error", V10ValidationError{}.Error())
}
