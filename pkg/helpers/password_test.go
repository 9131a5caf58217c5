package helpers

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Requirement: hashing is salted, so the same plaintext never hashes the same way twice,
// yet every hash verifies against its plaintext and rejects any other.
func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	tests := []struct {
		name  string
		plain string
		other string
	}{
		{"ascii", "correct horse battery", "correct horse batterY"},
		{"unicode", "pässwörd-ñ-密码", "passwörd-ñ-密码"},
		{"minimum length", "12345678", "1234567"},
		{"trailing space matters", "password1", "password1 "},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			first, err := h.Hash(test.plain)
			require.NoError(t, err)
			second, err := h.Hash(test.plain)
			require.NoError(t, err)

			assert.NotEqual(t, first, second, "hashes must differ")
			assert.NotEqual(t, test.plain, first)

			for _, hash := range []string{first, second} {
				ok, err := h.Verify(test.plain, hash)
				require.NoError(t, err)
				assert.True(t, ok)

				ok, err = h.Verify(test.other, hash)
				require.NoError(t, err)
				assert.False(t, ok)
			}
		})
	}
}

// Requirement: a stored value that is not a bcrypt hash is an error, not a failed match.
func TestPasswordHasher_VerifyMalformedHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	for _, hash := range []string{"", "plaintext", "$2a$04$short"} {
		ok, err := h.Verify("whatever1", hash)
		assert.False(t, ok)
		assert.True(t, errors.Is(err, ErrMalformedHash), "hash %q", hash)
	}
}

// Requirement: passwords over 72 bytes cannot be hashed and never verify.
func TestPasswordHasher_OverByteLimit(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	long := strings.Repeat("é", 40)

	_, err := h.Hash(long)
	assert.True(t, errors.Is(err, bcrypt.ErrPasswordTooLong))

	hash, err := h.Hash("password1")
	require.NoError(t, err)
	ok, err := h.Verify(long, hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

// Requirement: out-of-range costs fall back to bcrypt's default.
func TestNewPasswordHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).Cost)
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(bcrypt.MaxCost+1).Cost)
	assert.Equal(t, bcrypt.MinCost, NewPasswordHasher(bcrypt.MinCost).Cost)
}
