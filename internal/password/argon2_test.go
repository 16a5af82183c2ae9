package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Small parameters keep the tests fast.
var testParams = Params{Time: 1, MemKiB: 1024, Par: 1}

func newTestHasher(t *testing.T) *Hasher {
	t.Helper()
	h, err := NewHasher(testParams)
	require.NoError(t, err)
	return h
}

func TestNewHasher_InvalidParams(t *testing.T) {
	for _, p := range []Params{
		{Time: 0, MemKiB: 1024, Par: 1},
		{Time: 1, MemKiB: 0, Par: 1},
		{Time: 1, MemKiB: 1024, Par: 0},
	} {
		_, err := NewHasher(p)
		assert.Error(t, err)
	}
}

func TestHasher_HashAndVerify(t *testing.T) {
	h := newTestHasher(t)

	hash, err := h.Hash("pw1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"))

	ok, err := h.Verify("pw1", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("pw2", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasher_SaltIsRandom(t *testing.T) {
	h := newTestHasher(t)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHasher_EmptyPassword(t *testing.T) {
	h := newTestHasher(t)

	_, err := h.Hash("")
	require.ErrorIs(t, err, ErrEmptyPassword)
}

func TestHasher_VerifyUsesStoredParams(t *testing.T) {
	weak := newTestHasher(t)
	hash, err := weak.Hash("pw1")
	require.NoError(t, err)

	strong, err := NewHasher(Params{Time: 2, MemKiB: 2048, Par: 2})
	require.NoError(t, err)

	ok, err := strong.Verify("pw1", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHasher_VerifyBcrypt(t *testing.T) {
	h := newTestHasher(t)

	legacy, err := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.MinCost)
	require.NoError(t, err)

	ok, err := h.Verify("pw1", string(legacy))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", string(legacy))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasher_VerifyInvalidHash(t *testing.T) {
	h := newTestHasher(t)

	tests := []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=0$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$",
		"$2b$10$short",
	}

	for _, hash := range tests {
		ok, err := h.Verify("pw1", hash)
		assert.ErrorIs(t, err, ErrInvalidHash, hash)
		assert.False(t, ok)
	}
}
