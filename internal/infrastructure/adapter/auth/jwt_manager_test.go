package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/boostlab/smm-panel/internal/domain/error"
	"github.com/boostlab/smm-panel/internal/domain/port/token"
	"github.com/boostlab/smm-panel/internal/testutil"
)

func TestJWTManager(t *testing.T) {
	clock := testutil.NewStubClock()
	manager := NewJWTManager("test-secret", time.Hour, clock)

	t.Run("Issue and verify round trip", func(t *testing.T) {
		signed, expiresAt, err := manager.Issue(token.Claims{UserID: 42, IsAdmin: true})
		require.NoError(t, err)
		assert.Equal(t, clock.Now().Add(time.Hour), expiresAt)

		claims, err := manager.Verify(signed)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), claims.UserID)
		assert.True(t, claims.IsAdmin)
	})

	t.Run("Expired token rejected", func(t *testing.T) {
		past := testutil.NewStubClock()
		issuer := NewJWTManager("test-secret", time.Hour, past)
		signed, _, err := issuer.Issue(token.Claims{UserID: 42})
		require.NoError(t, err)

		later := testutil.NewStubClock()
		later.Advance(2 * time.Hour)
		verifier := NewJWTManager("test-secret", time.Hour, later)

		_, err = verifier.Verify(signed)
		assert.ErrorIs(t, err, errs.ErrTokenInvalid)
	})

	t.Run("Wrong secret rejected", func(t *testing.T) {
		signed, _, err := manager.Issue(token.Claims{UserID: 42})
		require.NoError(t, err)

		other := NewJWTManager("other-secret", time.Hour, clock)
		_, err = other.Verify(signed)
		assert.ErrorIs(t, err, errs.ErrTokenInvalid)
	})

	t.Run("Garbage rejected", func(t *testing.T) {
		_, err := manager.Verify("not.a.token")
		assert.ErrorIs(t, err, errs.ErrTokenInvalid)
	})

	t.Run("Empty secret cannot issue", func(t *testing.T) {
		broken := NewJWTManager("", time.Hour, clock)
		_, _, err := broken.Issue(token.Claims{UserID: 42})
		assert.Error(t, err)
	})
}

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(bcryptMinCostForTests)

	t.Run("Hash verifies against the original password", func(t *testing.T) {
		hash, err := hasher.Hash("secret123")
		require.NoError(t, err)
		assert.NotEqual(t, "secret123", hash)
		assert.NoError(t, hasher.Compare(hash, "secret123"))
	})

	t.Run("Wrong password maps to invalid credentials", func(t *testing.T) {
		hash, err := hasher.Hash("secret123")
		require.NoError(t, err)
		assert.ErrorIs(t, hasher.Compare(hash, "wrong"), errs.ErrInvalidCredentials)
	})

	t.Run("Same password hashes differently", func(t *testing.T) {
		first, err := hasher.Hash("secret123")
		require.NoError(t, err)
		second, err := hasher.Hash("secret123")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
}

// bcryptMinCostForTests keeps the hashing tests fast
const bcryptMinCostForTests = 4
