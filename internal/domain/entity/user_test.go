package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/boostlab/smm-panel/internal/domain/error"
)

func TestNewUser(t *testing.T) {
	clock := newFixedClock()

	t.Run("Normalizes email and starts with empty wallet", func(t *testing.T) {
		user, err := NewUser("alice", "  Alice@Example.COM ", "hash", "ABCD1234", nil, clock)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, int64(0), user.Balance())
		assert.Equal(t, "0.00", user.FormattedBalance())
	})

	t.Run("Rejects missing fields", func(t *testing.T) {
		_, err := NewUser("", "a@b.com", "hash", "CODE", nil, clock)
		assert.ErrorIs(t, err, errs.ErrValidation)

		_, err = NewUser("alice", "a@b.com", "", "CODE", nil, clock)
		assert.ErrorIs(t, err, errs.ErrValidation)

		_, err = NewUser("alice", "a@b.com", "hash", "", nil, clock)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestUserWallet(t *testing.T) {
	clock := newFixedClock()

	t.Run("Debit fails on overdraft and leaves balance untouched", func(t *testing.T) {
		user, err := NewUser("alice", "a@b.com", "hash", "CODE", nil, clock)
		require.NoError(t, err)
		user.Credit(1000, clock)

		err = user.Debit(1500, clock)
		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		assert.Equal(t, int64(1000), user.Balance())
	})

	t.Run("Debit to exactly zero succeeds", func(t *testing.T) {
		user, err := NewUser("alice", "a@b.com", "hash", "CODE", nil, clock)
		require.NoError(t, err)
		user.Credit(1000, clock)

		assert.True(t, user.CanDeduct(1000))
		require.NoError(t, user.Debit(1000, clock))
		assert.Equal(t, int64(0), user.Balance())
	})
}

func TestNewTransaction(t *testing.T) {
	clock := newFixedClock()

	t.Run("Assigns a unique reference", func(t *testing.T) {
		first, err := NewTransaction(42, TypeDeposit, 1000, StatusCompleted, clock)
		require.NoError(t, err)
		second, err := NewTransaction(42, TypeDeposit, 1000, StatusCompleted, clock)
		require.NoError(t, err)

		assert.NotEmpty(t, first.Reference)
		assert.NotEqual(t, first.Reference, second.Reference)
		assert.True(t, first.IsCredit())
	})

	t.Run("Rejects unknown type", func(t *testing.T) {
		_, err := NewTransaction(42, TransactionType("chargeback"), 1000, StatusCompleted, clock)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("Rejects zero user", func(t *testing.T) {
		_, err := NewTransaction(0, TypeDeposit, 1000, StatusCompleted, clock)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}
