package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	errs "github.com/boostlab/smm-panel/internal/domain/error"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/logger"
	"github.com/boostlab/smm-panel/internal/testutil"
)

type userFixture struct {
	userRepo     *testutil.FakeUserRepo
	referralRepo *testutil.FakeReferralRepo
	tokenStore   *testutil.MemTokenStore
	clock        *testutil.StubClock
	uc           *UseCase
}

func newUserFixture() *userFixture {
	userRepo := testutil.NewFakeUserRepo()
	referralRepo := testutil.NewFakeReferralRepo()
	tokenStore := testutil.NewMemTokenStore()
	clock := testutil.NewStubClock()
	ttl := 24 * time.Hour
	uc := NewUseCase(
		userRepo,
		referralRepo,
		testutil.StubHasher{},
		&testutil.StubTokenManager{Clock: clock, TTL: ttl},
		tokenStore,
		ttl,
		clock,
		logger.NewNoopLogger(),
	)
	return &userFixture{userRepo: userRepo, referralRepo: referralRepo, tokenStore: tokenStore, clock: clock, uc: uc}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates user with hashed password and referral code", func(t *testing.T) {
		f := newUserFixture()

		user, err := f.uc.Register(ctx, RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "secret123",
		})
		require.NoError(t, err)

		assert.NotZero(t, user.ID)
		assert.Equal(t, "hashed:secret123", user.PasswordHash)
		assert.Len(t, user.ReferralCode, 8)
		assert.Nil(t, user.ReferredBy)
		assert.Equal(t, int64(0), user.Balance())
	})

	t.Run("Valid referral code attributes the referrer and records signup", func(t *testing.T) {
		f := newUserFixture()
		referrer, err := f.uc.Register(ctx, RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "secret123"})
		require.NoError(t, err)

		user, err := f.uc.Register(ctx, RegisterRequest{
			Username:     "alice",
			Email:        "alice@example.com",
			Password:     "secret123",
			ReferralCode: referrer.ReferralCode,
		})
		require.NoError(t, err)

		require.NotNil(t, user.ReferredBy)
		assert.Equal(t, referrer.ID, *user.ReferredBy)

		rows := f.referralRepo.Rows()
		require.Len(t, rows, 1)
		assert.Equal(t, entity.ReferralKindSignup, rows[0].Kind)
		assert.Equal(t, referrer.ID, rows[0].ReferrerID)
		assert.Equal(t, user.ID, rows[0].ReferredID)
		assert.Zero(t, rows[0].Commission)
	})

	t.Run("Unknown referral code is ignored, signup succeeds", func(t *testing.T) {
		f := newUserFixture()

		user, err := f.uc.Register(ctx, RegisterRequest{
			Username:     "alice",
			Email:        "alice@example.com",
			Password:     "secret123",
			ReferralCode: "NOPE1234",
		})
		require.NoError(t, err)
		assert.Nil(t, user.ReferredBy)
		assert.Empty(t, f.referralRepo.Rows())
	})

	t.Run("Duplicate username rejected", func(t *testing.T) {
		f := newUserFixture()
		_, err := f.uc.Register(ctx, RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"})
		require.NoError(t, err)

		_, err = f.uc.Register(ctx, RegisterRequest{Username: "alice", Email: "other@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, errs.ErrDuplicateUser)
	})

	t.Run("Short password rejected", func(t *testing.T) {
		f := newUserFixture()
		_, err := f.uc.Register(ctx, RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "abc"})
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T, f *userFixture) *entity.User {
		user, err := f.uc.Register(ctx, RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"})
		require.NoError(t, err)
		return user
	}

	t.Run("Issues token and stores it as the live one", func(t *testing.T) {
		f := newUserFixture()
		user := register(t, f)

		result, err := f.uc.Login(ctx, "alice", "secret123")
		require.NoError(t, err)

		assert.Equal(t, user.ID, result.User.ID)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, f.clock.Now().Add(24*time.Hour), result.ExpiresAt)

		live, ok := f.tokenStore.Live(user.ID)
		require.True(t, ok)
		assert.Equal(t, result.Token, live)
	})

	t.Run("Wrong password", func(t *testing.T) {
		f := newUserFixture()
		register(t, f)

		_, err := f.uc.Login(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("Unknown username maps to invalid credentials", func(t *testing.T) {
		f := newUserFixture()
		_, err := f.uc.Login(ctx, "ghost", "secret123")
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	user, err := f.uc.Register(ctx, RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	result, err := f.uc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)

	require.NoError(t, f.uc.Logout(ctx, user.ID))

	live, err := f.tokenStore.IsLive(ctx, user.ID, result.Token)
	require.NoError(t, err)
	assert.False(t, live)
}

func TestSetAdmin(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	user, err := f.uc.Register(ctx, RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, f.uc.SetAdmin(ctx, user.ID, true))

	stored, err := f.uc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsAdmin)

	assert.ErrorIs(t, f.uc.SetAdmin(ctx, 999, true), errs.ErrUserNotFound)
}
