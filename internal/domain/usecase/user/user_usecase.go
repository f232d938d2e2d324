package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	errs "github.com/boostlab/smm-panel/internal/domain/error"
	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
	"github.com/boostlab/smm-panel/internal/domain/port/persistence"
	"github.com/boostlab/smm-panel/internal/domain/port/token"
)

// UseCase implements registration, authentication and profile operations
type UseCase struct {
	userRepo     persistence.UserRepository
	referralRepo persistence.ReferralRepository
	hasher       token.PasswordHasher
	tokens       token.Manager
	tokenStore   token.Store
	tokenTTL     time.Duration
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewUseCase creates the user use case
func NewUseCase(
	userRepo persistence.UserRepository,
	referralRepo persistence.ReferralRepository,
	hasher token.PasswordHasher,
	tokens token.Manager,
	tokenStore token.Store,
	tokenTTL time.Duration,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *UseCase {
	return &UseCase{
		userRepo:     userRepo,
		referralRepo: referralRepo,
		hasher:       hasher,
		tokens:       tokens,
		tokenStore:   tokenStore,
		tokenTTL:     tokenTTL,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// RegisterRequest carries the registration form
type RegisterRequest struct {
	Username     string
	Email        string
	Password     string
	ReferralCode string // Optional code of the referring user
}

// AuthResult couples a user with an issued token
type AuthResult struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// Register creates a user, attributing the referrer when a valid referral
// code is supplied. Unknown codes are ignored rather than rejected: the
// signup must not fail over a mistyped code.
func (u *UseCase) Register(ctx context.Context, req RegisterRequest) (*entity.User, error) {
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, errs.ErrValidation
	}
	if len(req.Password) < 6 {
		return nil, errs.ErrValidation
	}

	hash, err := u.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	var referredBy *uint64
	if code := strings.TrimSpace(req.ReferralCode); code != "" {
		referrer, err := u.userRepo.GetByReferralCode(ctx, code)
		switch {
		case err == nil:
			referredBy = &referrer.ID
		case errors.Is(err, errs.ErrUserNotFound):
			u.logger.Warn("Unknown referral code at signup", map[string]any{
				"code": code,
			})
		default:
			return nil, err
		}
	}

	user, err := entity.NewUser(req.Username, req.Email, hash, newReferralCode(), referredBy, u.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Record the signup attribution. Commission is only paid on deposits.
	if referredBy != nil {
		referral := &entity.Referral{
			ReferrerID: *referredBy,
			ReferredID: user.ID,
			Kind:       entity.ReferralKindSignup,
			CreatedAt:  u.timeProvider.Now(),
		}
		if err := u.referralRepo.Create(ctx, referral); err != nil {
			u.logger.Error("Failed to record signup referral", map[string]any{
				"user_id":     user.ID,
				"referrer_id": *referredBy,
				"error":       err.Error(),
			})
		}
	}

	u.logger.Info("User registered", map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
		"referred": referredBy != nil,
	})
	return user, nil
}

// Login verifies credentials, issues a token and stores it as the live one
func (u *UseCase) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := u.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := u.hasher.Compare(user.PasswordHash, password); err != nil {
		u.logger.Warn("Failed login attempt", map[string]any{
			"username": username,
		})
		return nil, errs.ErrInvalidCredentials
	}

	tokenString, expiresAt, err := u.tokens.Issue(token.Claims{UserID: user.ID, IsAdmin: user.IsAdmin})
	if err != nil {
		return nil, err
	}

	if err := u.tokenStore.Save(ctx, user.ID, tokenString, u.tokenTTL); err != nil {
		return nil, err
	}

	u.logger.Info("User logged in", map[string]any{
		"user_id": user.ID,
	})
	return &AuthResult{User: user, Token: tokenString, ExpiresAt: expiresAt}, nil
}

// Logout revokes the user's live token
func (u *UseCase) Logout(ctx context.Context, userID uint64) error {
	return u.tokenStore.Revoke(ctx, userID)
}

// GetProfile returns the user's profile including the current balance
func (u *UseCase) GetProfile(ctx context.Context, userID uint64) (*entity.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}

// ListUsers returns users for the admin user list
func (u *UseCase) ListUsers(ctx context.Context, offset, limit int) ([]entity.User, error) {
	return u.userRepo.List(ctx, offset, normalizeLimit(limit))
}

// SetAdmin grants or revokes the admin flag
func (u *UseCase) SetAdmin(ctx context.Context, userID uint64, isAdmin bool) error {
	if err := u.userRepo.SetAdmin(ctx, userID, isAdmin); err != nil {
		return err
	}
	u.logger.Info("Admin flag changed", map[string]any{
		"user_id":  userID,
		"is_admin": isAdmin,
	})
	return nil
}

// newReferralCode derives a short shareable code
func newReferralCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 50
	}
	return limit
}
