package entity

import (
	"strings"
	"time"

	errs "github.com/boostlab/smm-panel/internal/domain/error"
	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
)

// User represents a panel user with a wallet
type User struct {
	ID               uint64
	Username         string
	Email            string
	PasswordHash     string
	balance          int64 // Wallet balance in paise (private)
	IsAdmin          bool
	ReferralCode     string
	ReferredBy       *uint64 // ID of the referring user, if any
	ReferralEarnings int64   // Cumulative commission earned, in paise
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewUser creates a new user with validated credentials
func NewUser(username, email, passwordHash, referralCode string, referredBy *uint64, timeProvider coreport.TimeProvider) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))

	if username == "" || email == "" {
		return nil, errs.ErrValidation
	}
	if passwordHash == "" {
		return nil, errs.ErrValidation
	}
	if referralCode == "" {
		return nil, errs.ErrValidation
	}

	now := timeProvider.Now()
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		balance:      0,
		ReferralCode: referralCode,
		ReferredBy:   referredBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Balance returns the current wallet balance in paise
func (u *User) Balance() int64 {
	return u.balance
}

// FormattedBalance returns the wallet balance as a string with 2 decimal places
func (u *User) FormattedBalance() string {
	return FormatAmount(u.balance)
}

// SetBalance updates the balance directly (for internal use, like repositories)
func (u *User) SetBalance(paise int64) {
	u.balance = paise
}

// CanDeduct checks if the user has enough balance for a deduction
func (u *User) CanDeduct(paise int64) bool {
	return u.balance >= paise
}

// Credit adds the amount to the wallet balance
func (u *User) Credit(paise int64, timeProvider coreport.TimeProvider) {
	u.balance += paise
	u.UpdatedAt = timeProvider.Now()
}

// Debit subtracts the amount from the wallet if sufficient balance exists.
// Returns error on overdraft.
func (u *User) Debit(paise int64, timeProvider coreport.TimeProvider) error {
	if u.balance < paise {
		return errs.NewInsufficientBalanceError(u.ID, FormatAmount(paise), u.FormattedBalance())
	}
	u.balance -= paise
	u.UpdatedAt = timeProvider.Now()
	return nil
}

// AddReferralEarnings bumps the cumulative commission counter
func (u *User) AddReferralEarnings(paise int64) {
	u.ReferralEarnings += paise
}
