package token

import (
	"context"
	"time"
)

// Claims carries the identity embedded in an access token
type Claims struct {
	UserID  uint64
	IsAdmin bool
}

// Manager issues and verifies signed access tokens
type Manager interface {
	// Issue creates a signed token for the given identity
	Issue(claims Claims) (string, time.Time, error)

	// Verify parses and validates a token string
	//
	// Possible errors:
	// - ErrTokenInvalid: If the token is malformed, tampered or expired
	Verify(tokenString string) (*Claims, error)
}

// Store tracks which issued token is live per user so logout revokes access
// before expiry. A token is only accepted when it matches the stored one.
type Store interface {
	Save(ctx context.Context, userID uint64, tokenString string, ttl time.Duration) error
	IsLive(ctx context.Context, userID uint64, tokenString string) (bool, error)
	Revoke(ctx context.Context, userID uint64) error
}

// PasswordHasher hashes and verifies user passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
