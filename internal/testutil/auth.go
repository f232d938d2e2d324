package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	errs "github.com/boostlab/smm-panel/internal/domain/error"
	"github.com/boostlab/smm-panel/internal/domain/port/token"
)

// StubHasher is a PasswordHasher with a reversible, inspectable scheme
type StubHasher struct{}

// Hash prefixes the password instead of hashing it
func (StubHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

// Compare checks the prefixed form
func (StubHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errs.ErrInvalidCredentials
	}
	return nil
}

// StubTokenManager issues predictable tokens pinned to a clock
type StubTokenManager struct {
	Clock *StubClock
	TTL   time.Duration

	IssueErr error
}

// Issue returns a deterministic token string and expiry
func (m *StubTokenManager) Issue(claims token.Claims) (string, time.Time, error) {
	if m.IssueErr != nil {
		return "", time.Time{}, m.IssueErr
	}
	return fmt.Sprintf("token-%d", claims.UserID), m.Clock.Now().Add(m.TTL), nil
}

// Verify decodes the deterministic token format
func (m *StubTokenManager) Verify(tokenString string) (*token.Claims, error) {
	var userID uint64
	if _, err := fmt.Sscanf(tokenString, "token-%d", &userID); err != nil || !strings.HasPrefix(tokenString, "token-") {
		return nil, errs.ErrTokenInvalid
	}
	return &token.Claims{UserID: userID}, nil
}

// MemTokenStore is an in-memory single-live-token store
type MemTokenStore struct {
	mu     sync.Mutex
	tokens map[uint64]string
}

// NewMemTokenStore creates an empty token store
func NewMemTokenStore() *MemTokenStore {
	return &MemTokenStore{tokens: make(map[uint64]string)}
}

// Save stores the live token for a user
func (s *MemTokenStore) Save(_ context.Context, userID uint64, tokenString string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[userID] = tokenString
	return nil
}

// IsLive reports whether the token matches the stored one
func (s *MemTokenStore) IsLive(_ context.Context, userID uint64, tokenString string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	live, ok := s.tokens[userID]
	return ok && live == tokenString, nil
}

// Revoke drops the user's live token
func (s *MemTokenStore) Revoke(_ context.Context, userID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, userID)
	return nil
}

// Live returns the stored token for a user, if any
func (s *MemTokenStore) Live(userID uint64) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tokenString, ok := s.tokens[userID]
	return tokenString, ok
}
