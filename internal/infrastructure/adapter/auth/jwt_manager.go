package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	errs "github.com/boostlab/smm-panel/internal/domain/error"
	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
	"github.com/boostlab/smm-panel/internal/domain/port/token"
)

// JWTManager implements token.Manager with HS256-signed tokens
type JWTManager struct {
	secret       []byte
	ttl          time.Duration
	timeProvider coreport.TimeProvider
}

// NewJWTManager creates a JWT token manager
func NewJWTManager(secret string, ttl time.Duration, timeProvider coreport.TimeProvider) *JWTManager {
	return &JWTManager{
		secret:       []byte(secret),
		ttl:          ttl,
		timeProvider: timeProvider,
	}
}

// Issue creates a signed token for the given identity
func (m *JWTManager) Issue(claims token.Claims) (string, time.Time, error) {
	if len(m.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("jwt secret not configured")
	}

	now := m.timeProvider.Now()
	expiresAt := now.Add(m.ttl)

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  claims.UserID,
		"is_admin": claims.IsAdmin,
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
	})

	signed, err := jwtToken.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a token string
func (m *JWTManager) Verify(tokenString string) (*token.Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Method.Alg())
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.timeProvider.Now))
	if err != nil || !parsed.Valid {
		return nil, errs.ErrTokenInvalid
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errs.ErrTokenInvalid
	}

	userID, ok := mapClaims["user_id"].(float64)
	if !ok || userID <= 0 {
		return nil, errs.ErrTokenInvalid
	}
	isAdmin, _ := mapClaims["is_admin"].(bool)

	return &token.Claims{
		UserID:  uint64(userID),
		IsAdmin: isAdmin,
	}, nil
}
