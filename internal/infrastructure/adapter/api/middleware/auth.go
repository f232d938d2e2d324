package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainerr "github.com/boostlab/smm-panel/internal/domain/error"
	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
	"github.com/boostlab/smm-panel/internal/domain/port/token"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/api/dto"
)

// Context keys set by the auth middleware
const (
	ContextUserID  = "user_id"
	ContextIsAdmin = "is_admin"
)

// Auth validates the bearer token and checks it is still the user's live
// token, so logout revokes access before expiry. The verified identity is
// stored on the gin context.
func Auth(tokens token.Manager, store token.Store, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header missing")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "Invalid authorization header")
			return
		}
		tokenString := parts[1]

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}

		live, err := store.IsLive(c.Request.Context(), claims.UserID, tokenString)
		if err != nil {
			logger.Error("Token liveness check failed", map[string]any{
				"user_id": claims.UserID,
				"error":   err.Error(),
			})
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInternalServer),
				Message: "Internal server error",
			})
			return
		}
		if !live {
			abortUnauthorized(c, "Token revoked")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextIsAdmin, claims.IsAdmin)
		c.Next()
	}
}

// RequireAdmin rejects requests from non-admin identities. Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrForbidden),
				Message: "Admin access required",
			})
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user id from the gin context
func UserID(c *gin.Context) uint64 {
	id, _ := c.Get(ContextUserID)
	userID, _ := id.(uint64)
	return userID
}

// IsAdmin reports whether the authenticated identity is an admin
func IsAdmin(c *gin.Context) bool {
	v, _ := c.Get(ContextIsAdmin)
	isAdmin, _ := v.(bool)
	return isAdmin
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(domainerr.ErrTokenInvalid),
		Message: message,
	})
}
