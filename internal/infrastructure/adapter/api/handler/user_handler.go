package handler

import (
	"net/http"
	"time"

	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
	userUseCase "github.com/boostlab/smm-panel/internal/domain/usecase/user"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/api/dto"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// UserHandler handles registration, auth and account HTTP requests
type UserHandler struct {
	userService *userUseCase.UseCase
	logger      coreport.Logger
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(userService *userUseCase.UseCase, logger coreport.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// Register handles the POST /auth/register endpoint
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), userUseCase.RegisterRequest{
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		ReferralCode: req.ReferralCode,
	})
	if err != nil {
		h.logger.Warn("Registration failed", map[string]any{
			"username": req.Username,
			"error":    err.Error(),
		})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// Login handles the POST /auth/login endpoint
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.userService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.Format(time.RFC3339),
		User:      dto.NewUserResponse(result.User),
	})
}

// Logout handles the POST /auth/logout endpoint. The live token is
// revoked so it cannot be replayed before its expiry.
func (h *UserHandler) Logout(c *gin.Context) {
	userID := middleware.UserID(c)
	if err := h.userService.Logout(c.Request.Context(), userID); err != nil {
		h.logger.Error("Logout failed", map[string]any{
			"userId": userID,
			"error":  err.Error(),
		})
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Profile handles the GET /me endpoint
func (h *UserHandler) Profile(c *gin.Context) {
	user, err := h.userService.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// ListUsers handles the admin GET /admin/users endpoint
func (h *UserHandler) ListUsers(c *gin.Context) {
	offset, limit := pageParams(c)
	users, err := h.userService.ListUsers(c.Request.Context(), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, dto.NewUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// SetAdmin handles the admin PUT /admin/users/:userId/admin endpoint
func (h *UserHandler) SetAdmin(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	var req dto.SetAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.userService.SetAdmin(c.Request.Context(), userID, req.IsAdmin); err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info("Admin flag changed", map[string]any{
		"userId":  userID,
		"isAdmin": req.IsAdmin,
		"actorId": middleware.UserID(c),
	})
	c.Status(http.StatusNoContent)
}
