package handler

import (
	"net/http"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
	referralUseCase "github.com/boostlab/smm-panel/internal/domain/usecase/referral"
	userUseCase "github.com/boostlab/smm-panel/internal/domain/usecase/user"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/api/dto"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// ReferralHandler handles referral program HTTP requests
type ReferralHandler struct {
	referralEngine *referralUseCase.Engine
	userService    *userUseCase.UseCase
	logger         coreport.Logger
}

// NewReferralHandler creates a new referral handler instance
func NewReferralHandler(
	referralEngine *referralUseCase.Engine,
	userService *userUseCase.UseCase,
	logger coreport.Logger,
) *ReferralHandler {
	return &ReferralHandler{
		referralEngine: referralEngine,
		userService:    userService,
		logger:         logger,
	}
}

// Summary handles the GET /referrals endpoint
func (h *ReferralHandler) Summary(c *gin.Context) {
	user, err := h.userService.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	summary, err := h.referralEngine.GetSummary(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}

	recent := make([]dto.ReferralResponse, 0, len(summary.RecentReferrals))
	for i := range summary.RecentReferrals {
		recent = append(recent, dto.NewReferralResponse(&summary.RecentReferrals[i]))
	}

	c.JSON(http.StatusOK, dto.ReferralSummaryResponse{
		ReferralCode:  summary.ReferralCode,
		ReferredCount: summary.ReferredCount,
		TotalEarnings: entity.FormatAmount(summary.TotalEarnings),
		Recent:        recent,
	})
}

// ListTiers handles the admin GET /admin/referrals/tiers endpoint
func (h *ReferralHandler) ListTiers(c *gin.Context) {
	tiers, err := h.referralEngine.ListTiers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCommissionTierResponses(tiers))
}

// ReplaceTiers handles the admin PUT /admin/referrals/tiers endpoint,
// swapping the whole tier table in one transaction.
func (h *ReferralHandler) ReplaceTiers(c *gin.Context) {
	var req dto.CommissionTiersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	tiers := make([]entity.CommissionTier, 0, len(req.Tiers))
	for _, t := range req.Tiers {
		threshold, err := entity.ParseAmount(t.Threshold)
		if err != nil {
			respondError(c, err)
			return
		}
		commission, err := entity.ParseAmount(t.Commission)
		if err != nil {
			respondError(c, err)
			return
		}
		tiers = append(tiers, entity.CommissionTier{
			Threshold:  threshold,
			Commission: commission,
		})
	}

	if err := h.referralEngine.ReplaceTiers(c.Request.Context(), tiers); err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info("Commission tiers replaced", map[string]any{
		"tiers":   len(tiers),
		"actorId": middleware.UserID(c),
	})
	c.Status(http.StatusNoContent)
}
