package dto

import (
	"time"

	"github.com/boostlab/smm-panel/internal/domain/entity"
)

// ReferralResponse represents a referral row in API responses
type ReferralResponse struct {
	ID            uint64 `json:"id"`
	Kind          string `json:"kind"`
	Commission    string `json:"commission"`
	DepositAmount string `json:"depositAmount"`
	CreatedAt     string `json:"createdAt"`
}

// ReferralSummaryResponse aggregates a user's referral standing
type ReferralSummaryResponse struct {
	ReferralCode  string             `json:"referralCode"`
	ReferredCount int64              `json:"referredCount"`
	TotalEarnings string             `json:"totalEarnings"`
	Recent        []ReferralResponse `json:"recent"`
}

// CommissionTierRequest represents one tier in the admin replace request
type CommissionTierRequest struct {
	Threshold  string `json:"threshold" binding:"required"`
	Commission string `json:"commission" binding:"required"`
}

// CommissionTiersRequest represents the admin API request for replacing the
// tier table
type CommissionTiersRequest struct {
	Tiers []CommissionTierRequest `json:"tiers" binding:"required,dive"`
}

// CommissionTierResponse represents one tier in API responses
type CommissionTierResponse struct {
	Threshold  string `json:"threshold"`
	Commission string `json:"commission"`
}

// NewReferralResponse maps a referral entity to its API shape
func NewReferralResponse(referral *entity.Referral) ReferralResponse {
	return ReferralResponse{
		ID:            referral.ID,
		Kind:          string(referral.Kind),
		Commission:    referral.FormattedCommission(),
		DepositAmount: entity.FormatAmount(referral.DepositAmount),
		CreatedAt:     referral.CreatedAt.Format(time.RFC3339),
	}
}

// NewCommissionTierResponses maps the tier table to its API shape
func NewCommissionTierResponses(tiers []entity.CommissionTier) []CommissionTierResponse {
	responses := make([]CommissionTierResponse, 0, len(tiers))
	for _, tier := range tiers {
		responses = append(responses, CommissionTierResponse{
			Threshold:  entity.FormatAmount(tier.Threshold),
			Commission: entity.FormatAmount(tier.Commission),
		})
	}
	return responses
}
