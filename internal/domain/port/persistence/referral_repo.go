package persistence

import (
	"context"

	"github.com/boostlab/smm-panel/internal/domain/entity"
)

// ReferralRepository defines methods to interact with referral rows
type ReferralRepository interface {
	// Create saves a referral row
	//
	// Possible errors:
	// - ErrDuplicateReferral: If a deposit-kind row for the same deposit
	//   reference already exists
	Create(ctx context.Context, referral *entity.Referral) error

	// ExistsForDeposit checks whether a commission was already recorded for
	// the given deposit ledger reference
	ExistsForDeposit(ctx context.Context, depositReference string) (bool, error)

	// ListByReferrer returns rows credited to a referrer, newest first
	ListByReferrer(ctx context.Context, referrerID uint64, offset, limit int) ([]entity.Referral, error)

	// CountByReferrer counts users attributed to a referrer
	CountByReferrer(ctx context.Context, referrerID uint64) (int64, error)
}

// CommissionTierRepository manages the configurable commission tier table
type CommissionTierRepository interface {
	List(ctx context.Context) ([]entity.CommissionTier, error)
	// Replace swaps the whole tier table atomically
	Replace(ctx context.Context, tiers []entity.CommissionTier) error
}
