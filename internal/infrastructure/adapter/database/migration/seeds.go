package migration

import (
	"context"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	"github.com/boostlab/smm-panel/internal/domain/port/persistence"
)

// SeedCommissionTiers installs the configured tier table when none exists.
// An existing table is left alone so admin edits survive restarts.
func SeedCommissionTiers(ctx context.Context, tierRepo persistence.CommissionTierRepository, tiers []entity.CommissionTier) error {
	existing, err := tierRepo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	if len(tiers) == 0 {
		return nil
	}
	return tierRepo.Replace(ctx, tiers)
}
