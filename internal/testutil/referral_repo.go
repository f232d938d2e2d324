package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	errs "github.com/boostlab/smm-panel/internal/domain/error"
)

// FakeReferralRepo is an in-memory ReferralRepository
type FakeReferralRepo struct {
	mu     sync.Mutex
	rows   []*entity.Referral
	nextID uint64

	CreateErr error
}

// NewFakeReferralRepo creates an empty referral store
func NewFakeReferralRepo() *FakeReferralRepo {
	return &FakeReferralRepo{}
}

// Create saves a referral row, enforcing deposit-reference uniqueness
func (r *FakeReferralRepo) Create(_ context.Context, referral *entity.Referral) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if referral.Kind == entity.ReferralKindDeposit {
		for _, existing := range r.rows {
			if existing.Kind == entity.ReferralKindDeposit && existing.DepositReference == referral.DepositReference {
				return errs.ErrDuplicateReferral
			}
		}
	}
	r.nextID++
	referral.ID = r.nextID
	stored := *referral
	r.rows = append(r.rows, &stored)
	return nil
}

// ExistsForDeposit checks whether a commission row exists for a deposit reference
func (r *FakeReferralRepo) ExistsForDeposit(_ context.Context, depositReference string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.Kind == entity.ReferralKindDeposit && row.DepositReference == depositReference {
			return true, nil
		}
	}
	return false, nil
}

// ListByReferrer returns rows credited to a referrer, newest first
func (r *FakeReferralRepo) ListByReferrer(_ context.Context, referrerID uint64, offset, limit int) ([]entity.Referral, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]entity.Referral, 0)
	for _, row := range r.rows {
		if row.ReferrerID == referrerID {
			matched = append(matched, *row)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	return page(matched, offset, limit), nil
}

// CountByReferrer counts distinct users attributed to a referrer
func (r *FakeReferralRepo) CountByReferrer(_ context.Context, referrerID uint64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[uint64]struct{})
	for _, row := range r.rows {
		if row.ReferrerID == referrerID {
			seen[row.ReferredID] = struct{}{}
		}
	}
	return int64(len(seen)), nil
}

// Rows returns a snapshot of all stored referral rows
func (r *FakeReferralRepo) Rows() []entity.Referral {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Referral, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, *row)
	}
	return out
}

// FakeTierRepo is an in-memory CommissionTierRepository
type FakeTierRepo struct {
	mu    sync.Mutex
	tiers []entity.CommissionTier

	ListErr error
}

// NewFakeTierRepo creates a tier store with the given table
func NewFakeTierRepo(tiers ...entity.CommissionTier) *FakeTierRepo {
	return &FakeTierRepo{tiers: tiers}
}

// List returns the tier table
func (r *FakeTierRepo) List(_ context.Context) ([]entity.CommissionTier, error) {
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.CommissionTier, len(r.tiers))
	copy(out, r.tiers)
	return out, nil
}

// Replace swaps the whole tier table
func (r *FakeTierRepo) Replace(_ context.Context, tiers []entity.CommissionTier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tiers = make([]entity.CommissionTier, len(tiers))
	copy(r.tiers, tiers)
	return nil
}
