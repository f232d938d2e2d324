package entity

import (
	"sort"
	"time"
)

// ReferralKind classifies how a referral row was earned
type ReferralKind string

// Referral kinds. Signup rows carry no commission; deposit rows do.
const (
	ReferralKindSignup  ReferralKind = "signup"
	ReferralKindDeposit ReferralKind = "deposit"
)

// Referral records a single referral event. DepositReference is the ledger
// reference of the qualifying deposit and acts as the idempotency key: at
// most one deposit-kind row may exist per deposit entry.
type Referral struct {
	ID               uint64
	ReferrerID       uint64
	ReferredID       uint64
	Kind             ReferralKind
	Commission       int64 // Commission in paise
	DepositAmount    int64 // Qualifying deposit amount in paise
	DepositReference string
	Paid             bool
	CreatedAt        time.Time
}

// FormattedCommission returns the commission as a 2-decimal string
func (r *Referral) FormattedCommission() string {
	return FormatAmount(r.Commission)
}

// CommissionTier maps a minimum deposit amount to a flat commission,
// both in paise. Tiers form a step function over the deposit amount.
type CommissionTier struct {
	ID         uint64
	Threshold  int64
	Commission int64
}

// CommissionFor resolves the commission for a deposit amount against a tier
// table: the highest tier whose threshold the deposit reaches wins. Returns
// zero when the deposit qualifies for no tier.
func CommissionFor(tiers []CommissionTier, depositAmount int64) int64 {
	sorted := make([]CommissionTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Threshold < sorted[j].Threshold
	})

	var commission int64
	for _, tier := range sorted {
		if depositAmount >= tier.Threshold {
			commission = tier.Commission
		}
	}
	return commission
}
