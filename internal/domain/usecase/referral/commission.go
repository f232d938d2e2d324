package referral

import (
	"context"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
	"github.com/boostlab/smm-panel/internal/domain/port/persistence"
)

// Engine pays tiered commissions on qualifying deposits. Tiers live in a
// single configurable table; the step function picks the highest tier the
// deposit reaches.
type Engine struct {
	uow          persistence.UnitOfWork
	tierRepo     persistence.CommissionTierRepository
	referralRepo persistence.ReferralRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.MetricsRecorder
}

// NewEngine creates the commission engine. metrics may be nil in tests.
func NewEngine(
	uow persistence.UnitOfWork,
	tierRepo persistence.CommissionTierRepository,
	referralRepo persistence.ReferralRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.MetricsRecorder,
) *Engine {
	if metrics == nil {
		metrics = coreport.NoopMetrics{}
	}
	return &Engine{
		uow:          uow,
		tierRepo:     tierRepo,
		referralRepo: referralRepo,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
	}
}

// PayDepositCommission credits the referrer for a completed deposit. It must
// run inside the deposit's unit of work (txCtx): the referral row, the
// referral ledger entry and the referrer's wallet credit commit together
// with the deposit itself.
//
// The deposit's ledger reference is the idempotency key; a second call for
// the same deposit is a no-op.
func (e *Engine) PayDepositCommission(txCtx context.Context, depositor *entity.User, deposit *entity.Transaction) error {
	if depositor.ReferredBy == nil {
		return nil
	}

	exists, err := e.uow.Referrals(txCtx).ExistsForDeposit(txCtx, deposit.Reference)
	if err != nil {
		return err
	}
	if exists {
		e.logger.Warn("Commission already recorded for deposit", map[string]any{
			"deposit_reference": deposit.Reference,
			"user_id":           depositor.ID,
		})
		return nil
	}

	tiers, err := e.tierRepo.List(txCtx)
	if err != nil {
		return err
	}

	commission := entity.CommissionFor(tiers, deposit.Amount)
	if commission <= 0 {
		return nil
	}

	referrerID := *depositor.ReferredBy

	referral := &entity.Referral{
		ReferrerID:       referrerID,
		ReferredID:       depositor.ID,
		Kind:             entity.ReferralKindDeposit,
		Commission:       commission,
		DepositAmount:    deposit.Amount,
		DepositReference: deposit.Reference,
		Paid:             true,
		CreatedAt:        e.timeProvider.Now(),
	}
	if err := e.uow.Referrals(txCtx).Create(txCtx, referral); err != nil {
		return err
	}

	referrer, err := e.uow.Users(txCtx).AdjustBalance(txCtx, referrerID, commission)
	if err != nil {
		return err
	}
	if err := e.uow.Users(txCtx).AddReferralEarnings(txCtx, referrerID, commission); err != nil {
		return err
	}

	credit, err := entity.NewTransaction(referrerID, entity.TypeReferral, commission, entity.StatusCompleted, e.timeProvider)
	if err != nil {
		return err
	}
	credit.ResultBalance = referrer.Balance()
	if err := e.uow.Ledger(txCtx).Create(txCtx, credit); err != nil {
		return err
	}

	e.logger.Info("Referral commission paid", map[string]any{
		"referrer_id":       referrerID,
		"referred_id":       depositor.ID,
		"commission":        entity.FormatAmount(commission),
		"deposit":           deposit.FormattedAmount(),
		"deposit_reference": deposit.Reference,
	})
	e.metrics.CommissionPaid()
	return nil
}

// Summary aggregates a user's referral standing
type Summary struct {
	ReferralCode    string
	ReferredCount   int64
	TotalEarnings   int64
	RecentReferrals []entity.Referral
}

// GetSummary returns a user's referral code, attributed-user count,
// cumulative earnings and recent rows
func (e *Engine) GetSummary(ctx context.Context, user *entity.User) (*Summary, error) {
	count, err := e.referralRepo.CountByReferrer(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	recent, err := e.referralRepo.ListByReferrer(ctx, user.ID, 0, 20)
	if err != nil {
		return nil, err
	}

	return &Summary{
		ReferralCode:    user.ReferralCode,
		ReferredCount:   count,
		TotalEarnings:   user.ReferralEarnings,
		RecentReferrals: recent,
	}, nil
}

// ListTiers returns the configurable commission tier table
func (e *Engine) ListTiers(ctx context.Context) ([]entity.CommissionTier, error) {
	return e.tierRepo.List(ctx)
}

// ReplaceTiers swaps the commission tier table (admin operation)
func (e *Engine) ReplaceTiers(ctx context.Context, tiers []entity.CommissionTier) error {
	if err := e.tierRepo.Replace(ctx, tiers); err != nil {
		return err
	}
	e.logger.Info("Commission tiers replaced", map[string]any{
		"tier_count": len(tiers),
	})
	return nil
}
