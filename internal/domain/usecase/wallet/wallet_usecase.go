package wallet

import (
	"context"
	"strings"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	errs "github.com/boostlab/smm-panel/internal/domain/error"
	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
	"github.com/boostlab/smm-panel/internal/domain/port/persistence"
	"github.com/boostlab/smm-panel/internal/domain/usecase/referral"
)

// UseCase implements deposits, withdrawals, ledger listing and
// reconciliation. Every wallet mutation pairs the balance adjustment with a
// ledger insert in one unit of work.
type UseCase struct {
	uow             persistence.UnitOfWork
	transactionRepo persistence.TransactionRepository
	userRepo        persistence.UserRepository
	commissions     *referral.Engine
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	metrics         coreport.MetricsRecorder
}

// NewUseCase creates the wallet use case. metrics may be nil in tests.
func NewUseCase(
	uow persistence.UnitOfWork,
	transactionRepo persistence.TransactionRepository,
	userRepo persistence.UserRepository,
	commissions *referral.Engine,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.MetricsRecorder,
) *UseCase {
	if metrics == nil {
		metrics = coreport.NoopMetrics{}
	}
	return &UseCase{
		uow:             uow,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		commissions:     commissions,
		timeProvider:    timeProvider,
		logger:          logger,
		metrics:         metrics,
	}
}

// RecordDeposit credits a wallet for an externally-settled payment and pays
// any referral commission in the same transaction. The gateway reference
// keeps recording idempotent: a reference seen before fails with
// ErrDuplicateTransaction and moves no money.
func (u *UseCase) RecordDeposit(ctx context.Context, userID uint64, amount string, gatewayRef string) (*entity.Transaction, error) {
	paise, err := entity.ParseAmount(amount)
	if err != nil {
		return nil, err
	}
	if paise == 0 {
		return nil, errs.ErrInvalidAmount
	}

	gatewayRef = strings.TrimSpace(gatewayRef)
	if gatewayRef != "" {
		seen, err := u.transactionRepo.ExternalRefExists(ctx, gatewayRef)
		if err != nil {
			return nil, err
		}
		if seen {
			return nil, errs.ErrDuplicateTransaction
		}
	}

	txCtx, err := u.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = u.uow.Rollback(txCtx)
	}()

	user, err := u.uow.Users(txCtx).AdjustBalance(txCtx, userID, paise)
	if err != nil {
		return nil, err
	}

	deposit, err := entity.NewTransaction(userID, entity.TypeDeposit, paise, entity.StatusCompleted, u.timeProvider)
	if err != nil {
		return nil, err
	}
	deposit.WithExternalRef(gatewayRef)
	deposit.ResultBalance = user.Balance()

	if err := u.uow.Ledger(txCtx).Create(txCtx, deposit); err != nil {
		return nil, err
	}

	// Commission rides in the same unit of work so a failed payout rolls
	// the deposit back too, keeping the ledger consistent.
	if err := u.commissions.PayDepositCommission(txCtx, user, deposit); err != nil {
		return nil, err
	}

	if err := u.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	u.logger.Info("Deposit recorded", map[string]any{
		"user_id":     userID,
		"amount":      deposit.FormattedAmount(),
		"gateway_ref": gatewayRef,
		"new_balance": user.FormattedBalance(),
	})
	u.metrics.DepositRecorded()
	return deposit, nil
}

// RequestWithdrawal debits the wallet and opens a pending withdrawal entry
func (u *UseCase) RequestWithdrawal(ctx context.Context, userID uint64, amount string) (*entity.Transaction, error) {
	paise, err := entity.ParseAmount(amount)
	if err != nil {
		return nil, err
	}
	if paise == 0 {
		return nil, errs.ErrInvalidAmount
	}

	txCtx, err := u.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = u.uow.Rollback(txCtx)
	}()

	user, err := u.uow.Users(txCtx).AdjustBalance(txCtx, userID, -paise)
	if err != nil {
		return nil, err
	}

	withdrawal, err := entity.NewTransaction(userID, entity.TypeWithdrawal, -paise, entity.StatusPending, u.timeProvider)
	if err != nil {
		return nil, err
	}
	withdrawal.ResultBalance = user.Balance()

	if err := u.uow.Ledger(txCtx).Create(txCtx, withdrawal); err != nil {
		return nil, err
	}

	if err := u.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	u.logger.Info("Withdrawal requested", map[string]any{
		"user_id": userID,
		"amount":  entity.FormatAmount(paise),
	})
	return withdrawal, nil
}

// ResolveWithdrawal completes or rejects a pending withdrawal. Rejection
// credits the held amount back with a compensating refund entry; the
// original withdrawal row is marked failed, never rewritten.
func (u *UseCase) ResolveWithdrawal(ctx context.Context, transactionID uint64, approve bool) error {
	txCtx, err := u.uow.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = u.uow.Rollback(txCtx)
	}()

	withdrawal, err := u.uow.Ledger(txCtx).GetByID(txCtx, transactionID)
	if err != nil {
		return err
	}
	if withdrawal.Type != entity.TypeWithdrawal {
		return errs.ErrTransactionNotFound
	}
	if withdrawal.Status != entity.StatusPending {
		return errs.ErrWithdrawalResolved
	}

	if approve {
		if err := u.uow.Ledger(txCtx).UpdateStatus(txCtx, withdrawal.ID, entity.StatusCompleted); err != nil {
			return err
		}
	} else {
		if err := u.uow.Ledger(txCtx).UpdateStatus(txCtx, withdrawal.ID, entity.StatusFailed); err != nil {
			return err
		}

		held := -withdrawal.Amount
		user, err := u.uow.Users(txCtx).AdjustBalance(txCtx, withdrawal.UserID, held)
		if err != nil {
			return err
		}

		refund, err := entity.NewTransaction(withdrawal.UserID, entity.TypeRefund, held, entity.StatusCompleted, u.timeProvider)
		if err != nil {
			return err
		}
		refund.ResultBalance = user.Balance()
		if err := u.uow.Ledger(txCtx).Create(txCtx, refund); err != nil {
			return err
		}
	}

	if err := u.uow.Commit(txCtx); err != nil {
		return err
	}

	u.logger.Info("Withdrawal resolved", map[string]any{
		"transaction_id": transactionID,
		"approved":       approve,
	})
	return nil
}

// ListTransactions returns a user's ledger, newest first
func (u *UseCase) ListTransactions(ctx context.Context, userID uint64, offset, limit int) ([]entity.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return u.transactionRepo.ListByUser(ctx, userID, offset, limit)
}

// ListPendingWithdrawals returns unsettled withdrawal holds across all
// users, oldest first. This is how admins discover what needs resolving.
func (u *UseCase) ListPendingWithdrawals(ctx context.Context, offset, limit int) ([]entity.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return u.transactionRepo.ListByTypeAndStatus(ctx, entity.TypeWithdrawal, entity.StatusPending, offset, limit)
}

// ReconcileReport compares the cached balance to the ledger sum
type ReconcileReport struct {
	UserID        uint64
	CachedBalance int64
	LedgerSum     int64
	Drift         int64
}

// Consistent reports whether the cached balance matches the ledger
func (r *ReconcileReport) Consistent() bool {
	return r.Drift == 0
}

// Reconcile audits one user's wallet. Any drift is a data-integrity bug,
// not an expected state.
func (u *UseCase) Reconcile(ctx context.Context, userID uint64) (*ReconcileReport, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	sum, err := u.transactionRepo.SumByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	report := &ReconcileReport{
		UserID:        userID,
		CachedBalance: user.Balance(),
		LedgerSum:     sum,
		Drift:         user.Balance() - sum,
	}

	if !report.Consistent() {
		u.logger.Error("Wallet drift detected", map[string]any{
			"user_id":        userID,
			"cached_balance": entity.FormatAmount(report.CachedBalance),
			"ledger_sum":     entity.FormatAmount(report.LedgerSum),
			"drift":          entity.FormatAmount(report.Drift),
		})
	}
	return report, nil
}
