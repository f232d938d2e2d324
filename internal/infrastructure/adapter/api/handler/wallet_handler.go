package handler

import (
	"net/http"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
	walletUseCase "github.com/boostlab/smm-panel/internal/domain/usecase/wallet"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/api/dto"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// WalletHandler handles deposit, withdrawal and ledger HTTP requests
type WalletHandler struct {
	walletService *walletUseCase.UseCase
	logger        coreport.Logger
}

// NewWalletHandler creates a new wallet handler instance
func NewWalletHandler(walletService *walletUseCase.UseCase, logger coreport.Logger) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		logger:        logger,
	}
}

// RecordDeposit handles the admin POST /admin/deposits endpoint. The
// gateway reference makes retries idempotent: a replayed reference is a
// conflict, not a second credit.
func (h *WalletHandler) RecordDeposit(c *gin.Context) {
	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	transaction, err := h.walletService.RecordDeposit(c.Request.Context(), req.UserID, req.Amount, req.GatewayRef)
	if err != nil {
		h.logger.Warn("Deposit rejected", map[string]any{
			"userId":     req.UserID,
			"gatewayRef": req.GatewayRef,
			"error":      err.Error(),
		})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewTransactionResponse(transaction))
}

// RequestWithdrawal handles the POST /wallet/withdrawals endpoint. The
// amount is held immediately; an admin settles the request later.
func (h *WalletHandler) RequestWithdrawal(c *gin.Context) {
	var req dto.WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	transaction, err := h.walletService.RequestWithdrawal(c.Request.Context(), middleware.UserID(c), req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewTransactionResponse(transaction))
}

// ResolveWithdrawal handles the admin POST /admin/withdrawals/:transactionId/resolve
// endpoint. Rejection refunds the hold through a compensating entry.
func (h *WalletHandler) ResolveWithdrawal(c *gin.Context) {
	transactionID, ok := pathID(c, "transactionId")
	if !ok {
		return
	}

	var req dto.ResolveWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.walletService.ResolveWithdrawal(c.Request.Context(), transactionID, req.Approve); err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info("Withdrawal resolved", map[string]any{
		"transactionId": transactionID,
		"approved":      req.Approve,
		"actorId":       middleware.UserID(c),
	})
	c.Status(http.StatusNoContent)
}

// ListPendingWithdrawals handles the admin GET /admin/withdrawals endpoint,
// the settlement queue feeding ResolveWithdrawal.
func (h *WalletHandler) ListPendingWithdrawals(c *gin.Context) {
	offset, limit := pageParams(c)
	transactions, err := h.walletService.ListPendingWithdrawals(c.Request.Context(), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionResponses(transactions))
}

// ListTransactions handles the GET /wallet/transactions endpoint
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	offset, limit := pageParams(c)
	transactions, err := h.walletService.ListTransactions(c.Request.Context(), middleware.UserID(c), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionResponses(transactions))
}

// Reconcile handles the admin GET /admin/users/:userId/reconcile endpoint,
// comparing the cached balance against the ledger sum.
func (h *WalletHandler) Reconcile(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	report, err := h.walletService.Reconcile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if !report.Consistent() {
		h.logger.Error("Wallet drift detected", map[string]any{
			"userId": userID,
			"drift":  report.Drift,
		})
	}

	c.JSON(http.StatusOK, dto.ReconcileResponse{
		UserID:        report.UserID,
		CachedBalance: entity.FormatAmount(report.CachedBalance),
		LedgerSum:     entity.FormatAmount(report.LedgerSum),
		Drift:         entity.FormatAmount(report.Drift),
		Consistent:    report.Consistent(),
	})
}
