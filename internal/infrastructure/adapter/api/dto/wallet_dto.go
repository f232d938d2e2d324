package dto

import (
	"time"

	"github.com/boostlab/smm-panel/internal/domain/entity"
)

// DepositRequest represents the API request for recording a deposit
type DepositRequest struct {
	UserID     uint64 `json:"userId" binding:"required"`
	Amount     string `json:"amount" binding:"required"`
	GatewayRef string `json:"gatewayRef" binding:"required"`
}

// WithdrawalRequest represents the API request for requesting a withdrawal
type WithdrawalRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// ResolveWithdrawalRequest represents the admin API request for settling a
// pending withdrawal
type ResolveWithdrawalRequest struct {
	Approve bool `json:"approve"`
}

// TransactionResponse represents a ledger entry in API responses
type TransactionResponse struct {
	ID            uint64  `json:"id"`
	Reference     string  `json:"reference"`
	Type          string  `json:"type"`
	Amount        string  `json:"amount"`
	Status        string  `json:"status"`
	OrderID       *uint64 `json:"orderId,omitempty"`
	ResultBalance string  `json:"resultBalance"`
	CreatedAt     string  `json:"createdAt"`
}

// ReconcileResponse reports a wallet audit
type ReconcileResponse struct {
	UserID        uint64 `json:"userId"`
	CachedBalance string `json:"cachedBalance"`
	LedgerSum     string `json:"ledgerSum"`
	Drift         string `json:"drift"`
	Consistent    bool   `json:"consistent"`
}

// NewTransactionResponse maps a ledger entry to its API shape
func NewTransactionResponse(transaction *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            transaction.ID,
		Reference:     transaction.Reference,
		Type:          string(transaction.Type),
		Amount:        transaction.FormattedAmount(),
		Status:        string(transaction.Status),
		OrderID:       transaction.OrderID,
		ResultBalance: transaction.FormattedResultBalance(),
		CreatedAt:     transaction.CreatedAt.Format(time.RFC3339),
	}
}

// NewTransactionResponses maps a slice of ledger entries
func NewTransactionResponses(transactions []entity.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, NewTransactionResponse(&transactions[i]))
	}
	return responses
}
