package entity

import (
	"time"

	"github.com/google/uuid"

	errs "github.com/boostlab/smm-panel/internal/domain/error"
	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
)

// TransactionType classifies a ledger entry
type TransactionType string

// Ledger entry types. Amounts are signed: order and withdrawal entries are
// negative, deposit, refund and referral entries are positive.
const (
	TypeDeposit    TransactionType = "deposit"
	TypeOrder      TransactionType = "order"
	TypeRefund     TransactionType = "refund"
	TypeReferral   TransactionType = "referral"
	TypeWithdrawal TransactionType = "withdrawal"
)

// TransactionStatus defines possible status values for a ledger entry
type TransactionStatus string

// TransactionStatus constants
const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

// Transaction is an immutable ledger entry. The ledger is the source of
// truth for wallet balances: the user's cached balance is a projection of
// the sum of their entries.
type Transaction struct {
	ID            uint64
	UserID        uint64
	Reference     string // Unique idempotency reference (uuid)
	Type          TransactionType
	Amount        int64 // Signed amount in paise
	Status        TransactionStatus
	OrderID       *uint64 // Set for order and refund entries
	ExternalRef   string  // Payment-gateway reference for deposits
	ResultBalance int64   // Wallet balance after this entry, in paise
	CreatedAt     time.Time
}

// NewTransaction creates a ledger entry with a fresh reference
func NewTransaction(userID uint64, txType TransactionType, amount int64, status TransactionStatus, timeProvider coreport.TimeProvider) (*Transaction, error) {
	if userID == 0 {
		return nil, errs.ErrUserNotFound
	}
	if !isValidTransactionType(txType) {
		return nil, errs.ErrValidation
	}

	return &Transaction{
		UserID:    userID,
		Reference: uuid.NewString(),
		Type:      txType,
		Amount:    amount,
		Status:    status,
		CreatedAt: timeProvider.Now(),
	}, nil
}

// FormattedAmount returns the signed amount as a 2-decimal string
func (t *Transaction) FormattedAmount() string {
	return FormatAmount(t.Amount)
}

// FormattedResultBalance returns the post-entry balance as a 2-decimal string
func (t *Transaction) FormattedResultBalance() string {
	return FormatAmount(t.ResultBalance)
}

// IsCredit returns true if this entry increased the wallet balance
func (t *Transaction) IsCredit() bool {
	return t.Amount > 0
}

// WithOrder links the entry to an order
func (t *Transaction) WithOrder(orderID uint64) *Transaction {
	t.OrderID = &orderID
	return t
}

// WithExternalRef attaches a payment-gateway reference
func (t *Transaction) WithExternalRef(ref string) *Transaction {
	t.ExternalRef = ref
	return t
}

func isValidTransactionType(txType TransactionType) bool {
	switch txType {
	case TypeDeposit, TypeOrder, TypeRefund, TypeReferral, TypeWithdrawal:
		return true
	}
	return false
}
