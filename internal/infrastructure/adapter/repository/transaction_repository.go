package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	errs "github.com/boostlab/smm-panel/internal/domain/error"
	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/model"
)

// TransactionRepository implements persistence.TransactionRepository using
// GORM. The ledger is append-only: Create and UpdateStatus are the only
// write paths and nothing deletes rows.
type TransactionRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func transactionModelToEntity(m *model.Transaction) *entity.Transaction {
	return &entity.Transaction{
		ID:            m.ID,
		UserID:        m.UserID,
		Reference:     m.Reference,
		Type:          entity.TransactionType(m.Type),
		Amount:        m.Amount,
		Status:        entity.TransactionStatus(m.Status),
		OrderID:       m.OrderID,
		ExternalRef:   m.ExternalRef,
		ResultBalance: m.ResultBalance,
		CreatedAt:     m.CreatedAt,
	}
}

func (r *TransactionRepository) handleDatabaseError(operation string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrTransactionNotFound
	}

	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrDuplicateTransaction
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"error": err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create appends a ledger entry
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	txModel := model.Transaction{
		UserID:        transaction.UserID,
		Reference:     transaction.Reference,
		Type:          string(transaction.Type),
		Status:        string(transaction.Status),
		Amount:        transaction.Amount,
		OrderID:       transaction.OrderID,
		ExternalRef:   transaction.ExternalRef,
		ResultBalance: transaction.ResultBalance,
		CreatedAt:     transaction.CreatedAt,
		UpdatedAt:     transaction.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&txModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating ledger entry", result.Error)
	}
	transaction.ID = txModel.ID

	r.logger.Debug("Ledger entry created", map[string]any{
		"transaction_id": txModel.ID,
		"user_id":        transaction.UserID,
		"type":           transaction.Type,
		"amount":         transaction.FormattedAmount(),
	})
	return nil
}

// GetByReference retrieves an entry by its unique reference
func (r *TransactionRepository) GetByReference(ctx context.Context, reference string) (*entity.Transaction, error) {
	var txModel model.Transaction
	result := r.db.WithContext(ctx).Where("reference = ?", reference).First(&txModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting ledger entry by reference", result.Error)
	}
	return transactionModelToEntity(&txModel), nil
}

// GetByID retrieves an entry by ID
func (r *TransactionRepository) GetByID(ctx context.Context, id uint64) (*entity.Transaction, error) {
	var txModel model.Transaction
	result := r.db.WithContext(ctx).First(&txModel, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting ledger entry", result.Error)
	}
	return transactionModelToEntity(&txModel), nil
}

// UpdateStatus moves a pending entry to completed or failed
func (r *TransactionRepository) UpdateStatus(ctx context.Context, id uint64, status entity.TransactionStatus) error {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": r.timeProvider.Now(),
		})
	if result.Error != nil {
		return r.handleDatabaseError("updating ledger entry status", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrTransactionNotFound
	}
	return nil
}

// ExternalRefExists checks whether a payment-gateway reference was already recorded
func (r *TransactionRepository) ExternalRefExists(ctx context.Context, externalRef string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("external_ref = ?", externalRef).
		Count(&count)
	if result.Error != nil {
		return false, r.handleDatabaseError("checking external reference", result.Error)
	}
	return count > 0, nil
}

// ListByUser returns a user's ledger entries, newest first
func (r *TransactionRepository) ListByUser(ctx context.Context, userID uint64, offset, limit int) ([]entity.Transaction, error) {
	offset, limit = normalizePage(offset, limit, 50, 200)

	var txModels []model.Transaction
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&txModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing ledger entries", result.Error)
	}

	transactions := make([]entity.Transaction, 0, len(txModels))
	for i := range txModels {
		transactions = append(transactions, *transactionModelToEntity(&txModels[i]))
	}
	return transactions, nil
}

// ListByTypeAndStatus returns entries of one type in one status across all
// users, oldest first
func (r *TransactionRepository) ListByTypeAndStatus(ctx context.Context, txType entity.TransactionType, status entity.TransactionStatus, offset, limit int) ([]entity.Transaction, error) {
	offset, limit = normalizePage(offset, limit, 50, 200)

	var txModels []model.Transaction
	result := r.db.WithContext(ctx).
		Where("type = ? AND status = ?", string(txType), string(status)).
		Order("created_at ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&txModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing ledger entries by type and status", result.Error)
	}

	transactions := make([]entity.Transaction, 0, len(txModels))
	for i := range txModels {
		transactions = append(transactions, *transactionModelToEntity(&txModels[i]))
	}
	return transactions, nil
}

// SumByUser sums the signed amounts of all of a user's entries
func (r *TransactionRepository) SumByUser(ctx context.Context, userID uint64) (int64, error) {
	var sum int64
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum)
	if result.Error != nil {
		return 0, r.handleDatabaseError("summing ledger entries", result.Error)
	}
	return sum, nil
}
