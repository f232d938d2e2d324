package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	errs "github.com/boostlab/smm-panel/internal/domain/error"
)

// FakeLedgerRepo is an in-memory, append-only TransactionRepository
type FakeLedgerRepo struct {
	mu      sync.Mutex
	entries []*entity.Transaction
	nextID  uint64

	CreateErr error
}

// NewFakeLedgerRepo creates an empty ledger
func NewFakeLedgerRepo() *FakeLedgerRepo {
	return &FakeLedgerRepo{}
}

// Create appends a ledger entry, enforcing reference uniqueness
func (r *FakeLedgerRepo) Create(_ context.Context, transaction *entity.Transaction) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.entries {
		if existing.Reference == transaction.Reference {
			return errs.ErrDuplicateTransaction
		}
		if transaction.ExternalRef != "" && existing.ExternalRef == transaction.ExternalRef {
			return errs.ErrDuplicateTransaction
		}
	}
	r.nextID++
	transaction.ID = r.nextID
	stored := *transaction
	r.entries = append(r.entries, &stored)
	return nil
}

// GetByReference retrieves an entry by its unique reference
func (r *FakeLedgerRepo) GetByReference(_ context.Context, reference string) (*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.entries {
		if entry.Reference == reference {
			copied := *entry
			return &copied, nil
		}
	}
	return nil, errs.ErrTransactionNotFound
}

// GetByID retrieves an entry by ID
func (r *FakeLedgerRepo) GetByID(_ context.Context, id uint64) (*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.entries {
		if entry.ID == id {
			copied := *entry
			return &copied, nil
		}
	}
	return nil, errs.ErrTransactionNotFound
}

// UpdateStatus moves an entry to the given status
func (r *FakeLedgerRepo) UpdateStatus(_ context.Context, id uint64, status entity.TransactionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.entries {
		if entry.ID == id {
			entry.Status = status
			return nil
		}
	}
	return errs.ErrTransactionNotFound
}

// ExternalRefExists checks whether a gateway reference was already recorded
func (r *FakeLedgerRepo) ExternalRefExists(_ context.Context, externalRef string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.entries {
		if entry.ExternalRef != "" && entry.ExternalRef == externalRef {
			return true, nil
		}
	}
	return false, nil
}

// ListByUser returns a user's entries, newest first
func (r *FakeLedgerRepo) ListByUser(_ context.Context, userID uint64, offset, limit int) ([]entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]entity.Transaction, 0)
	for _, entry := range r.entries {
		if entry.UserID == userID {
			matched = append(matched, *entry)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	return page(matched, offset, limit), nil
}

// ListByTypeAndStatus returns entries of one type in one status across all
// users, oldest first
func (r *FakeLedgerRepo) ListByTypeAndStatus(_ context.Context, txType entity.TransactionType, status entity.TransactionStatus, offset, limit int) ([]entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]entity.Transaction, 0)
	for _, entry := range r.entries {
		if entry.Type == txType && entry.Status == status {
			matched = append(matched, *entry)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return page(matched, offset, limit), nil
}

// SumByUser sums the signed amounts of all of a user's entries
func (r *FakeLedgerRepo) SumByUser(_ context.Context, userID uint64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum int64
	for _, entry := range r.entries {
		if entry.UserID == userID {
			sum += entry.Amount
		}
	}
	return sum, nil
}

// Entries returns a snapshot of all stored entries in insertion order
func (r *FakeLedgerRepo) Entries() []entity.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Transaction, 0, len(r.entries))
	for _, entry := range r.entries {
		out = append(out, *entry)
	}
	return out
}

// EntriesOfType returns stored entries of one type in insertion order
func (r *FakeLedgerRepo) EntriesOfType(txType entity.TransactionType) []entity.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Transaction, 0)
	for _, entry := range r.entries {
		if entry.Type == txType {
			out = append(out, *entry)
		}
	}
	return out
}
