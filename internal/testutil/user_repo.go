package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	errs "github.com/boostlab/smm-panel/internal/domain/error"
)

// FakeUserRepo is an in-memory UserRepository
type FakeUserRepo struct {
	mu     sync.Mutex
	users  map[uint64]*entity.User
	nextID uint64

	CreateErr error
}

// NewFakeUserRepo creates an empty user store
func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{users: make(map[uint64]*entity.User)}
}

// Seed stores a user directly, assigning an ID when missing
func (r *FakeUserRepo) Seed(user *entity.User) *entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == 0 {
		r.nextID++
		user.ID = r.nextID
	} else if user.ID > r.nextID {
		r.nextID = user.ID
	}
	stored := *user
	r.users[user.ID] = &stored
	return user
}

// GetByID retrieves a user by ID
func (r *FakeUserRepo) GetByID(_ context.Context, id uint64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// GetByUsername retrieves a user by username
func (r *FakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, errs.ErrUserNotFound
}

// GetByReferralCode retrieves a user by referral code
func (r *FakeUserRepo) GetByReferralCode(_ context.Context, code string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ReferralCode == code {
			copied := *user
			return &copied, nil
		}
	}
	return nil, errs.ErrUserNotFound
}

// Create stores a new user, rejecting duplicate usernames and emails
func (r *FakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return errs.ErrDuplicateUser
		}
	}
	r.nextID++
	user.ID = r.nextID
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

// Update persists mutated user fields
func (r *FakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return errs.ErrUserNotFound
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

// AdjustBalance applies a signed delta, failing on overdraft
func (r *FakeUserRepo) AdjustBalance(_ context.Context, userID uint64, delta int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	next := user.Balance() + delta
	if next < 0 {
		return nil, errs.NewInsufficientBalanceError(userID, entity.FormatAmount(-delta), user.FormattedBalance())
	}
	user.SetBalance(next)
	copied := *user
	return &copied, nil
}

// AddReferralEarnings bumps the cumulative commission counter
func (r *FakeUserRepo) AddReferralEarnings(_ context.Context, userID uint64, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return errs.ErrUserNotFound
	}
	user.AddReferralEarnings(delta)
	return nil
}

// SetAdmin grants or revokes the admin flag
func (r *FakeUserRepo) SetAdmin(_ context.Context, userID uint64, isAdmin bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return errs.ErrUserNotFound
	}
	user.IsAdmin = isAdmin
	return nil
}

// List returns users newest first
func (r *FakeUserRepo) List(_ context.Context, offset, limit int) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]entity.User, 0, len(r.users))
	for _, user := range r.users {
		all = append(all, *user)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return page(all, offset, limit), nil
}

// Balance reads a stored user's balance without copying
func (r *FakeUserRepo) Balance(userID uint64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[userID]; ok {
		return user.Balance()
	}
	return 0
}

// page applies offset/limit slicing shared by the list fakes
func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
