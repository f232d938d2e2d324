package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	errs "github.com/boostlab/smm-panel/internal/domain/error"
	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/model"
)

// UserRepository implements persistence.UserRepository using GORM
type UserRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func userModelToEntity(m *model.User) *entity.User {
	user := &entity.User{
		ID:               m.ID,
		Username:         m.Username,
		Email:            m.Email,
		PasswordHash:     m.PasswordHash,
		IsAdmin:          m.IsAdmin,
		ReferralCode:     m.ReferralCode,
		ReferredBy:       m.ReferredBy,
		ReferralEarnings: m.ReferralEarnings,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	user.SetBalance(m.Balance)
	return user
}

func userEntityToModel(user *entity.User) *model.User {
	return &model.User{
		ID:               user.ID,
		Username:         user.Username,
		Email:            user.Email,
		PasswordHash:     user.PasswordHash,
		IsAdmin:          user.IsAdmin,
		Balance:          user.Balance(),
		ReferralCode:     user.ReferralCode,
		ReferredBy:       user.ReferredBy,
		ReferralEarnings: user.ReferralEarnings,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error, userID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrUserNotFound
	}

	if r.errorClassifier.IsDuplicateKeyError(err) {
		r.logger.Warn("Duplicate user operation", map[string]any{
			"user_id": userID,
		})
		return errs.ErrDuplicateUser
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).First(&userModel, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user", result.Error, id)
	}
	return userModelToEntity(&userModel), nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).Where("username = ?", username).First(&userModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user by username", result.Error, 0)
	}
	return userModelToEntity(&userModel), nil
}

// GetByReferralCode retrieves a user by their referral code
func (r *UserRepository) GetByReferralCode(ctx context.Context, code string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).Where("referral_code = ?", code).First(&userModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user by referral code", result.Error, 0)
	}
	return userModelToEntity(&userModel), nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := userEntityToModel(user)
	result := r.db.WithContext(ctx).Create(userModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating user", result.Error, user.ID)
	}
	user.ID = userModel.ID

	r.logger.Info("User created", map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return nil
}

// Update persists mutated user fields
func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"username":      user.Username,
			"email":         user.Email,
			"password_hash": user.PasswordHash,
			"updated_at":    r.timeProvider.Now(),
		})
	if result.Error != nil {
		return r.handleDatabaseError("updating user", result.Error, user.ID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

// AdjustBalance changes a user's wallet balance under a FOR UPDATE row lock.
// The row is locked within the caller's transaction (the db handle is the
// transactional one when obtained through the unit of work), read, checked
// against overdraft and written back.
func (r *UserRepository) AdjustBalance(ctx context.Context, userID uint64, delta int64) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&userModel, userID)
	if result.Error != nil {
		return nil, r.handleDatabaseError("locking user", result.Error, userID)
	}

	newBalance := userModel.Balance + delta
	if newBalance < 0 {
		r.logger.Warn("Insufficient balance", map[string]any{
			"user_id":  userID,
			"balance":  entity.FormatAmount(userModel.Balance),
			"required": entity.FormatAmount(-delta),
		})
		return nil, errs.NewInsufficientBalanceError(
			userID,
			entity.FormatAmount(-delta),
			entity.FormatAmount(userModel.Balance),
		)
	}

	userModel.Balance = newBalance
	userModel.UpdatedAt = r.timeProvider.Now()

	result = r.db.WithContext(ctx).Model(&userModel).Updates(map[string]interface{}{
		"balance":    userModel.Balance,
		"updated_at": userModel.UpdatedAt,
	})
	if result.Error != nil {
		return nil, r.handleDatabaseError("adjusting balance", result.Error, userID)
	}

	return userModelToEntity(&userModel), nil
}

// AddReferralEarnings bumps the cumulative commission counter
func (r *UserRepository) AddReferralEarnings(ctx context.Context, userID uint64, delta int64) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"referral_earnings": gorm.Expr("referral_earnings + ?", delta),
			"updated_at":        r.timeProvider.Now(),
		})
	if result.Error != nil {
		return r.handleDatabaseError("adding referral earnings", result.Error, userID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

// SetAdmin grants or revokes the admin flag
func (r *UserRepository) SetAdmin(ctx context.Context, userID uint64, isAdmin bool) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"is_admin":   isAdmin,
			"updated_at": r.timeProvider.Now(),
		})
	if result.Error != nil {
		return r.handleDatabaseError("setting admin flag", result.Error, userID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

// List returns users ordered by creation time, newest first
func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]entity.User, error) {
	offset, limit = normalizePage(offset, limit, 50, 200)

	var userModels []model.User
	result := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&userModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing users", result.Error, 0)
	}

	users := make([]entity.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, *userModelToEntity(&userModels[i]))
	}
	return users, nil
}
