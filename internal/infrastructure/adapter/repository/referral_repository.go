package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	errs "github.com/boostlab/smm-panel/internal/domain/error"
	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/model"
)

// ReferralRepository implements persistence.ReferralRepository using GORM
type ReferralRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewReferralRepository creates a new ReferralRepository instance
func NewReferralRepository(db *gorm.DB, logger coreport.Logger) *ReferralRepository {
	return &ReferralRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func referralModelToEntity(m *model.Referral) *entity.Referral {
	return &entity.Referral{
		ID:               m.ID,
		ReferrerID:       m.ReferrerID,
		ReferredID:       m.ReferredID,
		Kind:             entity.ReferralKind(m.Kind),
		Commission:       m.Commission,
		DepositAmount:    m.DepositAmount,
		DepositReference: m.DepositReference,
		Paid:             m.Paid,
		CreatedAt:        m.CreatedAt,
	}
}

// Create saves a referral row
func (r *ReferralRepository) Create(ctx context.Context, referral *entity.Referral) error {
	referralModel := model.Referral{
		ReferrerID:       referral.ReferrerID,
		ReferredID:       referral.ReferredID,
		Kind:             string(referral.Kind),
		Commission:       referral.Commission,
		DepositAmount:    referral.DepositAmount,
		DepositReference: referral.DepositReference,
		Paid:             referral.Paid,
		CreatedAt:        referral.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&referralModel)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			return errs.ErrDuplicateReferral
		}
		r.logger.Error("Database error when creating referral", map[string]any{
			"referrer_id": referral.ReferrerID,
			"error":       result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	referral.ID = referralModel.ID
	return nil
}

// ExistsForDeposit checks whether a commission row exists for a deposit reference
func (r *ReferralRepository) ExistsForDeposit(ctx context.Context, depositReference string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Referral{}).
		Where("deposit_reference = ?", depositReference).
		Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return count > 0, nil
}

// ListByReferrer returns rows credited to a referrer, newest first
func (r *ReferralRepository) ListByReferrer(ctx context.Context, referrerID uint64, offset, limit int) ([]entity.Referral, error) {
	offset, limit = normalizePage(offset, limit, 50, 200)

	var referralModels []model.Referral
	result := r.db.WithContext(ctx).
		Where("referrer_id = ?", referrerID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&referralModels)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	referrals := make([]entity.Referral, 0, len(referralModels))
	for i := range referralModels {
		referrals = append(referrals, *referralModelToEntity(&referralModels[i]))
	}
	return referrals, nil
}

// CountByReferrer counts signup rows attributed to a referrer
func (r *ReferralRepository) CountByReferrer(ctx context.Context, referrerID uint64) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Referral{}).
		Where("referrer_id = ? AND kind = ?", referrerID, string(entity.ReferralKindSignup)).
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return count, nil
}

// CommissionTierRepository implements persistence.CommissionTierRepository
// using GORM
type CommissionTierRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewCommissionTierRepository creates a new CommissionTierRepository instance
func NewCommissionTierRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *CommissionTierRepository {
	return &CommissionTierRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// List returns all commission tiers ordered by threshold
func (r *CommissionTierRepository) List(ctx context.Context) ([]entity.CommissionTier, error) {
	var tierModels []model.CommissionTier
	result := r.db.WithContext(ctx).Order("threshold ASC").Find(&tierModels)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	tiers := make([]entity.CommissionTier, 0, len(tierModels))
	for _, m := range tierModels {
		tiers = append(tiers, entity.CommissionTier{
			ID:         m.ID,
			Threshold:  m.Threshold,
			Commission: m.Commission,
		})
	}
	return tiers, nil
}

// Replace swaps the whole tier table atomically
func (r *CommissionTierRepository) Replace(ctx context.Context, tiers []entity.CommissionTier) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.CommissionTier{}).Error; err != nil {
			return err
		}

		now := r.timeProvider.Now()
		for _, tier := range tiers {
			tierModel := model.CommissionTier{
				Threshold:  tier.Threshold,
				Commission: tier.Commission,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := tx.Create(&tierModel).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	r.logger.Info("Commission tiers replaced", map[string]any{
		"count": len(tiers),
	})
	return nil
}
