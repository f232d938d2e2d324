package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	errs "github.com/boostlab/smm-panel/internal/domain/error"
	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/model"
)

// PaymentMethodRepository implements persistence.PaymentMethodRepository
// using GORM
type PaymentMethodRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewPaymentMethodRepository creates a new PaymentMethodRepository instance
func NewPaymentMethodRepository(db *gorm.DB, logger coreport.Logger) *PaymentMethodRepository {
	return &PaymentMethodRepository{db: db, logger: logger}
}

// GetByID retrieves a payment method by ID
func (r *PaymentMethodRepository) GetByID(ctx context.Context, id uint64) (*entity.PaymentMethod, error) {
	var m model.PaymentMethod
	result := r.db.WithContext(ctx).First(&m, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, wrapDatabaseError(result.Error)
	}
	return &entity.PaymentMethod{
		ID:           m.ID,
		Name:         m.Name,
		Instructions: m.Instructions,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

// Create saves a payment method
func (r *PaymentMethodRepository) Create(ctx context.Context, method *entity.PaymentMethod) error {
	m := model.PaymentMethod{
		Name:         method.Name,
		Instructions: method.Instructions,
		IsActive:     method.IsActive,
		CreatedAt:    method.CreatedAt,
		UpdatedAt:    method.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return wrapDatabaseError(err)
	}
	method.ID = m.ID
	return nil
}

// Update persists payment method fields
func (r *PaymentMethodRepository) Update(ctx context.Context, method *entity.PaymentMethod) error {
	result := r.db.WithContext(ctx).Model(&model.PaymentMethod{}).
		Where("id = ?", method.ID).
		Updates(map[string]interface{}{
			"name":         method.Name,
			"instructions": method.Instructions,
			"is_active":    method.IsActive,
			"updated_at":   method.UpdatedAt,
		})
	if result.Error != nil {
		return wrapDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes a payment method
func (r *PaymentMethodRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&model.PaymentMethod{}, id)
	if result.Error != nil {
		return wrapDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// List returns payment methods
func (r *PaymentMethodRepository) List(ctx context.Context, activeOnly bool) ([]entity.PaymentMethod, error) {
	query := r.db.WithContext(ctx).Order("id ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var ms []model.PaymentMethod
	if err := query.Find(&ms).Error; err != nil {
		return nil, wrapDatabaseError(err)
	}

	methods := make([]entity.PaymentMethod, 0, len(ms))
	for _, m := range ms {
		methods = append(methods, entity.PaymentMethod{
			ID:           m.ID,
			Name:         m.Name,
			Instructions: m.Instructions,
			IsActive:     m.IsActive,
			CreatedAt:    m.CreatedAt,
			UpdatedAt:    m.UpdatedAt,
		})
	}
	return methods, nil
}

// SupportContactRepository implements persistence.SupportContactRepository
// using GORM
type SupportContactRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewSupportContactRepository creates a new SupportContactRepository instance
func NewSupportContactRepository(db *gorm.DB, logger coreport.Logger) *SupportContactRepository {
	return &SupportContactRepository{db: db, logger: logger}
}

// GetByID retrieves a support contact by ID
func (r *SupportContactRepository) GetByID(ctx context.Context, id uint64) (*entity.SupportContact, error) {
	var m model.SupportContact
	result := r.db.WithContext(ctx).First(&m, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, wrapDatabaseError(result.Error)
	}
	return &entity.SupportContact{
		ID:        m.ID,
		Label:     m.Label,
		Value:     m.Value,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

// Create saves a support contact
func (r *SupportContactRepository) Create(ctx context.Context, contact *entity.SupportContact) error {
	m := model.SupportContact{
		Label:     contact.Label,
		Value:     contact.Value,
		IsActive:  contact.IsActive,
		CreatedAt: contact.CreatedAt,
		UpdatedAt: contact.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return wrapDatabaseError(err)
	}
	contact.ID = m.ID
	return nil
}

// Update persists support contact fields
func (r *SupportContactRepository) Update(ctx context.Context, contact *entity.SupportContact) error {
	result := r.db.WithContext(ctx).Model(&model.SupportContact{}).
		Where("id = ?", contact.ID).
		Updates(map[string]interface{}{
			"label":      contact.Label,
			"value":      contact.Value,
			"is_active":  contact.IsActive,
			"updated_at": contact.UpdatedAt,
		})
	if result.Error != nil {
		return wrapDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes a support contact
func (r *SupportContactRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&model.SupportContact{}, id)
	if result.Error != nil {
		return wrapDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// List returns support contacts
func (r *SupportContactRepository) List(ctx context.Context, activeOnly bool) ([]entity.SupportContact, error) {
	query := r.db.WithContext(ctx).Order("id ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var ms []model.SupportContact
	if err := query.Find(&ms).Error; err != nil {
		return nil, wrapDatabaseError(err)
	}

	contacts := make([]entity.SupportContact, 0, len(ms))
	for _, m := range ms {
		contacts = append(contacts, entity.SupportContact{
			ID:        m.ID,
			Label:     m.Label,
			Value:     m.Value,
			IsActive:  m.IsActive,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		})
	}
	return contacts, nil
}

// AdminNoticeRepository implements persistence.AdminNoticeRepository using
// GORM
type AdminNoticeRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAdminNoticeRepository creates a new AdminNoticeRepository instance
func NewAdminNoticeRepository(db *gorm.DB, logger coreport.Logger) *AdminNoticeRepository {
	return &AdminNoticeRepository{db: db, logger: logger}
}

// GetByID retrieves a notice by ID
func (r *AdminNoticeRepository) GetByID(ctx context.Context, id uint64) (*entity.AdminNotice, error) {
	var m model.AdminNotice
	result := r.db.WithContext(ctx).First(&m, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, wrapDatabaseError(result.Error)
	}
	return &entity.AdminNotice{
		ID:        m.ID,
		Title:     m.Title,
		Body:      m.Body,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

// Create saves a notice
func (r *AdminNoticeRepository) Create(ctx context.Context, notice *entity.AdminNotice) error {
	m := model.AdminNotice{
		Title:     notice.Title,
		Body:      notice.Body,
		IsActive:  notice.IsActive,
		CreatedAt: notice.CreatedAt,
		UpdatedAt: notice.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return wrapDatabaseError(err)
	}
	notice.ID = m.ID
	return nil
}

// Update persists notice fields
func (r *AdminNoticeRepository) Update(ctx context.Context, notice *entity.AdminNotice) error {
	result := r.db.WithContext(ctx).Model(&model.AdminNotice{}).
		Where("id = ?", notice.ID).
		Updates(map[string]interface{}{
			"title":      notice.Title,
			"body":       notice.Body,
			"is_active":  notice.IsActive,
			"updated_at": notice.UpdatedAt,
		})
	if result.Error != nil {
		return wrapDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes a notice
func (r *AdminNoticeRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&model.AdminNotice{}, id)
	if result.Error != nil {
		return wrapDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// List returns notices, newest first
func (r *AdminNoticeRepository) List(ctx context.Context, activeOnly bool) ([]entity.AdminNotice, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var ms []model.AdminNotice
	if err := query.Find(&ms).Error; err != nil {
		return nil, wrapDatabaseError(err)
	}

	notices := make([]entity.AdminNotice, 0, len(ms))
	for _, m := range ms {
		notices = append(notices, entity.AdminNotice{
			ID:        m.ID,
			Title:     m.Title,
			Body:      m.Body,
			IsActive:  m.IsActive,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		})
	}
	return notices, nil
}
