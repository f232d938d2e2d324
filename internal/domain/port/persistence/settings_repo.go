package persistence

import (
	"context"

	"github.com/boostlab/smm-panel/internal/domain/entity"
)

// PaymentMethodRepository manages admin-configured payment methods
type PaymentMethodRepository interface {
	GetByID(ctx context.Context, id uint64) (*entity.PaymentMethod, error)
	Create(ctx context.Context, method *entity.PaymentMethod) error
	Update(ctx context.Context, method *entity.PaymentMethod) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, activeOnly bool) ([]entity.PaymentMethod, error)
}

// SupportContactRepository manages admin-configured support contacts
type SupportContactRepository interface {
	GetByID(ctx context.Context, id uint64) (*entity.SupportContact, error)
	Create(ctx context.Context, contact *entity.SupportContact) error
	Update(ctx context.Context, contact *entity.SupportContact) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, activeOnly bool) ([]entity.SupportContact, error)
}

// AdminNoticeRepository manages broadcast notices
type AdminNoticeRepository interface {
	GetByID(ctx context.Context, id uint64) (*entity.AdminNotice, error)
	Create(ctx context.Context, notice *entity.AdminNotice) error
	Update(ctx context.Context, notice *entity.AdminNotice) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, activeOnly bool) ([]entity.AdminNotice, error)
}
