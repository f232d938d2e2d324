package settings

import (
	"context"
	"strings"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	errs "github.com/boostlab/smm-panel/internal/domain/error"
	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
	"github.com/boostlab/smm-panel/internal/domain/port/persistence"
)

// UseCase implements admin-managed panel settings: payment instructions,
// support contacts and broadcast notices. Users see the active subset.
type UseCase struct {
	paymentRepo  persistence.PaymentMethodRepository
	contactRepo  persistence.SupportContactRepository
	noticeRepo   persistence.AdminNoticeRepository
	timeProvider coreport.TimeProvider
}

// NewUseCase creates the settings use case
func NewUseCase(
	paymentRepo persistence.PaymentMethodRepository,
	contactRepo persistence.SupportContactRepository,
	noticeRepo persistence.AdminNoticeRepository,
	timeProvider coreport.TimeProvider,
) *UseCase {
	return &UseCase{
		paymentRepo:  paymentRepo,
		contactRepo:  contactRepo,
		noticeRepo:   noticeRepo,
		timeProvider: timeProvider,
	}
}

// ListPaymentMethods returns payment methods. Users get the active subset.
func (u *UseCase) ListPaymentMethods(ctx context.Context, activeOnly bool) ([]entity.PaymentMethod, error) {
	return u.paymentRepo.List(ctx, activeOnly)
}

// SavePaymentMethod creates or updates a payment method
func (u *UseCase) SavePaymentMethod(ctx context.Context, method *entity.PaymentMethod) (*entity.PaymentMethod, error) {
	if strings.TrimSpace(method.Name) == "" || strings.TrimSpace(method.Instructions) == "" {
		return nil, errs.ErrValidation
	}

	now := u.timeProvider.Now()
	method.UpdatedAt = now
	if method.ID == 0 {
		method.CreatedAt = now
		if err := u.paymentRepo.Create(ctx, method); err != nil {
			return nil, err
		}
		return method, nil
	}
	existing, err := u.paymentRepo.GetByID(ctx, method.ID)
	if err != nil {
		return nil, err
	}
	method.CreatedAt = existing.CreatedAt
	if err := u.paymentRepo.Update(ctx, method); err != nil {
		return nil, err
	}
	return method, nil
}

// DeletePaymentMethod removes a payment method
func (u *UseCase) DeletePaymentMethod(ctx context.Context, id uint64) error {
	return u.paymentRepo.Delete(ctx, id)
}

// ListSupportContacts returns support contacts. Users get the active subset.
func (u *UseCase) ListSupportContacts(ctx context.Context, activeOnly bool) ([]entity.SupportContact, error) {
	return u.contactRepo.List(ctx, activeOnly)
}

// SaveSupportContact creates or updates a support contact
func (u *UseCase) SaveSupportContact(ctx context.Context, contact *entity.SupportContact) (*entity.SupportContact, error) {
	if strings.TrimSpace(contact.Label) == "" || strings.TrimSpace(contact.Value) == "" {
		return nil, errs.ErrValidation
	}

	now := u.timeProvider.Now()
	contact.UpdatedAt = now
	if contact.ID == 0 {
		contact.CreatedAt = now
		if err := u.contactRepo.Create(ctx, contact); err != nil {
			return nil, err
		}
		return contact, nil
	}
	existing, err := u.contactRepo.GetByID(ctx, contact.ID)
	if err != nil {
		return nil, err
	}
	contact.CreatedAt = existing.CreatedAt
	if err := u.contactRepo.Update(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// DeleteSupportContact removes a support contact
func (u *UseCase) DeleteSupportContact(ctx context.Context, id uint64) error {
	return u.contactRepo.Delete(ctx, id)
}

// ListNotices returns broadcast notices. Users get the active subset.
func (u *UseCase) ListNotices(ctx context.Context, activeOnly bool) ([]entity.AdminNotice, error) {
	return u.noticeRepo.List(ctx, activeOnly)
}

// SaveNotice creates or updates a broadcast notice
func (u *UseCase) SaveNotice(ctx context.Context, notice *entity.AdminNotice) (*entity.AdminNotice, error) {
	if strings.TrimSpace(notice.Title) == "" || strings.TrimSpace(notice.Body) == "" {
		return nil, errs.ErrValidation
	}

	now := u.timeProvider.Now()
	notice.UpdatedAt = now
	if notice.ID == 0 {
		notice.CreatedAt = now
		if err := u.noticeRepo.Create(ctx, notice); err != nil {
			return nil, err
		}
		return notice, nil
	}
	existing, err := u.noticeRepo.GetByID(ctx, notice.ID)
	if err != nil {
		return nil, err
	}
	notice.CreatedAt = existing.CreatedAt
	if err := u.noticeRepo.Update(ctx, notice); err != nil {
		return nil, err
	}
	return notice, nil
}

// DeleteNotice removes a broadcast notice
func (u *UseCase) DeleteNotice(ctx context.Context, id uint64) error {
	return u.noticeRepo.Delete(ctx, id)
}
