package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	errs "github.com/boostlab/smm-panel/internal/domain/error"
	"github.com/boostlab/smm-panel/internal/testutil"
)

func newSettingsUseCase() *UseCase {
	return NewUseCase(
		testutil.NewFakePaymentMethodRepo(),
		testutil.NewFakeSupportContactRepo(),
		testutil.NewFakeNoticeRepo(),
		testutil.NewStubClock(),
	)
}

func TestPaymentMethods(t *testing.T) {
	ctx := context.Background()

	t.Run("Save creates then updates in place", func(t *testing.T) {
		uc := newSettingsUseCase()

		created, err := uc.SavePaymentMethod(ctx, &entity.PaymentMethod{
			Name:         "UPI",
			Instructions: "Pay to panel@upi and share the reference",
			IsActive:     true,
		})
		require.NoError(t, err)
		require.NotZero(t, created.ID)

		created.Instructions = "Pay to newpanel@upi"
		updated, err := uc.SavePaymentMethod(ctx, created)
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)

		all, err := uc.ListPaymentMethods(ctx, false)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "Pay to newpanel@upi", all[0].Instructions)
	})

	t.Run("Users only see active methods", func(t *testing.T) {
		uc := newSettingsUseCase()
		_, err := uc.SavePaymentMethod(ctx, &entity.PaymentMethod{Name: "UPI", Instructions: "x", IsActive: true})
		require.NoError(t, err)
		_, err = uc.SavePaymentMethod(ctx, &entity.PaymentMethod{Name: "Legacy", Instructions: "y", IsActive: false})
		require.NoError(t, err)

		visible, err := uc.ListPaymentMethods(ctx, true)
		require.NoError(t, err)
		require.Len(t, visible, 1)
		assert.Equal(t, "UPI", visible[0].Name)
	})

	t.Run("Blank fields rejected", func(t *testing.T) {
		uc := newSettingsUseCase()
		_, err := uc.SavePaymentMethod(ctx, &entity.PaymentMethod{Name: " ", Instructions: "x"})
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("Updating a missing method fails", func(t *testing.T) {
		uc := newSettingsUseCase()
		_, err := uc.SavePaymentMethod(ctx, &entity.PaymentMethod{ID: 99, Name: "UPI", Instructions: "x"})
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestSupportContactsAndNotices(t *testing.T) {
	ctx := context.Background()

	t.Run("Contacts round trip with delete", func(t *testing.T) {
		uc := newSettingsUseCase()
		contact, err := uc.SaveSupportContact(ctx, &entity.SupportContact{Label: "Telegram", Value: "@support", IsActive: true})
		require.NoError(t, err)

		require.NoError(t, uc.DeleteSupportContact(ctx, contact.ID))

		remaining, err := uc.ListSupportContacts(ctx, false)
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})

	t.Run("Notices filter to the active subset for users", func(t *testing.T) {
		uc := newSettingsUseCase()
		_, err := uc.SaveNotice(ctx, &entity.AdminNotice{Title: "Maintenance", Body: "Sunday 02:00", IsActive: true})
		require.NoError(t, err)
		_, err = uc.SaveNotice(ctx, &entity.AdminNotice{Title: "Old", Body: "Done", IsActive: false})
		require.NoError(t, err)

		visible, err := uc.ListNotices(ctx, true)
		require.NoError(t, err)
		require.Len(t, visible, 1)
		assert.Equal(t, "Maintenance", visible[0].Title)
	})
}
