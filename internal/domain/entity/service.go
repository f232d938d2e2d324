package entity

import (
	"strings"
	"time"

	errs "github.com/boostlab/smm-panel/internal/domain/error"
)

// Category groups services in the public catalog
type Category struct {
	ID        uint64
	Name      string
	SortOrder int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks category fields before persisting admin edits
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errs.ErrValidation
	}
	return nil
}

// Service is a resellable catalog entry. RatePerThousand is the charge in
// paise for 1000 units. Provider-linked services carry the upstream ids.
type Service struct {
	ID                uint64
	CategoryID        uint64
	Name              string
	RatePerThousand   int64
	MinQuantity       int64
	MaxQuantity       int64
	IsActive          bool
	ProviderID        *uint64
	ProviderServiceID string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// FormattedRate returns the per-1000 rate as a 2-decimal string
func (s *Service) FormattedRate() string {
	return FormatAmount(s.RatePerThousand)
}

// IsProviderLinked reports whether orders for this service are forwarded upstream
func (s *Service) IsProviderLinked() bool {
	return s.ProviderID != nil && s.ProviderServiceID != ""
}

// ValidateQuantity checks an order quantity against the service bounds
func (s *Service) ValidateQuantity(quantity int64) error {
	if quantity < s.MinQuantity || quantity > s.MaxQuantity {
		return &errs.QuantityError{
			ServiceID: s.ID,
			Quantity:  quantity,
			Min:       s.MinQuantity,
			Max:       s.MaxQuantity,
		}
	}
	return nil
}

// PriceFor computes the order charge in paise for the given quantity
func (s *Service) PriceFor(quantity int64) int64 {
	return OrderPrice(s.RatePerThousand, quantity)
}

// Validate checks service fields before persisting admin edits
func (s *Service) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errs.ErrValidation
	}
	if s.CategoryID == 0 {
		return errs.ErrValidation
	}
	if s.RatePerThousand < 0 {
		return errs.ErrNegativeAmount
	}
	if s.MinQuantity <= 0 || s.MaxQuantity < s.MinQuantity {
		return errs.ErrValidation
	}
	return nil
}
