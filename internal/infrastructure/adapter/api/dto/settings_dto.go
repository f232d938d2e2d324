package dto

import (
	"github.com/boostlab/smm-panel/internal/domain/entity"
)

// PaymentMethodRequest represents the admin API request for payment method upserts
type PaymentMethodRequest struct {
	Name         string `json:"name" binding:"required"`
	Instructions string `json:"instructions" binding:"required"`
	IsActive     *bool  `json:"isActive"`
}

// PaymentMethodResponse represents a payment method in API responses
type PaymentMethodResponse struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	Instructions string `json:"instructions"`
	IsActive     bool   `json:"isActive"`
}

// SupportContactRequest represents the admin API request for contact upserts
type SupportContactRequest struct {
	Label    string `json:"label" binding:"required"`
	Value    string `json:"value" binding:"required"`
	IsActive *bool  `json:"isActive"`
}

// SupportContactResponse represents a support contact in API responses
type SupportContactResponse struct {
	ID       uint64 `json:"id"`
	Label    string `json:"label"`
	Value    string `json:"value"`
	IsActive bool   `json:"isActive"`
}

// NoticeRequest represents the admin API request for notice upserts
type NoticeRequest struct {
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body" binding:"required"`
	IsActive *bool  `json:"isActive"`
}

// NoticeResponse represents a broadcast notice in API responses
type NoticeResponse struct {
	ID       uint64 `json:"id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	IsActive bool   `json:"isActive"`
}

// NewPaymentMethodResponse maps a payment method to its API shape
func NewPaymentMethodResponse(method *entity.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		ID:           method.ID,
		Name:         method.Name,
		Instructions: method.Instructions,
		IsActive:     method.IsActive,
	}
}

// NewPaymentMethodResponses maps payment methods to their API shape
func NewPaymentMethodResponses(methods []entity.PaymentMethod) []PaymentMethodResponse {
	responses := make([]PaymentMethodResponse, 0, len(methods))
	for i := range methods {
		responses = append(responses, NewPaymentMethodResponse(&methods[i]))
	}
	return responses
}

// NewSupportContactResponse maps a support contact to its API shape
func NewSupportContactResponse(contact *entity.SupportContact) SupportContactResponse {
	return SupportContactResponse{
		ID:       contact.ID,
		Label:    contact.Label,
		Value:    contact.Value,
		IsActive: contact.IsActive,
	}
}

// NewSupportContactResponses maps support contacts to their API shape
func NewSupportContactResponses(contacts []entity.SupportContact) []SupportContactResponse {
	responses := make([]SupportContactResponse, 0, len(contacts))
	for i := range contacts {
		responses = append(responses, NewSupportContactResponse(&contacts[i]))
	}
	return responses
}

// NewNoticeResponse maps a notice to its API shape
func NewNoticeResponse(notice *entity.AdminNotice) NoticeResponse {
	return NoticeResponse{
		ID:       notice.ID,
		Title:    notice.Title,
		Body:     notice.Body,
		IsActive: notice.IsActive,
	}
}

// NewNoticeResponses maps notices to their API shape
func NewNoticeResponses(notices []entity.AdminNotice) []NoticeResponse {
	responses := make([]NoticeResponse, 0, len(notices))
	for i := range notices {
		responses = append(responses, NewNoticeResponse(&notices[i]))
	}
	return responses
}
