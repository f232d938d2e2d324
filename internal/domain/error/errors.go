package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeValidation            = 4000
	CodeInsufficientBalance   = 4001
	CodeInvalidAmount         = 4002
	CodeInvalidQuantity       = 4003
	CodeDuplicateTransaction  = 4004
	CodeDuplicateUser         = 4005
	CodeOrderAlreadyCancelled = 4006
	CodeWithdrawalResolved    = 4007
	CodeInvalidCredentials    = 4010
	CodeTokenInvalid          = 4011
	CodeForbidden             = 4030
	CodeUserNotFound          = 4040
	CodeServiceNotFound       = 4041
	CodeOrderNotFound         = 4042
	CodeNotFound              = 4043
	CodeServiceInactive       = 4220

	// 5xxx - Server errors
	CodeInternalServer      = 5000
	CodeProviderUnavailable = 5020
)

// Base error types
var (
	// ErrValidation is returned when a request fails basic field validation
	ErrValidation = errors.New("validation failed")

	// ErrInvalidAmount is returned when a money amount format is invalid
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when a money amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidQuantity is returned when an order quantity is outside the service bounds
	ErrInvalidQuantity = errors.New("quantity outside allowed bounds")

	// ErrInsufficientBalance is returned when a user has insufficient funds for a debit
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrDuplicateTransaction is returned when a ledger entry with the same reference already exists
	ErrDuplicateTransaction = errors.New("transaction with this reference already exists")

	// ErrDuplicateUser is returned when the username or email is already taken
	ErrDuplicateUser = errors.New("user already exists")

	// ErrDuplicateReferral is returned when a commission was already paid for a deposit
	ErrDuplicateReferral = errors.New("referral commission already recorded for this deposit")

	// ErrOrderAlreadyCancelled is returned when cancelling a cancelled order
	ErrOrderAlreadyCancelled = errors.New("order is already cancelled")

	// ErrWithdrawalResolved is returned when resolving an already-resolved withdrawal
	ErrWithdrawalResolved = errors.New("withdrawal request is already resolved")

	// ErrInvalidCredentials is returned on bad username/password
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenInvalid is returned for missing, malformed, expired or revoked tokens
	ErrTokenInvalid = errors.New("invalid or expired token")

	// ErrForbidden is returned when a non-admin hits an admin surface
	ErrForbidden = errors.New("operation not permitted")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrServiceNotFound is returned when the requested service doesn't exist
	ErrServiceNotFound = errors.New("service not found")

	// ErrServiceInactive is returned when ordering a deactivated service
	ErrServiceInactive = errors.New("service is not available")

	// ErrOrderNotFound is returned when the requested order doesn't exist
	ErrOrderNotFound = errors.New("order not found")

	// ErrTransactionNotFound is returned when the requested ledger entry doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrProviderUnavailable is returned when the upstream provider call fails
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidQuantity):
		return CodeInvalidQuantity
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrDuplicateTransaction), errors.Is(err, ErrDuplicateReferral):
		return CodeDuplicateTransaction
	case errors.Is(err, ErrDuplicateUser):
		return CodeDuplicateUser
	case errors.Is(err, ErrOrderAlreadyCancelled):
		return CodeOrderAlreadyCancelled
	case errors.Is(err, ErrWithdrawalResolved):
		return CodeWithdrawalResolved
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, ErrTokenInvalid):
		return CodeTokenInvalid
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrServiceNotFound):
		return CodeServiceNotFound
	case errors.Is(err, ErrServiceInactive):
		return CodeServiceInactive
	case errors.Is(err, ErrOrderNotFound):
		return CodeOrderNotFound
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrTransactionNotFound):
		return CodeNotFound
	case errors.Is(err, ErrProviderUnavailable):
		return CodeProviderUnavailable
	case errors.Is(err, ErrValidation):
		return CodeValidation
	default:
		return CodeInternalServer
	}
}

// InsufficientBalanceError provides detailed error information for insufficient balance
type InsufficientBalanceError struct {
	UserID      uint64
	Required    string
	CurrBalance string
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for user %d: required %s, available %s",
		e.UserID, e.Required, e.CurrBalance)
}

// Is checks if the target error is an ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_balance",
		"user_id":         e.UserID,
		"required":        e.Required,
		"current_balance": e.CurrBalance,
		"error_code":      CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a new detailed insufficient balance error
func NewInsufficientBalanceError(userID uint64, required, currentBalance string) error {
	return &InsufficientBalanceError{
		UserID:      userID,
		Required:    required,
		CurrBalance: currentBalance,
	}
}

// QuantityError reports an order quantity outside the service bounds
type QuantityError struct {
	ServiceID uint64
	Quantity  int64
	Min       int64
	Max       int64
}

// Error implements the error interface
func (e *QuantityError) Error() string {
	return fmt.Sprintf("quantity %d for service %d outside bounds [%d, %d]",
		e.Quantity, e.ServiceID, e.Min, e.Max)
}

// Is checks if the target error is an ErrInvalidQuantity
func (e *QuantityError) Is(target error) bool {
	return target == ErrInvalidQuantity
}

// LogFields returns a map of fields for structured logging
func (e *QuantityError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "invalid_quantity",
		"service_id": e.ServiceID,
		"quantity":   e.Quantity,
		"min":        e.Min,
		"max":        e.Max,
		"error_code": CodeInvalidQuantity,
	}
}

// ProviderError wraps an upstream provider failure
type ProviderError struct {
	ProviderID uint64
	Action     string
	Detail     string
	Err        error
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %d failed on action %q: %s", e.ProviderID, e.Action, e.Detail)
}

// Unwrap returns the underlying error
func (e *ProviderError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrProviderUnavailable
}

// Is checks if the target error is an ErrProviderUnavailable
func (e *ProviderError) Is(target error) bool {
	return target == ErrProviderUnavailable
}

// LogFields returns a map of fields for structured logging
func (e *ProviderError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type":  "provider_error",
		"provider_id": e.ProviderID,
		"action":      e.Action,
		"detail":      e.Detail,
		"error_code":  CodeProviderUnavailable,
	}
	if e.Err != nil {
		fields["error"] = e.Err.Error()
	}
	return fields
}

// NewProviderError creates a detailed provider error
func NewProviderError(providerID uint64, action, detail string, err error) error {
	return &ProviderError{
		ProviderID: providerID,
		Action:     action,
		Detail:     detail,
		Err:        err,
	}
}

// IsInsufficientBalanceError checks if the error is related to insufficient balance
func IsInsufficientBalanceError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrServiceNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}

// IsValidationError checks if the error should surface as a 400 to the caller
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrNegativeAmount) ||
		errors.Is(err, ErrInvalidQuantity)
}

// IsConflictError checks if the error should surface as a 409 to the caller
func IsConflictError(err error) bool {
	return errors.Is(err, ErrDuplicateUser) ||
		errors.Is(err, ErrDuplicateTransaction) ||
		errors.Is(err, ErrDuplicateReferral) ||
		errors.Is(err, ErrOrderAlreadyCancelled) ||
		errors.Is(err, ErrWithdrawalResolved)
}

// IsAuthError checks if the error should surface as a 401 to the caller
func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrTokenInvalid)
}
