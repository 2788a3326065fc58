package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidParent indicates an attempt to create a sibling of a sibling account.
// Siblings may only hang off a root account.
var ErrInvalidParent = errors.New("parent must be a root account")

// ErrNotSibling indicates a merge was requested against an account with no parent.
var ErrNotSibling = errors.New("account is not a sibling account")

// ErrPrivilegeRequired indicates a non-zero-balance merge was attempted without
// elevated authorization.
var ErrPrivilegeRequired = errors.New("administrator privilege required")

// ErrInsufficientFunds indicates a payment or batch would overdraw the account.
// The concrete error is InsufficientFundsError, which carries the shortfall.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrConflict indicates a concurrent-modification conflict. Repositories retry
// these internally a bounded number of times before surfacing the error.
var ErrConflict = errors.New("concurrency conflict")

// InsufficientFundsError carries the computed shortfall so the caller can prompt
// for additional funding. errors.Is(err, ErrInsufficientFunds) matches it.
type InsufficientFundsError struct {
	Available decimal.Decimal
	Required  decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: required %s, available %s (short %s)",
		e.Required.String(), e.Available.String(), e.Shortfall().String())
}

// Shortfall returns required minus available.
func (e *InsufficientFundsError) Shortfall() decimal.Decimal {
	return e.Required.Sub(e.Available)
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// AppError wraps lower-level failures with a status code and message for the
// transport layer.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given error.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
