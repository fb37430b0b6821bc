package auctionerrors

import (
	"errors"
	"fmt"
)

// Code identifies a validation failure in a form safe to surface to the bidder.
type Code string

const (
	CodeAuctionNotActive     Code = "AUCTION_NOT_ACTIVE"
	CodeInvalidBidAmount     Code = "INVALID_BID_AMOUNT"
	CodeAlreadyHighestBidder Code = "ALREADY_HIGHEST_BIDDER"
	CodeBidTooFrequent       Code = "BID_TOO_FREQUENT"
	CodeProductNotFound      Code = "PRODUCT_NOT_FOUND"
	CodeForbiddenAction      Code = "FORBIDDEN_ACTION"
	CodeInvalidData          Code = "INVALID_DATA"
)

// BusinessError is an expected validation failure. Code and Message are
// safe to return to the end user.
type BusinessError struct {
	Code    Code
	Message string
}

func (e *BusinessError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewBusiness creates a BusinessError with the given code and message.
func NewBusiness(code Code, message string) *BusinessError {
	return &BusinessError{Code: code, Message: message}
}

// SystemError is an unexpected failure (I/O, lock, malformed dataset).
// The original cause is preserved for diagnostics; callers show the user
// only a generic retry message.
type SystemError struct {
	Message string
	Cause   error
}

func (e *SystemError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *SystemError) Unwrap() error {
	return e.Cause
}

// NewSystem wraps cause as a SystemError.
func NewSystem(message string, cause error) *SystemError {
	return &SystemError{Message: message, Cause: cause}
}

// ErrLockTimeout signals that a store lock could not be acquired within the
// configured wait. The operation is safe to retry.
var ErrLockTimeout = errors.New("store lock wait timed out")

// AsBusiness extracts a BusinessError from err, if present.
func AsBusiness(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// AsSystem extracts a SystemError from err, if present.
func AsSystem(err error) (*SystemError, bool) {
	var se *SystemError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
