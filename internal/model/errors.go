package model

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrForbidden         = errors.New("forbidden")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrCouponUnavailable = errors.New("coupon unavailable")
	ErrNotConfigured     = errors.New("integration not configured")
	ErrInUse             = errors.New("still referenced")
)

// Error carries a client-facing message while still matching its kind with
// errors.Is.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func NewError(kind error, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

func Invalid(msg string) error {
	return NewError(ErrInvalidInput, msg)
}

func NotFound(msg string) error {
	return NewError(ErrNotFound, msg)
}
