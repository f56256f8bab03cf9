package service

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced to API clients. The texts double as the
// response messages, so they keep the wording clients already rely on.
var (
	ErrNotRegistered      = errors.New("Please register to login")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrEmailTaken         = errors.New("User with this email address already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrCategoryExists     = errors.New("Category with this name already exists")
	ErrCategoryNotFound   = errors.New("This category does not exist")
	ErrProductExists      = errors.New("Product with this name already exists")
	ErrProductNotFound    = errors.New("This product does not exist")
	ErrSaleNotFound       = errors.New("Sale record with this id doesn't exist")
	ErrUserNotFound       = errors.New("User with this id doesn't exist")
)

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
