package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidAmount is returned when a deposit or withdrawal amount is zero or
// negative.
var ErrInvalidAmount = errors.New("amount must be positive")

// NotFoundError reports a lookup by id or name that yielded nothing.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("account not found: %s", e.ID)
}

// AlreadyExistsError reports a create attempt with a name already in use.
// Names collide case-insensitively.
type AlreadyExistsError struct {
	Name string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("account already exists: %s", e.Name)
}

// InsufficientFundsError carries both figures so callers can render a precise
// message. Amounts are minor units.
type InsufficientFundsError struct {
	Available int64
	Requested int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: available %d, requested %d", e.Available, e.Requested)
}
