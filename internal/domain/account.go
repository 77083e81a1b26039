// Package domain holds the account entity and its business rules. Nothing in
// this package knows about HTTP, SQL or files; balances are int64 minor units
// (cents) so arithmetic is exact.
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is the aggregate tracked by the ledger.
//
// Invariants:
//   - Balance is never negative.
//   - UpdatedAt >= CreatedAt; they are equal only while the account is unmutated.
type Account struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Balance   int64     `json:"balance"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAccount creates an account with a fresh UUID and a zero balance. Name
// uniqueness is a service-level concern; the currency code is opaque here.
func NewAccount(name, currency string) *Account {
	now := time.Now().UTC()
	return &Account{
		ID:        uuid.New(),
		Name:      name,
		Balance:   0,
		Currency:  currency,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Deposit adds amount minor units to the balance. The amount must be positive;
// on failure the account is left untouched.
func (a *Account) Deposit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	a.Balance += amount
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// Withdraw removes amount minor units from the balance. The balance may not go
// negative; on failure the account is left untouched.
func (a *Account) Withdraw(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if a.Balance < amount {
		return &InsufficientFundsError{Available: a.Balance, Requested: amount}
	}
	a.Balance -= amount
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// BalanceDecimal returns the balance in major units for presentation. It is
// never fed back into comparisons or arithmetic.
func (a *Account) BalanceDecimal() decimal.Decimal {
	return decimal.New(a.Balance, -2)
}
