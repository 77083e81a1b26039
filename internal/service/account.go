// Package service implements the account use cases on top of the store port.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/punchamoorthee/walletops/internal/domain"
	"github.com/punchamoorthee/walletops/internal/store"
)

// AccountService orchestrates store lookups, entity mutation and write-back
// for each account use case. Domain rule violations come back as the error
// types in the domain package; anything else is a wrapped store failure with
// no business meaning.
//
// Known limitation: every mutation is a find-then-update against a shared
// store with no version check, so two concurrent callers hitting the same
// account can interleave and lose one write. The JSON store serializes calls
// internally; the Postgres path does not.
type AccountService struct {
	store store.AccountStore
}

func NewAccountService(s store.AccountStore) *AccountService {
	return &AccountService{store: s}
}

// Create makes a new zero-balance account. Names are unique
// case-insensitively across all accounts.
func (s *AccountService) Create(ctx context.Context, name, currency string) (*domain.Account, error) {
	existing, err := s.store.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("check name: %w", err)
	}
	if existing != nil {
		return nil, &domain.AlreadyExistsError{Name: name}
	}

	account := domain.NewAccount(name, currency)
	if err := s.store.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return account, nil
}

func (s *AccountService) Get(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return s.find(ctx, id)
}

func (s *AccountService) List(ctx context.Context) ([]*domain.Account, error) {
	accounts, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// Deposit credits the account. The amount is in major currency units and is
// converted to minor units with round-to-nearest before it reaches the
// entity. The store is only written after the entity accepts the mutation.
func (s *AccountService) Deposit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*domain.Account, error) {
	account, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := account.Deposit(toMinorUnits(amount)); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("save deposit: %w", err)
	}
	return account, nil
}

// Withdraw debits the account; same shape as Deposit.
func (s *AccountService) Withdraw(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*domain.Account, error) {
	account, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := account.Withdraw(toMinorUnits(amount)); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("save withdrawal: %w", err)
	}
	return account, nil
}

func (s *AccountService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

func (s *AccountService) find(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	account, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if account == nil {
		return nil, &domain.NotFoundError{ID: id.String()}
	}
	return account, nil
}

// toMinorUnits converts a major-unit amount to cents, rounding half away from
// zero.
func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}
