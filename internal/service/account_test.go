package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchamoorthee/walletops/internal/domain"
	"github.com/punchamoorthee/walletops/internal/service"
	"github.com/punchamoorthee/walletops/internal/store"
)

// memStore is an in-memory AccountStore for exercising the service without
// I/O. findErr, if set, is returned by every finder.
type memStore struct {
	accounts map[uuid.UUID]*domain.Account
	findErr  error
	updates  int
}

var _ store.AccountStore = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{accounts: make(map[uuid.UUID]*domain.Account)}
}

func (m *memStore) Create(_ context.Context, a *domain.Account) error {
	cp := *a
	m.accounts[a.ID] = &cp
	return nil
}

func (m *memStore) FindByID(_ context.Context, id uuid.UUID) (*domain.Account, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if a, ok := m.accounts[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (m *memStore) FindByName(_ context.Context, name string) (*domain.Account, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, a := range m.accounts {
		if strings.EqualFold(a.Name, name) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) FindAll(_ context.Context) ([]*domain.Account, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	out := make([]*domain.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memStore) Update(_ context.Context, a *domain.Account) error {
	m.updates++
	cp := *a
	m.accounts[a.ID] = &cp
	return nil
}

func (m *memStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.accounts, id)
	return nil
}

func TestCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("new account starts at zero", func(t *testing.T) {
		svc := service.NewAccountService(newMemStore())
		acc, err := svc.Create(ctx, "Savings", "USD")
		require.NoError(t, err)
		assert.Zero(t, acc.Balance)
		assert.Equal(t, "Savings", acc.Name)
	})

	t.Run("duplicate name collides case-insensitively", func(t *testing.T) {
		svc := service.NewAccountService(newMemStore())
		_, err := svc.Create(ctx, "Wallet", "USD")
		require.NoError(t, err)

		_, err = svc.Create(ctx, "WALLET", "USD")
		var exists *domain.AlreadyExistsError
		require.ErrorAs(t, err, &exists)
		assert.Equal(t, "WALLET", exists.Name)
	})

	t.Run("store failure is wrapped, not domain-typed", func(t *testing.T) {
		ms := newMemStore()
		ms.findErr = errors.New("connection refused")
		svc := service.NewAccountService(ms)

		_, err := svc.Create(ctx, "Savings", "USD")
		require.Error(t, err)
		assert.ErrorIs(t, err, ms.findErr)
		var exists *domain.AlreadyExistsError
		assert.False(t, errors.As(err, &exists))
	})
}

func TestGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ms := newMemStore()
	svc := service.NewAccountService(ms)

	acc, err := svc.Create(ctx, "Savings", "USD")
	require.NoError(t, err)

	got, err := svc.Get(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, acc.ID, got.ID)

	_, err = svc.Get(ctx, uuid.New())
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestDeposit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("converts major units to cents", func(t *testing.T) {
		ms := newMemStore()
		svc := service.NewAccountService(ms)
		acc, err := svc.Create(ctx, "Savings", "USD")
		require.NoError(t, err)

		got, err := svc.Deposit(ctx, acc.ID, decimal.RequireFromString("100.50"))
		require.NoError(t, err)
		assert.Equal(t, int64(10050), got.Balance)

		stored, err := svc.Get(ctx, acc.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(10050), stored.Balance)
	})

	t.Run("rounds to nearest cent", func(t *testing.T) {
		ms := newMemStore()
		svc := service.NewAccountService(ms)
		acc, err := svc.Create(ctx, "Savings", "USD")
		require.NoError(t, err)

		got, err := svc.Deposit(ctx, acc.ID, decimal.RequireFromString("10.005"))
		require.NoError(t, err)
		assert.Equal(t, int64(1001), got.Balance)
	})

	t.Run("invalid amount never reaches the store", func(t *testing.T) {
		ms := newMemStore()
		svc := service.NewAccountService(ms)
		acc, err := svc.Create(ctx, "Savings", "USD")
		require.NoError(t, err)

		_, err = svc.Deposit(ctx, acc.ID, decimal.Zero)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
		assert.Zero(t, ms.updates)
	})

	t.Run("unknown account", func(t *testing.T) {
		svc := service.NewAccountService(newMemStore())
		_, err := svc.Deposit(ctx, uuid.New(), decimal.RequireFromString("1"))
		var notFound *domain.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestWithdraw(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("happy path scenario", func(t *testing.T) {
		ms := newMemStore()
		svc := service.NewAccountService(ms)
		acc, err := svc.Create(ctx, "Savings", "USD")
		require.NoError(t, err)

		_, err = svc.Deposit(ctx, acc.ID, decimal.RequireFromString("100.50"))
		require.NoError(t, err)

		got, err := svc.Withdraw(ctx, acc.ID, decimal.RequireFromString("50.00"))
		require.NoError(t, err)
		assert.Equal(t, int64(5050), got.Balance)

		_, err = svc.Withdraw(ctx, acc.ID, decimal.RequireFromString("60.00"))
		var insufficient *domain.InsufficientFundsError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, int64(5050), insufficient.Available)
		assert.Equal(t, int64(6000), insufficient.Requested)

		stored, err := svc.Get(ctx, acc.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(5050), stored.Balance, "failed withdrawal must not be persisted")
	})

	t.Run("insufficient funds never reaches the store", func(t *testing.T) {
		ms := newMemStore()
		svc := service.NewAccountService(ms)
		acc, err := svc.Create(ctx, "Savings", "USD")
		require.NoError(t, err)

		updatesBefore := ms.updates
		_, err = svc.Withdraw(ctx, acc.ID, decimal.RequireFromString("0.01"))
		var insufficient *domain.InsufficientFundsError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, updatesBefore, ms.updates)
	})
}

func TestDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := service.NewAccountService(newMemStore())

	acc, err := svc.Create(ctx, "Doomed", "USD")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, acc.ID))

	var notFound *domain.NotFoundError
	_, err = svc.Get(ctx, acc.ID)
	assert.ErrorAs(t, err, &notFound)

	err = svc.Delete(ctx, acc.ID)
	assert.ErrorAs(t, err, &notFound)
}

func TestList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := service.NewAccountService(newMemStore())

	for _, name := range []string{"a", "b", "c"} {
		_, err := svc.Create(ctx, name, "USD")
		require.NoError(t, err)
	}

	accounts, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 3)
}
