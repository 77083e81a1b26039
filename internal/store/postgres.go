package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/punchamoorthee/walletops/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    id         UUID PRIMARY KEY,
    name       TEXT NOT NULL,
    balance    BIGINT NOT NULL DEFAULT 0,
    currency   TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS accounts_name_lower_idx ON accounts (LOWER(name));
`

// PostgresStore implements AccountStore on a pgx connection pool. The pool is
// shared read-write across all concurrent callers; pgx handles connection
// safety.
type PostgresStore struct {
	db *pgxpool.Pool
}

var _ AccountStore = (*PostgresStore)(nil)

func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return &PostgresStore{db: pool}, nil
}

func (s *PostgresStore) Close() {
	s.db.Close()
}

// Migrate applies the accounts schema. Idempotent.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, account *domain.Account) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO accounts (id, name, balance, currency, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		account.ID, account.Name, account.Balance, account.Currency,
		account.CreatedAt, account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return s.findOne(ctx,
		`SELECT id, name, balance, currency, created_at, updated_at
		 FROM accounts WHERE id = $1`, id)
}

func (s *PostgresStore) FindByName(ctx context.Context, name string) (*domain.Account, error) {
	return s.findOne(ctx,
		`SELECT id, name, balance, currency, created_at, updated_at
		 FROM accounts WHERE LOWER(name) = LOWER($1)`, name)
}

func (s *PostgresStore) findOne(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var a domain.Account
	err := s.db.QueryRow(ctx, query, arg).
		Scan(&a.ID, &a.Name, &a.Balance, &a.Currency, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query account: %w", err)
	}
	return &a, nil
}

func (s *PostgresStore) FindAll(ctx context.Context) ([]*domain.Account, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, balance, currency, created_at, updated_at
		 FROM accounts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Balance, &a.Currency, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}
	return accounts, nil
}

func (s *PostgresStore) Update(ctx context.Context, account *domain.Account) error {
	_, err := s.db.Exec(ctx,
		`UPDATE accounts
		 SET name = $2, balance = $3, currency = $4, updated_at = $5
		 WHERE id = $1`,
		account.ID, account.Name, account.Balance, account.Currency, account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}
