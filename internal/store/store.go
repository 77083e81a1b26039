// Package store defines the persistence contract for accounts and its two
// implementations: a pgx-backed Postgres store and a flat JSON file store.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/punchamoorthee/walletops/internal/domain"
)

// AccountStore is the port the service layer depends on. Implementations own
// connection/thread safety; errors they return are opaque technical failures
// and carry no business meaning.
//
// Finders return (nil, nil) when no account matches, so absence is never an
// error at this layer.
type AccountStore interface {
	// Create inserts a new record. Callers check name uniqueness first; a
	// duplicate key surfacing here is reported as a plain store error.
	Create(ctx context.Context, account *domain.Account) error

	FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)

	// FindByName matches case-insensitively.
	FindByName(ctx context.Context, name string) (*domain.Account, error)

	// FindAll returns every live account exactly once, most recently created
	// first.
	FindAll(ctx context.Context) ([]*domain.Account, error)

	// Update overwrites the full record at its id. There is no concurrency
	// check: two callers racing a find-update cycle on the same account can
	// lose a write. See the service docs.
	Update(ctx context.Context, account *domain.Account) error

	Delete(ctx context.Context, id uuid.UUID) error
}
