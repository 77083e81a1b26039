package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/punchamoorthee/walletops/internal/domain"
)

// JSONStore implements AccountStore on a single JSON file, for the CLI
// variant. The whole account list lives in memory and is snapshotted to disk
// on every mutating call; a mutex serializes all access, so unlike the
// Postgres store this one is not exposed to the find-update race.
//
// Writes go to a temp file first and are renamed into place, so a crash
// mid-write never corrupts the existing file.
type JSONStore struct {
	mu       sync.Mutex
	path     string
	accounts []domain.Account
}

var _ AccountStore = (*JSONStore)(nil)

// NewJSONStore loads the file at path if it exists, otherwise starts empty.
func NewJSONStore(path string) (*JSONStore, error) {
	s := &JSONStore{path: path}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open store file: %w", err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&s.accounts); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	return s, nil
}

// save writes the current account list atomically. Caller holds the mutex.
func (s *JSONStore) save() error {
	tmp := s.path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.accounts); err != nil {
		f.Close()
		return fmt.Errorf("encode accounts: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

// indexOf returns the slice position of id, or -1. Caller holds the mutex.
func (s *JSONStore) indexOf(id uuid.UUID) int {
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *JSONStore) Create(_ context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = append(s.accounts, *account)
	return s.save()
}

func (s *JSONStore) FindByID(_ context.Context, id uuid.UUID) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		cp := s.accounts[i]
		return &cp, nil
	}
	return nil, nil
}

func (s *JSONStore) FindByName(_ context.Context, name string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.accounts {
		if strings.EqualFold(s.accounts[i].Name, name) {
			cp := s.accounts[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *JSONStore) FindAll(_ context.Context) ([]*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Account, 0, len(s.accounts))
	for i := range s.accounts {
		cp := s.accounts[i]
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *JSONStore) Update(_ context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(account.ID)
	if i < 0 {
		return fmt.Errorf("update: no record for id %s", account.ID)
	}
	s.accounts[i] = *account
	return s.save()
}

func (s *JSONStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("delete: no record for id %s", id)
	}
	s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
	return s.save()
}
