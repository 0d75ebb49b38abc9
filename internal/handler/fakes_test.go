package handler

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/coverguard/coverguard/internal/model"
	"github.com/coverguard/coverguard/internal/repository"
	"github.com/coverguard/coverguard/internal/view"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRenderer(t *testing.T) *view.Renderer {
	t.Helper()
	renderer, err := view.New()
	if err != nil {
		t.Fatalf("view.New() error = %v", err)
	}
	return renderer
}

// fakeProfileStore is an in-memory profile store for handler tests.
type fakeProfileStore struct {
	mu       sync.Mutex
	profiles []*model.RiskProfile
}

func (s *fakeProfileStore) CreateProfile(_ context.Context, profile *model.RiskProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *profile
	s.profiles = append(s.profiles, &clone)
	return nil
}

func (s *fakeProfileStore) GetProfileByID(_ context.Context, id string) (*model.RiskProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if p.ID == id {
			clone := *p
			return &clone, nil
		}
	}
	return nil, repository.ErrProfileNotFound
}

func (s *fakeProfileStore) MostRecentProfile(_ context.Context) (*model.RiskProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.profiles) == 0 {
		return nil, repository.ErrProfileNotFound
	}
	clone := *s.profiles[len(s.profiles)-1]
	return &clone, nil
}

func (s *fakeProfileStore) GetProfileByOwnerEmail(_ context.Context, email string) (*model.RiskProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.profiles) - 1; i >= 0; i-- {
		if s.profiles[i].OwnerEmail == email {
			clone := *s.profiles[i]
			return &clone, nil
		}
	}
	return nil, repository.ErrProfileNotFound
}

func (s *fakeProfileStore) UpdateProfile(_ context.Context, profile *model.RiskProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.profiles {
		if p.ID == profile.ID {
			clone := *profile
			s.profiles[i] = &clone
			return nil
		}
	}
	return repository.ErrProfileNotFound
}

// fakeAccountStore is an in-memory account store for handler tests.
type fakeAccountStore struct {
	mu       sync.Mutex
	accounts []*model.Account
}

func (s *fakeAccountStore) CreateAccount(_ context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Email == account.Email {
			return repository.ErrEmailExists
		}
	}
	clone := *account
	s.accounts = append(s.accounts, &clone)
	return nil
}

func (s *fakeAccountStore) GetAccountByID(_ context.Context, id string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.ID == id {
			clone := *a
			return &clone, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func (s *fakeAccountStore) GetAccountByEmail(_ context.Context, email string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Email == email {
			clone := *a
			return &clone, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

// fakeTokenStore is an in-memory session token store for handler tests.
type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]string)}
}

func (s *fakeTokenStore) SetSession(_ context.Context, token, accountID string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = accountID
	return nil
}

func (s *fakeTokenStore) GetSession(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[token], nil
}

func (s *fakeTokenStore) DeleteSession(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}
