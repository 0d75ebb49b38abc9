package service

import (
	"context"
	"sync"

	"github.com/coverguard/coverguard/internal/model"
	"github.com/coverguard/coverguard/internal/repository"
)

// memoryProfileStore is an in-memory ProfileStore for tests.
// Insertion order stands in for creation order.
type memoryProfileStore struct {
	mu       sync.Mutex
	profiles []*model.RiskProfile
}

func newMemoryProfileStore() *memoryProfileStore {
	return &memoryProfileStore{}
}

func (s *memoryProfileStore) CreateProfile(ctx context.Context, profile *model.RiskProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *profile
	s.profiles = append(s.profiles, &clone)
	return nil
}

func (s *memoryProfileStore) GetProfileByID(ctx context.Context, id string) (*model.RiskProfile, error) {
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

func (s *memoryProfileStore) MostRecentProfile(ctx context.Context) (*model.RiskProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.profiles) == 0 {
		return nil, repository.ErrProfileNotFound
	}
	clone := *s.profiles[len(s.profiles)-1]
	return &clone, nil
}

func (s *memoryProfileStore) GetProfileByOwnerEmail(ctx context.Context, email string) (*model.RiskProfile, error) {
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

func (s *memoryProfileStore) UpdateProfile(ctx context.Context, profile *model.RiskProfile) error {
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

func (s *memoryProfileStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.profiles)
}

// memoryAccountStore is an in-memory AccountStore for tests.
type memoryAccountStore struct {
	mu       sync.Mutex
	accounts []*model.Account
}

func newMemoryAccountStore() *memoryAccountStore {
	return &memoryAccountStore{}
}

func (s *memoryAccountStore) CreateAccount(ctx context.Context, account *model.Account) error {
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

func (s *memoryAccountStore) GetAccountByID(ctx context.Context, id string) (*model.Account, error) {
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

func (s *memoryAccountStore) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
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

func (s *memoryAccountStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}

// validSubmitInput returns a submission that classifies to a bucket.
func validSubmitInput() SubmitInput {
	return SubmitInput{
		CompanyName:     "Acme Widgets",
		OwnerEmail:      "owner@example.com",
		Industry:        "manufacturing",
		CompanySize:     "51-200",
		Revenue:         50,
		IncidentHistory: "one phishing incident in 2024",
		RiskScale:       "medium",
		Coverage:        "hardware",
	}
}
