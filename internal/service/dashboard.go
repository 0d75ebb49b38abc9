package service

import (
	"context"
	"errors"

	"github.com/coverguard/coverguard/internal/model"
	"github.com/coverguard/coverguard/internal/policy"
	"github.com/coverguard/coverguard/internal/repository"
)

// DashboardView is the view-model for the authenticated dashboard.
// When HasProfile is false the remaining fields are zero and the page
// shows a "no data" placeholder. The dashboard deliberately shows only
// the premium, never the policy bucket; classification detail belongs
// to the submission flow.
type DashboardView struct {
	HasProfile  bool
	CompanyName string
	Email       string
	Coverage    model.Coverage
	Premium     model.Money
}

// DashboardService assembles the dashboard for an authenticated account.
type DashboardService struct {
	accounts AccountStore
	profiles ProfileStore
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(accounts AccountStore, profiles ProfileStore) *DashboardService {
	return &DashboardService{
		accounts: accounts,
		profiles: profiles,
	}
}

// View resolves the dashboard for the given account: account → email →
// most recent profile for that email → premium. A missing profile is
// not a failure; it degrades to the placeholder view. The email join is
// deliberate — profiles are not foreign-keyed to accounts.
func (s *DashboardService) View(ctx context.Context, accountID string) (*DashboardView, error) {
	account, err := s.accounts.GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	profile, err := s.profiles.GetProfileByOwnerEmail(ctx, account.Email)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return &DashboardView{HasProfile: false}, nil
		}
		return nil, err
	}

	return &DashboardView{
		HasProfile:  true,
		CompanyName: profile.CompanyName,
		Email:       profile.OwnerEmail,
		Coverage:    profile.Coverage,
		Premium:     policy.Premium(profile.Revenue),
	}, nil
}
