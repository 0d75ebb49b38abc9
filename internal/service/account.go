package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"

	"github.com/coverguard/coverguard/internal/auth"
	"github.com/coverguard/coverguard/internal/metrics"
	"github.com/coverguard/coverguard/internal/model"
	"github.com/coverguard/coverguard/internal/repository"
)

// Account service errors.
var (
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong
	// password; callers must not reveal which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotFound    = errors.New("account not found")
)

// AccountStore is the persistence surface the account service needs.
// Implemented by repository.Repository.
type AccountStore interface {
	CreateAccount(ctx context.Context, account *model.Account) error
	GetAccountByID(ctx context.Context, id string) (*model.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
}

// AccountService handles registration and credential verification.
type AccountService struct {
	store    AccountStore
	validate *validator.Validate
	metrics  metrics.Recorder
}

// NewAccountService creates a new AccountService.
func NewAccountService(store AccountStore, recorder metrics.Recorder) *AccountService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AccountService{
		store:    store,
		validate: validator.New(),
		metrics:  recorder,
	}
}

// registerInput is validated before any hashing work happens.
type registerInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// Register creates a new account. A duplicate email is rejected with
// ErrEmailTaken and mutates nothing.
func (s *AccountService) Register(ctx context.Context, email, password string) (*model.Account, error) {
	email = normalizeEmail(email)

	if err := s.validate.Struct(registerInput{Email: email, Password: password}); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, validationDetail(err))
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &model.Account{
		ID:           ulid.Make().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	s.metrics.IncAccountRegistered()

	return account, nil
}

// Login verifies credentials and returns the matching account.
// Unknown email and wrong password both return ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, email, password string) (*model.Account, error) {
	email = normalizeEmail(email)

	account, err := s.store.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			s.metrics.IncLoginFailure()
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	match, err := auth.VerifyPassword(password, account.PasswordHash)
	if err != nil || !match {
		s.metrics.IncLoginFailure()
		return nil, ErrInvalidCredentials
	}

	s.metrics.IncLoginSuccess()
	return account, nil
}

// Get retrieves an account by ID.
func (s *AccountService) Get(ctx context.Context, id string) (*model.Account, error) {
	account, err := s.store.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}
