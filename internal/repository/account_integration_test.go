//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/coverguard/coverguard/internal/testutil"
)

func TestIntegrationAccountRepository_CreateAndGet(t *testing.T) {
	ctx, repo := newAccountTestEnv(t)

	account := testutil.NewTestAccount(t, testutil.UniqueEmail("create"))

	if err := repo.CreateAccount(ctx, account); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	byID, err := repo.GetAccountByID(ctx, account.ID)
	if err != nil {
		t.Fatalf("GetAccountByID failed: %v", err)
	}
	if byID.Email != account.Email {
		t.Errorf("Email mismatch: got %q, want %q", byID.Email, account.Email)
	}

	byEmail, err := repo.GetAccountByEmail(ctx, account.Email)
	if err != nil {
		t.Fatalf("GetAccountByEmail failed: %v", err)
	}
	if byEmail.ID != account.ID {
		t.Errorf("ID mismatch: got %q, want %q", byEmail.ID, account.ID)
	}
	if byEmail.PasswordHash != account.PasswordHash {
		t.Error("PasswordHash should round-trip unchanged")
	}
}

func TestIntegrationAccountRepository_DuplicateEmail(t *testing.T) {
	ctx, repo := newAccountTestEnv(t)

	email := testutil.UniqueEmail("dup")
	first := testutil.NewTestAccount(t, email)
	second := testutil.NewTestAccount(t, email)

	if err := repo.CreateAccount(ctx, first); err != nil {
		t.Fatalf("CreateAccount (first) failed: %v", err)
	}

	before, err := repo.CountAccounts(ctx)
	if err != nil {
		t.Fatalf("CountAccounts failed: %v", err)
	}

	if err := repo.CreateAccount(ctx, second); !errors.Is(err, ErrEmailExists) {
		t.Errorf("Expected ErrEmailExists, got: %v", err)
	}

	after, err := repo.CountAccounts(ctx)
	if err != nil {
		t.Fatalf("CountAccounts failed: %v", err)
	}
	if after != before {
		t.Errorf("Rejected registration changed account count: %d -> %d", before, after)
	}
}

func TestIntegrationAccountRepository_NotFound(t *testing.T) {
	ctx, repo := newAccountTestEnv(t)

	if _, err := repo.GetAccountByID(ctx, "missing"); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("GetAccountByID: expected ErrAccountNotFound, got: %v", err)
	}
	if _, err := repo.GetAccountByEmail(ctx, "missing@example.com"); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("GetAccountByEmail: expected ErrAccountNotFound, got: %v", err)
	}
}

func newAccountTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetAccountsSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset accounts schema: %v", err)
	}

	return ctx, repo
}
