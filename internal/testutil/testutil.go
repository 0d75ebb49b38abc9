// Package testutil provides helpers for env-gated integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/coverguard/coverguard/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 270270

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetSchema drops and recreates one migration's schema for tests.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool, migration string) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	downPath := filepath.Join(root, "migrations", migration+".down.sql")
	upPath := filepath.Join(root, "migrations", migration+".up.sql")

	downSQL, err := os.ReadFile(downPath)
	if err != nil {
		return fmt.Errorf("read down migration: %w", err)
	}
	if _, err := pool.Exec(ctx, string(downSQL)); err != nil {
		return fmt.Errorf("apply down migration: %w", err)
	}

	upSQL, err := os.ReadFile(upPath)
	if err != nil {
		return fmt.Errorf("read up migration: %w", err)
	}
	if _, err := pool.Exec(ctx, string(upSQL)); err != nil {
		return fmt.Errorf("apply up migration: %w", err)
	}

	return nil
}

// ResetAccountsSchema drops and recreates the accounts schema for tests.
func ResetAccountsSchema(ctx context.Context, pool *pgxpool.Pool) error {
	return ResetSchema(ctx, pool, "000001_accounts")
}

// ResetProfilesSchema drops and recreates the risk_profiles schema for tests.
func ResetProfilesSchema(ctx context.Context, pool *pgxpool.Pool) error {
	return ResetSchema(ctx, pool, "000002_risk_profiles")
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// NewTestProfile creates a risk profile with sensible defaults.
func NewTestProfile(t testing.TB, ownerEmail string) *model.RiskProfile {
	t.Helper()
	now := time.Now().UTC()
	return &model.RiskProfile{
		ID:              UniqueID("profile"),
		CompanyName:     "Acme Widgets",
		OwnerEmail:      ownerEmail,
		Industry:        "manufacturing",
		CompanySize:     "51-200",
		Revenue:         50,
		IncidentHistory: "one phishing incident in 2024",
		RiskScale:       model.RiskMedium,
		Coverage:        model.CoverageHardware,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// NewTestAccount creates an account with sensible defaults.
// The hash is a placeholder, not a real argon2 digest.
func NewTestAccount(t testing.TB, email string) *model.Account {
	t.Helper()
	return &model.Account{
		ID:           UniqueID("account"),
		Email:        email,
		PasswordHash: "$argon2id$test$placeholder",
		CreatedAt:    time.Now().UTC(),
	}
}

// UniqueEmail generates a unique email address for tests.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

// UniqueID generates a unique ID for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
