// Command bootstrap-account creates an initial account directly in the
// database. Useful for seeding a fresh deployment or a demo instance.
//
// Usage:
//
//	go run scripts/bootstrap-account.go -email admin@example.com -password <secret>
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/coverguard/coverguard/internal/auth"
	"github.com/coverguard/coverguard/internal/model"
	"github.com/coverguard/coverguard/internal/repository"
)

type output struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		email       = flag.String("email", "", "Account email")
		password    = flag.String("password", "", "Account password (min 8 characters)")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "-email and -password are required")
		os.Exit(1)
	}
	if len(*password) < 8 {
		fmt.Fprintln(os.Stderr, "password must be at least 8 characters")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}

	account := &model.Account{
		ID:           ulid.Make().String(),
		Email:        strings.ToLower(strings.TrimSpace(*email)),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := repo.CreateAccount(ctx, account); err != nil {
		fmt.Fprintln(os.Stderr, "create account:", err)
		os.Exit(1)
	}

	out := output{AccountID: account.ID, Email: account.Email}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Println(out.AccountID)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}
