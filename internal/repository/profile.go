package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/coverguard/coverguard/internal/model"
)

// ErrProfileNotFound is returned when no risk profile matches a lookup.
var ErrProfileNotFound = errors.New("risk profile not found")

// CreateProfile inserts a new risk profile into the database.
func (r *Repository) CreateProfile(ctx context.Context, profile *model.RiskProfile) error {
	query := `
		INSERT INTO risk_profiles (id, company_name, owner_email, industry, company_size, revenue, incident_history, risk_scale, coverage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		profile.ID,
		profile.CompanyName,
		profile.OwnerEmail,
		profile.Industry,
		profile.CompanySize,
		profile.Revenue,
		profile.IncidentHistory,
		profile.RiskScale,
		profile.Coverage,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create risk profile: %w", err)
	}

	return nil
}

// GetProfileByID retrieves a risk profile by its ID.
func (r *Repository) GetProfileByID(ctx context.Context, id string) (*model.RiskProfile, error) {
	query := `
		SELECT id, company_name, owner_email, industry, company_size, revenue, incident_history, risk_scale, coverage, created_at, updated_at
		FROM risk_profiles
		WHERE id = $1
	`

	profile, err := scanProfile(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get risk profile by ID: %w", err)
	}

	return profile, nil
}

// MostRecentProfile retrieves the most recently created risk profile
// across all owners. Ordering is by explicit creation time with the ID
// as a tie-breaker, not by any assumption about identifier monotonicity.
func (r *Repository) MostRecentProfile(ctx context.Context) (*model.RiskProfile, error) {
	query := `
		SELECT id, company_name, owner_email, industry, company_size, revenue, incident_history, risk_scale, coverage, created_at, updated_at
		FROM risk_profiles
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	profile, err := scanProfile(r.pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get most recent risk profile: %w", err)
	}

	return profile, nil
}

// GetProfileByOwnerEmail retrieves the most recent risk profile owned by
// the given email. An email may own many profiles; most recent wins,
// consistent with MostRecentProfile.
func (r *Repository) GetProfileByOwnerEmail(ctx context.Context, email string) (*model.RiskProfile, error) {
	query := `
		SELECT id, company_name, owner_email, industry, company_size, revenue, incident_history, risk_scale, coverage, created_at, updated_at
		FROM risk_profiles
		WHERE owner_email = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	profile, err := scanProfile(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get risk profile by owner email: %w", err)
	}

	return profile, nil
}

// UpdateProfile replaces the mutable fields of a risk profile.
// The ID and creation time never change.
func (r *Repository) UpdateProfile(ctx context.Context, profile *model.RiskProfile) error {
	query := `
		UPDATE risk_profiles
		SET company_name = $2, owner_email = $3, industry = $4, company_size = $5, revenue = $6, incident_history = $7, risk_scale = $8, coverage = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		profile.ID,
		profile.CompanyName,
		profile.OwnerEmail,
		profile.Industry,
		profile.CompanySize,
		profile.Revenue,
		profile.IncidentHistory,
		profile.RiskScale,
		profile.Coverage,
		profile.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update risk profile: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// scanProfile scans a single row into a RiskProfile model.
func scanProfile(row pgx.Row) (*model.RiskProfile, error) {
	var profile model.RiskProfile
	err := row.Scan(
		&profile.ID,
		&profile.CompanyName,
		&profile.OwnerEmail,
		&profile.Industry,
		&profile.CompanySize,
		&profile.Revenue,
		&profile.IncidentHistory,
		&profile.RiskScale,
		&profile.Coverage,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	return &profile, err
}
