// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"

	"github.com/coverguard/coverguard/internal/metrics"
	"github.com/coverguard/coverguard/internal/model"
	"github.com/coverguard/coverguard/internal/policy"
	"github.com/coverguard/coverguard/internal/repository"
)

// Service errors.
var (
	ErrValidation      = errors.New("invalid submission")
	ErrProfileNotFound = errors.New("risk profile not found")
)

// ProfileStore is the persistence surface the profile service needs.
// Implemented by repository.Repository.
type ProfileStore interface {
	CreateProfile(ctx context.Context, profile *model.RiskProfile) error
	GetProfileByID(ctx context.Context, id string) (*model.RiskProfile, error)
	MostRecentProfile(ctx context.Context) (*model.RiskProfile, error)
	GetProfileByOwnerEmail(ctx context.Context, email string) (*model.RiskProfile, error)
	UpdateProfile(ctx context.Context, profile *model.RiskProfile) error
}

// OutcomeKind discriminates what a submission resolved to.
type OutcomeKind string

const (
	// OutcomeBucket means classification matched a policy bucket.
	OutcomeBucket OutcomeKind = "bucket"
	// OutcomeConsultation means the applicant chose consultation only;
	// classification was skipped entirely.
	OutcomeConsultation OutcomeKind = "consultation"
	// OutcomeFallback means classification found no match. The record
	// is persisted anyway.
	OutcomeFallback OutcomeKind = "fallback"
)

// Outcome is the result of a profile submission: the persisted record
// plus what the classification and premium rules made of it.
type Outcome struct {
	Kind    OutcomeKind
	Bucket  model.PolicyBucket
	Premium model.Money
	Profile *model.RiskProfile
}

// ProfileService handles risk profile submissions and lifecycle.
type ProfileService struct {
	store    ProfileStore
	validate *validator.Validate
	metrics  metrics.Recorder
}

// NewProfileService creates a new ProfileService.
func NewProfileService(store ProfileStore, recorder metrics.Recorder) *ProfileService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ProfileService{
		store:    store,
		validate: validator.New(),
		metrics:  recorder,
	}
}

// SubmitInput defines input for submitting a risk profile.
// Revenue is in thousands of US dollars, capped so the premium
// calculation stays inside int64.
type SubmitInput struct {
	CompanyName     string `validate:"required"`
	OwnerEmail      string `validate:"required,email"`
	Industry        string `validate:"required"`
	CompanySize     string `validate:"required"`
	Revenue         int64  `validate:"gte=0,lte=9000000000000"`
	IncidentHistory string `validate:"required"`
	RiskScale       string `validate:"required"`
	Coverage        string `validate:"required"`
}

// Submit validates and persists a new risk profile, then resolves its
// outcome. The record is saved even when classification finds no match:
// classification failure is soft, persistence is hard.
func (s *ProfileService) Submit(ctx context.Context, input SubmitInput) (*Outcome, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, validationDetail(err))
	}

	now := time.Now().UTC()
	profile := &model.RiskProfile{
		ID:              ulid.Make().String(),
		CompanyName:     strings.TrimSpace(input.CompanyName),
		OwnerEmail:      normalizeEmail(input.OwnerEmail),
		Industry:        strings.TrimSpace(input.Industry),
		CompanySize:     strings.TrimSpace(input.CompanySize),
		Revenue:         input.Revenue,
		IncidentHistory: strings.TrimSpace(input.IncidentHistory),
		RiskScale:       model.RiskScale(input.RiskScale),
		Coverage:        model.Coverage(input.Coverage),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.store.CreateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create risk profile: %w", err)
	}
	s.metrics.IncProfileCreated()

	outcome := s.resolveOutcome(profile)
	s.metrics.IncClassification(string(outcome.Kind))

	return outcome, nil
}

// resolveOutcome runs the classification and premium rules for a
// persisted profile. Consultation short-circuits classification.
func (s *ProfileService) resolveOutcome(profile *model.RiskProfile) *Outcome {
	premium := policy.Premium(profile.Revenue)

	if profile.Coverage == model.CoverageConsultation {
		return &Outcome{
			Kind:    OutcomeConsultation,
			Premium: premium,
			Profile: profile,
		}
	}

	bucket, ok := policy.Classify(profile.RiskScale, profile.Coverage)
	if !ok {
		return &Outcome{
			Kind:    OutcomeFallback,
			Premium: premium,
			Profile: profile,
		}
	}

	return &Outcome{
		Kind:    OutcomeBucket,
		Bucket:  bucket,
		Premium: premium,
		Profile: profile,
	}
}

// Get retrieves a risk profile by ID.
func (s *ProfileService) Get(ctx context.Context, id string) (*model.RiskProfile, error) {
	profile, err := s.store.GetProfileByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// MostRecent retrieves the most recently created profile across all
// owners. Global by design; the entered-data view is not user-scoped.
func (s *ProfileService) MostRecent(ctx context.Context) (*model.RiskProfile, error) {
	profile, err := s.store.MostRecentProfile(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// UpdateInput defines input for replacing a profile's mutable fields.
type UpdateInput struct {
	CompanyName     string `validate:"required"`
	OwnerEmail      string `validate:"required,email"`
	Industry        string `validate:"required"`
	CompanySize     string `validate:"required"`
	Revenue         int64  `validate:"gte=0,lte=9000000000000"`
	IncidentHistory string `validate:"required"`
	RiskScale       string `validate:"required"`
	Coverage        string `validate:"required"`
}

// Update replaces the mutable fields of an existing profile. It is a
// pure data mutation: classification and premium are not re-run here,
// they stay read-time concerns of the dashboard and outcome views.
func (s *ProfileService) Update(ctx context.Context, id string, input UpdateInput) (*model.RiskProfile, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, validationDetail(err))
	}

	existing, err := s.store.GetProfileByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	existing.CompanyName = strings.TrimSpace(input.CompanyName)
	existing.OwnerEmail = normalizeEmail(input.OwnerEmail)
	existing.Industry = strings.TrimSpace(input.Industry)
	existing.CompanySize = strings.TrimSpace(input.CompanySize)
	existing.Revenue = input.Revenue
	existing.IncidentHistory = strings.TrimSpace(input.IncidentHistory)
	existing.RiskScale = model.RiskScale(input.RiskScale)
	existing.Coverage = model.Coverage(input.Coverage)
	existing.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateProfile(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to update risk profile: %w", err)
	}
	s.metrics.IncProfileUpdated()

	return existing, nil
}

// normalizeEmail lowercases and trims an email address. Emails are
// compared case-insensitively throughout.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validationDetail flattens a validator error into a short message
// naming the offending fields.
func validationDetail(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return "missing or malformed: " + strings.Join(fields, ", ")
}
