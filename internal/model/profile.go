// Package model defines domain entities for the application.
package model

import "time"

// RiskScale is the declared risk bucket on a submitted profile.
type RiskScale string

const (
	RiskLow    RiskScale = "low"
	RiskMedium RiskScale = "medium"
	RiskHigh   RiskScale = "high"
)

// IsValid checks if the risk scale is one of the known buckets.
func (s RiskScale) IsValid() bool {
	return s == RiskLow || s == RiskMedium || s == RiskHigh
}

// Coverage is the applicant's coverage selection.
type Coverage string

const (
	CoverageSoftware     Coverage = "software"
	CoverageHardware     Coverage = "hardware"
	CoverageCombined     Coverage = "software_hardware"
	CoverageConsultation Coverage = "consultation"
)

// IsValid checks if the coverage selection is a known value.
func (c Coverage) IsValid() bool {
	switch c {
	case CoverageSoftware, CoverageHardware, CoverageCombined, CoverageConsultation:
		return true
	}
	return false
}

// PolicyBucket names the insurance product category resolved from
// a (risk scale, coverage) pair.
type PolicyBucket string

const (
	BucketSoftwareLow    PolicyBucket = "software-low"
	BucketSoftwareMedium PolicyBucket = "software-medium"
	BucketSoftwareHigh   PolicyBucket = "software-high"
	BucketHardwareLow    PolicyBucket = "hardware-low"
	BucketHardwareMedium PolicyBucket = "hardware-medium"
	BucketHardwareHigh   PolicyBucket = "hardware-high"
	BucketCombinedLow    PolicyBucket = "combined-low"
	BucketCombinedMedium PolicyBucket = "combined-medium"
	BucketCombinedHigh   PolicyBucket = "combined-high"
)

// RiskProfile represents one submitted company risk assessment.
// Revenue is stored in thousands of US dollars.
type RiskProfile struct {
	ID              string    `json:"id"`
	CompanyName     string    `json:"company_name"`
	OwnerEmail      string    `json:"owner_email"`
	Industry        string    `json:"industry"`
	CompanySize     string    `json:"company_size"`
	Revenue         int64     `json:"revenue"`
	IncidentHistory string    `json:"incident_history"`
	RiskScale       RiskScale `json:"risk_scale"`
	Coverage        Coverage  `json:"coverage"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
