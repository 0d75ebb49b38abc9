// Package policy holds the pure classification and premium rules.
// Nothing here touches storage or I/O; both functions are deterministic
// and never return errors, so callers can persist records regardless of
// whether classification succeeded.
package policy

import "github.com/coverguard/coverguard/internal/model"

// bucketKey identifies one cell of the classification table.
type bucketKey struct {
	Scale    model.RiskScale
	Coverage model.Coverage
}

// bucketTable maps (risk scale, coverage) to a policy bucket.
// Consultation coverage never reaches this table; the service layer
// short-circuits it before classification.
var bucketTable = map[bucketKey]model.PolicyBucket{
	{model.RiskLow, model.CoverageSoftware}:     model.BucketSoftwareLow,
	{model.RiskLow, model.CoverageHardware}:     model.BucketHardwareLow,
	{model.RiskLow, model.CoverageCombined}:     model.BucketCombinedLow,
	{model.RiskMedium, model.CoverageSoftware}:  model.BucketSoftwareMedium,
	{model.RiskMedium, model.CoverageHardware}:  model.BucketHardwareMedium,
	{model.RiskMedium, model.CoverageCombined}:  model.BucketCombinedMedium,
	{model.RiskHigh, model.CoverageSoftware}:    model.BucketSoftwareHigh,
	{model.RiskHigh, model.CoverageHardware}:    model.BucketHardwareHigh,
	{model.RiskHigh, model.CoverageCombined}:    model.BucketCombinedHigh,
}

// Classify resolves a policy bucket for the given risk scale and
// coverage selection. The second return value is false when the pair
// matches no cell of the table; callers fall back to a default outcome
// and still persist the record.
func Classify(scale model.RiskScale, coverage model.Coverage) (model.PolicyBucket, bool) {
	bucket, ok := bucketTable[bucketKey{Scale: scale, Coverage: coverage}]
	return bucket, ok
}
