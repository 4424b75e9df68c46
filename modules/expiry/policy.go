package expiry

import "time"

// Plan-expiry policy thresholds, in days. The warning cutoff is derived so
// that an account qualifies for a warning exactly WarningLeadDays before it
// qualifies for expiry.
const (
	PlanDurationDays  = 183
	WarningLeadDays   = 14
	WarningCutoffDays = PlanDurationDays - WarningLeadDays
	MediaGraceDays    = 183
)

// DefaultBatchSize is the page size for candidate scans.
const DefaultBatchSize = 100

// ExpiryDate returns the moment a free plan started at planStart expires.
func ExpiryDate(planStart time.Time) time.Time {
	return planStart.AddDate(0, 0, PlanDurationDays)
}

// WarningCutoff returns the latest plan-start for which an account already
// qualifies for a pre-expiry warning.
func WarningCutoff(now time.Time) time.Time {
	return now.AddDate(0, 0, -WarningCutoffDays)
}

// ExpiryCutoff returns the latest plan-start for which an account is already
// past expiry.
func ExpiryCutoff(now time.Time) time.Time {
	return now.AddDate(0, 0, -PlanDurationDays)
}

// MediaDeleteAt returns when media of an account expired at now becomes
// eligible for deletion.
func MediaDeleteAt(now time.Time) time.Time {
	return now.AddDate(0, 0, MediaGraceDays)
}

// FormatLongDate renders a timestamp as a long human-readable date for use
// in notification templates, e.g. "14 March 2026".
func FormatLongDate(t time.Time) string {
	return t.Format("2 January 2006")
}
