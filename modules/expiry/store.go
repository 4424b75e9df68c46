package expiry

import (
	"context"
	"time"
)

// AccountStore is the user-store port for the expiry jobs. The candidate
// queries embed the selection predicates, so an account mutated by
// MarkWarned or MarkExpired drops out of subsequent pages on its own.
type AccountStore interface {
	// FindWarningCandidates returns one page of free-plan accounts with
	// plan-start at or before cutoff that have not been warned yet.
	FindWarningCandidates(ctx context.Context, cutoff time.Time, limit, offset int) ([]Account, error)

	// FindExpiryCandidates returns one page of free-plan accounts with
	// plan-start at or before cutoff whose status is neither free_expired
	// nor archived.
	FindExpiryCandidates(ctx context.Context, cutoff time.Time, limit, offset int) ([]Account, error)

	// MarkWarned sets the account's freeExpiryWarnedAt timestamp.
	MarkWarned(ctx context.Context, accountID string, warnedAt time.Time) error

	// MarkExpired transitions the account to free_expired and schedules
	// media deletion.
	MarkExpired(ctx context.Context, accountID string, deleteMediaAt time.Time) error
}
