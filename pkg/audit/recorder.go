package audit

import "context"

// Recorder is the audit trail port. Implementations append one record per
// call; callers decide whether a write failure matters (the expiry jobs
// treat it as best-effort and only log it).
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// Noop discards every entry. Used when no logs collection is configured.
type Noop struct{}

func (Noop) Record(context.Context, Entry) error { return nil }
