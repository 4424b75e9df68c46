package audit

import (
	"fmt"
	"time"
)

// Action tags the kind of state change an entry records.
type Action string

const (
	ActionWarningSent Action = "warning_sent"
	ActionPlanExpired Action = "plan_expired"
)

// Entry represents a single append-only audit record. One entry is written
// per state-changing action.
type Entry struct {
	ID        string    `bson:"_id" json:"id"`
	Function  string    `bson:"function" json:"function"`
	Action    Action    `bson:"action" json:"action"`
	AccountID string    `bson:"account_id" json:"account_id"`
	Detail    string    `bson:"detail,omitempty" json:"detail,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Validate checks that the entry has all required fields.
func (e *Entry) Validate() error {
	if e.Function == "" {
		return fmt.Errorf("%w: function is required", ErrEntryValidation)
	}
	if e.Action == "" {
		return fmt.Errorf("%w: action is required", ErrEntryValidation)
	}
	if e.AccountID == "" {
		return fmt.Errorf("%w: account id is required", ErrEntryValidation)
	}
	return nil
}
