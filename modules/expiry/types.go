package expiry

import "time"

// Plan is a subscription tier. Only the free tier is subject to expiry.
type Plan string

const PlanFree Plan = "free"

// SubscriptionStatus is the lifecycle state of an account's subscription.
type SubscriptionStatus string

const (
	StatusActive      SubscriptionStatus = "active"
	StatusFreeExpired SubscriptionStatus = "free_expired"
	StatusArchived    SubscriptionStatus = "archived"
)

// Account is the slice of a user record this module reads and mutates.
// Records are created and otherwise maintained outside this service; the
// expiry jobs only ever set FreeExpiryWarnedAt and, on expiry, the
// subscription status together with DeleteMediaAt. The bson tags match the
// field names the user store was provisioned with.
type Account struct {
	ID                 string             `bson:"_id" json:"id"`
	Plan               Plan               `bson:"plan" json:"plan"`
	PlanStartedAt      time.Time          `bson:"planStartedAt" json:"plan_started_at"`
	SubscriptionStatus SubscriptionStatus `bson:"subscriptionStatus" json:"subscription_status"`
	FreeExpiryWarnedAt *time.Time         `bson:"freeExpiryWarnedAt,omitempty" json:"free_expiry_warned_at,omitempty"`
	DeleteMediaAt      *time.Time         `bson:"deleteMedia,omitempty" json:"delete_media_at,omitempty"`
}

// Summary is the result of one full run: both jobs' counters plus the
// completion timestamp. A degraded run is visible only through the
// counters, never through a failure status.
type Summary struct {
	Warned    int       `json:"warned"`
	Expired   int       `json:"expired"`
	Errors    int       `json:"errors"`
	Timestamp time.Time `json:"timestamp"`
}
