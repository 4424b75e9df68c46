package expiry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/thebigday/planexpiry/modules/expiry"
	"github.com/thebigday/planexpiry/pkg/audit"
	"github.com/thebigday/planexpiry/pkg/email"
	"github.com/thebigday/planexpiry/pkg/identity"
)

func TestWarningJob(t *testing.T) {
	ctx := context.Background()

	t.Run("warns a qualifying account", func(t *testing.T) {
		f := newFixture(t)
		f.resolver.On("Resolve", mock.Anything, "free-expiry-warning", "en").Return(warningTemplate(), nil)
		f.resolver.On("Resolve", mock.Anything, "free-plan-expired", "en").Return(nil, nil)
		f.noExpiryCandidates()

		// Plan started 170 days ago: past the 169-day warning cutoff,
		// 13 days short of expiry.
		acc := expiry.Account{ID: "acc_a", Plan: expiry.PlanFree, PlanStartedAt: daysAgo(170), SubscriptionStatus: expiry.StatusActive}
		f.store.On("FindWarningCandidates", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return([]expiry.Account{acc}, nil).Once()
		f.dir.On("Lookup", mock.Anything, "acc_a").
			Return(identity.Identity{AccountID: "acc_a", Name: "Ada", Email: "ada@example.com"}, nil)
		f.sender.On("SendEmail", mock.Anything, mock.MatchedBy(func(p email.SendEmailParams) bool {
			return p.SendTo == "ada@example.com" &&
				p.Subject == "Ada, your free plan expires "+expiry.FormatLongDate(expiry.ExpiryDate(acc.PlanStartedAt))
		})).Return(nil)
		f.store.On("MarkWarned", mock.Anything, "acc_a", testNow).Return(nil)
		f.recorder.On("Record", mock.Anything, mock.MatchedBy(func(e audit.Entry) bool {
			return e.Action == audit.ActionWarningSent && e.AccountID == "acc_a"
		})).Return(nil)

		summary := f.svc.Run(ctx)

		assert.Equal(t, 1, summary.Warned)
		assert.Zero(t, summary.Errors)
		f.store.AssertExpectations(t)
		f.sender.AssertExpectations(t)
		f.recorder.AssertExpectations(t)
	})

	t.Run("skips accounts already past expiry", func(t *testing.T) {
		f := newFixture(t)
		f.resolver.On("Resolve", mock.Anything, "free-expiry-warning", "en").Return(warningTemplate(), nil)
		f.resolver.On("Resolve", mock.Anything, "free-plan-expired", "en").Return(nil, nil)
		f.noExpiryCandidates()

		// A stale candidate past the full plan duration belongs to the
		// expiry job: no email, no mutation, no counts.
		acc := expiry.Account{ID: "acc_stale", Plan: expiry.PlanFree, PlanStartedAt: daysAgo(184)}
		f.store.On("FindWarningCandidates", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return([]expiry.Account{acc}, nil).Once()

		summary := f.svc.Run(ctx)

		assert.Zero(t, summary.Warned)
		assert.Zero(t, summary.Errors)
		f.dir.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
		f.store.AssertNotCalled(t, "MarkWarned", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("identity lookup failure counts as error and continues", func(t *testing.T) {
		f := newFixture(t)
		f.resolver.On("Resolve", mock.Anything, "free-expiry-warning", "en").Return(warningTemplate(), nil)
		f.resolver.On("Resolve", mock.Anything, "free-plan-expired", "en").Return(nil, nil)
		f.noExpiryCandidates()

		failing := expiry.Account{ID: "acc_fail", Plan: expiry.PlanFree, PlanStartedAt: daysAgo(170)}
		fine := expiry.Account{ID: "acc_ok", Plan: expiry.PlanFree, PlanStartedAt: daysAgo(170)}
		f.store.On("FindWarningCandidates", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return([]expiry.Account{failing, fine}, nil).Once()
		f.dir.On("Lookup", mock.Anything, "acc_fail").Return(identity.Identity{}, assert.AnError)
		f.dir.On("Lookup", mock.Anything, "acc_ok").
			Return(identity.Identity{AccountID: "acc_ok", Email: "ok@example.com"}, nil)
		f.sender.On("SendEmail", mock.Anything, mock.Anything).Return(nil)
		f.store.On("MarkWarned", mock.Anything, "acc_ok", testNow).Return(nil)
		f.recorder.On("Record", mock.Anything, mock.Anything).Return(nil)

		summary := f.svc.Run(ctx)

		assert.Equal(t, 1, summary.Warned)
		assert.Equal(t, 1, summary.Errors)
		f.store.AssertNotCalled(t, "MarkWarned", mock.Anything, "acc_fail", mock.Anything)
	})

	t.Run("no email address defers the warning", func(t *testing.T) {
		f := newFixture(t)
		f.resolver.On("Resolve", mock.Anything, "free-expiry-warning", "en").Return(warningTemplate(), nil)
		f.resolver.On("Resolve", mock.Anything, "free-plan-expired", "en").Return(nil, nil)
		f.noExpiryCandidates()

		acc := expiry.Account{ID: "acc_noaddr", Plan: expiry.PlanFree, PlanStartedAt: daysAgo(170)}
		f.store.On("FindWarningCandidates", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return([]expiry.Account{acc}, nil).Once()
		f.dir.On("Lookup", mock.Anything, "acc_noaddr").
			Return(identity.Identity{AccountID: "acc_noaddr", Name: "Ada"}, nil)

		summary := f.svc.Run(ctx)

		// Not warned and not an error: the account stays unmarked so a
		// later run retries once an address appears.
		assert.Zero(t, summary.Warned)
		assert.Zero(t, summary.Errors)
		f.sender.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
		f.store.AssertNotCalled(t, "MarkWarned", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing template still marks warned", func(t *testing.T) {
		f := newFixture(t)
		f.noTemplates()
		f.noExpiryCandidates()

		acc := expiry.Account{ID: "acc_tpl", Plan: expiry.PlanFree, PlanStartedAt: daysAgo(170)}
		f.store.On("FindWarningCandidates", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return([]expiry.Account{acc}, nil).Once()
		f.dir.On("Lookup", mock.Anything, "acc_tpl").
			Return(identity.Identity{AccountID: "acc_tpl", Email: "tpl@example.com"}, nil)
		f.store.On("MarkWarned", mock.Anything, "acc_tpl", testNow).Return(nil)
		f.recorder.On("Record", mock.Anything, mock.Anything).Return(nil)

		summary := f.svc.Run(ctx)

		assert.Equal(t, 1, summary.Warned)
		assert.Zero(t, summary.Errors)
		f.sender.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
		f.store.AssertExpectations(t)
	})

	t.Run("send failure leaves account unmarked for retry", func(t *testing.T) {
		f := newFixture(t)
		f.resolver.On("Resolve", mock.Anything, "free-expiry-warning", "en").Return(warningTemplate(), nil)
		f.resolver.On("Resolve", mock.Anything, "free-plan-expired", "en").Return(nil, nil)
		f.noExpiryCandidates()

		acc := expiry.Account{ID: "acc_send", Plan: expiry.PlanFree, PlanStartedAt: daysAgo(170)}
		f.store.On("FindWarningCandidates", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return([]expiry.Account{acc}, nil).Once()
		f.dir.On("Lookup", mock.Anything, "acc_send").
			Return(identity.Identity{AccountID: "acc_send", Email: "send@example.com"}, nil)
		f.sender.On("SendEmail", mock.Anything, mock.Anything).Return(assert.AnError)

		summary := f.svc.Run(ctx)

		assert.Zero(t, summary.Warned)
		assert.Equal(t, 1, summary.Errors)
		f.store.AssertNotCalled(t, "MarkWarned", mock.Anything, mock.Anything, mock.Anything)
		f.recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	})

	t.Run("mark failure counts as error", func(t *testing.T) {
		f := newFixture(t)
		f.noTemplates()
		f.noExpiryCandidates()

		acc := expiry.Account{ID: "acc_mark", Plan: expiry.PlanFree, PlanStartedAt: daysAgo(170)}
		f.store.On("FindWarningCandidates", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return([]expiry.Account{acc}, nil).Once()
		f.dir.On("Lookup", mock.Anything, "acc_mark").
			Return(identity.Identity{AccountID: "acc_mark", Email: "mark@example.com"}, nil)
		f.store.On("MarkWarned", mock.Anything, "acc_mark", testNow).Return(assert.AnError)

		summary := f.svc.Run(ctx)

		assert.Zero(t, summary.Warned)
		assert.Equal(t, 1, summary.Errors)
		f.recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	})

	t.Run("audit failure does not affect counts", func(t *testing.T) {
		f := newFixture(t)
		f.noTemplates()
		f.noExpiryCandidates()

		acc := expiry.Account{ID: "acc_audit", Plan: expiry.PlanFree, PlanStartedAt: daysAgo(170)}
		f.store.On("FindWarningCandidates", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return([]expiry.Account{acc}, nil).Once()
		f.dir.On("Lookup", mock.Anything, "acc_audit").
			Return(identity.Identity{AccountID: "acc_audit", Email: "a@example.com"}, nil)
		f.store.On("MarkWarned", mock.Anything, "acc_audit", testNow).Return(nil)
		f.recorder.On("Record", mock.Anything, mock.Anything).Return(assert.AnError)

		summary := f.svc.Run(ctx)

		assert.Equal(t, 1, summary.Warned)
		assert.Zero(t, summary.Errors)
	})

	t.Run("full page triggers a second fetch", func(t *testing.T) {
		f := newFixture(t)
		f.noTemplates()
		f.noExpiryCandidates()

		// Exactly one full page of already-handled accounts: the scan
		// must issue a second fetch that comes back empty.
		page := make([]expiry.Account, 100)
		for i := range page {
			page[i] = expiry.Account{ID: "acc", Plan: expiry.PlanFree, PlanStartedAt: daysAgo(184)}
		}
		f.store.On("FindWarningCandidates", mock.Anything, mock.Anything, 100, 0).
			Return(page, nil).Once()
		f.store.On("FindWarningCandidates", mock.Anything, mock.Anything, 100, 100).
			Return([]expiry.Account{}, nil).Once()

		f.svc.Run(ctx)

		f.store.AssertExpectations(t)
	})
}
