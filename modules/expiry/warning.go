package expiry

import (
	"context"
	"time"

	"github.com/thebigday/planexpiry/pkg/audit"
	"github.com/thebigday/planexpiry/pkg/batch"
	"github.com/thebigday/planexpiry/pkg/email"
	"github.com/thebigday/planexpiry/pkg/logger"
)

const jobWarning = "warning"

// runWarningJob scans free-plan accounts approaching expiry that have not
// been warned, sends the warning email and marks them warned.
//
// An account with no email address on file is left unmarked so a later run
// retries once an address appears. An absent template suppresses the email
// but the account is still marked warned.
func (s *Service) runWarningJob(ctx context.Context, now time.Time) (warned, errs int, err error) {
	log := s.log.With(logger.Job(jobWarning))

	tpl := s.resolveTemplate(ctx, s.cfg.WarningTemplate, log)
	cutoff := WarningCutoff(now)

	fetch := func(ctx context.Context, limit, offset int) ([]Account, error) {
		return s.store.FindWarningCandidates(ctx, cutoff, limit, offset)
	}

	scanErr := batch.Scan(ctx, s.cfg.BatchSize, fetch, func(ctx context.Context, acc Account) error {
		expiresAt := ExpiryDate(acc.PlanStartedAt)

		// Already past expiry: the expiry job owns this account. Guards
		// against clock drift producing overlap between the two jobs.
		if !expiresAt.After(now) {
			return nil
		}

		id, lookupErr := s.directory.Lookup(ctx, acc.ID)
		if lookupErr != nil {
			errs++
			log.ErrorContext(ctx, "identity lookup failed",
				logger.AccountID(acc.ID), logger.Error(lookupErr))
			return nil
		}

		// No address on file: skip without marking, so the account is
		// picked up again once an email appears.
		if !id.HasEmail() {
			log.DebugContext(ctx, "no email on file, warning deferred",
				logger.AccountID(acc.ID))
			return nil
		}

		if tpl != nil {
			subject, body := tpl.Render(map[string]string{
				"name":       id.DisplayName(),
				"expiryDate": FormatLongDate(expiresAt),
				"upgradeUrl": s.cfg.UpgradeURL(),
			})
			sendErr := s.sender.SendEmail(ctx, email.SendEmailParams{
				SendTo:   id.Email,
				Subject:  subject,
				BodyHTML: body,
				Tag:      s.cfg.WarningTemplate,
			})
			if sendErr != nil {
				// Not marked, so the next run retries the send.
				errs++
				log.ErrorContext(ctx, "warning email failed",
					logger.AccountID(acc.ID), logger.Error(sendErr))
				return nil
			}
		}

		if markErr := s.store.MarkWarned(ctx, acc.ID, now); markErr != nil {
			errs++
			log.ErrorContext(ctx, "failed to mark account warned",
				logger.AccountID(acc.ID), logger.Error(markErr))
			return nil
		}

		s.record(ctx, audit.Entry{
			Action:    audit.ActionWarningSent,
			AccountID: acc.ID,
			Detail:    "free plan expires " + FormatLongDate(expiresAt),
		}, log)

		warned++
		return nil
	})

	return warned, errs, scanErr
}
