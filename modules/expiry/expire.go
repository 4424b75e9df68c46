package expiry

import (
	"context"
	"log/slog"
	"time"

	"github.com/thebigday/planexpiry/pkg/audit"
	"github.com/thebigday/planexpiry/pkg/batch"
	"github.com/thebigday/planexpiry/pkg/email"
	"github.com/thebigday/planexpiry/pkg/logger"
	"github.com/thebigday/planexpiry/pkg/template"
)

const jobExpiry = "expiry"

// runExpiryJob transitions free-plan accounts past expiry to free_expired
// and schedules their media deletion.
//
// The state transition is unconditional and happens before any email
// attempt; notification is strictly best-effort and never gates or reverses
// the transition. Every transitioned account counts as expired regardless
// of email outcome.
func (s *Service) runExpiryJob(ctx context.Context, now time.Time) (expired, errs int, err error) {
	log := s.log.With(logger.Job(jobExpiry))

	tpl := s.resolveTemplate(ctx, s.cfg.ExpiredTemplate, log)
	cutoff := ExpiryCutoff(now)
	deleteAt := MediaDeleteAt(now)

	fetch := func(ctx context.Context, limit, offset int) ([]Account, error) {
		return s.store.FindExpiryCandidates(ctx, cutoff, limit, offset)
	}

	scanErr := batch.Scan(ctx, s.cfg.BatchSize, fetch, func(ctx context.Context, acc Account) error {
		if markErr := s.store.MarkExpired(ctx, acc.ID, deleteAt); markErr != nil {
			errs++
			log.ErrorContext(ctx, "failed to expire account",
				logger.AccountID(acc.ID), logger.Error(markErr))
			return nil
		}

		s.record(ctx, audit.Entry{
			Action:    audit.ActionPlanExpired,
			AccountID: acc.ID,
			Detail:    "media deletion scheduled for " + FormatLongDate(deleteAt),
		}, log)

		s.sendExpiryNotice(ctx, tpl, acc.ID, log)

		expired++
		return nil
	})

	return expired, errs, scanErr
}

// sendExpiryNotice delivers the expiry notification if a template exists
// and the account has an email address. Any failure here is logged only:
// the transition has already been persisted and counted.
func (s *Service) sendExpiryNotice(ctx context.Context, tpl *template.Template, accountID string, log *slog.Logger) {
	if tpl == nil {
		return
	}

	id, err := s.directory.Lookup(ctx, accountID)
	if err != nil {
		log.ErrorContext(ctx, "identity lookup failed after expiry",
			logger.AccountID(accountID), logger.Error(err))
		return
	}
	if !id.HasEmail() {
		return
	}

	subject, body := tpl.Render(map[string]string{
		"name":       id.DisplayName(),
		"upgradeUrl": s.cfg.UpgradeURL(),
	})
	sendParams := email.SendEmailParams{
		SendTo:   id.Email,
		Subject:  subject,
		BodyHTML: body,
		Tag:      s.cfg.ExpiredTemplate,
	}
	if err := s.sender.SendEmail(ctx, sendParams); err != nil {
		log.ErrorContext(ctx, "expiry email failed",
			logger.AccountID(accountID), logger.Error(err))
	}
}
