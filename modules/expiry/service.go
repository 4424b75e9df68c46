package expiry

import (
	"context"
	"log/slog"
	"time"

	"github.com/thebigday/planexpiry/pkg/audit"
	"github.com/thebigday/planexpiry/pkg/email"
	"github.com/thebigday/planexpiry/pkg/identity"
	"github.com/thebigday/planexpiry/pkg/logger"
	"github.com/thebigday/planexpiry/pkg/template"
)

// auditFunction tags every audit entry this module writes.
const auditFunction = "plan-expiry"

// Service runs the two plan-expiry batch jobs sequentially: the warning job
// to completion, then the expiry job to completion. A job-level failure is
// logged and swallowed; it shows up only as lower counts in the summary.
type Service struct {
	store     AccountStore
	directory identity.Directory
	sender    email.EmailSender
	resolver  template.Resolver
	recorder  audit.Recorder
	cfg       Config
	log       *slog.Logger
	now       func() time.Time
}

// Option configures optional Service settings.
type Option func(*Service)

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides the time source. Used in tests to pin "now".
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates the plan-expiry service. Panics if a required
// dependency is nil so a miswired deployment fails at startup. A nil
// recorder disables audit logging.
func NewService(
	store AccountStore,
	directory identity.Directory,
	sender email.EmailSender,
	resolver template.Resolver,
	recorder audit.Recorder,
	cfg Config,
	opts ...Option,
) *Service {
	if store == nil {
		panic("expiry: AccountStore is required")
	}
	if directory == nil {
		panic("expiry: identity.Directory is required")
	}
	if sender == nil {
		panic("expiry: email.EmailSender is required")
	}
	if resolver == nil {
		panic("expiry: template.Resolver is required")
	}
	if recorder == nil {
		recorder = audit.Noop{}
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.TemplateLang == "" {
		cfg.TemplateLang = "en"
	}

	s := &Service{
		store:     store,
		directory: directory,
		sender:    sender,
		resolver:  resolver,
		recorder:  recorder,
		cfg:       cfg,
		log:       slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes one full pass: warning job, then expiry job. It always
// returns a summary; callers inspect the counters, not an error, to detect
// a degraded run.
func (s *Service) Run(ctx context.Context) Summary {
	now := s.now()
	var summary Summary

	warned, warnErrs, err := s.runWarningJob(ctx, now)
	summary.Warned = warned
	summary.Errors += warnErrs
	if err != nil {
		s.log.ErrorContext(ctx, "warning job aborted", logger.Job(jobWarning), logger.Error(err))
	}

	expired, expireErrs, err := s.runExpiryJob(ctx, now)
	summary.Expired = expired
	summary.Errors += expireErrs
	if err != nil {
		s.log.ErrorContext(ctx, "expiry job aborted", logger.Job(jobExpiry), logger.Error(err))
	}

	summary.Timestamp = s.now().UTC()
	s.log.InfoContext(ctx, "plan expiry run finished",
		slog.Int("warned", summary.Warned),
		slog.Int("expired", summary.Expired),
		slog.Int("errors", summary.Errors),
	)
	return summary
}

// resolveTemplate looks up a notification template, treating lookup failure
// the same as absence. Both jobs proceed without the email in either case.
func (s *Service) resolveTemplate(ctx context.Context, name string, log *slog.Logger) *template.Template {
	tpl, err := s.resolver.Resolve(ctx, name, s.cfg.TemplateLang)
	if err != nil {
		log.ErrorContext(ctx, "template lookup failed, emails will be skipped",
			slog.String("template", name), logger.Error(err))
		return nil
	}
	if tpl == nil {
		log.WarnContext(ctx, "template not found, emails will be skipped",
			slog.String("template", name))
	}
	return tpl
}

// record appends an audit entry. Audit writes are best-effort: a failure is
// logged and never affects counts or control flow.
func (s *Service) record(ctx context.Context, entry audit.Entry, log *slog.Logger) {
	entry.Function = auditFunction
	if err := s.recorder.Record(ctx, entry); err != nil {
		log.ErrorContext(ctx, "audit write failed",
			logger.AccountID(entry.AccountID), logger.Error(err))
	}
}
