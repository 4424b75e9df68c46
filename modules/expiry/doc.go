// Package expiry enforces the time-based free-plan expiry policy.
//
// Two sequential batch jobs share the date-arithmetic policy and the
// paginated scan from pkg/batch: the warning job notifies free-plan
// accounts approaching expiry and marks them warned; the expiry job
// transitions accounts past expiry to free_expired, schedules media
// deletion and sends a best-effort notice. Item-level failures are
// isolated, job-level failures are swallowed, and a run always produces a
// summary with per-job counters.
package expiry
