// Package email defines the outbound email port used by the expiry jobs and
// its two implementations: a Postmark transactional client for deployments
// and a file-writing dev sender for local runs.
//
// All messages are HTML-only, sent from a single verified identity to a
// single recipient.
package email
