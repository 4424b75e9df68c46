// Package audit provides a best-effort append-only audit trail for the
// expiry jobs. The Recorder interface is the only dependency job code takes;
// MongoRecorder writes to the configured logs collection and Noop is used
// when audit logging is disabled.
package audit
