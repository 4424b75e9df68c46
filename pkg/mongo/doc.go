// Package mongo provides a configured MongoDB client factory with bounded
// connection retries and a readiness healthcheck. Configuration comes from
// MONGODB_* environment variables via pkg/config.
package mongo
