// Package database validates the connection string, derives the transport
// security policy from it, owns the single shared connection pool, binds a
// Bun data handle to a fixed schema and probes the pool for health.
package database
