/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
)

// Pool owns the process's single *sql.DB. Callers borrow connections for one
// operation and give them back; they never keep them.
type Pool struct {
	db      *sql.DB
	config  ConnectionConfig
	dialect Dialect
	policy  TLSPolicy
	target  string
	logger  Logger

	mu     sync.RWMutex
	closed bool
}

// OpenPool validates cfg, selects the TLS policy from the connection string
// and constructs the pool. No connection is opened yet.
func OpenPool(cfg *ConnectionConfig) (*Pool, error) {
	if cfg == nil {
		return nil, errors.New("database configuration cannot be empty")
	}
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, &ConfigurationError{Variable: EnvDatabaseURL}
	}
	dialect, err := DetectDialect(cfg.URL)
	if err != nil {
		return nil, err
	}
	policy := SelectTLSPolicy(cfg.URL)
	logger := GetLogger()
	if dialect == DialectSQLite && policy.RelaxedVerification {
		logger.Debug("TLS policy ignored for sqlite", "marker", policy.Marker)
	}

	db, err := openSQLDB(cfg, dialect, policy)
	if err != nil {
		return nil, err
	}
	p := &Pool{
		db:      db,
		config:  *cfg,
		dialect: dialect,
		policy:  policy,
		target:  Redact(cfg.URL),
		logger:  logger,
	}
	logger.Info("Database pool created", "dialect", dialect, "target", p.target, "tls", policy.Mode())
	return p, nil
}

// Acquire borrows one connection. It blocks while the pool is exhausted,
// subject to ctx and the driver's own timeouts. Every successful Acquire
// must be paired with exactly one Release.
func (p *Pool) Acquire(ctx context.Context) (*sql.Conn, error) {
	if p == nil || p.db == nil {
		return nil, ErrNotInitialized
	}
	p.mu.RLock()
	closed := p.closed
	p.mu.RUnlock()
	if closed {
		return nil, ErrPoolClosed
	}
	return p.db.Conn(ctx)
}

// Release returns conn to the pool.
func (p *Pool) Release(conn *sql.Conn) error {
	if conn == nil {
		return nil
	}
	return conn.Close()
}

// WithConn runs fn on a borrowed connection and releases it on every exit
// path, including a panic in fn.
func (p *Pool) WithConn(ctx context.Context, fn func(ctx context.Context, conn *sql.Conn) error) (err error) {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := p.Release(conn); rerr != nil && err == nil {
			err = rerr
		}
	}()
	return fn(ctx, conn)
}

// DB exposes the underlying *sql.DB for collaborators such as Bun.
func (p *Pool) DB() *sql.DB {
	if p == nil {
		return nil
	}
	return p.db
}

func (p *Pool) Dialect() Dialect { return p.dialect }

func (p *Pool) TLSPolicy() TLSPolicy { return p.policy }

// Target is the connection string with credentials redacted.
func (p *Pool) Target() string { return p.target }

// Config returns a copy of the configuration the pool was built from.
func (p *Pool) Config() ConnectionConfig { return p.config }

func (p *Pool) Stats() DBStats {
	if p == nil || p.db == nil {
		return DBStats{}
	}
	s := p.db.Stats()
	return DBStats{
		MaxOpenConns:      s.MaxOpenConnections,
		OpenConns:         s.OpenConnections,
		InUse:             s.InUse,
		Idle:              s.Idle,
		WaitCount:         s.WaitCount,
		WaitDuration:      s.WaitDuration,
		MaxIdleClosed:     s.MaxIdleClosed,
		MaxIdleTimeClosed: s.MaxIdleTimeClosed,
		MaxLifetimeClosed: s.MaxLifetimeClosed,
	}
}

// Close shuts the pool down. Calling it more than once is a no-op.
func (p *Pool) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	err := p.db.Close()
	if err != nil {
		p.logger.Error("Failed to close database pool", "error", err)
	} else {
		p.logger.Info("Database pool closed", "target", p.target)
	}
	return err
}

func (p *Pool) log() Logger {
	if p == nil || p.logger == nil {
		return GetLogger()
	}
	return p.logger
}
