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
	"fmt"
	"time"
)

const probeQuery = "SELECT 1"

// Probe borrows a connection, runs a side-effect free query and gives the
// connection back regardless of the outcome.
func (p *Pool) Probe(ctx context.Context) error {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return &ConnectivityError{Op: "acquire", Err: err}
	}
	defer func() {
		if rerr := p.Release(conn); rerr != nil {
			p.log().Warn("Failed to release probe connection", "error", rerr)
		}
	}()

	var one int
	if err := conn.QueryRowContext(ctx, probeQuery).Scan(&one); err != nil {
		return &ConnectivityError{Op: "query", Err: err}
	}
	return nil
}

// CheckHealth never fails: every error, including a panic inside the driver,
// is reported through the returned HealthResult.
func (p *Pool) CheckHealth(ctx context.Context) (result HealthResult) {
	defer func() {
		if r := recover(); r != nil {
			msg := Redact(fmt.Sprintf("database health check panicked: %v", r))
			p.log().Error("Database health check failed", "error", msg)
			result = HealthResult{Connected: false, Error: msg}
		}
	}()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := p.Probe(ctx); err != nil {
		p.log().Error("Database health check failed", "error", err.Error())
		return HealthResult{Connected: false, Error: err.Error()}
	}
	return HealthResult{Connected: true}
}

// Status runs CheckHealth and adds latency and pool statistics.
func (p *Pool) Status(ctx context.Context) *HealthStatus {
	start := time.Now()
	res := p.CheckHealth(ctx)
	status := &HealthStatus{
		Connected:     res.Connected,
		Error:         res.Error,
		ResponseTime:  time.Since(start),
		LastCheckTime: start,
	}
	if p != nil {
		status.Dialect = p.dialect
		status.Target = p.target
		status.RelaxedTLS = p.policy.RelaxedVerification
		status.Stats = p.Stats()
	}
	return status
}
