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
	"time"
)

// Dialect identifies the database engine behind a connection string.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
	DialectSQLite   Dialect = "sqlite"
)

// Postgres drivers selectable with DB_DRIVER.
const (
	DriverPgx = "pgx"
	DriverPq  = "pq"
)

// ConnectionConfig is the validated, immutable input to the pool.
type ConnectionConfig struct {
	URL            string        `json:"-" yaml:"-"`
	Driver         string        `json:"driver" yaml:"driver"`
	EnableQueryLog bool          `json:"enable_query_log" yaml:"enable_query_log"`
	SlowQueryTime  time.Duration `json:"slow_query_time" yaml:"slow_query_time"`
}

// HealthResult is produced fresh on every probe.
type HealthResult struct {
	Connected bool   `json:"connected" yaml:"connected"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

// HealthStatus extends HealthResult with timing and pool statistics.
type HealthStatus struct {
	Connected     bool          `json:"connected" yaml:"connected"`
	Error         string        `json:"error,omitempty" yaml:"error,omitempty"`
	Dialect       Dialect       `json:"dialect" yaml:"dialect"`
	Target        string        `json:"target" yaml:"target"`
	RelaxedTLS    bool          `json:"relaxed_tls" yaml:"relaxed_tls"`
	ResponseTime  time.Duration `json:"response_time" yaml:"response_time"`
	Stats         DBStats       `json:"stats" yaml:"stats"`
	LastCheckTime time.Time     `json:"last_check_time" yaml:"last_check_time"`
}

// Result drops the details.
func (s *HealthStatus) Result() HealthResult {
	return HealthResult{Connected: s.Connected, Error: s.Error}
}

// DBStats mirrors sql.DBStats.
type DBStats struct {
	MaxOpenConns      int           `json:"max_open_conns" yaml:"max_open_conns"`
	OpenConns         int           `json:"open_conns" yaml:"open_conns"`
	InUse             int           `json:"in_use" yaml:"in_use"`
	Idle              int           `json:"idle" yaml:"idle"`
	WaitCount         int64         `json:"wait_count" yaml:"wait_count"`
	WaitDuration      time.Duration `json:"wait_duration" yaml:"wait_duration"`
	MaxIdleClosed     int64         `json:"max_idle_closed" yaml:"max_idle_closed"`
	MaxIdleTimeClosed int64         `json:"max_idle_time_closed" yaml:"max_idle_time_closed"`
	MaxLifetimeClosed int64         `json:"max_lifetime_closed" yaml:"max_lifetime_closed"`
}
