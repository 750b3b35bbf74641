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
	"os"
	"strconv"
	"strings"

	"github.com/tomoncle/dbinit/utils"
)

const (
	EnvDatabaseURL    = "DATABASE_URL"
	EnvDriver         = "DB_DRIVER"
	EnvEnableQueryLog = "DB_ENABLE_QUERY_LOG"
	EnvSlowQueryTime  = "DB_SLOW_QUERY_TIME"
)

// LookupFunc reports the value of an environment key and whether it is set.
type LookupFunc func(key string) (string, bool)

// RequireConnectionString returns the mandatory connection string or a
// ConfigurationError naming the variable when it is absent or empty.
func RequireConnectionString(lookup LookupFunc) (string, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	url, _ := lookup(EnvDatabaseURL)
	if strings.TrimSpace(url) == "" {
		return "", &ConfigurationError{Variable: EnvDatabaseURL}
	}
	return url, nil
}

// ConfigFromEnv builds the connection configuration from environment values.
// It fails before anything touches the network.
func ConfigFromEnv(lookup LookupFunc) (*ConnectionConfig, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	url, err := RequireConnectionString(lookup)
	if err != nil {
		return nil, err
	}
	cfg := &ConnectionConfig{URL: url, Driver: DriverPgx}

	if driver, ok := lookup(EnvDriver); ok && driver != "" {
		switch d := strings.ToLower(strings.TrimSpace(driver)); d {
		case DriverPgx, DriverPq:
			cfg.Driver = d
		default:
			return nil, &ConfigurationError{Variable: EnvDriver, Reason: "expected pgx or pq, got " + strconv.Quote(driver)}
		}
	}
	if v, ok := lookup(EnvEnableQueryLog); ok && v != "" {
		cfg.EnableQueryLog = v == "true" || v == "1"
	}
	if v, ok := lookup(EnvSlowQueryTime); ok && v != "" {
		d, err := utils.ParseDuration(v)
		if err != nil {
			return nil, &ConfigurationError{Variable: EnvSlowQueryTime, Reason: "not a duration", Err: err}
		}
		cfg.SlowQueryTime = d
	}
	return cfg, nil
}
