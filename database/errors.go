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
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrAlreadyInitialized = errors.New("database already initialized")
	ErrNotInitialized     = errors.New("database not initialized")
	ErrPoolClosed         = errors.New("database pool closed")
)

// ConfigurationError is fatal: the process must not start serving without a
// valid database target.
type ConfigurationError struct {
	Variable string
	Reason   string
	Err      error
}

func (e *ConfigurationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s must be set. For Supabase, copy the connection string from your "+
			"Supabase Dashboard → Settings → Database → Connection String (URI format).", e.Variable)
	}
	if e.Err != nil {
		return fmt.Sprintf("invalid %s: %s: %s", e.Variable, e.Reason, Redact(e.Err.Error()))
	}
	return fmt.Sprintf("invalid %s: %s", e.Variable, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// ConnectivityError wraps a failure to acquire a connection or run the probe
// query. It is recoverable and is reported as data by CheckHealth.
type ConnectivityError struct {
	Op  string // "acquire" or "query"
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("database %s failed: %s", e.Op, Redact(e.Err.Error()))
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// IsConfigurationError reports whether err carries a ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

var (
	credentialsPattern = regexp.MustCompile(`://[^@\s/]+@`)
	passwordPattern    = regexp.MustCompile(`(?i)(password=)([^\s&]+)`)
)

// Redact hides credentials embedded in connection strings or driver messages.
func Redact(s string) string {
	s = credentialsPattern.ReplaceAllString(s, "://***@")
	return passwordPattern.ReplaceAllString(s, "${1}***")
}
