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

package dbinit

import (
	"context"
	"fmt"

	"github.com/tomoncle/dbinit/database"
	"github.com/tomoncle/dbinit/dotenv"
	"github.com/tomoncle/dbinit/utils"
)

type options struct {
	envFile string
	env     dotenv.Environment
	schema  *database.Schema
}

// Option customizes Bootstrap.
type Option func(*options)

// WithEnvFile reads path instead of .env in the working directory.
func WithEnvFile(path string) Option {
	return func(o *options) { o.envFile = path }
}

// WithEnvironment loads into and reads from env instead of the process
// environment.
func WithEnvironment(env dotenv.Environment) Option {
	return func(o *options) { o.env = env }
}

// WithSchema binds the handle to s instead of database.DefaultSchema().
func WithSchema(s *database.Schema) Option {
	return func(o *options) { o.schema = s }
}

// Runtime is what Bootstrap built.
type Runtime struct {
	Config    *database.ConnectionConfig
	Handle    *database.Handle
	EnvResult dotenv.Result
}

// Bootstrap loads the env file, validates the database configuration and
// initializes the process-wide handle. A *database.ConfigurationError is
// returned before any pool is constructed.
func Bootstrap(opts ...Option) (*Runtime, error) {
	o := &options{schema: database.DefaultSchema()}
	for _, opt := range opts {
		opt(o)
	}

	useOS := o.env == nil
	if useOS {
		o.env = dotenv.OS()
	}
	path := o.envFile
	if path == "" {
		path = dotenv.DefaultPath()
	}
	envResult := dotenv.LoadFile(path, o.env)

	if useOS {
		utils.ConfigureFromEnv()
	} else if lvl, ok := o.env.LookupEnv("LOG_LEVEL"); ok {
		utils.ConfigureLogLevel(lvl)
	}

	cfg, err := database.ConfigFromEnv(o.env.LookupEnv)
	if err != nil {
		return nil, err
	}
	h, err := database.InitDB(cfg, o.schema)
	if err != nil {
		return nil, fmt.Errorf("bootstrap database: %w", err)
	}
	return &Runtime{Config: cfg, Handle: h, EnvResult: envResult}, nil
}

// CheckHealth probes the database. It never fails; see HealthResult.Error.
func (r *Runtime) CheckHealth(ctx context.Context) database.HealthResult {
	return r.Handle.CheckHealth(ctx)
}

// Status is CheckHealth with timing and pool statistics.
func (r *Runtime) Status(ctx context.Context) *database.HealthStatus {
	return r.Handle.Status(ctx)
}

// Close releases the process-wide handle so Bootstrap can run again.
func (r *Runtime) Close() error {
	return database.CloseDB()
}
