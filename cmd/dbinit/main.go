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

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tomoncle/dbinit"
	"github.com/tomoncle/dbinit/utils"
)

var version = "dev"

type rootOptions struct {
	envFile  string
	logLevel string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "dbinit",
		Short: "Database connection bootstrap and health service",
		Long: `dbinit loads a .env file, validates DATABASE_URL and opens a pooled
connection to PostgreSQL, MySQL or SQLite.

  dbinit serve [--addr :8080]        Serve GET /api/health
  dbinit check [--format json|yaml]  Probe once and print the status`,
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "env file path (default ./.env)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override LOG_LEVEL")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newCheckCmd(opts),
	)
	return rootCmd
}

// bootstrap runs dbinit.Bootstrap with the global flags applied.
func (o *rootOptions) bootstrap() (*dbinit.Runtime, error) {
	var bopts []dbinit.Option
	if o.envFile != "" {
		bopts = append(bopts, dbinit.WithEnvFile(o.envFile))
	}
	rt, err := dbinit.Bootstrap(bopts...)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		utils.ConfigureLogLevel(o.logLevel)
	}
	return rt, nil
}
