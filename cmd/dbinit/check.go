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
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tomoncle/dbinit/database"
	"gopkg.in/yaml.v3"
)

var errNotConnected = errors.New("database not connected")

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Probe the database once and print the status",
		Long: `Probe the database once and print connectivity, latency and pool
statistics. Exits with status 1 when the database is unreachable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "json", "yaml", "text":
			default:
				return fmt.Errorf("unsupported format %q, expected json, yaml or text", format)
			}
			rt, err := opts.bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			st := rt.Status(cmd.Context())
			if err := writeStatus(cmd.OutOrStdout(), format, st); err != nil {
				return err
			}
			if !st.Connected {
				return errNotConnected
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: json, yaml or text")
	return cmd
}

func writeStatus(w io.Writer, format string, st *database.HealthStatus) error {
	switch format {
	case "text":
		printHumanStatus(w, st)
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(st); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(st)
}

func printHumanStatus(w io.Writer, st *database.HealthStatus) {
	state := color.GreenString("connected")
	if !st.Connected {
		state = color.RedString("unreachable")
	}
	tls := "strict"
	if st.RelaxedTLS {
		tls = "relaxed"
	}
	fmt.Fprintf(w, "database: %s\n", state)
	if st.Dialect != "" {
		fmt.Fprintf(w, "  Dialect:       %s\n", st.Dialect)
		fmt.Fprintf(w, "  Target:        %s\n", st.Target)
		fmt.Fprintf(w, "  TLS:           %s\n", tls)
	}
	fmt.Fprintf(w, "  Response time: %s\n", st.ResponseTime)
	fmt.Fprintf(w, "  Checked:       %s\n", humanize.Time(st.LastCheckTime))
	fmt.Fprintf(w, "  Connections:   open %d, in use %d, idle %d, waited %s times\n",
		st.Stats.OpenConns, st.Stats.InUse, st.Stats.Idle, humanize.Comma(st.Stats.WaitCount))
	if st.Error != "" {
		fmt.Fprintf(w, "  Error:         %s\n", st.Error)
	}
}
