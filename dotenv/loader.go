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

package dotenv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/tomoncle/dbinit/utils"
)

// DefaultFile is resolved against the working directory.
const DefaultFile = ".env"

// Warning reports a non-fatal problem with the override file. Loading never
// aborts startup; whatever environment already exists stays in effect.
type Warning struct {
	Path string
	Key  string
	Err  error
}

func (w *Warning) Error() string {
	if w.Key != "" {
		return fmt.Sprintf("env file %s: cannot set %s: %v", w.Path, w.Key, w.Err)
	}
	return fmt.Sprintf("env file %s: %v", w.Path, w.Err)
}

func (w *Warning) Unwrap() error { return w.Err }

// Result describes what a load did.
type Result struct {
	Path    string
	Found   bool
	Applied []string
	Skipped []string
	Warning error
}

// DefaultPath is DefaultFile in the working directory, or DefaultFile itself
// when the working directory cannot be determined.
func DefaultPath() string {
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, DefaultFile)
	}
	return DefaultFile
}

// Load reads DefaultPath into the process environment.
func Load() Result {
	return LoadFile(DefaultPath(), OS())
}

// LoadFile applies the assignments in path to env. A missing file is not an
// error. Read and write failures are logged and reported in Result.Warning.
func LoadFile(path string, env Environment) Result {
	res := Result{Path: path}
	logger := utils.NewLogger("DOTENV")

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return res
	}
	res.Found = true
	if err != nil {
		res.Warning = &Warning{Path: path, Err: err}
		logger.WithError(err).Warn("Failed to load env file")
		return res
	}
	defer func() { _ = f.Close() }()

	entries, err := Parse(f)
	if err != nil {
		res.Warning = &Warning{Path: path, Err: err}
		logger.WithError(err).Warn("Failed to load env file")
		return res
	}

	pending := Pending(entries, env.LookupEnv)
	applied := make(map[int]struct{}, len(pending))
	var failures []error
	for _, e := range pending {
		if err := env.Setenv(e.Key, e.Value); err != nil {
			failures = append(failures, &Warning{Path: path, Key: e.Key, Err: err})
			continue
		}
		applied[e.Line] = struct{}{}
		res.Applied = append(res.Applied, e.Key)
	}
	// Skipped is per line: a later duplicate of an applied key is listed too.
	for _, e := range entries {
		if _, ok := applied[e.Line]; !ok {
			res.Skipped = append(res.Skipped, e.Key)
		}
	}
	if len(failures) > 0 {
		res.Warning = errors.Join(failures...)
		logger.WithError(res.Warning).Warn("Some env file values were not applied")
	}

	logger.WithFields(logrus.Fields{
		"path":    path,
		"applied": len(res.Applied),
		"skipped": len(res.Skipped),
	}).Debug("Env file loaded")
	return res
}
