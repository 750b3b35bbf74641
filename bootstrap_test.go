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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/dbinit/database"
	"github.com/tomoncle/dbinit/dotenv"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestBootstrapFromEnvFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "app.db")
	envPath := writeEnvFile(t, "# local\nDATABASE_URL=\"sqlite://"+dbPath+"\"\nDB_SLOW_QUERY_TIME=1s\n")
	env := dotenv.NewMapEnv(nil)

	rt, err := Bootstrap(WithEnvFile(envPath), WithEnvironment(env))
	require.NoError(t, err)
	defer rt.Close()

	assert.True(t, rt.EnvResult.Found)
	assert.ElementsMatch(t, []string{"DATABASE_URL", "DB_SLOW_QUERY_TIME"}, rt.EnvResult.Applied)
	assert.Equal(t, "sqlite://"+dbPath, rt.Config.URL)
	assert.True(t, rt.CheckHealth(context.Background()).Connected)
	assert.Equal(t, database.DialectSQLite, rt.Status(context.Background()).Dialect)
}

func TestBootstrapPrefersExistingEnvironment(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "real.db")
	envPath := writeEnvFile(t, "DATABASE_URL=postgres://u:p@127.0.0.1:1/nope\n")
	env := dotenv.NewMapEnv(map[string]string{"DATABASE_URL": "sqlite://" + dbPath})

	rt, err := Bootstrap(WithEnvFile(envPath), WithEnvironment(env))
	require.NoError(t, err)
	defer rt.Close()

	assert.Equal(t, []string{"DATABASE_URL"}, rt.EnvResult.Skipped)
	assert.True(t, rt.CheckHealth(context.Background()).Connected)
}

func TestBootstrapMissingDatabaseURL(t *testing.T) {
	env := dotenv.NewMapEnv(nil)

	rt, err := Bootstrap(WithEnvFile(filepath.Join(t.TempDir(), "absent.env")), WithEnvironment(env))
	require.Error(t, err)
	assert.Nil(t, rt)
	assert.True(t, database.IsConfigurationError(err))
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Nil(t, database.GetHandle())
}

func TestBootstrapReadsWorkingDirectoryEnvFile(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "wd.db")
	require.NoError(t, os.WriteFile(filepath.Join(dir, dotenv.DefaultFile), []byte("DATABASE_URL=sqlite://"+dbPath+"\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("DATABASE_URL", "")
	require.NoError(t, os.Unsetenv("DATABASE_URL"))

	rt, err := Bootstrap()
	require.NoError(t, err)
	defer rt.Close()

	assert.Equal(t, dotenv.DefaultPath(), rt.EnvResult.Path)
	assert.Equal(t, "sqlite://"+dbPath, rt.Config.URL)
}
