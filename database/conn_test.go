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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDBOnce(t *testing.T) {
	t.Cleanup(func() { _ = CloseDB() })

	res := CheckHealth(context.Background())
	assert.Equal(t, HealthResult{Connected: false, Error: "database not initialized"}, res)
	assert.Nil(t, GetPool())
	assert.Nil(t, GetDB())

	h, err := InitDB(sqliteConfig(t), nil)
	require.NoError(t, err)
	assert.Same(t, h, GetHandle())
	assert.Same(t, h.Pool(), GetPool())

	again, err := InitDB(sqliteConfig(t), nil)
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
	assert.Same(t, h, again)

	assert.True(t, CheckHealth(context.Background()).Connected)
	assert.True(t, GetHealthStatus(context.Background()).Connected)

	require.NoError(t, CloseDB())
	assert.Nil(t, GetHandle())
	assert.False(t, CheckHealth(context.Background()).Connected)
	assert.NoError(t, CloseDB())
}

func TestInitDBFailureLeavesNothingBehind(t *testing.T) {
	_, err := InitDB(&ConnectionConfig{}, nil)
	assert.True(t, IsConfigurationError(err))
	assert.Nil(t, GetHandle())
}
