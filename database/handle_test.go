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
	"github.com/uptrace/bun"
)

type testUser struct {
	bun.BaseModel `bun:"table:users"`

	ID   int64  `bun:"id,pk,autoincrement"`
	Name string `bun:"name,notnull"`
}

type auditEntry struct {
	ID     int64 `bun:"id,pk,autoincrement"`
	Action string
}

func TestSchemaRegister(t *testing.T) {
	s, err := NewSchema((*testUser)(nil), (*auditEntry)(nil), (*testUser)(nil))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	require.NoError(t, s.Register(&testUser{}))
	assert.Equal(t, 2, s.Len())

	assert.Error(t, s.Register(testUser{}))
	assert.Error(t, s.Register(nil))
	n := 1
	assert.Error(t, s.Register(&n))

	_, err = NewSchema("users")
	assert.Error(t, err)

	models := s.Models()
	models[0] = nil
	assert.NotNil(t, s.Models()[0])
}

func TestHandleCRUD(t *testing.T) {
	s, err := NewSchema((*testUser)(nil), (*auditEntry)(nil))
	require.NoError(t, err)

	h, err := Open(sqliteConfig(t), s)
	require.NoError(t, err)
	defer h.Close()

	assert.Equal(t, []string{"users", "audit_entries"}, h.Tables())

	ctx := context.Background()
	_, err = h.DB().NewCreateTable().Model((*testUser)(nil)).IfNotExists().Exec(ctx)
	require.NoError(t, err)

	u := &testUser{Name: "ada"}
	_, err = h.DB().NewInsert().Model(u).Exec(ctx)
	require.NoError(t, err)
	require.NotZero(t, u.ID)

	var got testUser
	require.NoError(t, h.DB().NewSelect().Model(&got).Where("id = ?", u.ID).Scan(ctx))
	assert.Equal(t, "ada", got.Name)

	assert.True(t, h.CheckHealth(ctx).Connected)
	assert.Equal(t, 0, h.Pool().Stats().InUse)
}

func TestHandleSchemaIsFrozen(t *testing.T) {
	s, err := NewSchema((*testUser)(nil))
	require.NoError(t, err)

	h, err := Open(sqliteConfig(t), s)
	require.NoError(t, err)
	defer h.Close()

	require.NoError(t, s.Register((*auditEntry)(nil)))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, h.Schema().Len())
	assert.Equal(t, []string{"users"}, h.Tables())
}

func TestHandleWithQueryHooks(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.EnableQueryLog = true
	cfg.SlowQueryTime = 1

	h, err := Open(cfg, nil)
	require.NoError(t, err)
	defer h.Close()

	assert.Empty(t, h.Tables())
	var n int
	require.NoError(t, h.DB().NewRaw("SELECT 1").Scan(context.Background(), &n))
	assert.Equal(t, 1, n)
}

func TestNilHandle(t *testing.T) {
	var h *Handle
	res := h.CheckHealth(context.Background())
	assert.False(t, res.Connected)
	assert.Equal(t, "database not initialized", res.Error)
	assert.NoError(t, h.Close())
}
