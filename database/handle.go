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
	"reflect"

	"github.com/uptrace/bun"
)

// Handle is the typed data-access facade over the pool. It holds no mutable
// state of its own and is safe for concurrent use.
type Handle struct {
	db     *bun.DB
	pool   *Pool
	schema *Schema
}

// NewHandle binds a Bun database to pool and a snapshot of s. Later changes
// to s are not seen by the handle.
func NewHandle(pool *Pool, s *Schema) (*Handle, error) {
	if pool == nil || pool.DB() == nil {
		return nil, ErrNotInitialized
	}
	frozen := s.snapshot()

	db := bun.NewDB(pool.DB(), bunDialect(pool.Dialect()))
	for _, hook := range queryHooks(pool.Config(), pool.log()) {
		db.AddQueryHook(hook)
	}
	db.RegisterModel(frozen.Models()...)

	pool.log().Debug("Data handle created", "dialect", pool.Dialect(), "models", frozen.Len())
	return &Handle{db: db, pool: pool, schema: frozen}, nil
}

// DB is the Bun database for building queries against the schema.
func (h *Handle) DB() *bun.DB { return h.db }

func (h *Handle) Pool() *Pool { return h.pool }

func (h *Handle) Schema() *Schema { return h.schema }

// Tables lists the table names of the bound models in schema order.
func (h *Handle) Tables() []string {
	models := h.schema.Models()
	names := make([]string, 0, len(models))
	for _, m := range models {
		names = append(names, h.db.Table(reflect.TypeOf(m).Elem()).Name)
	}
	return names
}

func (h *Handle) CheckHealth(ctx context.Context) HealthResult {
	if h == nil {
		return HealthResult{Error: ErrNotInitialized.Error()}
	}
	return h.pool.CheckHealth(ctx)
}

func (h *Handle) Status(ctx context.Context) *HealthStatus {
	if h == nil {
		return &HealthStatus{Error: ErrNotInitialized.Error()}
	}
	return h.pool.Status(ctx)
}

// Close closes the underlying pool.
func (h *Handle) Close() error {
	if h == nil {
		return nil
	}
	return h.pool.Close()
}
