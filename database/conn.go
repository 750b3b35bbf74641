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
	"sync"

	"github.com/uptrace/bun"
)

var (
	globalMu     sync.Mutex
	globalHandle *Handle
)

// InitDB constructs the process-wide pool and handle. A second call returns
// the existing handle together with ErrAlreadyInitialized; nothing new is
// opened until CloseDB has run.
func InitDB(cfg *ConnectionConfig, s *Schema) (*Handle, error) {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalHandle != nil {
		return globalHandle, ErrAlreadyInitialized
	}
	h, err := Open(cfg, s)
	if err != nil {
		return nil, err
	}
	globalHandle = h
	return h, nil
}

func GetHandle() *Handle {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalHandle
}

func GetPool() *Pool {
	if h := GetHandle(); h != nil {
		return h.Pool()
	}
	return nil
}

// GetDB returns the global Bun database, or nil before InitDB.
func GetDB() *bun.DB {
	if h := GetHandle(); h != nil {
		return h.DB()
	}
	return nil
}

// CheckHealth probes the global pool.
func CheckHealth(ctx context.Context) HealthResult {
	return GetHandle().CheckHealth(ctx)
}

func GetHealthStatus(ctx context.Context) *HealthStatus {
	return GetHandle().Status(ctx)
}

// CloseDB closes the global pool and allows InitDB to run again.
func CloseDB() error {
	globalMu.Lock()
	h := globalHandle
	globalHandle = nil
	globalMu.Unlock()
	return h.Close()
}
