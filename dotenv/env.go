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
	"os"
	"sort"
	"sync"
)

// LookupFunc reports the value of key and whether it is present.
type LookupFunc func(key string) (string, bool)

// Environment is the key/value set the loader writes into.
type Environment interface {
	LookupEnv(key string) (string, bool)
	Setenv(key, value string) error
}

type osEnv struct{}

func (osEnv) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }

func (osEnv) Setenv(key, value string) error { return os.Setenv(key, value) }

// OS returns the process environment.
func OS() Environment { return osEnv{} }

// MapEnv is an in-memory Environment, safe for concurrent use.
type MapEnv struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewMapEnv returns a MapEnv seeded with a copy of vars.
func NewMapEnv(vars map[string]string) *MapEnv {
	m := &MapEnv{vars: make(map[string]string, len(vars))}
	for k, v := range vars {
		m.vars[k] = v
	}
	return m
}

func (m *MapEnv) LookupEnv(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vars[key]
	return v, ok
}

func (m *MapEnv) Setenv(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.vars == nil {
		m.vars = make(map[string]string)
	}
	m.vars[key] = value
	return nil
}

// Keys returns the sorted key set.
func (m *MapEnv) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.vars))
	for k := range m.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Pending returns the entries that would be applied on top of lookup: keys
// already present are dropped, and within the file the first occurrence of a
// key wins.
func Pending(entries []Entry, lookup LookupFunc) []Entry {
	seen := make(map[string]struct{}, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.Key]; dup {
			continue
		}
		seen[e.Key] = struct{}{}
		if _, exists := lookup(e.Key); exists {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Resolve merges the file layer under base and returns a new map. Neither
// argument is modified and no global state is read.
func Resolve(entries []Entry, base map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(entries))
	for k, v := range base {
		merged[k] = v
	}
	lookup := func(key string) (string, bool) {
		v, ok := base[key]
		return v, ok
	}
	for _, e := range Pending(entries, lookup) {
		merged[e.Key] = e.Value
	}
	return merged
}
