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
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var defaultSchema = newSchema()

// Schema is the ordered set of Bun models a Handle is bound to. Each model is
// a pointer to a struct, e.g. (*User)(nil).
type Schema struct {
	mu     sync.RWMutex
	models []interface{}
	types  map[reflect.Type]struct{}
}

// NewSchema returns a schema holding models.
func NewSchema(models ...interface{}) (*Schema, error) {
	s := newSchema()
	if err := s.Register(models...); err != nil {
		return nil, err
	}
	return s, nil
}

func newSchema() *Schema {
	return &Schema{types: make(map[reflect.Type]struct{})}
}

// Register appends models, ignoring types that are already present.
func (s *Schema) Register(models ...interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range models {
		typ, err := modelType(m)
		if err != nil {
			return err
		}
		if _, ok := s.types[typ]; ok {
			continue
		}
		s.types[typ] = struct{}{}
		s.models = append(s.models, m)
	}
	return nil
}

// Models returns a copy in registration order.
func (s *Schema) Models() []interface{} {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]interface{}, len(s.models))
	copy(out, s.models)
	return out
}

func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.models)
}

// snapshot is the immutable copy a Handle keeps. Models already passed
// validation, so they are copied as is.
func (s *Schema) snapshot() *Schema {
	out := newSchema()
	for _, m := range s.Models() {
		out.types[reflect.TypeOf(m).Elem()] = struct{}{}
		out.models = append(out.models, m)
	}
	return out
}

func modelType(model interface{}) (reflect.Type, error) {
	if model == nil {
		return nil, errors.New("schema model cannot be nil")
	}
	typ := reflect.TypeOf(model)
	if typ.Kind() != reflect.Ptr || typ.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema model must be a pointer to a struct, got %T", model)
	}
	return typ.Elem(), nil
}

// DefaultSchema is the process-wide schema filled by RegisterModel.
func DefaultSchema() *Schema {
	return defaultSchema
}

// RegisterModel adds models to DefaultSchema, typically from init functions
// of the packages that define them.
func RegisterModel(models ...interface{}) error {
	return defaultSchema.Register(models...)
}
