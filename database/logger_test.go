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
	"bytes"
	"fmt"
	"runtime"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/tomoncle/dbinit/utils"
)

func TestDefaultLoggerReportsCallSite(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetReportCaller(true)
	l.SetFormatter(&utils.Log4jColorFormatter{LoggerName: "DATABASE", NameWidth: 10})

	NewDefaultLogger(l).Info("Database pool created", "dialect", DialectSQLite)
	_, _, line, _ := runtime.Caller(0)

	out := buf.String()
	assert.Contains(t, out, fmt.Sprintf(" logger_test.go:%d : Database pool created dialect=sqlite", line-1))
	assert.NotContains(t, out, " logger.go:")
}
