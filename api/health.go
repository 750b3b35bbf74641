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

package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tomoncle/dbinit/database"
)

const (
	statusOK       = "ok"
	statusDegraded = "degraded"
)

// HealthChecker is satisfied by *database.Handle, *database.Pool and
// *dbinit.Runtime.
type HealthChecker interface {
	CheckHealth(ctx context.Context) database.HealthResult
}

// StatusReporter is the optional detailed form of HealthChecker.
type StatusReporter interface {
	Status(ctx context.Context) *database.HealthStatus
}

type healthResponse struct {
	Status   string                `json:"status"`
	Database database.HealthResult `json:"database"`
}

type HealthHandler struct {
	prober HealthChecker
}

func NewHealthHandler(prober HealthChecker) *HealthHandler {
	return &HealthHandler{prober: prober}
}

// Health answers 200 when the probe succeeds and 503 otherwise.
func (h *HealthHandler) Health(c *gin.Context) {
	res := h.check(c.Request.Context())
	if !res.Connected {
		c.JSON(http.StatusServiceUnavailable, healthResponse{Status: statusDegraded, Database: res})
		return
	}
	c.JSON(http.StatusOK, healthResponse{Status: statusOK, Database: res})
}

func (h *HealthHandler) Details(c *gin.Context) {
	reporter, ok := h.prober.(StatusReporter)
	if !ok {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "detailed status not available"})
		return
	}
	st := reporter.Status(c.Request.Context())
	code := http.StatusOK
	if !st.Connected {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, st)
}

func (h *HealthHandler) check(ctx context.Context) database.HealthResult {
	if h.prober == nil {
		return database.HealthResult{Error: database.ErrNotInitialized.Error()}
	}
	return h.prober.CheckHealth(ctx)
}
