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
	"github.com/gin-gonic/gin"
	"github.com/tomoncle/dbinit/utils"
)

// NewRouter registers the health endpoints on a new gin engine.
func NewRouter(prober HealthChecker) *gin.Engine {
	logger := utils.NewLogger("HTTP")

	r := gin.New()
	r.Use(Recovery(logger), RequestLogger(logger))

	health := NewHealthHandler(prober)
	g := r.Group("/api")
	g.GET("/health", health.Health)
	g.GET("/health/details", health.Details)
	return r
}
