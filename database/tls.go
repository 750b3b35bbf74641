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

import "strings"

const (
	// HostedProviderMarker identifies Supabase-hosted databases.
	HostedProviderMarker = "supabase"
	// PoolerPortMarker is the Supabase connection pooler port.
	PoolerPortMarker = ":6543"
)

// relaxedTLSMarkers enumerates every case that gets unverified TLS. Any other
// host that needs it must be added here explicitly.
var relaxedTLSMarkers = []string{
	HostedProviderMarker,
	PoolerPortMarker,
}

// TLSPolicy decides how the server certificate is treated. The zero value is
// strict: the driver's default transport security is used untouched.
type TLSPolicy struct {
	// RelaxedVerification encrypts traffic without validating the server
	// certificate chain.
	RelaxedVerification bool
	// Marker is the substring that triggered relaxed verification.
	Marker string
}

// Mode is "relaxed" or "strict".
func (p TLSPolicy) Mode() string {
	if p.RelaxedVerification {
		return "relaxed"
	}
	return "strict"
}

// SelectTLSPolicy inspects the connection string text only; it does no I/O.
func SelectTLSPolicy(connectionString string) TLSPolicy {
	for _, marker := range relaxedTLSMarkers {
		if strings.Contains(connectionString, marker) {
			return TLSPolicy{RelaxedVerification: true, Marker: marker}
		}
	}
	return TLSPolicy{}
}
