// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package server provides the HTTP server behind the console API.
//
// API handlers are registered by mux pattern and wrapped with a fixed
// middleware chain:
//
//   - metrics: ccon_http_requests_total, ccon_http_request_duration_seconds
//     and ccon_http_requests_in_flight, labelled by route pattern
//   - API version negotiation via application/vnd.nvidia.ccon.v1+json
//   - request IDs: a valid X-Request-Id is kept, anything else replaced
//   - panic recovery into a 500 error envelope
//   - token bucket rate limiting (golang.org/x/time/rate)
//   - request logging through slog
//
// GET /health, GET /ready and GET /metrics bypass the chain.
//
// # Usage
//
//	s := server.New(
//		server.WithName("ccond"),
//		server.WithVersion(version),
//		server.WithHandler(map[string]http.HandlerFunc{
//			"GET /v1/kinds": handleKinds,
//		}),
//	)
//	if err := s.Run(ctx); err != nil {
//		return err
//	}
//
// # Configuration
//
// NewConfig starts from package defaults and reads PORT,
// SHUTDOWN_TIMEOUT_SECONDS and LIST_CACHE_TTL_SECONDS from the environment.
//
// # Errors
//
// Every error is written as ErrorResponse:
//
//	{
//	  "code": "NOT_FOUND",
//	  "message": "unknown resource kind",
//	  "details": {"kind": "widgets"},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-12-30T10:30:00Z",
//	  "retryable": false
//	}
//
// WriteErrorFromErr derives the status from the error code carried by a
// pkg/errors StructuredError.
package server
