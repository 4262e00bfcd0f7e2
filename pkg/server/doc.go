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

// Package server is the HTTP server shared by nanojobd routes.
//
// It wraps net/http with a standard middleware chain and system endpoints:
//
//   - Rate limiting using token bucket algorithm (golang.org/x/time/rate)
//   - Request ID tracking (X-Request-Id, UUID)
//   - Panic recovery
//   - Prometheus RED metrics, exposed at GET /metrics
//   - API version negotiation via the Accept header
//   - Graceful shutdown on SIGINT/SIGTERM
//   - Health and readiness probes for Kubernetes and systemd
//
// # Usage
//
//	s := server.New(
//	    server.WithName("nanojobd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "GET /api/v1/jobs/{name}": manager.HandleGet,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Handler keys are ServeMux patterns, so method and path wildcards are
// matched by the standard library and a wrong method yields 405.
//
// # System Endpoints
//
//	GET /health   always 200 {"status": "healthy"}
//	GET /ready    200 once the listener is bound, 503 during startup and shutdown
//	GET /metrics  Prometheus exposition
//	GET /         service name, version and registered routes
//
// # Errors
//
// Handlers report failures with WriteErrorFromErr, which maps the
// pkg/errors code to a status:
//
//	INVALID_REQUEST, INVALID_PIN                       400
//	NOT_FOUND                                          404
//	ALREADY_EXISTS                                     409
//	RATE_LIMIT_EXCEEDED                                429
//	CLIENT_/UPSTREAM_/HARDWARE_UNAVAILABLE             503
//	TIMEOUT                                            504
//	anything else                                      500
//
// The body is always:
//
//	{
//	  "code": "NOT_FOUND",
//	  "message": "job \"hello-nano\" not found in namespace \"default\"",
//	  "details": {"job": "hello-nano", "namespace": "default"},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-11-03T12:00:00Z",
//	  "retryable": false
//	}
//
// # Configuration
//
// PORT (8080), RATE_LIMIT (100/s), RATE_LIMIT_BURST (200) and
// SHUTDOWN_TIMEOUT_SECONDS are read from the environment by NewConfig.
package server
