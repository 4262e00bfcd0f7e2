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

// Package api provides the HTTP API layer for the nanojob daemon.
//
// This package is a thin wrapper around pkg/server. It wires the Job
// manager and the GPIO controller into application routes and hands the
// server lifecycle to pkg/server.
//
// # Usage
//
//	package main
//
//	import (
//	    "log"
//	    "github.com/NVIDIA/nanojob/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Endpoints
//
// Application endpoints (rate limited):
//   - POST   /api/v1/jobs               - Create a Job from a JSON spec
//   - GET    /api/v1/jobs               - List Jobs in a namespace
//   - GET    /api/v1/jobs/{name}        - Get Job status
//   - DELETE /api/v1/jobs/{name}        - Delete a Job and its pods
//   - GET    /api/v1/jobs/{name}/exists - Report whether a Job exists
//   - GET    /api/v1/jobs/{name}/logs   - Tail the logs of a Job's pod
//   - POST   /api/v1/nodes/{pin}        - Pulse a GPIO pin
//   - POST   /api/v1/nodes/shutdown/{host}/{address} - Shut a node down over SSH
//
// Job endpoints accept an optional "namespace" query parameter.
//
// System endpoints (no rate limiting):
//   - GET /health  - Liveness probe
//   - GET /ready   - Readiness probe
//   - GET /metrics - Prometheus metrics
//
// # Example
//
//	curl -X POST http://localhost:8080/api/v1/jobs \
//	  -H "Content-Type: application/json" \
//	  -d '{"name":"hello-nano","image":"busybox","command":["echo","Hello"]}'
//
// # Configuration
//
// Environment variables:
//   - PORT: HTTP server port (default: 8080)
//   - LOG_LEVEL: Logging level (debug, info, warn, error)
//   - DEFAULT_NAMESPACE: Namespace used when a request names none
//   - KUBECONFIG: Kubeconfig used when not running in a cluster
//   - GPIO_CHIP, GPIO_MIN_PIN, GPIO_MAX_PIN: GPIO chip and allowed pins
//   - SHUTDOWN_USERNAME: SSH login for remote shutdown (unset disables it)
//   - SSH_KEY_PATH: private key for remote shutdown (default: /root/.ssh/id_ed25519)
//   - SSH_KNOWN_HOSTS: known_hosts file; host keys are not checked when unset
//   - SHUTDOWN_COMMAND: command run on the node (default: sudo shutdown now)
//
// When started by systemd with Type=notify the daemon reports READY once
// the listener is bound and STOPPING on shutdown. A WatchdogSec on the unit
// enables periodic watchdog pings.
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/nanojob/pkg/api.version=1.0.0'"
package api
