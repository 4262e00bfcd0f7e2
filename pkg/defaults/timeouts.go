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

package defaults

import "time"

// Handler timeouts for HTTP request processing.
const (
	// JobHandlerTimeout bounds a single job API request, covering the
	// round trip to the cluster API server.
	JobHandlerTimeout = 25 * time.Second
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Kubernetes timeouts for K8s API operations.
const (
	// K8sJobCompletionTimeout is the default timeout when waiting for a job to finish.
	K8sJobCompletionTimeout = 5 * time.Minute

	// K8sLogTailLines is the number of trailing log lines returned for a job pod.
	K8sLogTailLines int64 = 1000
)

// GPIO timing.
const (
	// GPIOPulseDuration is the fixed time a pin is held at the active level.
	GPIOPulseDuration = 300 * time.Millisecond
)

// Remote shutdown timeouts.
const (
	// SSHDialTimeout bounds connecting and authenticating to an edge node.
	SSHDialTimeout = 10 * time.Second

	// ShutdownCommandTimeout is how long the shutdown command may run before
	// it is treated as dispatched. A powering-off host rarely reports back.
	ShutdownCommandTimeout = 5 * time.Second
)

// CLI timeouts for command-line operations.
const (
	// CLIRequestTimeout bounds a single CLI call against the cluster API.
	CLIRequestTimeout = 30 * time.Second
)
