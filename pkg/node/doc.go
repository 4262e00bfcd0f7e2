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

// Package node shuts down edge nodes by running a command on them over SSH.
//
// The Shutdowner authenticates with a single private key (SSH_KEY_PATH) as
// SHUTDOWN_USERNAME and starts SHUTDOWN_COMMAND, "sudo shutdown now" by
// default. Host keys are checked against SSH_KNOWN_HOSTS when it is set and
// accepted unconditionally otherwise.
//
//	s := node.NewShutdowner(node.WithUser("pi"), node.WithKeyPath("/etc/nanojob/id_ed25519"))
//	err := s.Shutdown(ctx, "nano-03", "10.0.0.13")
//
// Errors carry INVALID_REQUEST for an empty address or missing user,
// UPSTREAM_UNAVAILABLE when the node cannot be reached, and INTERNAL for key
// problems and non-zero exit statuses.
package node
