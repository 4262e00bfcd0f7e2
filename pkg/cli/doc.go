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

// Package cli implements the nanojob command-line tool.
//
// # Commands
//
//	nanojob job create NAME --image IMAGE [--label k=v] [--node-selector k=v] [--wait] [-- COMMAND...]
//	nanojob job get NAME
//	nanojob job list
//	nanojob job delete NAME
//	nanojob job exists NAME
//	nanojob job logs NAME
//	nanojob job wait NAME [--timeout 5m]
//	nanojob pulse PIN [--chip gpiochip0]
//	nanojob shutdown HOST ADDRESS [--user pi] [--key PATH] [--known-hosts PATH] [--command CMD]
//	nanojob version
//
// Job commands use the same manager as the nanojobd API, built from the
// --kubeconfig and --namespace flags. The pulse command drives local GPIO
// through the same backend selection as the daemon (character device first,
// then /dev/gpiomem). The shutdown command reads the same SSH_KEY_PATH,
// SHUTDOWN_USERNAME, SSH_KNOWN_HOSTS and SHUTDOWN_COMMAND variables as the
// daemon; flags override them.
//
// # Global Flags
//
//	--kubeconfig      Kubeconfig path (env KUBECONFIG)
//	--namespace, -n   Namespace for job commands (env DEFAULT_NAMESPACE, default "default")
//	--log-level       Log level: debug, info, warn, error (env LOG_LEVEL, default "warn")
//	--format, -o      Output format: table, json, yaml (default "table")
//
// # Exit Codes
//
//	0  Success
//	1  General error, including a Job that finished Failed
//	2  Timeout or interrupt
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/nanojob/pkg/cli.version=1.0.0'"
package cli
