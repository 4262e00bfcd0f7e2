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

// Cluster defaults.
const (
	// Namespace is used when neither the request nor the configuration names one.
	Namespace = "default"
)

// GPIO defaults: the BCM numbering of the 40-pin header.
const (
	// GPIOChip is the character device probed when none is configured.
	GPIOChip = "gpiochip0"

	// GPIOMinPin and GPIOMaxPin bound the accepted pin numbers, inclusive.
	GPIOMinPin = 0
	GPIOMaxPin = 27
)

// Remote shutdown defaults.
const (
	// SSHKeyPath is the private key used to reach edge nodes.
	SSHKeyPath = "/root/.ssh/id_ed25519"

	// SSHPort is the port dialed when the address carries none.
	SSHPort = 22

	// ShutdownCommand is run on the edge node.
	ShutdownCommand = "sudo shutdown now"
)
