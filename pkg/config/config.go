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

package config

import (
	"fmt"

	"github.com/NVIDIA/nanojob/pkg/defaults"
	cnserrors "github.com/NVIDIA/nanojob/pkg/errors"
)

// Environment variables read by Load.
const (
	EnvDefaultNamespace = "DEFAULT_NAMESPACE"
	EnvKubeconfig       = "KUBECONFIG"
	EnvGPIOChip         = "GPIO_CHIP"
	EnvGPIOMinPin       = "GPIO_MIN_PIN"
	EnvGPIOMaxPin       = "GPIO_MAX_PIN"
	EnvSSHKeyPath       = "SSH_KEY_PATH"
	EnvSSHKnownHosts    = "SSH_KNOWN_HOSTS"
	EnvShutdownUsername = "SHUTDOWN_USERNAME"
	EnvShutdownCommand  = "SHUTDOWN_COMMAND"
)

// Config is the daemon's component configuration. HTTP listener settings
// live in server.Config.
type Config struct {
	DefaultNamespace string
	Kubeconfig       string
	GPIOChip         string
	GPIOMinPin       int
	GPIOMaxPin       int

	// Remote shutdown over SSH. An empty ShutdownUsername disables it.
	SSHKeyPath       string
	SSHKnownHosts    string
	ShutdownUsername string
	ShutdownCommand  string
}

// Load reads Config from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		DefaultNamespace: GetEnv(EnvDefaultNamespace, defaults.Namespace),
		Kubeconfig:       GetEnv(EnvKubeconfig, ""),
		GPIOChip:         GetEnv(EnvGPIOChip, defaults.GPIOChip),
		GPIOMinPin:       GetIntEnv(EnvGPIOMinPin, defaults.GPIOMinPin),
		GPIOMaxPin:       GetIntEnv(EnvGPIOMaxPin, defaults.GPIOMaxPin),
		SSHKeyPath:       GetEnv(EnvSSHKeyPath, defaults.SSHKeyPath),
		SSHKnownHosts:    GetEnv(EnvSSHKnownHosts, ""),
		ShutdownUsername: GetEnv(EnvShutdownUsername, ""),
		ShutdownCommand:  GetEnv(EnvShutdownCommand, defaults.ShutdownCommand),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the pin range is usable.
func (c *Config) Validate() error {
	if c.GPIOMinPin < 0 {
		return cnserrors.New(cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("%s must be non-negative, got %d", EnvGPIOMinPin, c.GPIOMinPin))
	}
	if c.GPIOMaxPin < c.GPIOMinPin {
		return cnserrors.New(cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("%s (%d) is below %s (%d)", EnvGPIOMaxPin, c.GPIOMaxPin, EnvGPIOMinPin, c.GPIOMinPin))
	}
	return nil
}
