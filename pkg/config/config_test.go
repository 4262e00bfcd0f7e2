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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/nanojob/pkg/defaults"
	cnserrors "github.com/NVIDIA/nanojob/pkg/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvDefaultNamespace, EnvKubeconfig, EnvGPIOChip, EnvGPIOMinPin, EnvGPIOMaxPin,
		EnvSSHKeyPath, EnvSSHKnownHosts, EnvShutdownUsername, EnvShutdownCommand} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, defaults.Namespace, cfg.DefaultNamespace)
	assert.Empty(t, cfg.Kubeconfig)
	assert.Equal(t, "gpiochip0", cfg.GPIOChip)
	assert.Equal(t, 0, cfg.GPIOMinPin)
	assert.Equal(t, 27, cfg.GPIOMaxPin)
	assert.Equal(t, "/root/.ssh/id_ed25519", cfg.SSHKeyPath)
	assert.Empty(t, cfg.ShutdownUsername)
	assert.Equal(t, "sudo shutdown now", cfg.ShutdownCommand)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDefaultNamespace, "prompts")
	t.Setenv(EnvKubeconfig, "/etc/nanojob/kubeconfig")
	t.Setenv(EnvGPIOChip, "gpiochip1")
	t.Setenv(EnvGPIOMinPin, "2")
	t.Setenv(EnvGPIOMaxPin, "26")
	t.Setenv(EnvShutdownUsername, "jetson")
	t.Setenv(EnvShutdownCommand, "sudo poweroff")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "prompts", cfg.DefaultNamespace)
	assert.Equal(t, "/etc/nanojob/kubeconfig", cfg.Kubeconfig)
	assert.Equal(t, "gpiochip1", cfg.GPIOChip)
	assert.Equal(t, 2, cfg.GPIOMinPin)
	assert.Equal(t, 26, cfg.GPIOMaxPin)
	assert.Equal(t, "jetson", cfg.ShutdownUsername)
	assert.Equal(t, "sudo poweroff", cfg.ShutdownCommand)
}

func TestLoad_InvalidRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max string
	}{
		{"negative min", "-1", "27"},
		{"max below min", "10", "5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(EnvGPIOMinPin, tt.min)
			t.Setenv(EnvGPIOMaxPin, tt.max)

			_, err := Load()
			require.Error(t, err)
			assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeInvalidRequest))
		})
	}
}

func TestGetIntEnv(t *testing.T) {
	t.Setenv("NANOJOB_TEST_INT", "42")
	assert.Equal(t, 42, GetIntEnv("NANOJOB_TEST_INT", 1))

	t.Setenv("NANOJOB_TEST_INT", "forty-two")
	assert.Equal(t, 1, GetIntEnv("NANOJOB_TEST_INT", 1))

	t.Setenv("NANOJOB_TEST_INT", "")
	assert.Equal(t, 1, GetIntEnv("NANOJOB_TEST_INT", 1))
}

func TestGetFloatEnv(t *testing.T) {
	t.Setenv("NANOJOB_TEST_FLOAT", "2.5")
	assert.InDelta(t, 2.5, GetFloatEnv("NANOJOB_TEST_FLOAT", 1), 0.0001)

	t.Setenv("NANOJOB_TEST_FLOAT", "x")
	assert.InDelta(t, 1.0, GetFloatEnv("NANOJOB_TEST_FLOAT", 1), 0.0001)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("NANOJOB_TEST_STR", "")
	assert.Equal(t, "fallback", GetEnv("NANOJOB_TEST_STR", "fallback"))
	t.Setenv("NANOJOB_TEST_STR", "set")
	assert.Equal(t, "set", GetEnv("NANOJOB_TEST_STR", "fallback"))
}
