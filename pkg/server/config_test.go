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

package server

import (
	"testing"
	"time"
)

func TestParseConfig(t *testing.T) {
	t.Run("default config", func(t *testing.T) {
		for _, k := range []string{EnvPort, EnvRateLimit, EnvRateLimitBurst, EnvShutdownTimeoutSeconds} {
			t.Setenv(k, "")
		}
		cfg := parseConfig()

		if cfg.Address != "" {
			t.Errorf("expected empty address, got %s", cfg.Address)
		}
		if cfg.Port != 8080 {
			t.Errorf("expected port 8080, got %d", cfg.Port)
		}
		if cfg.RateLimit != 100 {
			t.Errorf("expected rate limit 100, got %v", cfg.RateLimit)
		}
		if cfg.RateLimitBurst != 200 {
			t.Errorf("expected rate limit burst 200, got %d", cfg.RateLimitBurst)
		}
		if cfg.ReadHeaderTimeout != 5*time.Second {
			t.Errorf("expected read header timeout 5s, got %v", cfg.ReadHeaderTimeout)
		}
		if cfg.WriteTimeout != 30*time.Second {
			t.Errorf("expected write timeout 30s, got %v", cfg.WriteTimeout)
		}
		if cfg.ShutdownTimeout != 30*time.Second {
			t.Errorf("expected shutdown timeout 30s, got %v", cfg.ShutdownTimeout)
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv(EnvPort, "9090")
		t.Setenv(EnvRateLimit, "2.5")
		t.Setenv(EnvRateLimitBurst, "5")
		t.Setenv(EnvShutdownTimeoutSeconds, "45")

		cfg := parseConfig()

		if cfg.Port != 9090 {
			t.Errorf("expected port 9090 from env, got %d", cfg.Port)
		}
		if cfg.RateLimit != 2.5 {
			t.Errorf("expected rate limit 2.5, got %v", cfg.RateLimit)
		}
		if cfg.RateLimitBurst != 5 {
			t.Errorf("expected burst 5, got %d", cfg.RateLimitBurst)
		}
		if cfg.ShutdownTimeout != 45*time.Second {
			t.Errorf("expected shutdown timeout 45s, got %v", cfg.ShutdownTimeout)
		}
	})

	t.Run("invalid values use defaults", func(t *testing.T) {
		t.Setenv(EnvPort, "invalid")
		t.Setenv(EnvShutdownTimeoutSeconds, "-3")

		cfg := parseConfig()

		if cfg.Port != 8080 {
			t.Errorf("expected default port 8080 for invalid env, got %d", cfg.Port)
		}
		if cfg.ShutdownTimeout != 30*time.Second {
			t.Errorf("expected default shutdown timeout, got %v", cfg.ShutdownTimeout)
		}
	})
}
