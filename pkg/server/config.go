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
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/nanojob/pkg/config"
	"github.com/NVIDIA/nanojob/pkg/defaults"
)

// Environment variables read by NewConfig.
const (
	EnvPort                   = "PORT"
	EnvShutdownTimeoutSeconds = "SHUTDOWN_TIMEOUT_SECONDS"
	EnvRateLimit              = "RATE_LIMIT"
	EnvRateLimitBurst         = "RATE_LIMIT_BURST"
)

// Config holds server configuration
type Config struct {
	// Server identity
	Name    string
	Version string

	// Handlers keyed by ServeMux pattern, e.g. "GET /api/v1/jobs/{name}".
	Handlers map[string]http.HandlerFunc

	// Server configuration
	Address string
	Port    int

	// Rate limiting configuration
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int        // burst size

	// Timeouts
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// NewConfig returns a new Config with sensible defaults.
// Use this when you want to customize config programmatically.
func NewConfig() *Config {
	return parseConfig()
}

// parseConfig returns defaults overridden by the environment.
func parseConfig() *Config {
	cfg := &Config{
		Name:              "server",
		Version:           "undefined",
		Address:           "",
		Port:              config.GetIntEnv(EnvPort, 8080),
		RateLimit:         rate.Limit(config.GetFloatEnv(EnvRateLimit, 100)),
		RateLimitBurst:    config.GetIntEnv(EnvRateLimitBurst, 200),
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}

	// Allow customization of shutdown timeout to match K8s eviction grace period
	if seconds := config.GetIntEnv(EnvShutdownTimeoutSeconds, 0); seconds > 0 {
		cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
	}

	return cfg
}
