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

package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/nanojob/pkg/config"
	"github.com/NVIDIA/nanojob/pkg/gpio"
	"github.com/NVIDIA/nanojob/pkg/k8s/client"
	"github.com/NVIDIA/nanojob/pkg/k8s/job"
	"github.com/NVIDIA/nanojob/pkg/logging"
	"github.com/NVIDIA/nanojob/pkg/node"
	"github.com/NVIDIA/nanojob/pkg/server"
)

const (
	name           = "nanojobd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/nanojob/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until shutdown.
// Neither the cluster client nor the GPIO backend is touched until the
// first request that needs it.
func Serve() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		return err
	}

	provider := client.NewProvider(client.WithKubeconfig(cfg.Kubeconfig))
	manager := job.NewManager(provider, job.WithDefaultNamespace(cfg.DefaultNamespace))

	selector := gpio.NewSelector(
		gpio.NewCdevDriver(cfg.GPIOChip, name),
		gpio.NewRpioDriver(),
	)
	controller := gpio.NewController(selector, gpio.WithPinRange(cfg.GPIOMinPin, cfg.GPIOMaxPin))

	shutdowner := node.NewShutdowner(
		node.WithKeyPath(cfg.SSHKeyPath),
		node.WithKnownHosts(cfg.SSHKnownHosts),
		node.WithUser(cfg.ShutdownUsername),
		node.WithCommand(cfg.ShutdownCommand),
	)
	slog.Debug("remote shutdown configured", "shutdowner", shutdowner.String())

	go watchdog(ctx)

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(Routes(manager, controller, shutdowner)),
		server.WithReadyHook(notifyReady),
		server.WithStoppingHook(notifyStopping),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// Routes returns the API handlers keyed by ServeMux pattern.
func Routes(m *job.Manager, c *gpio.Controller, s *node.Shutdowner) map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"POST /api/v1/jobs":                            m.HandleCreate,
		"GET /api/v1/jobs":                             m.HandleList,
		"GET /api/v1/jobs/{name}":                      m.HandleGet,
		"DELETE /api/v1/jobs/{name}":                   m.HandleDelete,
		"GET /api/v1/jobs/{name}/exists":               m.HandleExists,
		"GET /api/v1/jobs/{name}/logs":                 m.HandleLogs,
		"POST /api/v1/nodes/{pin}":                     c.HandlePulse,
		"POST /api/v1/nodes/shutdown/{host}/{address}": s.HandleShutdown,
	}
}
