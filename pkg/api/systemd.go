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
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
)

// sdNotify is replaced in tests.
var sdNotify = daemon.SdNotify

// sdWatchdogEnabled is replaced in tests.
var sdWatchdogEnabled = daemon.SdWatchdogEnabled

func notify(state string) {
	sent, err := sdNotify(false, state)
	switch {
	case err != nil:
		slog.Warn("systemd notify failed", "state", state, "error", err)
	case sent:
		slog.Debug("systemd notified", "state", state)
	}
}

func notifyReady() { notify(daemon.SdNotifyReady) }

func notifyStopping() { notify(daemon.SdNotifyStopping) }

// watchdog pings the systemd watchdog at half its interval until ctx ends.
// It returns immediately when the unit has no WatchdogSec.
func watchdog(ctx context.Context) {
	interval, err := sdWatchdogEnabled(false)
	if err != nil {
		slog.Warn("systemd watchdog misconfigured", "error", err)
		return
	}
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			notify(daemon.SdNotifyWatchdog)
		}
	}
}
