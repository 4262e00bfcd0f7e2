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

// Package logging configures the slog JSON logger shared by nanojob and nanojobd.
//
// Records go to stderr as JSON and carry "module" and "version" attributes.
// Source locations are added only at debug level. Level names are parsed
// case-insensitively by ParseLogLevel; unknown or empty names mean info.
//
// The daemon reads its level from LOG_LEVEL:
//
//	logging.SetDefaultStructuredLogger("nanojobd", version)
//
// The CLI passes its --log-level flag explicitly:
//
//	logging.SetDefaultStructuredLoggerWithLevel("nanojob", version, cmd.String("log-level"))
//
// NewLogLogger adapts the same handler for APIs that take a *log.Logger,
// such as http.Server.ErrorLog.
package logging
