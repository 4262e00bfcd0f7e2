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

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/nanojob/pkg/config"
	"github.com/NVIDIA/nanojob/pkg/defaults"
	cnserrors "github.com/NVIDIA/nanojob/pkg/errors"
	"github.com/NVIDIA/nanojob/pkg/logging"
	"github.com/NVIDIA/nanojob/pkg/serializer"
)

const (
	name           = "nanojob"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// globalFlags returns fresh flags for each command tree.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "kubeconfig",
			Usage:   "Path to kubeconfig file (defaults to in-cluster, then ~/.kube/config)",
			Sources: cli.EnvVars(config.EnvKubeconfig),
		},
		&cli.StringFlag{
			Name:    "namespace",
			Aliases: []string{"n"},
			Usage:   "Namespace for job commands",
			Value:   defaults.Namespace,
			Sources: cli.EnvVars(config.EnvDefaultNamespace),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Log level (debug, info, warn, error)",
			Value:   "warn",
			Sources: cli.EnvVars("LOG_LEVEL"),
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"o"},
			Usage:   fmt.Sprintf("Output format (supported values: %v)", serializer.SupportedFormats()),
			Value:   string(serializer.FormatTable),
		},
	}
}

// newRootCmd builds the command tree. Output goes to the root command's Writer.
func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Run batch Jobs on Kubernetes and pulse edge-node GPIO pins",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Description: `nanojob creates, inspects, and removes Kubernetes batch Jobs, and pulses
GPIO pins wired to the power or reset lines of edge nodes, or shuts them
down over SSH.

Job commands talk to the cluster named by --kubeconfig, or the in-cluster
service account when running inside a pod. The pulse command drives the
GPIO hardware of the machine it runs on.`,
		EnableShellCompletion: true,
		Flags:                 globalFlags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date)
			return ctx, nil
		},
		Commands: []*cli.Command{
			jobCmd(),
			pulseCmd(),
			shutdownCmd(),
			versionCmd(),
		},
	}
}

// Execute runs the CLI against os.Args and exits non-zero on failure.
// Timeouts and interrupts exit with 2, every other failure with 1.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if cnserrors.IsCode(err, cnserrors.ErrCodeTimeout) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return 2
	}
	return 1
}

// parseOutputFormat reads the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	return serializer.ParseFormat(cmd.String("format"))
}

func isTable(cmd *cli.Command) bool {
	f, err := parseOutputFormat(cmd)
	return err == nil && f == serializer.FormatTable
}

// output serializes v to the root command's Writer in the --format format.
func output(ctx context.Context, cmd *cli.Command, v any) error {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}
	return serializer.NewWriter(format, cmd.Root().Writer).Serialize(ctx, v)
}
