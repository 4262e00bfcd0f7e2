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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/nanojob/pkg/config"
	cnserrors "github.com/NVIDIA/nanojob/pkg/errors"
	"github.com/NVIDIA/nanojob/pkg/node"
)

// newShutdowner builds the SSH shutdowner from the environment and flags.
var newShutdowner = func(cmd *cli.Command) (*node.Shutdowner, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	pick := func(flag, fallback string) string {
		if cmd.IsSet(flag) {
			return cmd.String(flag)
		}
		return fallback
	}
	return node.NewShutdowner(
		node.WithUser(pick("user", cfg.ShutdownUsername)),
		node.WithKeyPath(pick("key", cfg.SSHKeyPath)),
		node.WithKnownHosts(pick("known-hosts", cfg.SSHKnownHosts)),
		node.WithCommand(pick("command", cfg.ShutdownCommand)),
	), nil
}

func shutdownCmd() *cli.Command {
	return &cli.Command{
		Name:      "shutdown",
		Usage:     "Shut down an edge node over SSH",
		ArgsUsage: "HOST ADDRESS",
		Description: `Log into ADDRESS over SSH and run the shutdown command. HOST only
labels the output. ADDRESS may carry a port; 22 is used otherwise.`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user", Usage: "SSH login (overrides " + config.EnvShutdownUsername + ")"},
			&cli.StringFlag{Name: "key", Usage: "Private key file (overrides " + config.EnvSSHKeyPath + ")"},
			&cli.StringFlag{Name: "known-hosts", Usage: "known_hosts file (overrides " + config.EnvSSHKnownHosts + ")"},
			&cli.StringFlag{Name: "command", Usage: "Remote command (overrides " + config.EnvShutdownCommand + ")"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 2 {
				return cnserrors.New(cnserrors.ErrCodeInvalidRequest, "expected HOST and ADDRESS")
			}
			host, address := cmd.Args().Get(0), cmd.Args().Get(1)

			s, err := newShutdowner(cmd)
			if err != nil {
				return err
			}

			if err := s.Shutdown(ctx, host, address); err != nil {
				return err
			}
			return output(ctx, cmd, node.ShutdownResponse{Status: "ok", Host: host, Address: address})
		},
	}
}
