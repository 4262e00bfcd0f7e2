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
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/nanojob/pkg/config"
	cnserrors "github.com/NVIDIA/nanojob/pkg/errors"
	"github.com/NVIDIA/nanojob/pkg/gpio"
)

// newController builds a GPIO controller for the local machine. Replaced in tests.
var newController = func(cmd *cli.Command) (*gpio.Controller, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	chip := cfg.GPIOChip
	if cmd.IsSet("chip") {
		chip = cmd.String("chip")
	}
	selector := gpio.NewSelector(
		gpio.NewCdevDriver(chip, name),
		gpio.NewRpioDriver(),
	)
	return gpio.NewController(selector, gpio.WithPinRange(cfg.GPIOMinPin, cfg.GPIOMaxPin)), nil
}

func pulseCmd() *cli.Command {
	return &cli.Command{
		Name:      "pulse",
		Usage:     "Pulse a GPIO pin on this machine",
		ArgsUsage: "PIN",
		Description: `Drive PIN high for 300ms, then low. Use it to press the
power or reset button of an edge node wired to this machine's header.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "chip",
				Usage: "GPIO character device chip (overrides " + config.EnvGPIOChip + ")",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			raw := cmd.Args().First()
			pin, err := strconv.Atoi(raw)
			if err != nil {
				return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidPin,
					fmt.Sprintf("pin must be an integer, got %q", raw),
					map[string]any{"pin": raw})
			}

			c, err := newController(cmd)
			if err != nil {
				return err
			}
			if err := c.Pulse(pin); err != nil {
				return err
			}
			return output(ctx, cmd, gpio.PulseResponse{Status: "ok", Pin: pin})
		},
	}
}
