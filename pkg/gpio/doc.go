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

/*
Package gpio pulses output pins on a single-board computer.

Two access paths are supported, tried in this order on first use:

  - cdev: the GPIO character device (/dev/gpiochipN, the libgpiod ABI),
    via github.com/warthog618/go-gpiocdev.
  - rpio: the legacy memory-mapped register window (/dev/gpiomem), via
    github.com/stianeikeland/go-rpio. Not safe for concurrent use.

A Selector settles on the first driver that opens, or on "unavailable" if
none does, and never probes again. A Controller validates the pin number,
resolves the backend and drives the pin high for defaults.GPIOPulseDuration
before driving it low.

	sel := gpio.NewSelector(gpio.NewCdevDriver("gpiochip0", "nanojobd"), gpio.NewRpioDriver())
	ctl := gpio.NewController(sel, gpio.WithPinRange(0, 27))

	if err := ctl.Pulse(17); err != nil {
	    // ErrCodeInvalidPin or ErrCodeHardwareUnavailable
	}

Pins use BCM numbering for rpio and chip line offsets for cdev. On a
Raspberry Pi the two coincide for gpiochip0.
*/
package gpio
