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

package gpio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/NVIDIA/nanojob/pkg/defaults"
	cnserrors "github.com/NVIDIA/nanojob/pkg/errors"
)

// Resolver yields the active backend or ErrCodeHardwareUnavailable.
type Resolver interface {
	Resolve() (Backend, error)
}

// Controller pulses output pins: active, hold, inactive.
//
// Pulses on the same pin never overlap. Pulses on different pins run in
// parallel only when the backend reports it is safe to.
type Controller struct {
	resolver Resolver
	minPin   int
	maxPin   int
	hold     time.Duration

	global sync.Mutex
	pins   sync.Map // int -> *sync.Mutex
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithPinRange sets the inclusive range of accepted pin numbers.
func WithPinRange(minPin, maxPin int) ControllerOption {
	return func(c *Controller) {
		c.minPin = minPin
		c.maxPin = maxPin
	}
}

// WithHoldDuration overrides defaults.GPIOPulseDuration.
func WithHoldDuration(d time.Duration) ControllerOption {
	return func(c *Controller) {
		c.hold = d
	}
}

// NewController returns a Controller that drives pins through r.
func NewController(r Resolver, opts ...ControllerOption) *Controller {
	c := &Controller{
		resolver: r,
		minPin:   defaults.GPIOMinPin,
		maxPin:   defaults.GPIOMaxPin,
		hold:     defaults.GPIOPulseDuration,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PinRange returns the inclusive range of accepted pins.
func (c *Controller) PinRange() (minPin, maxPin int) {
	return c.minPin, c.maxPin
}

// ValidatePin fails with ErrCodeInvalidPin when pin is out of range.
func (c *Controller) ValidatePin(pin int) error {
	if pin < c.minPin || pin > c.maxPin {
		return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidPin,
			fmt.Sprintf("pin %d out of range [%d, %d]", pin, c.minPin, c.maxPin),
			map[string]any{"pin": pin, "min": c.minPin, "max": c.maxPin})
	}
	return nil
}

// Pulse drives pin active, blocks for the hold duration, then drives it
// inactive. An out-of-range pin is rejected before any hardware is touched.
func (c *Controller) Pulse(pin int) (err error) {
	defer observePulse(time.Now(), &err)

	if err = c.ValidatePin(pin); err != nil {
		return err
	}

	backend, err := c.resolver.Resolve()
	if err != nil {
		return err
	}

	unlock := c.lock(pin, backend.Concurrent())
	defer unlock()

	ectx := map[string]any{"pin": pin, "backend": backend.Name()}

	if err = backend.Set(pin, High); err != nil {
		if lowErr := backend.Set(pin, Low); lowErr != nil {
			slog.Error("failed to reset pin after activation error", "pin", pin, "error", lowErr)
		}
		return cnserrors.WrapWithContext(cnserrors.ErrCodeHardwareUnavailable,
			"failed to activate pin", err, ectx)
	}

	time.Sleep(c.hold)

	if err = backend.Set(pin, Low); err != nil {
		return cnserrors.WrapWithContext(cnserrors.ErrCodeHardwareUnavailable,
			"failed to deactivate pin", err, ectx)
	}

	slog.Debug("pin pulsed", "pin", pin, "backend", backend.Name(), "hold", c.hold)
	return nil
}

// lock takes the global lock (non-concurrent backends only) and then the
// per-pin lock, always in that order.
func (c *Controller) lock(pin int, concurrent bool) func() {
	if !concurrent {
		c.global.Lock()
	}
	v, _ := c.pins.LoadOrStore(pin, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()

	return func() {
		mu.Unlock()
		if !concurrent {
			c.global.Unlock()
		}
	}
}
