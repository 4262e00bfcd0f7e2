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
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	cnserrors "github.com/NVIDIA/nanojob/pkg/errors"
)

// State is the outcome of backend probing.
type State int

const (
	StateUnprobed State = iota
	StateActive
	StateUnavailable
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateUnavailable:
		return "unavailable"
	default:
		return "unprobed"
	}
}

type settlement struct {
	state   State
	backend Backend
	err     error
}

// Selector probes its drivers in priority order on first use and keeps the
// first one that opens. The outcome, success or failure, is final for the
// life of the process.
type Selector struct {
	drivers []Driver

	once    sync.Once
	settled atomic.Pointer[settlement]
}

// NewSelector returns a Selector that tries drivers in the given order.
func NewSelector(drivers ...Driver) *Selector {
	return &Selector{drivers: drivers}
}

// Resolve returns the active backend, probing if this is the first call.
// Concurrent first calls probe once.
func (s *Selector) Resolve() (Backend, error) {
	s.once.Do(s.probe)

	st := s.settled.Load()
	if st.backend == nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeHardwareUnavailable,
			"no GPIO backend available", st.err)
	}
	return st.backend, nil
}

// State reports the probe outcome and active backend name without probing.
func (s *Selector) State() (State, string) {
	st := s.settled.Load()
	if st == nil {
		return StateUnprobed, ""
	}
	if st.backend == nil {
		return st.state, ""
	}
	return st.state, st.backend.Name()
}

func (s *Selector) probe() {
	var errs []error
	for _, d := range s.drivers {
		b, err := d.Open()
		if err != nil {
			gpioProbesTotal.WithLabelValues(d.Name(), "unavailable").Inc()
			slog.Warn("gpio driver unavailable", "driver", d.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", d.Name(), err))
			continue
		}

		gpioProbesTotal.WithLabelValues(d.Name(), "active").Inc()
		slog.Info("gpio backend selected", "driver", d.Name(), "concurrent", b.Concurrent())
		s.settled.Store(&settlement{state: StateActive, backend: b})
		return
	}

	if len(errs) == 0 {
		errs = append(errs, errors.New("no drivers configured"))
	}
	err := errors.Join(errs...)
	slog.Error("no gpio backend available, pin activation disabled", "error", err)
	s.settled.Store(&settlement{state: StateUnavailable, err: err})
}
