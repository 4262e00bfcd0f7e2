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
	"os"
	"sync"

	"github.com/stianeikeland/go-rpio/v4"
)

// gpioMemPath is the BCM2835-family register window exposed by the kernel.
const gpioMemPath = "/dev/gpiomem"

// RpioDriver opens the legacy memory-mapped register interface. Pins use
// BCM numbering.
type RpioDriver struct {
	stat func(string) (os.FileInfo, error)
	open func() error
}

func NewRpioDriver() *RpioDriver {
	return &RpioDriver{stat: os.Stat, open: rpio.Open}
}

func (d *RpioDriver) Name() string { return "rpio" }

// Open refuses to fall back to /dev/mem: without the gpiomem node this is
// not a supported board.
func (d *RpioDriver) Open() (Backend, error) {
	if _, err := d.stat(gpioMemPath); err != nil {
		return nil, fmt.Errorf("register interface not present: %w", err)
	}
	if err := d.open(); err != nil {
		return nil, fmt.Errorf("failed to map GPIO registers: %w", err)
	}
	return &rpioBackend{configured: make(map[int]bool)}, nil
}

// rpioBackend writes the shared register block directly and is not safe to
// drive from several goroutines at once.
type rpioBackend struct {
	mu         sync.Mutex
	configured map[int]bool
}

func (b *rpioBackend) Name() string { return "rpio" }

func (b *rpioBackend) Concurrent() bool { return false }

func (b *rpioBackend) Set(pin int, level Level) error {
	if pin < 0 || pin > 0xff {
		return fmt.Errorf("pin %d out of register range", pin)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	p := rpio.Pin(uint8(pin))
	if !b.configured[pin] {
		p.Output()
		p.Low()
		b.configured[pin] = true
	}
	if level == High {
		p.High()
	} else {
		p.Low()
	}
	return nil
}
