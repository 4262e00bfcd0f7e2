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
	"sync"

	"github.com/warthog618/go-gpiocdev"

	"github.com/NVIDIA/nanojob/pkg/defaults"
)

// CdevDriver opens the GPIO character device (the libgpiod ABI).
type CdevDriver struct {
	chip     string
	consumer string
}

// NewCdevDriver returns a driver for the named chip. consumer is the label
// shown against requested lines, e.g. by gpioinfo.
func NewCdevDriver(chip, consumer string) *CdevDriver {
	if chip == "" {
		chip = defaults.GPIOChip
	}
	return &CdevDriver{chip: chip, consumer: consumer}
}

func (d *CdevDriver) Name() string { return "cdev" }

func (d *CdevDriver) Open() (Backend, error) {
	chip, err := gpiocdev.NewChip(d.chip, gpiocdev.WithConsumer(d.consumer))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", d.chip, err)
	}
	return &cdevBackend{
		chip:  chip,
		lines: make(map[int]*gpiocdev.Line),
	}, nil
}

// cdevBackend holds one line request per pin for the life of the process.
type cdevBackend struct {
	chip *gpiocdev.Chip

	mu    sync.Mutex
	lines map[int]*gpiocdev.Line
}

func (b *cdevBackend) Name() string { return "cdev" }

func (b *cdevBackend) Concurrent() bool { return true }

func (b *cdevBackend) Set(pin int, level Level) error {
	line, err := b.line(pin)
	if err != nil {
		return err
	}
	if err := line.SetValue(int(level)); err != nil {
		return fmt.Errorf("failed to set line %d %s: %w", pin, level, err)
	}
	return nil
}

func (b *cdevBackend) line(pin int) (*gpiocdev.Line, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if l, ok := b.lines[pin]; ok {
		return l, nil
	}
	l, err := b.chip.RequestLine(pin, gpiocdev.AsOutput(int(Low)))
	if err != nil {
		return nil, fmt.Errorf("failed to request line %d: %w", pin, err)
	}
	b.lines[pin] = l
	return l, nil
}
