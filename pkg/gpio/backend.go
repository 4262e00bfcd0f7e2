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

// Level is a logical output level.
type Level int

const (
	Low Level = iota
	High
)

func (l Level) String() string {
	if l == High {
		return "high"
	}
	return "low"
}

// Backend drives output pins through one hardware access path.
type Backend interface {
	// Name identifies the access path, e.g. "cdev" or "rpio".
	Name() string

	// Set drives pin to level. The pin is configured as an output,
	// initially low, the first time it is used.
	Set(pin int, level Level) error

	// Concurrent reports whether different pins may be driven in parallel.
	Concurrent() bool
}

// Driver opens a Backend. Open fails when the access path is not usable on
// this host.
type Driver interface {
	Name() string
	Open() (Backend, error)
}
