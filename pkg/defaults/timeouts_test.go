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

package defaults

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		// Handler timeouts
		{"JobHandlerTimeout", JobHandlerTimeout, 10 * time.Second, 60 * time.Second},

		// Server timeouts
		{"ServerReadTimeout", ServerReadTimeout, 5 * time.Second, 30 * time.Second},
		{"ServerWriteTimeout", ServerWriteTimeout, 15 * time.Second, 60 * time.Second},
		{"ServerIdleTimeout", ServerIdleTimeout, 30 * time.Second, 300 * time.Second},
		{"ServerShutdownTimeout", ServerShutdownTimeout, 10 * time.Second, 60 * time.Second},

		// K8s timeouts
		{"K8sJobCompletionTimeout", K8sJobCompletionTimeout, 1 * time.Minute, 10 * time.Minute},

		// Remote shutdown timeouts
		{"SSHDialTimeout", SSHDialTimeout, 5 * time.Second, 30 * time.Second},
		{"ShutdownCommandTimeout", ShutdownCommandTimeout, 1 * time.Second, 15 * time.Second},

		// CLI timeouts
		{"CLIRequestTimeout", CLIRequestTimeout, 10 * time.Second, 60 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) is above maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestGPIOPulseDuration(t *testing.T) {
	if GPIOPulseDuration != 300*time.Millisecond {
		t.Errorf("GPIOPulseDuration = %v, want 300ms", GPIOPulseDuration)
	}
}

func TestHandlerTimeoutWithinServerWriteTimeout(t *testing.T) {
	// A handler timeout longer than the write timeout would never fire.
	if JobHandlerTimeout > ServerWriteTimeout {
		t.Errorf("JobHandlerTimeout (%v) should not exceed ServerWriteTimeout (%v)",
			JobHandlerTimeout, ServerWriteTimeout)
	}
}

func TestShutdownWithinServerWriteTimeout(t *testing.T) {
	if SSHDialTimeout+ShutdownCommandTimeout > ServerWriteTimeout {
		t.Errorf("shutdown budget (%v) should not exceed ServerWriteTimeout (%v)",
			SSHDialTimeout+ShutdownCommandTimeout, ServerWriteTimeout)
	}
}

func TestGPIOPinRange(t *testing.T) {
	if GPIOMinPin != 0 || GPIOMaxPin != 27 {
		t.Errorf("GPIO pin range = [%d, %d], want [0, 27]", GPIOMinPin, GPIOMaxPin)
	}
	if Namespace != "default" {
		t.Errorf("Namespace = %q, want %q", Namespace, "default")
	}
}
