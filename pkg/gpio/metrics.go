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
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	cnserrors "github.com/NVIDIA/nanojob/pkg/errors"
)

var (
	gpioProbesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nanojob_gpio_probes_total",
			Help: "Total number of GPIO driver probes by outcome",
		},
		[]string{"driver", "result"},
	)

	gpioPulsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nanojob_gpio_pulses_total",
			Help: "Total number of pin pulses by outcome",
		},
		[]string{"result"},
	)

	gpioPulseDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nanojob_gpio_pulse_duration_seconds",
			Help:    "Wall-clock duration of pin pulses including lock wait",
			Buckets: []float64{0.1, 0.3, 0.5, 1, 2, 5, 10},
		},
	)
)

func observePulse(start time.Time, err *error) {
	result := "success"
	if err != nil && *err != nil {
		result = strings.ToLower(string(cnserrors.CodeOf(*err)))
	}
	gpioPulsesTotal.WithLabelValues(result).Inc()
	gpioPulseDuration.Observe(time.Since(start).Seconds())
}
