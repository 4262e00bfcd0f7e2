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

package job

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	cnserrors "github.com/NVIDIA/nanojob/pkg/errors"
)

const (
	opCreate = "create"
	opGet    = "get"
	opList   = "list"
	opDelete = "delete"
	opLogs   = "logs"
	opWait   = "wait"
)

var (
	jobOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nanojob_job_operations_total",
			Help: "Total number of job operations by outcome",
		},
		[]string{"operation", "result"},
	)

	jobOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nanojob_job_operation_duration_seconds",
			Help:    "Duration of job operations against the cluster API",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// observe records one operation. err is read after the call returns.
func observe(op string, start time.Time, err *error) {
	result := "success"
	if err != nil && *err != nil {
		result = strings.ToLower(string(cnserrors.CodeOf(*err)))
	}
	jobOperationsTotal.WithLabelValues(op, result).Inc()
	jobOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
