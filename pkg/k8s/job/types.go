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
	"time"

	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
)

// Spec is the client-supplied description of a Job to create.
type Spec struct {
	Name         string            `json:"name" yaml:"name"`
	Namespace    string            `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Image        string            `json:"image" yaml:"image"`
	Command      []string          `json:"command,omitempty" yaml:"command,omitempty"`
	NodeSelector map[string]string `json:"node_selector,omitempty" yaml:"node_selector,omitempty"`
	Labels       map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`

	// BackoffLimit is left to the cluster default when nil.
	BackoffLimit *int32 `json:"backoff_limit,omitempty" yaml:"backoff_limit,omitempty"`
}

// Condition mirrors a batch/v1 JobCondition.
type Condition struct {
	Type    string `json:"type" yaml:"type"`
	Status  string `json:"status" yaml:"status"`
	Reason  string `json:"reason,omitempty" yaml:"reason,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Status is a point-in-time snapshot of a Job's progress.
type Status struct {
	Active         int32       `json:"active" yaml:"active"`
	Succeeded      int32       `json:"succeeded" yaml:"succeeded"`
	Failed         int32       `json:"failed" yaml:"failed"`
	StartTime      *time.Time  `json:"start_time" yaml:"start_time"`
	CompletionTime *time.Time  `json:"completion_time" yaml:"completion_time"`
	Conditions     []Condition `json:"conditions" yaml:"conditions"`
}

// Record is a live read of a Job from the cluster API. It is never cached.
type Record struct {
	Name              string            `json:"job_name" yaml:"job_name"`
	Namespace         string            `json:"namespace" yaml:"namespace"`
	UID               string            `json:"uid" yaml:"uid"`
	CreationTimestamp time.Time         `json:"creation_timestamp" yaml:"creation_timestamp"`
	Image             string            `json:"image,omitempty" yaml:"image,omitempty"`
	Command           []string          `json:"command,omitempty" yaml:"command,omitempty"`
	Labels            map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
	NodeSelector      map[string]string `json:"node_selector,omitempty" yaml:"node_selector,omitempty"`
	BackoffLimit      *int32            `json:"backoff_limit,omitempty" yaml:"backoff_limit,omitempty"`

	Status `yaml:",inline"`

	resourceVersion string
}

// Complete reports whether the Job carries a true Complete condition.
func (r *Record) Complete() bool {
	return r.hasCondition(string(batchv1.JobComplete))
}

// Failed reports whether the Job carries a true Failed condition.
func (r *Record) Failed() bool {
	return r.hasCondition(string(batchv1.JobFailed))
}

// Finished reports whether the Job reached a terminal condition.
func (r *Record) Finished() bool {
	return r.Complete() || r.Failed()
}

func (r *Record) hasCondition(t string) bool {
	for _, c := range r.Conditions {
		if c.Type == t && c.Status == string(corev1.ConditionTrue) {
			return true
		}
	}
	return false
}

// Logs holds the trailing output of a Job's pod.
type Logs struct {
	JobName   string `json:"job_name" yaml:"job_name"`
	Namespace string `json:"namespace" yaml:"namespace"`
	PodName   string `json:"pod_name,omitempty" yaml:"pod_name,omitempty"`
	Status    string `json:"status" yaml:"status"`
	Message   string `json:"message,omitempty" yaml:"message,omitempty"`
	Logs      string `json:"logs" yaml:"logs"`
}

// Log statuses that are not pod phases.
const (
	LogStatusNoPods   = "no_pods"
	LogStatusStarting = "starting"
)
