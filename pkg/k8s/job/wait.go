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
	"context"
	"errors"
	"fmt"
	"time"

	batchv1 "k8s.io/api/batch/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/fields"
	"k8s.io/apimachinery/pkg/watch"

	"github.com/NVIDIA/nanojob/pkg/defaults"
	cnserrors "github.com/NVIDIA/nanojob/pkg/errors"
)

// Wait blocks until the Job reports Complete or Failed and returns its final
// record. A failed Job is not an error; callers inspect Record.Failed.
// A zero timeout uses defaults.K8sJobCompletionTimeout. Cancellation of ctx
// is returned unchanged rather than as a timeout.
func (m *Manager) Wait(ctx context.Context, name, namespace string, timeout time.Duration) (rec *Record, err error) {
	defer observe(opWait, time.Now(), &err)

	namespace = m.Namespace(namespace)
	if timeout <= 0 {
		timeout = defaults.K8sJobCompletionTimeout
	}

	// The current state is read first so that a Job which finished before
	// the watch opened is not missed.
	rec, err = m.Get(ctx, name, namespace)
	if err != nil {
		return nil, err
	}
	if rec.Finished() {
		return rec, nil
	}

	jobs, err := m.jobs(namespace)
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	watcher, err := jobs.Watch(timeoutCtx, metav1.ListOptions{
		FieldSelector:   fields.OneTermEqualSelector("metadata.name", name).String(),
		ResourceVersion: rec.resourceVersion,
	})
	if err != nil {
		return nil, translate(err, "watch", name, namespace)
	}
	defer watcher.Stop()

	ectx := map[string]any{"job": name, "namespace": namespace}
	for {
		select {
		case <-timeoutCtx.Done():
			if !errors.Is(timeoutCtx.Err(), context.DeadlineExceeded) {
				return nil, timeoutCtx.Err()
			}
			return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeTimeout,
				fmt.Sprintf("timed out after %v waiting for job %q", timeout, name),
				timeoutCtx.Err(), ectx)

		case event, ok := <-watcher.ResultChan():
			if !ok {
				return nil, cnserrors.NewWithContext(cnserrors.ErrCodeUpstreamUnavailable,
					"watch channel closed unexpectedly", ectx)
			}

			switch event.Type {
			case watch.Error:
				return nil, cnserrors.NewWithContext(cnserrors.ErrCodeUpstreamUnavailable,
					fmt.Sprintf("watch error: %v", event.Object), ectx)
			case watch.Deleted:
				return nil, cnserrors.NewWithContext(cnserrors.ErrCodeNotFound,
					fmt.Sprintf("job %q was deleted while waiting", name), ectx)
			}

			job, ok := event.Object.(*batchv1.Job)
			if !ok {
				continue
			}
			if current := toRecord(job); current.Finished() {
				return current, nil
			}
		}
	}
}
