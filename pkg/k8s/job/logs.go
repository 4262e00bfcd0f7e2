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
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/nanojob/pkg/defaults"
	cnserrors "github.com/NVIDIA/nanojob/pkg/errors"
)

// jobNameLabel is set by the Job controller on every pod it creates.
const jobNameLabel = "job-name"

// Logs returns the trailing output of the Job's first pod. A Job whose pod
// has not been scheduled or started yields an informational status rather
// than an error.
func (m *Manager) Logs(ctx context.Context, name, namespace string) (out *Logs, err error) {
	defer observe(opLogs, time.Now(), &err)

	namespace = m.Namespace(namespace)
	if err = validateName(name); err != nil {
		return nil, err
	}

	c, err := m.client()
	if err != nil {
		return nil, err
	}

	if _, err = c.BatchV1().Jobs(namespace).Get(ctx, name, metav1.GetOptions{}); err != nil {
		return nil, translate(err, "get", name, namespace)
	}

	out = &Logs{JobName: name, Namespace: namespace}

	pods, err := c.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: labels.SelectorFromSet(labels.Set{jobNameLabel: name}).String(),
	})
	if err != nil {
		return nil, translate(err, "list pods for", name, namespace)
	}
	if len(pods.Items) == 0 {
		out.Status = LogStatusNoPods
		out.Message = "no pods found for job"
		return out, nil
	}

	pod := pods.Items[0]
	out.PodName = pod.Name
	out.Status = strings.ToLower(string(pod.Status.Phase))

	if pod.Status.Phase == corev1.PodPending || pod.Status.Phase == corev1.PodUnknown {
		out.Message = fmt.Sprintf("pod is %s, logs not yet available", out.Status)
		return out, nil
	}

	req := c.CoreV1().Pods(namespace).GetLogs(pod.Name, &corev1.PodLogOptions{
		TailLines: ptr.To(defaults.K8sLogTailLines),
	})

	stream, err := req.Stream(ctx)
	if err != nil {
		// The container can be reported running before the kubelet will
		// serve its logs.
		if apierrors.IsBadRequest(err) {
			out.Status = LogStatusStarting
			out.Message = "container is starting, logs not yet available"
			return out, nil
		}
		return nil, translate(err, "read logs of", name, namespace)
	}
	defer stream.Close()

	buf := new(bytes.Buffer)
	if _, err = io.Copy(buf, stream); err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeUpstreamUnavailable,
			"failed to read pod logs", err, map[string]any{"job": name, "pod": pod.Name})
	}
	out.Logs = buf.String()
	return out, nil
}

