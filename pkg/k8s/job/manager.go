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
	"fmt"
	"log/slog"
	"maps"
	"time"

	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	batchv1client "k8s.io/client-go/kubernetes/typed/batch/v1"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/nanojob/pkg/defaults"
	cnserrors "github.com/NVIDIA/nanojob/pkg/errors"
	"github.com/NVIDIA/nanojob/pkg/k8s/client"
)

// ClientProvider hands out the shared cluster client.
type ClientProvider interface {
	Client() (client.Interface, error)
}

// ClientProviderFunc adapts a function to ClientProvider.
type ClientProviderFunc func() (client.Interface, error)

// Client implements ClientProvider.
func (f ClientProviderFunc) Client() (client.Interface, error) {
	return f()
}

// Manager translates job operations into batch/v1 API calls.
// It holds no job state of its own: every read goes to the cluster.
type Manager struct {
	provider         ClientProvider
	defaultNamespace string
}

// Option configures a Manager.
type Option func(*Manager)

// WithDefaultNamespace sets the namespace used when a call passes "".
func WithDefaultNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.defaultNamespace = namespace
		}
	}
}

// NewManager returns a Manager backed by the given provider.
func NewManager(provider ClientProvider, opts ...Option) *Manager {
	m := &Manager{
		provider:         provider,
		defaultNamespace: defaults.Namespace,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Namespace resolves an optional namespace to the one calls will use.
func (m *Manager) Namespace(namespace string) string {
	if namespace == "" {
		return m.defaultNamespace
	}
	return namespace
}

// Create submits a new Job built from spec and returns the server's view of it.
func (m *Manager) Create(ctx context.Context, spec Spec) (rec *Record, err error) {
	defer observe(opCreate, time.Now(), &err)

	spec.Namespace = m.Namespace(spec.Namespace)
	if err = spec.Validate(); err != nil {
		return nil, err
	}

	jobs, err := m.jobs(spec.Namespace)
	if err != nil {
		return nil, err
	}

	created, err := jobs.Create(ctx, buildJob(spec), metav1.CreateOptions{})
	if err != nil {
		return nil, translate(err, "create", spec.Name, spec.Namespace)
	}

	slog.Info("job created",
		"job", created.Name,
		"namespace", created.Namespace,
		"uid", created.UID,
		"image", spec.Image)

	return toRecord(created), nil
}

// Get returns the current state of the named Job.
func (m *Manager) Get(ctx context.Context, name, namespace string) (rec *Record, err error) {
	defer observe(opGet, time.Now(), &err)

	namespace = m.Namespace(namespace)
	if err = validateName(name); err != nil {
		return nil, err
	}

	jobs, err := m.jobs(namespace)
	if err != nil {
		return nil, err
	}

	job, err := jobs.Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, translate(err, "get", name, namespace)
	}
	return toRecord(job), nil
}

// List returns every Job in the namespace. An empty namespace yields an
// empty, non-nil slice.
func (m *Manager) List(ctx context.Context, namespace string) (recs []Record, err error) {
	defer observe(opList, time.Now(), &err)

	namespace = m.Namespace(namespace)
	jobs, err := m.jobs(namespace)
	if err != nil {
		return nil, err
	}

	list, err := jobs.List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, translate(err, "list", "", namespace)
	}

	recs = make([]Record, 0, len(list.Items))
	for i := range list.Items {
		recs = append(recs, *toRecord(&list.Items[i]))
	}
	return recs, nil
}

// Exists reports whether the named Job is present. Only NotFound becomes
// false; every other failure is returned.
func (m *Manager) Exists(ctx context.Context, name, namespace string) (bool, error) {
	_, err := m.Get(ctx, name, namespace)
	switch {
	case err == nil:
		return true, nil
	case cnserrors.IsCode(err, cnserrors.ErrCodeNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Delete removes the named Job. Its pods are collected by the cluster.
func (m *Manager) Delete(ctx context.Context, name, namespace string) (err error) {
	defer observe(opDelete, time.Now(), &err)

	namespace = m.Namespace(namespace)
	if err = validateName(name); err != nil {
		return err
	}

	jobs, err := m.jobs(namespace)
	if err != nil {
		return err
	}

	err = jobs.Delete(ctx, name, metav1.DeleteOptions{
		PropagationPolicy: ptr.To(metav1.DeletePropagationBackground),
	})
	if err != nil {
		return translate(err, "delete", name, namespace)
	}

	slog.Info("job deleted", "job", name, "namespace", namespace)
	return nil
}

func (m *Manager) client() (client.Interface, error) {
	c, err := m.provider.Client()
	if err != nil {
		if cnserrors.IsCode(err, cnserrors.ErrCodeClientUnavailable) {
			return nil, err
		}
		return nil, cnserrors.Wrap(cnserrors.ErrCodeClientUnavailable, "kubernetes client unavailable", err)
	}
	return c, nil
}

func (m *Manager) jobs(namespace string) (batchv1client.JobInterface, error) {
	c, err := m.client()
	if err != nil {
		return nil, err
	}
	return c.BatchV1().Jobs(namespace), nil
}

// translate maps a cluster API failure onto the error taxonomy.
func translate(err error, op, name, namespace string) error {
	ctx := map[string]any{"namespace": namespace}
	if name != "" {
		ctx["job"] = name
	}

	switch {
	case apierrors.IsNotFound(err):
		return cnserrors.WrapWithContext(cnserrors.ErrCodeNotFound,
			fmt.Sprintf("job %q not found in namespace %q", name, namespace), err, ctx)
	case apierrors.IsAlreadyExists(err):
		return cnserrors.WrapWithContext(cnserrors.ErrCodeAlreadyExists,
			fmt.Sprintf("job %q already exists in namespace %q", name, namespace), err, ctx)
	default:
		return cnserrors.WrapWithContext(cnserrors.ErrCodeUpstreamUnavailable,
			fmt.Sprintf("failed to %s job", op), err, ctx)
	}
}

// buildJob renders a Spec as a batch/v1 Job. Pods never restart in place;
// retries are governed by BackoffLimit.
func buildJob(spec Spec) *batchv1.Job {
	labels := maps.Clone(spec.Labels)
	if len(labels) == 0 {
		labels = map[string]string{"app": spec.Name}
	}

	return &batchv1.Job{
		ObjectMeta: metav1.ObjectMeta{
			Name:      spec.Name,
			Namespace: spec.Namespace,
			Labels:    labels,
		},
		Spec: batchv1.JobSpec{
			BackoffLimit: spec.BackoffLimit,
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: maps.Clone(labels),
				},
				Spec: corev1.PodSpec{
					RestartPolicy: corev1.RestartPolicyNever,
					NodeSelector:  maps.Clone(spec.NodeSelector),
					Containers: []corev1.Container{
						{
							Name:    spec.Name,
							Image:   spec.Image,
							Command: spec.Command,
						},
					},
				},
			},
		},
	}
}

func toRecord(job *batchv1.Job) *Record {
	rec := &Record{
		Name:              job.Name,
		Namespace:         job.Namespace,
		UID:               string(job.UID),
		CreationTimestamp: job.CreationTimestamp.Time,
		Labels:            job.Labels,
		NodeSelector:      job.Spec.Template.Spec.NodeSelector,
		BackoffLimit:      job.Spec.BackoffLimit,
		Status:            toStatus(job.Status),
		resourceVersion:   job.ResourceVersion,
	}
	if containers := job.Spec.Template.Spec.Containers; len(containers) > 0 {
		rec.Image = containers[0].Image
		rec.Command = containers[0].Command
	}
	return rec
}

func toStatus(s batchv1.JobStatus) Status {
	st := Status{
		Active:     s.Active,
		Succeeded:  s.Succeeded,
		Failed:     s.Failed,
		Conditions: make([]Condition, 0, len(s.Conditions)),
	}
	if s.StartTime != nil {
		st.StartTime = ptr.To(s.StartTime.Time)
	}
	if s.CompletionTime != nil {
		st.CompletionTime = ptr.To(s.CompletionTime.Time)
	}
	for _, c := range s.Conditions {
		st.Conditions = append(st.Conditions, Condition{
			Type:    string(c.Type),
			Status:  string(c.Status),
			Reason:  c.Reason,
			Message: c.Message,
		})
	}
	return st
}
