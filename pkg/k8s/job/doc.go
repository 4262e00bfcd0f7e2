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

/*
Package job manages the lifecycle of one-shot Kubernetes Jobs.

A Manager turns a small Spec (name, image, command, labels, node selector,
backoff limit) into a batch/v1 Job with a single container and a Never
restart policy, and exposes create, get, list, exists, delete, logs and wait
on top of the shared cluster client.

The Manager keeps no job state: every call is a live read or write against
the cluster API, and cluster failures are mapped onto the error codes in
pkg/errors:

	NotFound       -> ErrCodeNotFound
	AlreadyExists  -> ErrCodeAlreadyExists
	no credential  -> ErrCodeClientUnavailable
	anything else  -> ErrCodeUpstreamUnavailable

Usage:

	p := client.NewProvider()
	m := job.NewManager(p, job.WithDefaultNamespace("prompts"))

	rec, err := m.Create(ctx, job.Spec{
	    Name:    "hello-nano",
	    Image:   "busybox",
	    Command: []string{"echo", "hi"},
	})

	done, err := m.Wait(ctx, rec.Name, rec.Namespace, 0)
	if done.Failed() {
	    // inspect done.Conditions
	}

The Handle* methods expose the same operations over HTTP and are
registered by pkg/api.
*/
package job
