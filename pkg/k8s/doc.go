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

// Package k8s provides Kubernetes integration for nanojob.
//
// # Sub-packages
//
// client: memoized, authenticated cluster client
//
//	p := client.NewProvider()
//	clientset, err := p.Client()
//
// job: lifecycle management of batch/v1 Jobs
//
//	m := job.NewManager(p, job.WithDefaultNamespace("prompts"))
//	rec, err := m.Create(ctx, job.Spec{Name: "hello-nano", Image: "busybox"})
//
// The cluster API is the system of record. Nothing in these packages caches
// or persists Job state; every read goes to the API server.
package k8s
