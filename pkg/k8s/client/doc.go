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

// Package client resolves the authenticated Kubernetes client used by the
// job manager.
//
// A Provider probes for credentials exactly once, guarded by sync.Once, and
// caches the resulting client for the life of the process. Concurrent first
// calls block on the single probe; later calls read the cached value without
// locking.
//
//	p := client.NewProvider(client.WithKubeconfig(path))
//	clientset, err := p.Client()
//	if err != nil {
//	    return err // carries errors.ErrCodeClientUnavailable
//	}
//
// # Authentication Modes
//
// In-cluster (running as a Pod):
//   - Used when KUBERNETES_SERVICE_HOST is set and the service account
//     token is mounted at /var/run/secrets/kubernetes.io/serviceaccount/
//
// Out-of-cluster (running on a host or workstation):
//   - WithKubeconfig path, then the KUBECONFIG environment variable,
//     then ~/.kube/config
//
// Each source is tried once. If none yields a credential the failure is
// cached as well and a restart is needed to probe again. Token rotation is
// handled by client-go for in-cluster credentials and is otherwise external.
package client
