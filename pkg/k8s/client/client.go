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

package client

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"

	cnserrors "github.com/NVIDIA/nanojob/pkg/errors"
)

// Interface is an alias for kubernetes.Interface to allow easier mocking in tests.
// This enables using fake.NewClientset() which returns kubernetes.Interface.
type Interface = kubernetes.Interface

const (
	// EnvKubeconfig overrides the kubeconfig location used outside the cluster.
	EnvKubeconfig = "KUBECONFIG"

	envServiceHost = "KUBERNETES_SERVICE_HOST"

	// ServiceAccountTokenPath is where Kubernetes mounts the service account token.
	ServiceAccountTokenPath = "/var/run/secrets/kubernetes.io/serviceaccount/token" //nolint:gosec // path, not a credential
)

// Source identifies where the cluster credential was loaded from.
type Source string

const (
	SourceNone       Source = ""
	SourceInCluster  Source = "in-cluster"
	SourceKubeconfig Source = "kubeconfig"
)

// Provider resolves one authenticated cluster client and memoizes it for the
// life of the process. The credential probe runs exactly once, even under
// concurrent first calls; a failed probe is memoized as well.
type Provider struct {
	kubeconfig string

	once   sync.Once
	client Interface
	config *rest.Config
	source Source
	err    error

	getenv         func(string) string
	tokenPath      string
	inCluster      func() (*rest.Config, error)
	fromKubeconfig func(path string) (*rest.Config, error)
	newClient      func(*rest.Config) (Interface, error)
}

// Option configures a Provider.
type Option func(*Provider)

// WithKubeconfig sets an explicit kubeconfig path used when the process is
// not running inside the cluster. It takes precedence over KUBECONFIG.
func WithKubeconfig(path string) Option {
	return func(p *Provider) {
		p.kubeconfig = path
	}
}

// NewProvider returns a Provider that has not yet probed for credentials.
func NewProvider(opts ...Option) *Provider {
	p := &Provider{
		getenv:    os.Getenv,
		tokenPath: ServiceAccountTokenPath,
		inCluster: rest.InClusterConfig,
		fromKubeconfig: func(path string) (*rest.Config, error) {
			return clientcmd.BuildConfigFromFlags("", path)
		},
		newClient: func(cfg *rest.Config) (Interface, error) {
			cs, err := kubernetes.NewForConfig(cfg)
			if err != nil {
				return nil, err
			}
			return cs, nil
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Client returns the memoized cluster client, resolving it on first call.
//
// Resolution order:
//  1. In-cluster service account, when KUBERNETES_SERVICE_HOST is set and the
//     token is mounted
//  2. Kubeconfig from WithKubeconfig, then KUBECONFIG, then ~/.kube/config
//
// When neither source yields a credential the returned error carries
// ErrCodeClientUnavailable.
func (p *Provider) Client() (Interface, error) {
	p.once.Do(p.resolve)
	return p.client, p.err
}

// RESTConfig returns the rest configuration behind the memoized client.
func (p *Provider) RESTConfig() (*rest.Config, error) {
	p.once.Do(p.resolve)
	return p.config, p.err
}

// Source reports which credential source the client was built from,
// resolving the client first if needed.
func (p *Provider) Source() Source {
	p.once.Do(p.resolve)
	return p.source
}

func (p *Provider) resolve() {
	cfg, source, err := p.loadConfig()
	if err != nil {
		p.err = cnserrors.Wrap(cnserrors.ErrCodeClientUnavailable,
			"no usable cluster credential", err)
		slog.Error("cluster client unavailable", "error", err)
		return
	}

	c, err := p.newClient(cfg)
	if err != nil {
		p.err = cnserrors.Wrap(cnserrors.ErrCodeClientUnavailable,
			"failed to create kubernetes client", err)
		slog.Error("cluster client unavailable", "source", source, "error", err)
		return
	}

	p.client, p.config, p.source = c, cfg, source
	slog.Info("cluster client ready", "source", source, "host", cfg.Host)
}

// loadConfig tries the in-cluster credential once, then the kubeconfig once.
func (p *Provider) loadConfig() (*rest.Config, Source, error) {
	var inClusterErr error
	if p.inClusterAvailable() {
		cfg, err := p.inCluster()
		if err == nil {
			return cfg, SourceInCluster, nil
		}
		inClusterErr = err
		slog.Warn("in-cluster config unavailable, trying kubeconfig", "error", err)
	}

	path := p.kubeconfigPath()
	if path == "" {
		if inClusterErr != nil {
			return nil, SourceNone, fmt.Errorf("failed to get in-cluster config and no kubeconfig found: %w", inClusterErr)
		}
		return nil, SourceNone, fmt.Errorf("not running in a cluster and no kubeconfig found")
	}

	cfg, err := p.fromKubeconfig(path)
	if err != nil {
		return nil, SourceNone, fmt.Errorf("failed to build kube config from %s: %w", path, err)
	}
	return cfg, SourceKubeconfig, nil
}

func (p *Provider) inClusterAvailable() bool {
	if p.getenv(envServiceHost) == "" {
		return false
	}
	_, err := os.Stat(p.tokenPath)
	return err == nil
}

// kubeconfigPath returns the first kubeconfig candidate, or "" when the
// default location does not exist.
func (p *Provider) kubeconfigPath() string {
	if p.kubeconfig != "" {
		return p.kubeconfig
	}
	if env := p.getenv(EnvKubeconfig); env != "" {
		return env
	}
	home := homedir.HomeDir()
	if home == "" {
		return ""
	}
	path := filepath.Join(home, ".kube", "config")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
