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

package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	routes := map[string]http.HandlerFunc{
		"GET /test": okHandler,
	}

	s := New(WithName("nanojobd"), WithVersion("1.2.3"), WithHandler(routes))

	if s.config == nil || s.httpServer == nil || s.rateLimiter == nil {
		t.Fatal("expected server to be fully initialized")
	}
	if s.config.Name != "nanojobd" || s.config.Version != "1.2.3" {
		t.Errorf("unexpected identity %s %s", s.config.Name, s.config.Version)
	}
	if s.config.Handlers[rootPattern] == nil {
		t.Error("expected default root handler to be registered")
	}
	if s.httpServer.ReadHeaderTimeout == 0 {
		t.Error("expected read header timeout to be set")
	}
	if s.httpServer.ErrorLog == nil {
		t.Error("expected http.Server errors to go to the structured logger")
	}
}

func TestRoutes(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{
		"GET /api/v1/items/{name}": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(r.PathValue("name")))
		},
	}))
	s.setReady(true)
	h := s.httpServer.Handler

	tests := []struct {
		name   string
		method string
		path   string
		status int
		body   string
	}{
		{"path value", http.MethodGet, "/api/v1/items/hello-nano", http.StatusOK, "hello-nano"},
		{"wrong method", http.MethodPut, "/api/v1/items/hello-nano", http.StatusMethodNotAllowed, ""},
		{"unknown path", http.MethodGet, "/nope", http.StatusNotFound, ""},
		{"index", http.MethodGet, "/", http.StatusOK, "GET /api/v1/items/{name}"},
		{"health", http.MethodGet, "/health", http.StatusOK, "healthy"},
		{"ready", http.MethodGet, "/ready", http.StatusOK, "ready"},
		{"metrics", http.MethodGet, "/metrics", http.StatusOK, "nanojob_http_requests_total"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			if w.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, w.Code)
			}
			if tt.body != "" && !strings.Contains(w.Body.String(), tt.body) {
				t.Errorf("expected body to contain %q, got %s", tt.body, w.Body.String())
			}
		})
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := New()
	w := httptest.NewRecorder()
	s.handleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if w.Header().Get("Content-Type") != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", w.Header().Get("Content-Type"))
	}
}

func TestReadyEndpoint(t *testing.T) {
	s := New()

	tests := []struct {
		name   string
		ready  bool
		status int
		want   string
	}{
		{"ready state", true, http.StatusOK, "ready"},
		{"not ready state", false, http.StatusServiceUnavailable, "not_ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.setReady(tt.ready)

			w := httptest.NewRecorder()
			s.handleReady(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

			if w.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, w.Code)
			}
			var resp HealthResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode: %v", err)
			}
			if resp.Status != tt.want {
				t.Errorf("expected status %q, got %q", tt.want, resp.Status)
			}
		})
	}
}

func TestRateLimiting(t *testing.T) {
	cfg := NewConfig()
	cfg.RateLimit = 1
	cfg.RateLimitBurst = 1
	cfg.Handlers = map[string]http.HandlerFunc{"GET /test": okHandler}

	s := New(WithConfig(cfg))
	h := s.httpServer.Handler

	w1 := httptest.NewRecorder()
	h.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/test", nil))
	if w1.Code != http.StatusOK {
		t.Errorf("expected first request to succeed, got %d", w1.Code)
	}

	w2 := httptest.NewRecorder()
	h.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/test", nil))
	if w2.Code != http.StatusTooManyRequests {
		t.Errorf("expected second request to be rate limited, got %d", w2.Code)
	}

	// System endpoints bypass the limiter.
	w3 := httptest.NewRecorder()
	h.ServeHTTP(w3, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w3.Code != http.StatusOK {
		t.Errorf("expected health to bypass rate limiting, got %d", w3.Code)
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func TestStartAndShutdown(t *testing.T) {
	cfg := NewConfig()
	cfg.Address = "127.0.0.1"
	cfg.Port = freePort(t)
	cfg.ShutdownTimeout = time.Second

	var readyCalls, stoppingCalls atomic.Int32
	readyCh := make(chan struct{})

	s := New(WithConfig(cfg),
		WithReadyHook(func() {
			readyCalls.Add(1)
			close(readyCh)
		}),
		WithStoppingHook(func() { stoppingCalls.Add(1) }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Start(ctx)
	}()

	select {
	case <-readyCh:
	case <-time.After(2 * time.Second):
		t.Fatal("server did not become ready")
	}
	if !s.isReady() {
		t.Error("expected ready after listener bound")
	}

	resp, err := http.Get("http://" + s.httpServer.Addr + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	cancel()

	select {
	case err := <-errChan:
		if err != nil {
			t.Errorf("expected clean shutdown, got error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown timed out")
	}

	if s.isReady() {
		t.Error("expected not ready after shutdown")
	}
	if readyCalls.Load() != 1 || stoppingCalls.Load() != 1 {
		t.Errorf("expected one ready and one stopping call, got %d %d", readyCalls.Load(), stoppingCalls.Load())
	}
}

func TestStart_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	cfg := NewConfig()
	cfg.Address = "127.0.0.1"
	cfg.Port = ln.Addr().(*net.TCPAddr).Port

	called := false
	s := New(WithConfig(cfg), WithReadyHook(func() { called = true }))

	if err := s.Start(context.Background()); err == nil {
		t.Fatal("expected error when port is taken")
	}
	if called {
		t.Error("ready hook must not run when listen fails")
	}
}

