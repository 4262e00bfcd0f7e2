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

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"

	"github.com/NVIDIA/nanojob/pkg/gpio"
	"github.com/NVIDIA/nanojob/pkg/k8s/client"
	"github.com/NVIDIA/nanojob/pkg/k8s/job"
	"github.com/NVIDIA/nanojob/pkg/node"
	"github.com/NVIDIA/nanojob/pkg/server"
)

const testNamespace = "prompts"

// pinBackend records the levels written to each pin.
type pinBackend struct {
	mu     sync.Mutex
	levels []gpio.Level
}

func (b *pinBackend) Name() string     { return "fake" }
func (b *pinBackend) Concurrent() bool { return true }

func (b *pinBackend) Set(_ int, level gpio.Level) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.levels = append(b.levels, level)
	return nil
}

type pinDriver struct {
	backend gpio.Backend
	err     error
}

func (d *pinDriver) Name() string { return "fake" }

func (d *pinDriver) Open() (gpio.Backend, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.backend, nil
}

type testAPI struct {
	url     string
	cs      *fake.Clientset
	backend *pinBackend
}

func newTestAPI(t *testing.T, driver gpio.Driver) *testAPI {
	t.Helper()

	cs := fake.NewClientset()
	cs.PrependReactor("create", "jobs", func(action k8stesting.Action) (bool, runtime.Object, error) {
		if j, ok := action.(k8stesting.CreateAction).GetObject().(*batchv1.Job); ok {
			j.UID = types.UID("uid-" + j.Name)
			j.CreationTimestamp = metav1.NewTime(time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC))
		}
		return false, nil, nil
	})

	m := job.NewManager(job.ClientProviderFunc(func() (client.Interface, error) {
		return cs, nil
	}), job.WithDefaultNamespace(testNamespace))

	backend := &pinBackend{}
	if driver == nil {
		driver = &pinDriver{backend: backend}
	}
	c := gpio.NewController(gpio.NewSelector(driver), gpio.WithHoldDuration(time.Millisecond))

	mux := http.NewServeMux()
	for pattern, h := range Routes(m, c, node.NewShutdowner()) {
		mux.HandleFunc(pattern, h)
	}
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	return &testAPI{url: ts.URL, cs: cs, backend: backend}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequestWithContext(context.Background(), method, a.url+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("%s %s: decode response: %v", method, path, err)
	}
	return resp.StatusCode, out
}

func helloNano() map[string]any {
	return map[string]any{
		"name":    "hello-nano",
		"image":   "busybox",
		"command": []string{"echo", "Hello"},
	}
}

func TestConstants(t *testing.T) {
	if name != "nanojobd" {
		t.Errorf("name = %q, want %q", name, "nanojobd")
	}
	if versionDefault != "dev" {
		t.Errorf("versionDefault = %q, want %q", versionDefault, "dev")
	}
	if version == "" || commit == "" || date == "" {
		t.Error("build variables should not be empty")
	}
}

func TestRoutes(t *testing.T) {
	routes := Routes(job.NewManager(nil), gpio.NewController(gpio.NewSelector()), node.NewShutdowner())

	want := []string{
		"POST /api/v1/jobs",
		"GET /api/v1/jobs",
		"GET /api/v1/jobs/{name}",
		"DELETE /api/v1/jobs/{name}",
		"GET /api/v1/jobs/{name}/exists",
		"GET /api/v1/jobs/{name}/logs",
		"POST /api/v1/nodes/{pin}",
		"POST /api/v1/nodes/shutdown/{host}/{address}",
	}
	if len(routes) != len(want) {
		t.Errorf("got %d routes, want %d", len(routes), len(want))
	}
	for _, p := range want {
		if routes[p] == nil {
			t.Errorf("missing route %q", p)
		}
	}

	// every pattern must register cleanly alongside the server's own routes
	s := server.New(server.WithHandler(routes))
	if s == nil {
		t.Fatal("server.New returned nil")
	}
}

func TestHelloNano(t *testing.T) {
	a := newTestAPI(t, nil)

	code, body := a.do(t, http.MethodPost, "/api/v1/jobs", helloNano())
	if code != http.StatusCreated {
		t.Fatalf("create: status = %d, body = %v", code, body)
	}
	if body["status"] != "success" || body["job_name"] != "hello-nano" ||
		body["namespace"] != testNamespace || body["uid"] != "uid-hello-nano" {
		t.Errorf("create: unexpected body %v", body)
	}
	if body["creation_timestamp"] != "2025-11-03T12:00:00Z" {
		t.Errorf("create: creation_timestamp = %v", body["creation_timestamp"])
	}

	code, body = a.do(t, http.MethodGet, "/api/v1/jobs/hello-nano/exists", nil)
	if code != http.StatusOK || body["exists"] != true {
		t.Fatalf("exists after create: status = %d, body = %v", code, body)
	}

	code, body = a.do(t, http.MethodGet, "/api/v1/jobs/hello-nano", nil)
	if code != http.StatusOK || body["job_name"] != "hello-nano" {
		t.Fatalf("get: status = %d, body = %v", code, body)
	}

	code, body = a.do(t, http.MethodGet, "/api/v1/jobs/hello-nano/logs", nil)
	if code != http.StatusOK || body["status"] != job.LogStatusNoPods {
		t.Fatalf("logs without pods: status = %d, body = %v", code, body)
	}

	_, err := a.cs.CoreV1().Pods(testNamespace).Create(t.Context(), &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      "hello-nano-abcde",
			Namespace: testNamespace,
			Labels:    map[string]string{"job-name": "hello-nano"},
		},
		Status: corev1.PodStatus{Phase: corev1.PodSucceeded},
	}, metav1.CreateOptions{})
	if err != nil {
		t.Fatalf("create pod: %v", err)
	}

	code, body = a.do(t, http.MethodGet, "/api/v1/jobs/hello-nano/logs", nil)
	if code != http.StatusOK || body["status"] != "succeeded" || body["logs"] != "fake logs" {
		t.Fatalf("logs: status = %d, body = %v", code, body)
	}

	code, body = a.do(t, http.MethodPost, "/api/v1/nodes/17", nil)
	if code != http.StatusOK || body["status"] != "ok" || body["pin"] != float64(17) {
		t.Fatalf("pulse: status = %d, body = %v", code, body)
	}
	if got := a.backend.levels; len(got) != 2 || got[0] != gpio.High || got[1] != gpio.Low {
		t.Errorf("pulse levels = %v, want [high low]", got)
	}

	code, body = a.do(t, http.MethodGet, "/api/v1/jobs", nil)
	if code != http.StatusOK || body["total"] != float64(1) || body["namespace"] != testNamespace {
		t.Fatalf("list: status = %d, body = %v", code, body)
	}

	code, body = a.do(t, http.MethodDelete, "/api/v1/jobs/hello-nano", nil)
	if code != http.StatusOK || body["status"] != "deleted" {
		t.Fatalf("delete: status = %d, body = %v", code, body)
	}

	code, body = a.do(t, http.MethodGet, "/api/v1/jobs/hello-nano/exists", nil)
	if code != http.StatusOK || body["exists"] != false {
		t.Fatalf("exists after delete: status = %d, body = %v", code, body)
	}
}

func TestJobErrors(t *testing.T) {
	a := newTestAPI(t, nil)

	if code, _ := a.do(t, http.MethodPost, "/api/v1/jobs", helloNano()); code != http.StatusCreated {
		t.Fatalf("seed create: status = %d", code)
	}

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"duplicate create", http.MethodPost, "/api/v1/jobs", helloNano(), http.StatusConflict, "ALREADY_EXISTS"},
		{"missing image", http.MethodPost, "/api/v1/jobs", map[string]any{"name": "x"}, http.StatusBadRequest, "INVALID_REQUEST"},
		{"bad name", http.MethodPost, "/api/v1/jobs", map[string]any{"name": "Bad_Name", "image": "busybox"}, http.StatusBadRequest, "INVALID_REQUEST"},
		{"unknown field", http.MethodPost, "/api/v1/jobs", `{"name":"x","image":"busybox","extra":1}`, http.StatusBadRequest, "INVALID_REQUEST"},
		{"malformed body", http.MethodPost, "/api/v1/jobs", `{"name":`, http.StatusBadRequest, "INVALID_REQUEST"},
		{"get missing", http.MethodGet, "/api/v1/jobs/missing", nil, http.StatusNotFound, "NOT_FOUND"},
		{"delete missing", http.MethodDelete, "/api/v1/jobs/missing", nil, http.StatusNotFound, "NOT_FOUND"},
		{"logs missing", http.MethodGet, "/api/v1/jobs/missing/logs", nil, http.StatusNotFound, "NOT_FOUND"},
		{"pin not a number", http.MethodPost, "/api/v1/nodes/abc", nil, http.StatusBadRequest, "INVALID_PIN"},
		{"pin out of range", http.MethodPost, "/api/v1/nodes/99", nil, http.StatusBadRequest, "INVALID_PIN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := a.do(t, tt.method, tt.path, tt.body)
			if code != tt.status {
				t.Errorf("status = %d, want %d (body %v)", code, tt.status, body)
			}
			if body["code"] != tt.code {
				t.Errorf("code = %v, want %s", body["code"], tt.code)
			}
		})
	}

	if len(a.backend.levels) != 0 {
		t.Errorf("invalid pins wrote levels %v", a.backend.levels)
	}
}

func TestExistsMissingIsNotAnError(t *testing.T) {
	a := newTestAPI(t, nil)

	code, body := a.do(t, http.MethodGet, "/api/v1/jobs/nope/exists?namespace=other", nil)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if body["exists"] != false || body["namespace"] != "other" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestPulse_HardwareUnavailable(t *testing.T) {
	a := newTestAPI(t, &pinDriver{err: errors.New("no gpio here")})

	for range 2 {
		code, body := a.do(t, http.MethodPost, "/api/v1/nodes/17", nil)
		if code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", code)
		}
		if body["code"] != "HARDWARE_UNAVAILABLE" {
			t.Errorf("code = %v, want HARDWARE_UNAVAILABLE", body["code"])
		}
	}
}

func TestShutdown_Unconfigured(t *testing.T) {
	a := newTestAPI(t, nil)

	code, body := a.do(t, http.MethodPost, "/api/v1/nodes/shutdown/nano-03/10.0.0.13", nil)
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body = %v", code, body)
	}
	if body["code"] != "INVALID_REQUEST" {
		t.Errorf("code = %v, want INVALID_REQUEST", body["code"])
	}
	if len(a.backend.levels) != 0 {
		t.Errorf("shutdown touched GPIO: %v", a.backend.levels)
	}
}
