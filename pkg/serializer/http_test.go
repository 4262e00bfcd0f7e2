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

package serializer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type testResponse struct {
	JobName string `json:"job_name"`
	Exists  bool   `json:"exists"`
}

func TestRespondJSON(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusCreated, http.StatusConflict, http.StatusServiceUnavailable} {
		w := httptest.NewRecorder()
		RespondJSON(w, status, testResponse{JobName: "hello-nano", Exists: true})

		if w.Code != status {
			t.Errorf("expected status %d, got %d", status, w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", ct)
		}

		var got testResponse
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if got.JobName != "hello-nano" || !got.Exists {
			t.Errorf("unexpected body %+v", got)
		}
	}
}

func TestRespondJSON_EncodingError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusOK, map[string]any{"bad": make(chan int)})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d on encoding failure, got %d", http.StatusInternalServerError, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct == "application/json" {
		t.Error("failed encodings must not be labeled as JSON")
	}
}

func TestRespondJSON_NilSliceVersusEmpty(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusOK, struct {
		Jobs []string `json:"jobs"`
	}{Jobs: []string{}})

	if got := w.Body.String(); got != "{\"jobs\":[]}\n" {
		t.Errorf("expected empty array, got %q", got)
	}
}
