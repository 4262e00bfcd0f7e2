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
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/NVIDIA/nanojob/pkg/defaults"
	cnserrors "github.com/NVIDIA/nanojob/pkg/errors"
	"github.com/NVIDIA/nanojob/pkg/serializer"
	"github.com/NVIDIA/nanojob/pkg/server"
)

// maxSpecBytes bounds the size of a create request body.
const maxSpecBytes = 1 << 20

// CreateResponse is returned by HandleCreate.
type CreateResponse struct {
	Status            string `json:"status"`
	JobName           string `json:"job_name"`
	Namespace         string `json:"namespace"`
	UID               string `json:"uid"`
	CreationTimestamp string `json:"creation_timestamp"`
}

// ListResponse is returned by HandleList.
type ListResponse struct {
	Namespace string   `json:"namespace"`
	Jobs      []Record `json:"jobs"`
	Total     int      `json:"total"`
}

// DeleteResponse is returned by HandleDelete.
type DeleteResponse struct {
	Status    string `json:"status"`
	JobName   string `json:"job_name"`
	Namespace string `json:"namespace"`
}

// ExistsResponse is returned by HandleExists.
type ExistsResponse struct {
	JobName   string `json:"job_name"`
	Namespace string `json:"namespace"`
	Exists    bool   `json:"exists"`
}

// HandleCreate creates a Job from a JSON Spec body.
// The namespace may be given in the body or as the "namespace" query parameter.
func (m *Manager) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.JobHandlerTimeout)
	defer cancel()

	var spec Spec
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSpecBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&spec); err != nil {
		msg := "Invalid job spec"
		if errors.Is(err, io.EOF) {
			msg = "Request body must be a JSON job spec"
		}
		server.WriteError(w, r, http.StatusBadRequest, cnserrors.ErrCodeInvalidRequest,
			msg, false, map[string]any{"error": err.Error()})
		return
	}
	if spec.Namespace == "" {
		spec.Namespace = r.URL.Query().Get("namespace")
	}

	rec, err := m.Create(ctx, spec)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to create job", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusCreated, CreateResponse{
		Status:            "success",
		JobName:           rec.Name,
		Namespace:         rec.Namespace,
		UID:               rec.UID,
		CreationTimestamp: rec.CreationTimestamp.UTC().Format(time.RFC3339),
	})
}

// HandleList lists Jobs in the "namespace" query parameter or the default.
func (m *Manager) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.JobHandlerTimeout)
	defer cancel()

	namespace := m.Namespace(r.URL.Query().Get("namespace"))
	recs, err := m.List(ctx, namespace)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to list jobs", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, ListResponse{
		Namespace: namespace,
		Jobs:      recs,
		Total:     len(recs),
	})
}

// HandleGet returns the full status of one Job.
func (m *Manager) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.JobHandlerTimeout)
	defer cancel()

	rec, err := m.Get(ctx, r.PathValue("name"), r.URL.Query().Get("namespace"))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to get job", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, rec)
}

// HandleDelete deletes one Job.
func (m *Manager) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.JobHandlerTimeout)
	defer cancel()

	name := r.PathValue("name")
	namespace := m.Namespace(r.URL.Query().Get("namespace"))
	if err := m.Delete(ctx, name, namespace); err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to delete job", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, DeleteResponse{
		Status:    "deleted",
		JobName:   name,
		Namespace: namespace,
	})
}

// HandleExists reports whether one Job exists. A missing Job is a 200.
func (m *Manager) HandleExists(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.JobHandlerTimeout)
	defer cancel()

	name := r.PathValue("name")
	namespace := m.Namespace(r.URL.Query().Get("namespace"))
	exists, err := m.Exists(ctx, name, namespace)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to check job", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, ExistsResponse{
		JobName:   name,
		Namespace: namespace,
		Exists:    exists,
	})
}

// HandleLogs returns the trailing log lines of a Job's pod.
func (m *Manager) HandleLogs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.JobHandlerTimeout)
	defer cancel()

	logs, err := m.Logs(ctx, r.PathValue("name"), r.URL.Query().Get("namespace"))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to get job logs", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, logs)
}
