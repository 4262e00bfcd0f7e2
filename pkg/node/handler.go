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

package node

import (
	"net/http"

	"github.com/NVIDIA/nanojob/pkg/serializer"
	"github.com/NVIDIA/nanojob/pkg/server"
)

// ShutdownResponse is returned by HandleShutdown.
type ShutdownResponse struct {
	Status  string `json:"status"`
	Host    string `json:"host"`
	Address string `json:"address"`
}

// HandleShutdown shuts down the node named by the {host} and {address}
// path values.
func (s *Shutdowner) HandleShutdown(w http.ResponseWriter, r *http.Request) {
	host := r.PathValue("host")
	address := r.PathValue("address")

	if err := s.Shutdown(r.Context(), host, address); err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to shutdown node",
			map[string]any{"host": host, "address": address})
		return
	}

	serializer.RespondJSON(w, http.StatusOK, ShutdownResponse{Status: "ok", Host: host, Address: address})
}
