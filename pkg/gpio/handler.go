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

package gpio

import (
	"net/http"
	"strconv"

	cnserrors "github.com/NVIDIA/nanojob/pkg/errors"
	"github.com/NVIDIA/nanojob/pkg/serializer"
	"github.com/NVIDIA/nanojob/pkg/server"
)

// PulseResponse is returned by HandlePulse.
type PulseResponse struct {
	Status string `json:"status"`
	Pin    int    `json:"pin"`
}

// HandlePulse pulses the pin named by the {pin} path value.
// The request blocks for the hold duration.
func (c *Controller) HandlePulse(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("pin")
	pin, err := strconv.Atoi(raw)
	if err != nil {
		server.WriteError(w, r, http.StatusBadRequest, cnserrors.ErrCodeInvalidPin,
			"Pin must be an integer", false, map[string]any{"pin": raw})
		return
	}

	if err := c.Pulse(pin); err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to pulse pin", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, PulseResponse{Status: "ok", Pin: pin})
}
