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

// Package serializer renders values for HTTP responses and terminal output.
//
// Three output formats are supported:
//   - JSON: indented, machine-readable
//   - YAML: human-readable
//   - Table: columns for values implementing Tabular, otherwise flattened
//     FIELD/VALUE rows
//
// Usage:
//
//	w := serializer.NewStdoutWriter(serializer.FormatTable)
//	if err := w.Serialize(ctx, record); err != nil {
//		return err
//	}
//
// For HTTP responses:
//
//	serializer.RespondJSON(w, http.StatusOK, data)
//
// RespondJSON encodes before writing headers, so an encoding failure yields
// a clean 500 rather than a partial body.
package serializer
