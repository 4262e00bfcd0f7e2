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

// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Every operation of the job manager and the pin controller returns a
// *StructuredError whose Code is one of a fixed taxonomy. The HTTP layer maps
// each code to a single status (see server.HTTPStatusFromCode):
//
//	NOT_FOUND             404
//	ALREADY_EXISTS        409
//	INVALID_PIN           400
//	INVALID_REQUEST       400
//	CLIENT_UNAVAILABLE    503
//	UPSTREAM_UNAVAILABLE  503
//	HARDWARE_UNAVAILABLE  503
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeUpstreamUnavailable,
//	    "failed to create job",
//	    apiErr,
//	    map[string]any{
//	        "job":       name,
//	        "namespace": namespace,
//	    },
//	)
package errors
