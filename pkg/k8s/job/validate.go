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
	"fmt"
	"strings"

	"github.com/distribution/reference"
	"k8s.io/apimachinery/pkg/util/validation"

	cnserrors "github.com/NVIDIA/nanojob/pkg/errors"
)

// Validate checks the spec against the cluster's naming rules before any
// request is sent. Failures carry ErrCodeInvalidRequest.
func (s *Spec) Validate() error {
	var problems []string

	if s.Name == "" {
		problems = append(problems, "name is required")
	} else {
		// Job names end up in the job-name pod label, so they are held to
		// the label length as well as DNS-1123.
		for _, msg := range validation.IsDNS1123Label(s.Name) {
			problems = append(problems, "name: "+msg)
		}
	}

	if s.Namespace != "" {
		for _, msg := range validation.IsDNS1123Label(s.Namespace) {
			problems = append(problems, "namespace: "+msg)
		}
	}

	if s.Image == "" {
		problems = append(problems, "image is required")
	} else if _, err := reference.ParseNormalizedNamed(s.Image); err != nil {
		problems = append(problems, fmt.Sprintf("image: %v", err))
	}

	problems = append(problems, validateLabelMap("labels", s.Labels)...)
	problems = append(problems, validateLabelMap("node_selector", s.NodeSelector)...)

	if s.BackoffLimit != nil && *s.BackoffLimit < 0 {
		problems = append(problems, "backoff_limit must be non-negative")
	}

	if len(problems) > 0 {
		return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"invalid job spec: "+strings.Join(problems, "; "),
			map[string]any{"job": s.Name, "problems": problems})
	}
	return nil
}

func validateLabelMap(field string, m map[string]string) []string {
	var problems []string
	for k, v := range m {
		for _, msg := range validation.IsQualifiedName(k) {
			problems = append(problems, fmt.Sprintf("%s key %q: %s", field, k, msg))
		}
		for _, msg := range validation.IsValidLabelValue(v) {
			problems = append(problems, fmt.Sprintf("%s value %q: %s", field, v, msg))
		}
	}
	return problems
}

func validateName(name string) error {
	if name == "" {
		return cnserrors.New(cnserrors.ErrCodeInvalidRequest, "job name is required")
	}
	return nil
}
