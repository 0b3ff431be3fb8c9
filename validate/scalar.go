// Copyright 2025 Flamehaven
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


package validate

import (
	"fmt"
	"strings"

	"github.com/flamehaven/filesearch/fault"
)

// Scalar checks used during configuration construction. They carry no
// domain semantics; each failure is a generic VALIDATION_ERROR naming
// the field and the constraint it broke.

// PositiveInt checks that value is at least min and returns it.
func PositiveInt(value int, field string, min int) (int, error) {
	if value < min {
		return 0, fault.ValidationError(field,
			fmt.Sprintf("must be at least %d, got %d", min, value))
	}
	return value, nil
}

// FloatRange checks that value lies within [lo, hi] and returns it.
func FloatRange(value float64, field string, lo, hi float64) (float64, error) {
	if value < lo || value > hi {
		return 0, fault.ValidationError(field,
			fmt.Sprintf("must be between %g and %g, got %g", lo, hi, value))
	}
	return value, nil
}

// StringNotEmpty trims value and checks that something remains,
// returning the trimmed string.
func StringNotEmpty(value, field string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fault.ValidationError(field, "must not be empty")
	}
	return trimmed, nil
}
