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


package fault

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strconv"
)

// ErrMalformed marks input that lower layers found syntactically
// invalid. Collaborators wrap it so FromError can classify the failure
// as a VALIDATION_ERROR instead of an internal one.
var ErrMalformed = errors.New("malformed input")

// FromError translates an arbitrary error into a fault. A *Fault passes
// through unchanged; recognized runtime failures map onto the adapter
// codes; anything unrecognized becomes INTERNAL_ERROR. Returns nil only
// for a nil error.
func FromError(err error) *Fault {
	if err == nil {
		return nil
	}

	var f *Fault
	if errors.As(err, &f) {
		return f
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &Fault{Code: CodeFileNotFound, Message: err.Error()}
	case errors.Is(err, fs.ErrPermission):
		return &Fault{Code: CodePermissionDenied, Message: err.Error()}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, os.ErrDeadlineExceeded):
		return &Fault{Code: CodeTimeout, Message: err.Error()}
	case isMalformed(err):
		return &Fault{Code: CodeValidationError, Message: err.Error()}
	default:
		return &Fault{Code: CodeInternalError, Message: err.Error()}
	}
}

// Response converts any error directly to the stable response shape.
func Response(err error) map[string]any {
	return FromError(err).Response()
}

func isMalformed(err error) bool {
	if errors.Is(err, ErrMalformed) {
		return true
	}
	var numErr *strconv.NumError
	return errors.As(err, &numErr)
}
