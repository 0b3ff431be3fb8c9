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

import "fmt"

// Code identifies a member of the failure taxonomy.
type Code string

// Taxonomy codes produced directly by the core.
const (
	CodeFileSizeExceeded    Code = "FILE_SIZE_EXCEEDED"
	CodeInvalidFilename     Code = "INVALID_FILENAME"
	CodeUnsupportedFileType Code = "UNSUPPORTED_FILE_TYPE"
	CodeFileProcessingError Code = "FILE_PROCESSING_ERROR"
	CodeEmptySearchQuery    Code = "EMPTY_SEARCH_QUERY"
	CodeInvalidSearchQuery  Code = "INVALID_SEARCH_QUERY"
	CodeServiceUnavailable  Code = "SERVICE_UNAVAILABLE"
	CodeExternalAPIError    Code = "EXTERNAL_API_ERROR"
	CodeResourceNotFound    Code = "RESOURCE_NOT_FOUND"
	CodeResourceConflict    Code = "RESOURCE_CONFLICT"
	CodeInternalServerError Code = "INTERNAL_SERVER_ERROR"
	CodeValidationError     Code = "VALIDATION_ERROR"
)

// Adapter codes assigned by FromError when translating untyped failures.
const (
	CodeFileNotFound     Code = "FILE_NOT_FOUND"
	CodePermissionDenied Code = "PERMISSION_DENIED"
	CodeTimeout          Code = "TIMEOUT"
	CodeInternalError    Code = "INTERNAL_ERROR"
)

// Status returns the HTTP-style status for a code. The mapping is a
// pure function of the code.
func (c Code) Status() int {
	switch c {
	case CodeFileSizeExceeded, CodeInvalidFilename, CodeUnsupportedFileType,
		CodeFileProcessingError, CodeEmptySearchQuery, CodeInvalidSearchQuery:
		return 400
	case CodePermissionDenied:
		return 403
	case CodeResourceNotFound, CodeFileNotFound:
		return 404
	case CodeResourceConflict:
		return 409
	case CodeValidationError:
		return 422
	case CodeExternalAPIError:
		return 502
	case CodeServiceUnavailable:
		return 503
	case CodeTimeout:
		return 504
	default:
		return 500
	}
}

// Fault is a typed failure from the taxonomy. It is immutable once
// constructed; Context holds extra machine-readable fields such as the
// offending size, the configured limit, or the filename.
type Fault struct {
	Code    Code
	Message string
	Context map[string]any
}

// New creates a fault with the given code and message.
func New(code Code, message string) *Fault {
	return &Fault{Code: code, Message: message}
}

// Error implements the error interface.
func (f *Fault) Error() string {
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

// Status returns the HTTP-style status of the fault's code.
func (f *Fault) Status() int {
	return f.Code.Status()
}

// Response serializes the fault into the stable shape consumed verbatim
// by the routing layer: {error, status_code, message, context?}.
func (f *Fault) Response() map[string]any {
	resp := map[string]any{
		"error":       string(f.Code),
		"status_code": f.Code.Status(),
		"message":     f.Message,
	}
	if len(f.Context) > 0 {
		ctx := make(map[string]any, len(f.Context))
		for k, v := range f.Context {
			ctx[k] = v
		}
		resp["context"] = ctx
	}
	return resp
}

// FileSizeExceeded reports a file larger than the configured limit.
// The limit uses mebibyte semantics: 1 MB = 1,048,576 bytes.
func FileSizeExceeded(actualBytes int64, maxSizeMB int, filename string) *Fault {
	return &Fault{
		Code: CodeFileSizeExceeded,
		Message: fmt.Sprintf("file %q exceeds maximum size of %d MB",
			filename, maxSizeMB),
		Context: map[string]any{
			"actual_bytes": actualBytes,
			"limit_bytes":  int64(maxSizeMB) * 1048576,
			"filename":     filename,
		},
	}
}

// InvalidFilename reports a filename that failed validation.
func InvalidFilename(filename, reason string) *Fault {
	return &Fault{
		Code:    CodeInvalidFilename,
		Message: fmt.Sprintf("invalid filename %q: %s", filename, reason),
		Context: map[string]any{"filename": filename, "reason": reason},
	}
}

// UnsupportedFileType reports a MIME type outside the allow-list.
func UnsupportedFileType(mimeType string, allowed []string) *Fault {
	return &Fault{
		Code:    CodeUnsupportedFileType,
		Message: fmt.Sprintf("unsupported file type %q", mimeType),
		Context: map[string]any{"mime_type": mimeType, "allowed": allowed},
	}
}

// FileProcessingError reports a failure while processing a file.
func FileProcessingError(message, filename string) *Fault {
	return &Fault{
		Code:    CodeFileProcessingError,
		Message: message,
		Context: map[string]any{"filename": filename},
	}
}

// EmptySearchQuery reports a blank or whitespace-only query.
func EmptySearchQuery() *Fault {
	return &Fault{
		Code:    CodeEmptySearchQuery,
		Message: "search query cannot be empty",
	}
}

// InvalidSearchQuery reports a query rejected by strict validation.
func InvalidSearchQuery(query, reason string) *Fault {
	return &Fault{
		Code:    CodeInvalidSearchQuery,
		Message: reason,
		Context: map[string]any{"query": query},
	}
}

// ServiceUnavailable reports a collaborator that cannot serve requests.
func ServiceUnavailable(service, reason string) *Fault {
	return &Fault{
		Code:    CodeServiceUnavailable,
		Message: fmt.Sprintf("service %q unavailable: %s", service, reason),
		Context: map[string]any{"service": service},
	}
}

// ExternalAPIError reports a failure from an external provider.
func ExternalAPIError(provider, message string, providerStatus int) *Fault {
	f := &Fault{
		Code:    CodeExternalAPIError,
		Message: fmt.Sprintf("external API %q failed: %s", provider, message),
		Context: map[string]any{"provider": provider},
	}
	if providerStatus != 0 {
		f.Context["provider_status"] = providerStatus
	}
	return f
}

// ResourceNotFound reports a missing resource.
func ResourceNotFound(resource, name string) *Fault {
	return &Fault{
		Code:    CodeResourceNotFound,
		Message: fmt.Sprintf("%s %q not found", resource, name),
		Context: map[string]any{"resource": resource, "name": name},
	}
}

// ResourceConflict reports a conflicting resource state.
func ResourceConflict(resource, name, reason string) *Fault {
	return &Fault{
		Code:    CodeResourceConflict,
		Message: fmt.Sprintf("%s %q conflict: %s", resource, name, reason),
		Context: map[string]any{"resource": resource, "name": name},
	}
}

// InternalServerError reports an unexpected failure inside the core.
func InternalServerError(message string) *Fault {
	return &Fault{Code: CodeInternalServerError, Message: message}
}

// ValidationError reports a generic scalar validation failure. Field
// names the offending value and constraint describes the rule it broke.
func ValidationError(field, constraint string) *Fault {
	return &Fault{
		Code:    CodeValidationError,
		Message: fmt.Sprintf("validation failed for %q: %s", field, constraint),
		Context: map[string]any{"field": field, "constraint": constraint},
	}
}
