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

import "github.com/flamehaven/filesearch/fault"

// MaxSearchResults is the system ceiling on results per search request.
// Requests above it are capped, not rejected.
const MaxSearchResults = 100

// UploadFile composes the individual validators into the upload request
// shape. The filename is checked first since an invalid name invalidates
// the whole request regardless of size or type; validation
// short-circuits on the first typed failure. Returns the cleaned base
// filename and whether the declared MIME type is acceptable.
func UploadFile(filename string, fileSize int64, mimeType string, maxSizeMB int) (string, bool, error) {
	clean, err := Filename(filename)
	if err != nil {
		return "", false, err
	}
	if err := FileSize(fileSize, maxSizeMB, clean); err != nil {
		return "", false, err
	}
	return clean, MIMEType(mimeType, nil), nil
}

// SearchRequest composes the query validators into the search request
// shape: the query is validated non-strictly, sanitized, and the result
// limit is clamped to MaxSearchResults. A cap is not a correctness
// violation, so oversized limits are silently reduced.
func SearchRequest(query string, maxResults int) (string, int, error) {
	trimmed, err := Query(query, false)
	if err != nil {
		return "", 0, err
	}
	cleaned := SanitizeQuery(trimmed)
	if cleaned == "" {
		// Sanitization can strip a query down to nothing.
		return "", 0, fault.EmptySearchQuery()
	}

	limit := maxResults
	if limit > MaxSearchResults {
		limit = MaxSearchResults
	}
	return cleaned, limit, nil
}
