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
	"sort"
	"strings"
)

// baselineMIMETypes are the document types accepted without any
// caller-supplied allow-list.
var baselineMIMETypes = map[string]bool{
	"application/pdf":  true,
	"text/plain":       true,
	"text/markdown":    true,
	"text/csv":         true,
	"text/html":        true,
	"application/json": true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/rtf": true,
}

// mimeAliases maps unofficial but common type spellings onto their
// canonical forms before membership is checked.
var mimeAliases = map[string]string{
	"text/x-markdown":          "text/markdown",
	"application/x-markdown":   "text/markdown",
	"application/x-pdf":        "application/pdf",
	"text/x-csv":               "text/csv",
	"application/csv":          "text/csv",
}

// MIMEType reports whether a declared MIME type is acceptable. The type
// is normalized (lowercased, parameters stripped, aliases resolved) and
// checked against the baseline allow-list, then against customAllowed
// if one is supplied. It returns a boolean rather than a fault; the
// caller decides whether a false result rejects the request.
func MIMEType(mimeType string, customAllowed []string) bool {
	normalized := normalizeMIME(mimeType)
	if normalized == "" {
		return false
	}

	if baselineMIMETypes[normalized] {
		return true
	}
	for _, allowed := range customAllowed {
		if normalizeMIME(allowed) == normalized {
			return true
		}
	}
	return false
}

// AllowedMIMETypes returns the baseline allow-list, sorted, for use in
// rejection messages.
func AllowedMIMETypes() []string {
	types := make([]string, 0, len(baselineMIMETypes))
	for t := range baselineMIMETypes {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

func normalizeMIME(mimeType string) string {
	normalized := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(normalized, ';'); i >= 0 {
		normalized = strings.TrimSpace(normalized[:i])
	}
	if canonical, ok := mimeAliases[normalized]; ok {
		return canonical
	}
	return normalized
}
