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
	"regexp"
	"strings"

	"github.com/flamehaven/filesearch/fault"
)

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRuns    = regexp.MustCompile(`\s+`)
	injectionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<\s*script`),
		regexp.MustCompile(`<\s*/?\s*[a-zA-Z]`),
		regexp.MustCompile(`(?i)javascript\s*:`),
		regexp.MustCompile(`(?i)on\w+\s*=`),
	}
)

// Query validates a search query. Blank or whitespace-only input is
// rejected with EMPTY_SEARCH_QUERY. In strict mode, markup and script
// injection signatures are rejected with INVALID_SEARCH_QUERY; outside
// strict mode such input passes through so SanitizeQuery can repair it.
// Returns the trimmed query.
func Query(query string, strict bool) (string, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return "", fault.EmptySearchQuery()
	}

	if strict {
		for _, pattern := range injectionPatterns {
			if pattern.MatchString(trimmed) {
				return "", fault.InvalidSearchQuery(query,
					"query contains markup or script injection patterns")
			}
		}
	}

	return trimmed, nil
}

// SanitizeQuery best-effort-cleans a query and never fails: HTML-like
// tags are stripped, whitespace runs collapse to single spaces, the
// ends are trimmed, and comment-injection markers are removed.
func SanitizeQuery(query string) string {
	cleaned := htmlTagPattern.ReplaceAllString(query, "")
	cleaned = whitespaceRuns.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)
	return strings.ReplaceAll(cleaned, "--", "")
}
