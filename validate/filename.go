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
	driveRootPattern   = regexp.MustCompile(`^[A-Za-z]:`)
	illegalNameChars   = regexp.MustCompile(`[:?<>|"\x00-\x1f\x7f]`)
	invalidNameRuns    = regexp.MustCompile(`[:?<>|"\x00-\x1f\x7f]+`)
	repeatedDots       = regexp.MustCompile(`\.{2,}`)
	reservedDeviceName = map[string]bool{
		"CON": true, "PRN": true, "AUX": true, "NUL": true,
		"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
		"COM6": true, "COM7": true, "COM8": true, "COM9": true,
		"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
		"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
	}
)

// Filename validates an untrusted filename and returns the cleaned base
// name. Surrounding whitespace is trimmed and directory segments are
// discarded; traversal sequences, absolute or drive-rooted paths,
// hidden-file names, characters illegal on common filesystems, and
// reserved device names are rejected with an INVALID_FILENAME fault.
func Filename(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", fault.InvalidFilename(raw, "filename is empty")
	}

	if strings.Contains(name, "..") {
		return "", fault.InvalidFilename(raw, "path traversal detected")
	}
	if strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) || driveRootPattern.MatchString(name) {
		return "", fault.InvalidFilename(raw, "absolute paths are not allowed")
	}

	base := baseName(name)
	if base == "" {
		return "", fault.InvalidFilename(raw, "filename is empty")
	}
	if strings.HasPrefix(base, ".") {
		return "", fault.InvalidFilename(raw, "hidden files are not allowed")
	}
	if illegalNameChars.MatchString(base) {
		return "", fault.InvalidFilename(raw, "filename contains illegal characters")
	}

	stem := base
	if i := strings.IndexByte(base, '.'); i >= 0 {
		stem = base[:i]
	}
	if reservedDeviceName[strings.ToUpper(stem)] {
		return "", fault.InvalidFilename(raw, "filename is a reserved device name")
	}

	return base, nil
}

// SanitizeFilename is the non-raising counterpart of Filename. It keeps
// only the base component, drops leading traversal markers and hidden
// dots, replaces each run of illegal characters with a single
// underscore, and collapses repeated dots. The result is always usable
// as a filename; input that sanitizes to nothing becomes "unnamed".
func SanitizeFilename(raw string) string {
	base := baseName(strings.TrimSpace(raw))
	base = strings.TrimLeft(base, ".")
	base = invalidNameRuns.ReplaceAllString(base, "_")
	base = repeatedDots.ReplaceAllString(base, ".")
	base = strings.TrimRight(base, ".")
	if base == "" {
		return "unnamed"
	}
	return base
}

// baseName returns the last non-empty component of a path using both
// separator conventions.
func baseName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}
