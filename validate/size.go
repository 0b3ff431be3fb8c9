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

// BytesPerMB is the mebibyte unit used for size limits.
const BytesPerMB = 1 << 20

// FileSize checks a file size against a limit given in whole megabytes
// (mebibyte semantics: 1 MB = 1,048,576 bytes). The limit is compared
// as-is; zero and negative limits are not clamped here, that is the
// configuration layer's call.
func FileSize(sizeBytes int64, maxSizeMB int, filename string) error {
	limit := int64(maxSizeMB) * BytesPerMB
	if sizeBytes > limit {
		return fault.FileSizeExceeded(sizeBytes, maxSizeMB, filename)
	}
	return nil
}

// BytesToMB converts a byte count to megabytes for reporting.
func BytesToMB(n int64) float64 {
	return float64(n) / BytesPerMB
}
