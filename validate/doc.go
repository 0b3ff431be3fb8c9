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


// Package validate checks untrusted client input before any request
// leaves the process.
//
// Validators are pure and stateless: each either returns a normalized
// value or a typed failure from the fault package. Validation is
// all-or-nothing per field; there is no partial success. Sanitizers are
// the non-raising counterparts that best-effort-repair input instead of
// rejecting it.
//
// UploadFile and SearchRequest compose the individual validators into
// the two request shapes the serving boundary needs.
package validate
