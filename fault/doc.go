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


// Package fault defines the closed set of typed failures produced by the
// validation and caching core.
//
// Every failure carries a machine-readable Code, an HTTP-style status
// derived from that code, a human message, and optional context fields.
// The set of codes is fixed at compile time; callers never extend it.
//
// FromError is the single translation point between the open-ended
// failure space of lower layers and the stable response contract: any
// error that is not already a *Fault is mapped onto one of the adapter
// codes so a raw failure never crosses the boundary.
package fault
