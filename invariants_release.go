// Copyright 2015 Google Inc. All Rights Reserved.
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

//go:build !segpool_debug

package segpool

// debugState is empty in release builds — the disjointness assertion is
// compiled out entirely unless built with -tags segpool_debug. See
// invariants_debug.go.
type debugState struct{}

func newDebugState() *debugState { return &debugState{} }

func (p *Pool) debugCheckRent(offset int64)    {}
func (p *Pool) debugCheckRelease(offset int64) {}
