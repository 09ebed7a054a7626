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

package segpool

import "sync/atomic"

// handleKind tags the mutually-exclusive payload carried by a
// segmentHandle's state. offset is stored beside, not inside, the tagged
// state, since it never changes for the lifetime of the handle.
type handleKind int8

const (
	handleFree handleKind = iota
	handleInUse
)

// handleState is the single-word (pointer-sized) atomically-swapped value
// backing a segmentHandle. next is meaningful only when kind is
// handleFree — a single pointer with discriminator rather than a full
// tagged union. The InUse kind carries no payload: the owning pool is held
// by the Segment facade, not by the handle.
type handleState struct {
	kind handleKind

	// next is the handle directly below this one on the free-list. Valid
	// only when kind == handleFree; nil means "bottom of stack".
	next *segmentHandle
}

// segmentHandle is a node in the pool's free-list and/or the backing
// identity of a single rented Segment. offset is immutable; state is the
// only mutable field, and every reader loads it atomically.
//
// A handle popped off the free-list (or freshly cursor-allocated) is
// handed to exactly one Segment. On release, a *new* handle node is
// pushed in its place (see freelist.go) — the popped node is never reused
// as a free-list entry again, which is what makes the stack ABA-safe
// without tagged pointers.
type segmentHandle struct {
	offset int64
	state  atomic.Pointer[handleState]
}

// newFreeHandle constructs a handle in the Free state, to be pushed onto
// the free-list atop next.
func newFreeHandle(offset int64, next *segmentHandle) *segmentHandle {
	h := &segmentHandle{offset: offset}
	h.state.Store(&handleState{kind: handleFree, next: next})
	return h
}

// newInUseHandle constructs a handle already in the InUse state, for a
// fresh cursor-based allocation.
func newInUseHandle(offset int64) *segmentHandle {
	h := &segmentHandle{offset: offset}
	h.state.Store(&handleState{kind: handleInUse})
	return h
}
