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

// Package segpool implements a fixed-size segment pool over a single
// backing file: a lock-free free-list of offsets, a multi-state segment
// handle lifecycle, and direct positional I/O that bypasses buffered
// stream semantics.
//
// The primary elements of interest are:
//
//  *  Pool, which owns the backing file and hands out Segments.
//
//  *  Segment, the rented handle exposing synchronous and asynchronous
//     positional Read/Write within its fixed-size region, plus Dispose to
//     return it to the pool.
//
//  *  Stream, a stream-shaped view over a Segment with a shrinkable
//     length and EOF semantics, for callers that want an
//     io.ReaderAt/io.WriterAt shape with length tracking.
//
// Segments are recycled through a Treiber free-list; a fresh offset is
// bump-allocated only when the free-list is empty. In the default "clean"
// mode, disposing a segment zero-fills it before it becomes eligible for
// reuse; in "do not clean" (preallocated) mode the file is sized up front
// and disposal skips the zero-fill.
package segpool
