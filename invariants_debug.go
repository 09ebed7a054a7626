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

//go:build segpool_debug

package segpool

import (
	"fmt"

	"github.com/jacobsa/syncutil"
)

// debugState tracks, under a syncutil.InvariantMutex, the set of offsets
// currently believed to be rented. It exists to catch an offset
// disjointness violation failing silently — a bug here means a
// double-rent slipped past the free-list's CAS loop — and a cursor that
// overflowed into negative offsets. It is compiled out entirely unless
// built with -tags segpool_debug.
type debugState struct {
	mu     syncutil.InvariantMutex
	rented map[int64]bool // GUARDED_BY(mu)
}

func newDebugState() *debugState {
	d := &debugState{rented: make(map[int64]bool)}
	d.mu = syncutil.NewInvariantMutex(d.checkInvariants)
	return d
}

// checkInvariants has no invariant beyond "rented is a valid map"; its
// presence matches the teacher's GUARDED_BY(mu)-plus-checkInvariants shape
// for debug-only guarded state (see e.g. memfs's memDir.checkInvariants).
func (d *debugState) checkInvariants() {
	if d.rented == nil {
		panic("segpool: debugState.rented is nil")
	}
}

func (p *Pool) debugCheckRent(offset int64) {
	if offset < 0 {
		panic(fmt.Sprintf("segpool: cursor overflow (offset %d)", offset))
	}
	p.dbg.mu.Lock()
	defer p.dbg.mu.Unlock()
	if p.dbg.rented[offset] {
		panic(fmt.Sprintf("segpool: offset %d rented twice concurrently", offset))
	}
	p.dbg.rented[offset] = true
}

func (p *Pool) debugCheckRelease(offset int64) {
	p.dbg.mu.Lock()
	defer p.dbg.mu.Unlock()
	if !p.dbg.rented[offset] {
		panic(fmt.Sprintf("segpool: offset %d released while not outstanding", offset))
	}
	delete(p.dbg.rented, offset)
}
