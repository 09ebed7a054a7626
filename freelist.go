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

// popHandle is a Treiber-stack pop: rent an offset, either from the top
// of the free-list or by bumping the cursor. No locks are taken;
// concurrent poppers race on the same CAS loop.
func (p *Pool) popHandle() (*segmentHandle, error) {
	for {
		h := p.freeHead.Load()
		if h == nil {
			off := p.cursor.Add(p.maxSegmentSize)
			if p.backend.cleanMode {
				if err := p.backend.ensureSize(off + p.maxSegmentSize); err != nil {
					return nil, err
				}
			}
			p.debugCheckRent(off)
			return newInUseHandle(off), nil
		}

		st := h.state.Load()
		if st.kind != handleFree {
			// Another popper already won the race for this exact node and
			// the free-list has moved on; retry against the current head.
			continue
		}

		if p.freeHead.CompareAndSwap(h, st.next) {
			h.state.Store(&handleState{kind: handleInUse})
			p.debugCheckRent(h.offset)
			return h, nil
		}
		// Lost the race; another popper (or pusher) changed freeHead. Retry.
	}
}

// pushOffset constructs a *new* handle node carrying the offset in the
// Free state and pushes it atop the free-list. A fresh node is always
// allocated — the handle object the caller was using is never
// reinserted — which avoids ABA without needing tagged pointers.
func (p *Pool) pushOffset(offset int64) {
	// Record the release before the offset becomes visible to poppers, so
	// the debug build never sees it rented again while still outstanding.
	p.debugCheckRelease(offset)
	for {
		head := p.freeHead.Load()
		node := newFreeHandle(offset, head)
		if p.freeHead.CompareAndSwap(head, node) {
			return
		}
	}
}

// returnedSegmentCount racily walks the free-list. It is a diagnostic
// only, best-effort, and must never be used for a correctness decision.
func (p *Pool) returnedSegmentCount() int {
	n := 0
	for h := p.freeHead.Load(); h != nil; {
		n++
		st := h.state.Load()
		if st.kind != handleFree {
			break
		}
		h = st.next
	}
	return n
}
