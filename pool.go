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

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jacobsa/timeutil"
)

// poolConfig holds the resolved value of a Pool's construction options
// (async_io, do_not_clean, expected_segments).
type poolConfig struct {
	asyncIO          bool
	doNotClean       bool
	expectedSegments int
	clock            timeutil.Clock
}

// Option configures a Pool at construction time.
type Option func(*poolConfig)

// WithAsyncIO opens the backing file with the platform's asynchronous I/O
// hint flag (see backend_unix.go/backend_windows.go for what that means
// on each platform).
func WithAsyncIO() Option {
	return func(c *poolConfig) { c.asyncIO = true }
}

// WithDoNotClean disables zero-fill on release and preallocates the file
// instead. Combine with WithExpectedSegments to size the preallocation;
// without it, expected_segments defaults to 1.
func WithDoNotClean() Option {
	return func(c *poolConfig) { c.doNotClean = true }
}

// WithExpectedSegments sets the expected live-segment count used to size
// preallocation. Only meaningful together with WithDoNotClean; values <= 0
// are treated as 1.
func WithExpectedSegments(n int) Option {
	return func(c *poolConfig) { c.expectedSegments = n }
}

// WithClock overrides the time source used to season the auto-derived
// temp path (see tempfile.go), for example a timeutil.SimulatedClock. The
// random suffix in the name is unaffected, so names stay unique rather
// than deterministic.
func WithClock(clock timeutil.Clock) Option {
	return func(c *poolConfig) { c.clock = clock }
}

func resolveOptions(opts []Option) poolConfig {
	cfg := poolConfig{expectedSegments: 1}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.doNotClean && cfg.expectedSegments <= 0 {
		cfg.expectedSegments = 1
	}
	return cfg
}

// Pool is the pool controller. It owns the backing file and the
// free-list/cursor allocation state, and is safe for concurrent use from
// any number of goroutines.
//
// The zero Pool is not usable; construct one with New or NewTemp.
type Pool struct {
	maxSegmentSize int64
	backend        *fileBackend

	freeHead atomic.Pointer[segmentHandle]
	cursor   atomic.Int64

	disposed    atomic.Bool
	disposeOnce sync.Once

	dbg *debugState
}

// New constructs a Pool backed by path, which must not already exist (the
// backing file is opened create-new/exclusive). maxSegmentSize must be
// positive.
func New(path string, maxSegmentSize int64, opts ...Option) (*Pool, error) {
	if maxSegmentSize <= 0 {
		return nil, ErrOutOfRange
	}

	cfg := resolveOptions(opts)
	backend, err := openBackend(path, maxSegmentSize, cfg)
	if err != nil {
		return nil, err
	}

	p := &Pool{
		maxSegmentSize: maxSegmentSize,
		backend:        backend,
		dbg:            newDebugState(),
	}
	p.cursor.Store(-maxSegmentSize)

	return p, nil
}

// NewTemp constructs a Pool backed by an auto-derived unique path in the
// OS temp directory.
func NewTemp(maxSegmentSize int64, opts ...Option) (*Pool, error) {
	cfg := resolveOptions(opts)
	path, err := tempPath(cfg.clock)
	if err != nil {
		return nil, fmt.Errorf("derive temp path: %w", err)
	}
	return New(path, maxSegmentSize, opts...)
}

// MaxSegmentSize returns the fixed segment size this pool was constructed
// with.
func (p *Pool) MaxSegmentSize() int64 {
	return p.maxSegmentSize
}

// Rent returns a freshly rented Segment, either recycled from the
// free-list or freshly allocated off the cursor. It fails with
// ErrPoolDisposed if the pool has been (or is concurrently being)
// disposed.
func (p *Pool) Rent() (*Segment, error) {
	if p.disposed.Load() {
		return nil, ErrPoolDisposed
	}

	h, err := p.popHandle()
	if err != nil {
		return nil, err
	}

	// Re-check: a dispose racing with this Rent may have emptied the
	// free-list/closed the file after popHandle already committed an
	// offset. The offset is simply abandoned in that case — Dispose has
	// already made the backing file unusable, so there is nothing useful
	// to push it back onto.
	if p.disposed.Load() {
		return nil, ErrPoolDisposed
	}

	return newSegment(p, h), nil
}

// ReturnedSegmentCount is a diagnostic only: it racily walks the
// free-list and is never a source of truth for correctness.
func (p *Pool) ReturnedSegmentCount() int {
	return p.returnedSegmentCount()
}

func (p *Pool) cleanMode() bool {
	return p.backend.cleanMode
}

// Dispose closes the backing file (which deletes it, per delete-on-close
// at open time), empties the free-list, and marks the pool disposed. Any
// live Segment still held by a caller fails all further I/O with
// ErrPoolDisposed. Dispose is idempotent.
func (p *Pool) Dispose() error {
	var err error
	p.disposeOnce.Do(func() {
		p.disposed.Store(true)
		p.freeHead.Store(nil)
		err = p.backend.close()
	})
	return err
}

// WithSegment rents a Segment, passes it to fn, and disposes it on every
// exit path, including a panic unwinding through fn. It is additive sugar
// over Rent/Dispose, not a required primitive.
func (p *Pool) WithSegment(fn func(*Segment) error) error {
	seg, err := p.Rent()
	if err != nil {
		return err
	}
	defer seg.Dispose()
	return fn(seg)
}
