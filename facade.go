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
	"context"
	"sync/atomic"
	"weak"
)

// Segment is C5: the user-visible handle for a currently-rented region of
// the backing file. It holds only a weak reference to its Pool (the same
// primitive the retrieval pack's eventloop/registry.go uses for GC-safe
// back-references), so a Segment can never keep a disposed Pool's backing
// file pinned open.
type Segment struct {
	offset         int64
	maxSegmentSize int64
	pool           weak.Pointer[Pool]
	disposed       atomic.Bool
}

func newSegment(p *Pool, h *segmentHandle) *Segment {
	return &Segment{
		offset:         h.offset,
		maxSegmentSize: p.maxSegmentSize,
		pool:           weak.Make(p),
	}
}

// Offset returns the segment's absolute byte offset in the backing file.
func (s *Segment) Offset() int64 {
	return s.offset
}

// resolvePool returns the owning Pool for an I/O operation, failing with
// ErrPoolDisposed if the weak reference has been cleared (the Pool was
// garbage collected) or the Pool has been explicitly disposed.
func (s *Segment) resolvePool() (*Pool, error) {
	p := s.pool.Value()
	if p == nil || p.disposed.Load() {
		return nil, ErrPoolDisposed
	}
	return p, nil
}

// poolOrNil is used only by dispose, which must still release the offset
// even if the Pool is in the middle of tearing down; it does not check
// the disposed flag itself (the caller does).
func (s *Segment) poolOrNil() *Pool {
	return s.pool.Value()
}

func (s *Segment) checkBounds(segOffset int64, n int) error {
	if segOffset < 0 || segOffset+int64(n) > s.maxSegmentSize {
		return ErrOutOfRange
	}
	return nil
}

// Write writes p at segOffset within this segment, synchronously.
func (s *Segment) Write(p []byte, segOffset int64) error {
	if s.disposed.Load() {
		return ErrSegmentDisposed
	}
	if err := s.checkBounds(segOffset, len(p)); err != nil {
		return err
	}
	pool, err := s.resolvePool()
	if err != nil {
		return err
	}
	return pool.backend.writeAt(s.offset+segOffset, p)
}

// Read reads into buf starting at segOffset within this segment,
// synchronously, and returns the number of bytes actually delivered by
// the OS (which may be less than len(buf)).
func (s *Segment) Read(buf []byte, segOffset int64) (int, error) {
	if s.disposed.Load() {
		return 0, ErrSegmentDisposed
	}
	if err := s.checkBounds(segOffset, len(buf)); err != nil {
		return 0, err
	}
	pool, err := s.resolvePool()
	if err != nil {
		return 0, err
	}
	return pool.backend.readAt(s.offset+segOffset, buf)
}

// WriteAsync is the asynchronous counterpart to Write. All synchronous
// pre-checks (segment disposed, out of range, pool disposed, already
// cancelled) are performed before returning, exactly as Write would fail;
// only the actual kernel write happens on a separate goroutine.
func (s *Segment) WriteAsync(ctx context.Context, p []byte, segOffset int64) *Future[struct{}] {
	if s.disposed.Load() {
		return resolvedFuture(struct{}{}, ErrSegmentDisposed)
	}
	if err := s.checkBounds(segOffset, len(p)); err != nil {
		return resolvedFuture(struct{}{}, err)
	}
	pool, err := s.resolvePool()
	if err != nil {
		return resolvedFuture(struct{}{}, err)
	}
	if ctx.Err() != nil {
		return resolvedFuture(struct{}{}, ErrCancelled)
	}

	off := s.offset + segOffset
	f := newFuture[struct{}]()
	go func() {
		f.resolve(struct{}{}, pool.backend.writeAt(off, p))
	}()
	return f
}

// ReadAsync is the asynchronous counterpart to Read.
func (s *Segment) ReadAsync(ctx context.Context, buf []byte, segOffset int64) *Future[int] {
	if s.disposed.Load() {
		return resolvedFuture(0, ErrSegmentDisposed)
	}
	if err := s.checkBounds(segOffset, len(buf)); err != nil {
		return resolvedFuture(0, err)
	}
	pool, err := s.resolvePool()
	if err != nil {
		return resolvedFuture(0, err)
	}
	if ctx.Err() != nil {
		return resolvedFuture(0, ErrCancelled)
	}

	off := s.offset + segOffset
	f := newFuture[int]()
	go func() {
		n, err := pool.backend.readAt(off, buf)
		f.resolve(n, err)
	}()
	return f
}

// Dispose returns the segment's offset to the pool, zero-filling it first
// in clean mode. It is idempotent: calling it again is a silent no-op.
func (s *Segment) Dispose() error {
	return s.disposeImpl(context.Background())
}

// DisposeAsync is the asynchronous counterpart to Dispose.
func (s *Segment) DisposeAsync(ctx context.Context) *Future[struct{}] {
	f := newFuture[struct{}]()
	go func() {
		f.resolve(struct{}{}, s.disposeImpl(ctx))
	}()
	return f
}

// disposeImpl pushes the offset back to the free-list unconditionally
// (via defer), even if erase fails or is skipped due to cancellation, so
// the pool never leaks an offset to a failed release.
func (s *Segment) disposeImpl(ctx context.Context) (err error) {
	if !s.disposed.CompareAndSwap(false, true) {
		return nil
	}

	pool := s.poolOrNil()
	if pool == nil || pool.disposed.Load() {
		return nil
	}

	defer pool.pushOffset(s.offset)

	if pool.cleanMode() {
		if ctx.Err() != nil {
			return ErrCancelled
		}
		err = pool.backend.erase(s.offset)
	}
	return err
}
