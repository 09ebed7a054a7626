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

import "context"

// Future is the result of an asynchronous segpool operation. The
// operation itself has already started (or, if it failed a synchronous
// pre-check, already finished) by the time a Future is returned; Wait
// suspends the caller until it completes or ctx is done.
//
// Cancelling the ctx passed to Wait does not cancel the underlying I/O;
// mid-kernel cancellation is not guaranteed. It only stops the caller
// from waiting for it.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// resolvedFuture returns a Future that is already complete, for the
// synchronous pre-kernel-entry failure paths (OutOfRange, PoolDisposed,
// SegmentDisposed, Cancelled-before-entry).
func resolvedFuture[T any](val T, err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), val: val, err: err}
	close(f.done)
	return f
}

func (f *Future[T]) resolve(val T, err error) {
	f.val = val
	f.err = err
	close(f.done)
}

// Wait blocks until the operation completes or ctx is done, whichever
// comes first.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ErrCancelled
	}
}
