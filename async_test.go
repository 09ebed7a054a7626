// Copyright 2015 Google Inc. All Rights Reserved.
// Author: jacobsa@google.com (Aaron Jacobs)

package segpool_test

import (
	"context"
	"testing"

	"github.com/jacobsa/segpool"
)

// Cancellation is honored only at the boundary, before kernel entry: a
// context already done when WriteAsync/ReadAsync is called fails
// synchronously with ErrCancelled, without ever touching the backend.
func TestAsyncPreCancelledContext(t *testing.T) {
	pool, err := segpool.NewTemp(16)
	if err != nil {
		t.Fatalf("NewTemp: %v", err)
	}
	defer pool.Dispose()

	seg, err := pool.Rent()
	if err != nil {
		t.Fatalf("Rent: %v", err)
	}
	defer seg.Dispose()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	writeFuture := seg.WriteAsync(ctx, []byte{1, 2, 3}, 0)
	if _, err := writeFuture.Wait(context.Background()); err != segpool.ErrCancelled {
		t.Errorf("WriteAsync: got %v, want ErrCancelled", err)
	}

	readFuture := seg.ReadAsync(ctx, make([]byte, 3), 0)
	if _, err := readFuture.Wait(context.Background()); err != segpool.ErrCancelled {
		t.Errorf("ReadAsync: got %v, want ErrCancelled", err)
	}
}

// Wait itself respects its own ctx independent of the operation's
// progress: waiting with an already-done context returns without blocking,
// with ErrCancelled unless the operation has already completed, and the
// underlying operation is left to finish on its own.
func TestAsyncWaitRespectsOwnContext(t *testing.T) {
	pool, err := segpool.NewTemp(16)
	if err != nil {
		t.Fatalf("NewTemp: %v", err)
	}
	defer pool.Dispose()

	seg, err := pool.Rent()
	if err != nil {
		t.Fatalf("Rent: %v", err)
	}
	defer seg.Dispose()

	future := seg.WriteAsync(context.Background(), []byte{1, 2, 3}, 0)

	waitCtx, cancel := context.WithCancel(context.Background())
	cancel()

	// The write may have already landed on its goroutine by the time Wait
	// runs, in which case both the done channel and ctx.Done() are ready
	// and either outcome is a correct select; only a genuine third value
	// would indicate Wait ignored its ctx.
	if _, err := future.Wait(waitCtx); err != segpool.ErrCancelled && err != nil {
		t.Errorf("Wait: got %v, want ErrCancelled or the operation's own error", err)
	}

	// The write itself was never cancelled; give it a moment to land and
	// confirm the data made it through via a fresh synchronous read.
	if _, err := future.Wait(context.Background()); err != nil {
		t.Fatalf("Wait (uncancelled): %v", err)
	}

	got := make([]byte, 3)
	n, err := seg.Read(got, 0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("got %v, want [1 2 3]", got[:n])
	}
}

// DisposeAsync with an already-cancelled context still releases the
// offset to the free-list (finalization is unconditional) but reports
// ErrCancelled and skips the zero-fill erase.
func TestDisposeAsyncPreCancelledStillReleases(t *testing.T) {
	pool, err := segpool.NewTemp(16)
	if err != nil {
		t.Fatalf("NewTemp: %v", err)
	}
	defer pool.Dispose()

	seg, err := pool.Rent()
	if err != nil {
		t.Fatalf("Rent: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	before := pool.ReturnedSegmentCount()
	_, err = seg.DisposeAsync(ctx).Wait(context.Background())
	if err != segpool.ErrCancelled {
		t.Errorf("DisposeAsync: got %v, want ErrCancelled", err)
	}
	if got := pool.ReturnedSegmentCount(); got != before+1 {
		t.Errorf("ReturnedSegmentCount: got %d, want %d", got, before+1)
	}
}
