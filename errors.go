// Copyright 2015 Google Inc. All Rights Reserved.
// Author: jacobsa@google.com (Aaron Jacobs)

package segpool

import "errors"

// Errors returned (synchronously, or as the error of a completed async
// operation) by this package. Callers should compare against these with
// errors.Is; IoError conditions are not one of these sentinels: segment I/O
// returns whatever error the file backend produced, unchanged (see
// fileBackend's writeAt/readAt/erase).
var (
	// ErrOutOfRange is returned for an invalid max_segment_size at
	// construction, or a segment_offset/length outside [0, max_segment_size].
	ErrOutOfRange = errors.New("segpool: offset/length out of range")

	// ErrPoolDisposed is returned for an operation on a facade whose pool
	// has been disposed (or garbage collected), or for Rent after the pool
	// has been torn down.
	ErrPoolDisposed = errors.New("segpool: pool disposed")

	// ErrSegmentDisposed is returned for an operation on a facade after its
	// own Dispose has run.
	ErrSegmentDisposed = errors.New("segpool: segment disposed")

	// ErrCancelled is returned when cancellation was observed before an
	// async operation entered the kernel. Cancellation observed after
	// kernel entry is not guaranteed to take effect.
	ErrCancelled = errors.New("segpool: cancelled")
)
