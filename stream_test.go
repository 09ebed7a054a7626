// Copyright 2015 Google Inc. All Rights Reserved.
// Author: jacobsa@google.com (Aaron Jacobs)

package segpool_test

import (
	"io"
	"testing"

	"github.com/kylelemons/godebug/pretty"

	"github.com/jacobsa/segpool"
)

// Stream length semantics: shrinking via SetLength, reads clipped to
// length with EOF past it, and writes that extend length back out.
func TestStreamLengthSemantics(t *testing.T) {
	pool, err := segpool.NewTemp(32)
	if err != nil {
		t.Fatalf("NewTemp: %v", err)
	}
	defer pool.Dispose()

	seg, err := pool.Rent()
	if err != nil {
		t.Fatalf("Rent: %v", err)
	}
	defer seg.Dispose()

	initial := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if err := seg.Write(initial, 0); err != nil {
		t.Fatalf("Write: %v", err)
	}

	stream := segpool.NewStream(seg)
	if err := stream.SetLength(4); err != nil {
		t.Fatalf("SetLength: %v", err)
	}

	buf := make([]byte, 8)
	n, err := stream.ReadAt(buf, 0)
	if err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if n != 4 {
		t.Fatalf("got n=%d, want 4", n)
	}
	if got, want := buf[:4], []byte{1, 2, 3, 4}; pretty.Compare(got, want) != "" {
		t.Fatalf("ReadAt result mismatch (-got +want):\n%s", pretty.Compare(got, want))
	}

	if _, err := stream.ReadAt(buf, 4); err != io.EOF {
		t.Fatalf("ReadAt at EOF: got err=%v, want io.EOF", err)
	}

	n, err = stream.WriteAt([]byte{9, 9, 9, 9, 9}, 2)
	if err != nil {
		t.Fatalf("WriteAt: %v", err)
	}
	if n != 5 {
		t.Fatalf("got n=%d, want 5", n)
	}
	if got, want := stream.Length(), int64(7); got != want {
		t.Fatalf("got length=%d, want %d", got, want)
	}

	buf7 := make([]byte, 7)
	n, err = stream.ReadAt(buf7, 0)
	if err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if n != 7 {
		t.Fatalf("got n=%d, want 7", n)
	}
	want := []byte{1, 2, 9, 9, 9, 9, 9}
	if diff := pretty.Compare(buf7, want); diff != "" {
		t.Fatalf("post-WriteAt read mismatch (-got +want):\n%s", diff)
	}

	if err := stream.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}

func TestStreamWriteClippedToMaxSegmentSize(t *testing.T) {
	pool, err := segpool.NewTemp(8)
	if err != nil {
		t.Fatalf("NewTemp: %v", err)
	}
	defer pool.Dispose()

	seg, err := pool.Rent()
	if err != nil {
		t.Fatalf("Rent: %v", err)
	}
	defer seg.Dispose()

	stream := segpool.NewStream(seg)
	n, err := stream.WriteAt([]byte{1, 2, 3, 4, 5}, 6)
	if err != nil {
		t.Fatalf("WriteAt: %v", err)
	}
	if n != 2 {
		t.Fatalf("got n=%d, want 2 (clipped to max_segment_size)", n)
	}
	if stream.Length() != 8 {
		t.Fatalf("got length=%d, want 8", stream.Length())
	}
}
