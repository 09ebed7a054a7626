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

import "io"

// Stream is a stream-shaped, positional view over a single Segment.
// length starts at the segment's full max_segment_size and may be set to
// any value in [0, max_segment_size] via SetLength; writes past the
// current length extend it (up to max_segment_size). Reads are clipped to length, never to
// max_segment_size directly.
//
// Stream implements io.ReaderAt and io.WriterAt: position tracking is the
// caller's concern, so positions are always explicit arguments rather
// than an internal cursor.
type Stream struct {
	seg    *Segment
	length int64
}

var (
	_ io.ReaderAt = (*Stream)(nil)
	_ io.WriterAt = (*Stream)(nil)
)

// NewStream wraps seg in a Stream with length initialized to the
// segment's full max_segment_size.
func NewStream(seg *Segment) *Stream {
	return &Stream{seg: seg, length: seg.maxSegmentSize}
}

// Length returns the stream's current length.
func (s *Stream) Length() int64 {
	return s.length
}

// SetLength shrinks or grows the stream's length, within
// [0, max_segment_size].
func (s *Stream) SetLength(v int64) error {
	if v < 0 || v > s.seg.maxSegmentSize {
		return ErrOutOfRange
	}
	s.length = v
	return nil
}

// ReadAt reads into p starting at pos, clipped to
// min(len(p), length-pos). Reading at or past length returns 0, io.EOF.
func (s *Stream) ReadAt(p []byte, pos int64) (int, error) {
	if pos < 0 {
		return 0, ErrOutOfRange
	}
	avail := s.length - pos
	if avail <= 0 {
		return 0, io.EOF
	}

	n := int64(len(p))
	if n > avail {
		n = avail
	}

	return s.seg.Read(p[:n], pos)
}

// WriteAt writes p at pos, clipped to min(len(p), max_segment_size-pos).
// A write that extends past the current length advances length
// accordingly (never beyond max_segment_size).
func (s *Stream) WriteAt(p []byte, pos int64) (int, error) {
	if pos < 0 {
		return 0, ErrOutOfRange
	}
	avail := s.seg.maxSegmentSize - pos
	if avail <= 0 {
		return 0, ErrOutOfRange
	}

	n := int64(len(p))
	if n > avail {
		n = avail
	}

	if err := s.seg.Write(p[:n], pos); err != nil {
		return 0, err
	}

	if end := pos + n; end > s.length {
		s.length = end
	}
	return int(n), nil
}

// Flush is a no-op: the backing file is opened write-through, so there
// is nothing to flush.
func (s *Stream) Flush() error {
	return nil
}
