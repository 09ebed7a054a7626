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
	"os"
	"sync"

	fallocate "github.com/detailyang/go-fallocate"
)

// fileBackend is C1: the single backing file, opened exclusively, with
// positional (no shared file-pointer) read/write/erase. Concurrent calls
// are safe — the kernel serializes positional I/O per descriptor.
type fileBackend struct {
	f    *os.File
	path string

	cleanMode bool // clean mode: zero-fill on erase. Preallocated: erase is a no-op.
	zeroBuf   []byte

	// removeOnClose is set on platforms (Windows) that can't unlink an
	// open file; close() removes the path after closing the descriptor
	// instead, as a best-effort (not crash-safe) approximation of
	// delete-on-close. On Unix the path is unlinked immediately at open,
	// which is crash-safe, and removeOnClose stays false.
	removeOnClose bool

	// growMu/grownTo serialize extending the file in clean mode, so a
	// freshly cursor-allocated (never-before-written) segment reads back
	// as zero via a sparse hole instead of surfacing io.EOF. This is the
	// one place the backend takes a lock: it guards file *sizing*, not
	// the free-list or handle state, which stay lock-free, and growth
	// only ever happens once per brand-new offset.
	growMu  sync.Mutex
	grownTo int64
}

// openBackend opens the backing file create-new/exclusive/read-write,
// write-through, delete-on-close. Sizing follows cfg: clean mode allocates
// a pinned zero buffer and leaves the file unsized up front (grown lazily,
// sparse where supported, see ensureSize); do-not-clean mode preallocates
// expectedSegments*maxSegmentSize immediately and carries no zero buffer.
func openBackend(path string, maxSegmentSize int64, cfg poolConfig) (*fileBackend, error) {
	flags := os.O_RDWR | os.O_CREATE | os.O_EXCL | os.O_SYNC
	if cfg.asyncIO {
		flags |= platformAsyncIOFlag()
	}

	f, err := os.OpenFile(path, flags, 0600)
	if err != nil {
		return nil, fmt.Errorf("open backing file: %w", err)
	}

	b := &fileBackend{f: f, path: path, cleanMode: !cfg.doNotClean}

	if err := applyRandomAccessAdvice(f); err != nil {
		getLogger().Printf("random-access advice failed (ignored): %v", err)
	}
	adviseNoReuseWholeFile(f)

	if b.cleanMode {
		b.zeroBuf = make([]byte, maxSegmentSize)
	} else {
		expected := cfg.expectedSegments
		if expected <= 0 {
			expected = 1
		}
		size := int64(expected) * maxSegmentSize
		if err := fallocate.Fallocate(f, 0, size); err != nil {
			getLogger().Printf("fallocate unavailable, falling back to Truncate: %v", err)
			if err := f.Truncate(size); err != nil {
				f.Close()
				os.Remove(path)
				return nil, fmt.Errorf("preallocate backing file: %w", err)
			}
		}
		b.grownTo = size
	}

	platformDeleteOnClose(b)

	return b, nil
}

// ensureSize grows the file to at least target bytes, if it is not
// already that large. Only meaningful in clean mode; preallocated mode
// starts at its full size, and growth past it under do-not-clean plus
// many concurrent rents is left to whatever the OS does on a WriteAt
// past EOF.
func (b *fileBackend) ensureSize(target int64) error {
	b.growMu.Lock()
	defer b.growMu.Unlock()

	if target <= b.grownTo {
		return nil
	}
	if err := b.f.Truncate(target); err != nil {
		return err
	}
	b.grownTo = target
	return nil
}

func (b *fileBackend) writeAt(offset int64, p []byte) error {
	_, err := b.f.WriteAt(p, offset)
	return err
}

func (b *fileBackend) readAt(offset int64, p []byte) (int, error) {
	return b.f.ReadAt(p, offset)
}

// erase zero-fills the segment at offset. In preallocated (do-not-clean)
// mode it is a no-op.
func (b *fileBackend) erase(offset int64) error {
	if !b.cleanMode {
		return nil
	}
	_, err := b.f.WriteAt(b.zeroBuf, offset)
	return err
}

func (b *fileBackend) close() error {
	err := b.f.Close()
	if b.removeOnClose {
		os.Remove(b.path)
	}
	return err
}
