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

//go:build !windows

package segpool

import (
	"os"
	"runtime"

	"golang.org/x/sys/unix"
)

// applyRandomAccessAdvice adds random-access advice at open, on every
// platform other than Windows.
func applyRandomAccessAdvice(f *os.File) error {
	return unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_RANDOM)
}

// adviseNoReuseWholeFile is a Linux-only, best-effort POSIX_FADV_NOREUSE
// over the whole file. ENOSYS (kernel/libc lacks posix_fadvise) is
// swallowed unconditionally; any other failure is swallowed too but
// logged only when segpool.debug is set.
func adviseNoReuseWholeFile(f *os.File) {
	if runtime.GOOS != "linux" {
		return
	}

	if err := unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_NOREUSE); err != nil && err != unix.ENOSYS {
		getLogger().Printf("posix_fadvise(NOREUSE) failed (ignored): %v", err)
	}
}

// platformDeleteOnClose unlinks the path immediately: on Unix the open
// descriptor keeps the inode alive, so this is crash-safe delete-on-close.
func platformDeleteOnClose(b *fileBackend) {
	if err := os.Remove(b.path); err != nil {
		getLogger().Printf("delete-on-close unlink failed (ignored): %v", err)
	}
}

// platformAsyncIOFlag is a best-effort hint flag for the async_io option.
// True kernel async I/O (io_uring, kqueue) is out of scope for a portable
// os.File-based backend; this is deliberately 0 rather than O_DIRECT,
// since O_DIRECT imposes alignment constraints on buffers/offsets that
// callers are never asked to honor.
func platformAsyncIOFlag() int {
	return 0
}
