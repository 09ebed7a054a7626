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

//go:build windows

package segpool

import "os"

// applyRandomAccessAdvice is a no-op on Windows: random-access advice is
// scoped to non-Windows platforms.
func applyRandomAccessAdvice(f *os.File) error {
	return nil
}

func adviseNoReuseWholeFile(f *os.File) {}

// platformDeleteOnClose: Windows cannot remove a file that's open for
// read/write without FILE_SHARE_DELETE plumbed through at CreateFile time,
// which the standard os package does not expose. This is the documented
// best-effort approximation: close() removes the path right after closing
// the descriptor instead of up front, so it does not survive a hard crash
// the way the Unix unlink-at-open does.
func platformDeleteOnClose(b *fileBackend) {
	b.removeOnClose = true
}

func platformAsyncIOFlag() int {
	return 0
}
