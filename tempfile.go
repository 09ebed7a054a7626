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
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jacobsa/timeutil"
)

// defaultClock seasons the auto-derived temp path with some non-random
// entropy, so two pools started in the same process at different times
// don't merely rely on crypto/rand for uniqueness. It is used whenever no
// clock was supplied via WithClock.
var defaultClock timeutil.Clock = timeutil.RealClock()

// tempPath auto-derives a unique path in the OS temp directory.
func tempPath(clock timeutil.Clock) (string, error) {
	if clock == nil {
		clock = defaultClock
	}

	var suffix [8]byte
	if _, err := rand.Read(suffix[:]); err != nil {
		return "", fmt.Errorf("generate temp suffix: %w", err)
	}

	name := fmt.Sprintf(
		"segpool-%d-%s",
		clock.Now().UnixNano(),
		hex.EncodeToString(suffix[:]))

	return filepath.Join(os.TempDir(), name), nil
}
