// Copyright 2025 The Secure RISC-V SoC authors. All Rights Reserved.
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

package fwimage

import (
	"fmt"
	"strconv"

	"github.com/coreos/go-semver/semver"
)

// Version field packing, major.minor.patch in 8/8/16 bits. The packed form
// preserves semver ordering under plain u32 comparison, which is all the
// boot ROM rollback check does.
const (
	versionMajorMax = 0xFF
	versionMinorMax = 0xFF
	versionPatchMax = 0xFFFF
)

// EncodeVersion packs a release version into the header's 32-bit version
// field. Pre-release and metadata components cannot be represented and are
// rejected, as are components exceeding their field width.
func EncodeVersion(v *semver.Version) (uint32, error) {
	if v.PreRelease != "" || v.Metadata != "" {
		return 0, fmt.Errorf("version %q carries pre-release or metadata components", v)
	}

	if v.Major > versionMajorMax || v.Minor > versionMinorMax || v.Patch > versionPatchMax {
		return 0, fmt.Errorf("version %q does not fit the 8.8.16 packed encoding", v)
	}

	return uint32(v.Major)<<24 | uint32(v.Minor)<<16 | uint32(v.Patch), nil
}

// DecodeVersion unpacks a header version field into its semantic version
// form.
func DecodeVersion(version uint32) semver.Version {
	return semver.Version{
		Major: int64(version >> 24),
		Minor: int64(version >> 16 & versionMinorMax),
		Patch: int64(version & versionPatchMax),
	}
}

// ParseVersion accepts a firmware version as either a raw u32 epoch or a
// semantic version string to be packed.
func ParseVersion(s string) (uint32, error) {
	if n, err := strconv.ParseUint(s, 10, 32); err == nil {
		return uint32(n), nil
	}

	v, err := semver.NewVersion(s)

	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %v", s, err)
	}

	return EncodeVersion(v)
}
