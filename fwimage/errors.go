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
	"errors"
	"fmt"
)

var (
	// ErrInvalidKeyLength is returned before any cryptographic
	// operation when the MAC key is not exactly 256 bits.
	ErrInvalidKeyLength = errors.New("invalid key length, must be 256 bits")

	// ErrSignatureMismatch is returned when the recomputed MAC does not
	// match the embedded signature. The payload must not be executed.
	ErrSignatureMismatch = errors.New("signature mismatch")

	// ErrImageSize is returned when a buffer cannot be a signed image
	// because its length differs from ImageSize.
	ErrImageSize = errors.New("invalid image size")
)

// PayloadTooLargeError reports firmware that exceeds the payload region.
type PayloadTooLargeError struct {
	Size  int
	Limit int
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("payload too large: %d bytes exceeds the %d byte limit by %d", e.Size, e.Limit, e.Overflow())
}

// Overflow returns the number of bytes by which the payload exceeds the
// limit.
func (e *PayloadTooLargeError) Overflow() int {
	return e.Size - e.Limit
}

// MagicError reports a header whose magic word does not identify a valid
// firmware image.
type MagicError struct {
	Got uint32
}

func (e *MagicError) Error() string {
	return fmt.Sprintf("bad header magic %#08x, expected %#08x", e.Got, uint32(Magic))
}
