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
)

// Image is a firmware image in its authenticated layout, the zero padded
// payload followed by the header.
type Image struct {
	// Payload is the firmware padded to exactly PayloadMaxSize bytes.
	Payload []byte

	// Header is the trailing metadata record. Its Signature words are
	// zero until Sign is called.
	Header Header
}

// Build assembles an unsigned image from raw firmware bytes. The payload is
// zero padded to PayloadMaxSize so the authenticated span has a fixed
// boundary regardless of the true firmware length. A zero length payload is
// valid, the region is then entirely padding.
//
// No cryptographic operation occurs here, the signature words are left
// zero for Sign to fill in.
func Build(payload []byte, version uint32, entry uint32, timestamp uint32) (*Image, error) {
	if len(payload) > PayloadMaxSize {
		return nil, &PayloadTooLargeError{
			Size:  len(payload),
			Limit: PayloadMaxSize,
		}
	}

	padded := make([]byte, PayloadMaxSize)
	copy(padded, payload)

	img := &Image{
		Payload: padded,
		Header: Header{
			Magic:      Magic,
			Version:    version,
			Length:     PayloadMaxSize,
			EntryPoint: entry,
			Timestamp:  timestamp,
		},
	}

	return img, nil
}

// Bytes serializes the image to its wire format, payload followed by
// header, always ImageSize bytes.
func (img *Image) Bytes() []byte {
	buf := make([]byte, 0, ImageSize)

	buf = append(buf, img.Payload...)
	buf = append(buf, img.Header.Bytes()...)

	return buf
}

// ParseImage splits a signed image buffer into payload and header. The
// signature is not checked, callers must invoke Verify before trusting any
// field.
func ParseImage(buf []byte) (*Image, error) {
	if len(buf) != ImageSize {
		return nil, fmt.Errorf("%w: got %d bytes, expected %d", ErrImageSize, len(buf), ImageSize)
	}

	h, err := parseHeader(buf[PayloadMaxSize:])

	if err != nil {
		return nil, err
	}

	img := &Image{
		Payload: append([]byte{}, buf[:PayloadMaxSize]...),
		Header:  *h,
	}

	return img, nil
}
