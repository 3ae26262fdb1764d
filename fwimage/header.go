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

// Package fwimage implements construction and authentication of firmware
// images for the secure RISC-V SoC boot ROM.
//
// A signed image is a fixed 64 KiB artifact: the firmware payload, zero
// padded to PayloadMaxSize, followed by a 64 byte header whose last eight
// words carry an HMAC-SHA256 signature. The boot ROM recomputes the MAC
// over payload and header (signature words zeroed) with the shared 256-bit
// key and refuses to execute the payload on any mismatch.
package fwimage

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"
)

const (
	// Magic identifies a valid firmware header.
	Magic = 0xDEADBEEF

	// PayloadMaxSize is the offset at which the header begins, and
	// therefore the maximum firmware size. The boot ROM maps the header
	// at FirmwareBase + PayloadMaxSize, at the end of the 64 KiB
	// firmware window.
	PayloadMaxSize = 0xFFC0

	// HeaderSize is the serialized header length in bytes.
	HeaderSize = 64

	// ImageSize is the total signed image length, constant for any
	// payload up to PayloadMaxSize.
	ImageSize = PayloadMaxSize + HeaderSize

	// FirmwareBase is the address the payload is loaded at.
	FirmwareBase = 0x00010000

	// DefaultEntryPoint is where execution begins after verification
	// unless the build overrides it.
	DefaultEntryPoint = FirmwareBase

	// KeySize is the required MAC key length in bytes.
	KeySize = 32

	// SignatureWords is the number of 32-bit words in the signature
	// field (HMAC-SHA256, 256 bits).
	SignatureWords = 8
)

// Header is the fixed-layout record appended after the padded payload.
// All fields are serialized little-endian, 32-bit aligned.
type Header struct {
	// Magic identifies a valid header (0xDEADBEEF).
	Magic uint32

	// Version is the monotonically increasing firmware version, used by
	// the boot ROM for rollback protection.
	Version uint32

	// Length is the authenticated payload span in bytes. It records the
	// padded size (PayloadMaxSize), not the pre-padding firmware size,
	// so the verifier never trusts an attacker-supplied length.
	Length uint32

	// EntryPoint is the address at which execution begins after
	// verification.
	EntryPoint uint32

	// Timestamp is the Unix time of signing, informational only.
	Timestamp uint32

	// Reserved for future use, always zero.
	Reserved [3]uint32

	// Signature holds the HMAC-SHA256 MAC as eight little-endian words
	// in digest byte order.
	Signature [SignatureWords]uint32
}

// Bytes converts the header structure to its wire format.
func (h *Header) Bytes() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, h)
	return buf.Bytes()
}

func parseHeader(buf []byte) (*Header, error) {
	h := &Header{}

	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, h); err != nil {
		return nil, fmt.Errorf("could not parse header: %v", err)
	}

	return h, nil
}

// String returns the header in textual format.
func (h *Header) String() string {
	var b bytes.Buffer

	fmt.Fprintf(&b, "Magic ..........: %#08x\n", h.Magic)
	fmt.Fprintf(&b, "Version ........: %d (%s)\n", h.Version, DecodeVersion(h.Version))
	fmt.Fprintf(&b, "Length .........: %d\n", h.Length)
	fmt.Fprintf(&b, "Entry point ....: %#08x\n", h.EntryPoint)
	fmt.Fprintf(&b, "Timestamp ......: %d (%s)\n", h.Timestamp, time.Unix(int64(h.Timestamp), 0).UTC().Format(time.RFC3339))

	for i, w := range h.Signature {
		fmt.Fprintf(&b, "Signature[%d] ...: %08x\n", i, w)
	}

	return b.String()
}
