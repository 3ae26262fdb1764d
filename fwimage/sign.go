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
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
)

// signedSpan returns the exact byte range covered by the MAC, the padded
// payload followed by the header with its signature words zeroed. The
// zeroed signature slot is part of the span, fixing the authenticated
// message length whether or not a signature occupies it yet.
func (img *Image) signedSpan() []byte {
	h := img.Header
	h.Signature = [SignatureWords]uint32{}

	buf := make([]byte, 0, ImageSize)
	buf = append(buf, img.Payload...)
	buf = append(buf, h.Bytes()...)

	return buf
}

func (img *Image) computeMAC(key []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(img.signedSpan())
	return mac.Sum(nil)
}

// Sign computes HMAC-SHA256 over the authenticated span and embeds the
// digest into the header signature field as eight little-endian words in
// digest byte order. The key must be exactly 256 bits and is not retained.
//
// Signing is deterministic, the same payload, header fields and key always
// reproduce the same signature.
func (img *Image) Sign(key []byte) error {
	if len(key) != KeySize {
		return ErrInvalidKeyLength
	}

	sum := img.computeMAC(key)

	for i := range img.Header.Signature {
		img.Header.Signature[i] = binary.LittleEndian.Uint32(sum[i*4:])
	}

	return nil
}

// Verify mirrors the boot ROM check: it validates the header magic,
// recomputes the MAC over the authenticated span with the signature words
// re-zeroed and compares it against the embedded signature in constant
// time. Any error means the payload must not be executed.
func (img *Image) Verify(key []byte) error {
	if len(key) != KeySize {
		return ErrInvalidKeyLength
	}

	if img.Header.Magic != Magic {
		return &MagicError{Got: img.Header.Magic}
	}

	sig := make([]byte, sha256.Size)

	for i, w := range img.Header.Signature {
		binary.LittleEndian.PutUint32(sig[i*4:], w)
	}

	if !hmac.Equal(sig, img.computeMAC(key)) {
		return ErrSignatureMismatch
	}

	return nil
}
