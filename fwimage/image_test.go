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
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuild(t *testing.T) {
	for _, test := range []struct {
		name         string
		payloadLen   int
		wantOverflow int
	}{
		{name: "empty payload is all padding", payloadLen: 0},
		{name: "small payload", payloadLen: 8},
		{name: "unaligned payload", payloadLen: 4097},
		{name: "exactly full", payloadLen: PayloadMaxSize},
		{name: "one byte over", payloadLen: PayloadMaxSize + 1, wantOverflow: 1},
		{name: "far over", payloadLen: PayloadMaxSize + 4096, wantOverflow: 4096},
	} {
		t.Run(test.name, func(t *testing.T) {
			payload := bytes.Repeat([]byte{0xA5}, test.payloadLen)

			img, err := Build(payload, 1, DefaultEntryPoint, 1700000000)

			if test.wantOverflow > 0 {
				var tooLarge *PayloadTooLargeError
				if !errors.As(err, &tooLarge) {
					t.Fatalf("Got err %v, want PayloadTooLargeError", err)
				}
				if got, want := tooLarge.Overflow(), test.wantOverflow; got != want {
					t.Errorf("Got overflow %d, want %d", got, want)
				}
				if got, want := tooLarge.Limit, PayloadMaxSize; got != want {
					t.Errorf("Got limit %d, want %d", got, want)
				}
				return
			}

			if err != nil {
				t.Fatalf("Build: %v", err)
			}

			if got, want := len(img.Bytes()), ImageSize; got != want {
				t.Errorf("Got image size %d, want %d", got, want)
			}

			if !bytes.Equal(img.Payload[:test.payloadLen], payload) {
				t.Error("Payload bytes were altered by Build")
			}

			if padding := img.Payload[test.payloadLen:]; !bytes.Equal(padding, make([]byte, len(padding))) {
				t.Error("Padding is not all zero")
			}

			// Length records the padded size so the verifier's
			// authenticated span never depends on the firmware size.
			if got, want := img.Header.Length, uint32(PayloadMaxSize); got != want {
				t.Errorf("Got header length %d, want %d", got, want)
			}

			if got, want := img.Header.Magic, uint32(Magic); got != want {
				t.Errorf("Got magic %#08x, want %#08x", got, want)
			}

			if img.Header.Signature != [SignatureWords]uint32{} {
				t.Errorf("Got signature %x on unsigned image, want all zero", img.Header.Signature)
			}
		})
	}
}

func TestParseImageRoundTrip(t *testing.T) {
	img, err := Build([]byte("secure boot payload"), 3, DefaultEntryPoint, 1700000000)

	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if err := img.Sign(bytes.Repeat([]byte{0x42}, KeySize)); err != nil {
		t.Fatalf("Sign: %v", err)
	}

	got, err := ParseImage(img.Bytes())

	if err != nil {
		t.Fatalf("ParseImage: %v", err)
	}

	if diff := cmp.Diff(img, got); diff != "" {
		t.Fatalf("Image round trip diff (-want +got):\n%s", diff)
	}
}

func TestParseImageSizeGate(t *testing.T) {
	for _, test := range []struct {
		name string
		size int
	}{
		{name: "empty", size: 0},
		{name: "truncated", size: ImageSize - 1},
		{name: "trailing garbage", size: ImageSize + 1},
	} {
		t.Run(test.name, func(t *testing.T) {
			if _, err := ParseImage(make([]byte, test.size)); !errors.Is(err, ErrImageSize) {
				t.Fatalf("Got err %v, want ErrImageSize", err)
			}
		})
	}
}
