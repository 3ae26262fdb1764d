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

package memfmt

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWords(t *testing.T) {
	for _, test := range []struct {
		name string
		in   []byte
		want []uint32
	}{
		{name: "empty", in: nil, want: []uint32{}},
		{name: "single word", in: []byte{0xEF, 0xBE, 0xAD, 0xDE}, want: []uint32{0xDEADBEEF}},
		{name: "tail padded", in: []byte{0x01, 0x02, 0x03, 0x04, 0x05}, want: []uint32{0x04030201, 0x00000005}},
		{name: "three byte tail", in: []byte{0xAA, 0xBB, 0xCC}, want: []uint32{0x00CCBBAA}},
	} {
		t.Run(test.name, func(t *testing.T) {
			if diff := cmp.Diff(test.want, Words(test.in)); diff != "" {
				t.Fatalf("Words diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteHex(t *testing.T) {
	in := []byte{0x13, 0x00, 0x00, 0x00, 0xEF, 0xBE, 0xAD, 0xDE}

	for _, test := range []struct {
		name     string
		numWords int
		want     string
	}{
		{
			name: "exact size",
			want: "00000013\ndeadbeef\n",
		},
		{
			name:     "zero padded to fixed memory",
			numWords: 4,
			want:     "00000013\ndeadbeef\n00000000\n00000000\n",
		},
		{
			name:     "truncated",
			numWords: 1,
			want:     "00000013\n",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			var buf bytes.Buffer

			if err := WriteHex(&buf, in, test.numWords); err != nil {
				t.Fatalf("WriteHex: %v", err)
			}

			if diff := cmp.Diff(test.want, buf.String()); diff != "" {
				t.Fatalf("Output diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteInit(t *testing.T) {
	var buf bytes.Buffer

	if err := WriteInit(&buf, []byte{0x13, 0x00, 0x00, 0x00, 0xAA}, "memory"); err != nil {
		t.Fatalf("WriteInit: %v", err)
	}

	want := "    memory[0] = 32'h00000013;\n    memory[1] = 32'h000000aa;\n"

	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("Output diff (-want +got):\n%s", diff)
	}
}
