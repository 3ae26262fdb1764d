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

// Package memfmt reinterprets binary buffers as 32-bit little-endian word
// sequences in the textual forms consumed by the SoC's RTL, bare hex words
// for Verilog $readmemh and indexed register initializer statements.
//
// These are stateless byte reinterpretation tools, they carry no invariants
// beyond word order and tail padding and are not part of the authenticated
// image format.
package memfmt

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Words reinterprets buf as little-endian 32-bit words, zero padding the
// tail to a 4 byte boundary.
func Words(buf []byte) []uint32 {
	words := make([]uint32, (len(buf)+3)/4)

	for i := range words {
		var w [4]byte
		copy(w[:], buf[i*4:])
		words[i] = binary.LittleEndian.Uint32(w[:])
	}

	return words
}

// WriteHex emits one 8 digit hex word per line. When numWords is positive
// the output is padded with zero words, or truncated, to exactly that many
// lines, matching a fixed size memory; otherwise the word count follows the
// buffer.
func WriteHex(w io.Writer, buf []byte, numWords int) error {
	words := Words(buf)

	count := len(words)

	if numWords > 0 {
		count = numWords
	}

	bw := bufio.NewWriter(w)

	for i := 0; i < count; i++ {
		var v uint32

		if i < len(words) {
			v = words[i]
		}

		if _, err := fmt.Fprintf(bw, "%08x\n", v); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteInit emits one Verilog initializer statement per word, assigning
// into the named memory array.
func WriteInit(w io.Writer, buf []byte, array string) error {
	bw := bufio.NewWriter(w)

	for i, v := range Words(buf) {
		if _, err := fmt.Fprintf(bw, "    %s[%d] = 32'h%08x;\n", array, i, v); err != nil {
			return err
		}
	}

	return bw.Flush()
}
