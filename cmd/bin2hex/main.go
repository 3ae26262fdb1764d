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

// bin2hex converts a binary file to the 32-bit little-endian word formats
// consumed by the SoC's RTL, $readmemh hex lines by default or register
// initializer statements with --init.
package main

import (
	"flag"
	"io"
	"os"

	"k8s.io/klog/v2"

	"github.com/secure-riscv/firmware-tools/internal/memfmt"
)

var (
	input     = flag.String("input", "", "binary file to convert")
	output    = flag.String("output", "", "output file, defaults to stdout")
	words     = flag.Int("words", 0, "pad or truncate hex output to this many words, 0 means exact size")
	initArray = flag.String("init", "", "emit initializer statements assigning into the named memory array")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *input == "" {
		klog.Exit("--input must be set")
	}

	buf, err := os.ReadFile(*input)
	if err != nil {
		klog.Exitf("Failed to read %q: %v", *input, err)
	}

	var w io.Writer = os.Stdout

	if *output != "" {
		f, err := os.Create(*output)

		if err != nil {
			klog.Exitf("Failed to create %q: %v", *output, err)
		}

		defer func() {
			if err := f.Close(); err != nil {
				klog.Exitf("Failed to close %q: %v", *output, err)
			}
		}()

		w = f
	}

	if *initArray != "" {
		err = memfmt.WriteInit(w, buf, *initArray)
	} else {
		err = memfmt.WriteHex(w, buf, *words)
	}

	if err != nil {
		klog.Exitf("Conversion failed: %v", err)
	}
}
