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

// fwsign builds and signs a firmware image for the secure RISC-V SoC.
//
// The firmware binary is zero padded to the fixed payload size, the header
// is appended and its signature words are filled with the HMAC-SHA256 MAC
// computed with the shared 256-bit key. The signed image is written
// atomically, a failed run never leaves a truncated image behind.
package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"k8s.io/klog/v2"

	"github.com/secure-riscv/firmware-tools/fwimage"
	"github.com/secure-riscv/firmware-tools/internal/keyfile"
)

var (
	input      = flag.String("input", "", "unsigned firmware binary")
	output     = flag.String("output", "", "path for the signed firmware image")
	keyFile    = flag.String("key_file", "", "file containing the 256-bit signing key in hex")
	keyHex     = flag.String("key_hex", "", "256-bit signing key in hex, overrides --key_file")
	secretFile = flag.String("secret_file", "", "shared secret file to derive a per-device key from, requires --serial")
	serial     = flag.String("serial", "", "device serial used as key derivation diversifier")
	version    = flag.String("version", "0", "firmware version, a u32 epoch or a semantic version to pack")
	entryPoint = flag.Uint("entry_point", fwimage.DefaultEntryPoint, "address at which execution begins after verification")
	timestamp  = flag.Int64("timestamp", 0, "signing timestamp override as Unix time, 0 means now")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *input == "" || *output == "" {
		klog.Exit("Both --input and --output must be set")
	}

	payload, err := os.ReadFile(*input)
	if err != nil {
		klog.Exitf("Failed to read firmware %q: %v", *input, err)
	}
	klog.Infof("Read %s of firmware from %q", humanize.IBytes(uint64(len(payload))), *input)

	v, err := fwimage.ParseVersion(*version)
	if err != nil {
		klog.Exitf("Invalid --version: %v", err)
	}

	ts := uint32(*timestamp)
	if *timestamp == 0 {
		ts = uint32(time.Now().Unix())
	}

	img, err := fwimage.Build(payload, v, uint32(*entryPoint), ts)
	if err != nil {
		klog.Exitf("Failed to build image: %v", err)
	}

	key, err := signingKey()
	if err != nil {
		klog.Exitf("Failed to load signing key: %v", err)
	}
	defer keyfile.Wipe(key)

	if err := img.Sign(key); err != nil {
		klog.Exitf("Failed to sign image: %v", err)
	}

	klog.Infof("Firmware header:\n%s", img.Header.String())

	if err := writeImage(*output, img.Bytes()); err != nil {
		klog.Exitf("Failed to write %q: %v", *output, err)
	}

	klog.Infof("Wrote %s signed image to %q", humanize.IBytes(fwimage.ImageSize), *output)
}

func signingKey() ([]byte, error) {
	switch {
	case *keyHex != "":
		return keyfile.Decode(*keyHex)
	case *keyFile != "":
		return keyfile.Load(*keyFile)
	case *secretFile != "":
		if *serial == "" {
			return nil, errors.New("--serial is required with --secret_file")
		}

		secret, err := os.ReadFile(*secretFile)

		if err != nil {
			return nil, err
		}

		defer keyfile.Wipe(secret)

		return keyfile.Derive(secret, []byte(*serial)), nil
	}

	return nil, errors.New("one of --key_hex, --key_file or --secret_file must be set")
}

// writeImage persists the signed image through a temporary file renamed
// into place, so either the full image is written or none of it.
func writeImage(path string, buf []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".fwsign-*")

	if err != nil {
		return err
	}

	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
