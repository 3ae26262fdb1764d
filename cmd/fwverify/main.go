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

// fwverify audits a signed firmware image on the host, running the same
// check the SoC boot ROM performs: magic validation and constant time
// comparison of the embedded signature against the recomputed HMAC-SHA256.
package main

import (
	"errors"
	"flag"
	"os"

	"k8s.io/klog/v2"

	"github.com/secure-riscv/firmware-tools/fwimage"
	"github.com/secure-riscv/firmware-tools/internal/keyfile"
)

var (
	input      = flag.String("input", "", "signed firmware image")
	keyFile    = flag.String("key_file", "", "file containing the 256-bit signing key in hex")
	keyHex     = flag.String("key_hex", "", "256-bit signing key in hex, overrides --key_file")
	secretFile = flag.String("secret_file", "", "shared secret file to derive a per-device key from, requires --serial")
	serial     = flag.String("serial", "", "device serial used as key derivation diversifier")
	minVersion = flag.String("min_version", "", "reject images whose version is below this epoch or semantic version")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *input == "" {
		klog.Exit("--input must be set")
	}

	buf, err := os.ReadFile(*input)
	if err != nil {
		klog.Exitf("Failed to read image %q: %v", *input, err)
	}

	img, err := fwimage.ParseImage(buf)
	if err != nil {
		klog.Exitf("Failed to parse image: %v", err)
	}

	klog.Infof("Firmware header:\n%s", img.Header.String())

	key, err := signingKey()
	if err != nil {
		klog.Exitf("Failed to load signing key: %v", err)
	}
	defer keyfile.Wipe(key)

	if err := img.Verify(key); err != nil {
		klog.Exitf("Verification FAILED: %v", err)
	}

	if *minVersion != "" {
		want, err := fwimage.ParseVersion(*minVersion)

		if err != nil {
			klog.Exitf("Invalid --min_version: %v", err)
		}

		// mirrors the boot ROM version epoch comparison
		if img.Header.Version < want {
			klog.Exitf("Rollback REJECTED: image version %d is below required %d", img.Header.Version, want)
		}
	}

	klog.Infof("Verification OK, %q authenticates against the supplied key", *input)
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
