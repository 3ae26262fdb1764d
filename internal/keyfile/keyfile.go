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

// Package keyfile handles MAC signing key input, hex decoding with a strict
// 256-bit length gate and per-device key derivation from a shared secret.
//
// Key material returned by this package should be passed to Wipe as soon as
// the cryptographic operation using it completes.
package keyfile

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	"github.com/secure-riscv/firmware-tools/fwimage"
)

// pbkdf2 iteration count for keys derived from a shared secret
const iter = 4096

// EncodingError reports key input that cannot be decoded as bytes.
type EncodingError struct {
	cause error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("malformed key encoding: %v", e.cause)
}

func (e *EncodingError) Unwrap() error {
	return e.cause
}

// Decode converts a hex encoded key to bytes, requiring exactly 256 bits.
// Surrounding whitespace is tolerated so key files may end with a newline.
func Decode(s string) ([]byte, error) {
	key, err := hex.DecodeString(strings.TrimSpace(s))

	if err != nil {
		return nil, &EncodingError{cause: err}
	}

	if len(key) != fwimage.KeySize {
		return nil, fmt.Errorf("%w, got %d bits", fwimage.ErrInvalidKeyLength, len(key)*8)
	}

	return key, nil
}

// Load reads and decodes a hex encoded key file.
func Load(path string) ([]byte, error) {
	buf, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	defer Wipe(buf)

	return Decode(string(buf))
}

// Derive produces a per-device 256-bit signing key from a shared secret and
// the device serial as diversifier (PBKDF2-SHA256). The derivation is
// reproducible, the signer and the device provisioning flow must reach the
// same key.
func Derive(secret []byte, serial []byte) []byte {
	return pbkdf2.Key(secret, serial, iter, fwimage.KeySize, sha256.New)
}

// Wipe zeroes key material in place.
func Wipe(key []byte) {
	for i := range key {
		key[i] = 0
	}
}
