// Copyright 2025 The Go-PWSafe Authors
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

// Package pwcrypto implements the primitive cryptographic operations the
// PWS3 envelope is built from: key stretching, Twofish in ECB/CBC, and
// HMAC-SHA-256 authentication. Nothing here understands the container
// format; envelope composes these primitives into the format's layering.
package pwcrypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
)

// MinIterations is the minimum stretch iteration count the format allows.
const MinIterations = 2048

// DefaultIterations is written for newly created safes.
const DefaultIterations = 2048

// Stretch computes P' = SHA256^(iter+1)(password || salt), the iterated
// hash used to derive the key-wrapping key. The "+1" matches the
// reference format: the 0th round hashes password||salt, and iter more
// rounds follow.
func Stretch(password, salt []byte, iter uint32) [32]byte {
	h := sha256.New()
	h.Write(password)
	h.Write(salt)
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	for i := uint32(0); i < iter; i++ {
		sum = sha256.Sum256(sum[:])
	}
	return sum
}

// Authenticator returns H(P'), the value stored in the container and
// compared against on open.
func Authenticator(stretched [32]byte) [32]byte {
	return sha256.Sum256(stretched[:])
}

// ConstantTimeEqual reports whether a and b are equal using a
// constant-time comparison. Used for both the password authenticator and
// the body HMAC so that timing does not leak how many leading bytes
// matched.
func ConstantTimeEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// HMAC computes HMAC-SHA256(key, data).
func HMAC(key, data []byte) [32]byte {
	m := hmac.New(sha256.New, key)
	m.Write(data)
	var sum [32]byte
	copy(sum[:], m.Sum(nil))
	return sum
}
