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

package pwcrypto

// Zero overwrites b with zeros in place. Call on every secret buffer
// (passwords, P', K, L, decrypted plaintext) before it's released, so a
// later reallocation of the same backing array can't resurrect it.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Zero32 overwrites a fixed-size secret in place.
func Zero32(b *[32]byte) {
	for i := range b {
		b[i] = 0
	}
}
