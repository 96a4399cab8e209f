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

package field

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/go-pwsafe/pwsafe/pwerr"
)

// UUID is the format's 16-raw-byte identifier, used for both record and
// instance identity. It has no internal structure the engine cares about;
// it is an opaque 16-byte token.
type UUID [16]byte

// NewUUID returns a fresh, randomly generated UUID.
func NewUUID() UUID {
	var u UUID
	if _, err := rand.Read(u[:]); err != nil {
		panic(err) // crypto/rand.Read only fails if the OS RNG is broken
	}
	return u
}

// DecodeUUID reads a UUID from its 16-byte wire form.
func DecodeUUID(b []byte) (UUID, error) {
	var u UUID
	if len(b) != 16 {
		return u, pwerr.Newf(pwerr.MalformedContainer, "UUID field must be 16 bytes, got %d", len(b))
	}
	copy(u[:], b)
	return u, nil
}

// Encode returns the 16-byte wire form.
func (u UUID) Encode() []byte {
	out := make([]byte, 16)
	copy(out, u[:])
	return out
}

// IsZero reports whether u is the all-zero UUID (used as an "absent"
// sentinel in a few accessors).
func (u UUID) IsZero() bool {
	for _, b := range u {
		if b != 0 {
			return false
		}
	}
	return true
}

// String renders the canonical dashed hex form.
func (u UUID) String() string {
	return fmt.Sprintf("%s-%s-%s-%s-%s",
		hex.EncodeToString(u[0:4]),
		hex.EncodeToString(u[4:6]),
		hex.EncodeToString(u[6:8]),
		hex.EncodeToString(u[8:10]),
		hex.EncodeToString(u[10:16]))
}
