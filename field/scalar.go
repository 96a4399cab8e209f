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
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/go-pwsafe/pwsafe/pwerr"
)

// DecodeU16 reads a little-endian 16-bit integer field.
func DecodeU16(b []byte) (uint16, error) {
	if len(b) != 2 {
		return 0, pwerr.Newf(pwerr.MalformedContainer, "u16 field must be 2 bytes, got %d", len(b))
	}
	return binary.LittleEndian.Uint16(b), nil
}

// EncodeU16 writes v as 2 little-endian bytes.
func EncodeU16(v uint16) []byte {
	out := make([]byte, 2)
	binary.LittleEndian.PutUint16(out, v)
	return out
}

// DecodeU32 reads a little-endian 32-bit integer field.
func DecodeU32(b []byte) (uint32, error) {
	if len(b) != 4 {
		return 0, pwerr.Newf(pwerr.MalformedContainer, "u32 field must be 4 bytes, got %d", len(b))
	}
	return binary.LittleEndian.Uint32(b), nil
}

// EncodeU32 writes v as 4 little-endian bytes.
func EncodeU32(v uint32) []byte {
	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out, v)
	return out
}

// DecodeTimestamp reads a timestamp field. The current on-disk form is 4
// little-endian bytes giving seconds since the Unix epoch; a legacy form
// stores the same seconds count as 8 ASCII hex digits. Length disambiguates
// which form is present.
func DecodeTimestamp(b []byte) (time.Time, error) {
	switch len(b) {
	case 4:
		sec := binary.LittleEndian.Uint32(b)
		return time.Unix(int64(sec), 0).UTC(), nil
	case 8:
		decoded := make([]byte, 4)
		if _, err := hex.Decode(decoded, b); err != nil {
			return time.Time{}, pwerr.Wrap(pwerr.MalformedContainer, err)
		}
		sec := binary.BigEndian.Uint32(decoded)
		return time.Unix(int64(sec), 0).UTC(), nil
	default:
		return time.Time{}, pwerr.Newf(pwerr.MalformedContainer, "timestamp field must be 4 or 8 bytes, got %d", len(b))
	}
}

// EncodeTimestamp always writes the current 4-byte little-endian form,
// even if the value was originally read from a legacy 8-byte field.
func EncodeTimestamp(t time.Time) []byte {
	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out, uint32(t.Unix()))
	return out
}
