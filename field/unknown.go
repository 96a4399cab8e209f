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

// DecodeRecentEntries decodes the header's recently-used-entries field: one or
// more 16-byte UUIDs concatenated together (the header namespace allows
// this field to repeat, but a single instance may itself carry several).
func DecodeRecentEntries(raw []byte) ([]UUID, error) {
	if len(raw)%16 != 0 {
		return nil, malformedLen("recent-entries", len(raw))
	}
	out := make([]UUID, 0, len(raw)/16)
	for off := 0; off < len(raw); off += 16 {
		u, err := DecodeUUID(raw[off : off+16])
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

// EncodeRecentEntries concatenates a list of UUIDs into one field payload.
func EncodeRecentEntries(uuids []UUID) []byte {
	out := make([]byte, 0, 16*len(uuids))
	for _, u := range uuids {
		out = append(out, u.Encode()...)
	}
	return out
}
