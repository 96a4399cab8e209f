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

import "strings"

// Text stores a field's raw bytes byte-for-byte and only decodes them to a
// string at the accessor boundary. Some real-world files carry text fields
// that are not strictly valid UTF-8; storing the original bytes keeps
// round-trips exact, while String() still gives callers something usable.
type Text struct {
	raw []byte
}

// NewText builds a Text from a Go string.
func NewText(s string) Text { return Text{raw: []byte(s)} }

// TextFromBytes builds a Text from raw bytes, copying them so later
// mutation of b can't alter the stored value.
func TextFromBytes(b []byte) Text {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Text{raw: cp}
}

// Bytes returns the exact bytes this Text was constructed or decoded from.
func (t Text) Bytes() []byte { return t.raw }

// String decodes the stored bytes as UTF-8, replacing any invalid sequence
// with U+FFFD rather than failing. This lossy decode only ever happens
// here, at the point a caller asks for a Go string.
func (t Text) String() string {
	return strings.ToValidUTF8(string(t.raw), "�")
}

// Empty reports whether the field carries zero bytes.
func (t Text) Empty() bool { return len(t.raw) == 0 }
