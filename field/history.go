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
	"time"

	"github.com/go-pwsafe/pwsafe/container/ring"
	"github.com/go-pwsafe/pwsafe/pwerr"
)

// HistoryStatus is the format's on-disk history status byte. Upstream
// documentation is ambiguous about what each value means beyond 0 and 1,
// so this is kept as an opaque small integer rather than a strict enum:
// whatever byte is on disk is preserved verbatim and never rejected.
type HistoryStatus uint8

const (
	HistoryDisabled HistoryStatus = 0
	HistoryEnabled  HistoryStatus = 1
)

// HistoryEntry is one archived former password.
type HistoryEntry struct {
	When     time.Time
	Password Text
}

// History is a record's password-history field: a status byte, a maximum
// entry count, and the archived passwords themselves, oldest first. Max
// is enforced by a bounded ring that evicts the oldest entry once the
// count would exceed it.
type History struct {
	Status HistoryStatus
	Max    uint16
	ring   *ring.Ring[HistoryEntry]
}

// NewHistory returns an empty history capped at max entries.
func NewHistory(status HistoryStatus, max uint16) *History {
	return &History{Status: status, Max: max, ring: ring.NewBounded[HistoryEntry](int(max))}
}

// Push archives one more former password, evicting the oldest entry first
// if the history is already at its cap.
func (h *History) Push(entry HistoryEntry) {
	if h.ring == nil {
		h.ring = ring.NewBounded[HistoryEntry](int(h.Max))
	}
	h.ring.Push(entry)
}

// Entries returns the archived passwords, oldest first.
func (h *History) Entries() []HistoryEntry {
	if h.ring == nil {
		return nil
	}
	return h.ring.Values()
}

// DecodePasswordHistory reads a record's password-history field:
// status(1) || max(2) || count(2) || entries{when_u32_le, pw_len_u16_le, pw}.
func DecodePasswordHistory(raw []byte) (*History, error) {
	if len(raw) < 5 {
		return nil, pwerr.Newf(pwerr.MalformedContainer, "password-history field too short: %d bytes", len(raw))
	}
	status := HistoryStatus(raw[0])
	max := binary.LittleEndian.Uint16(raw[1:3])
	count := int(binary.LittleEndian.Uint16(raw[3:5]))

	h := NewHistory(status, max)
	off := 5
	for n := 0; n < count; n++ {
		if off+6 > len(raw) {
			return nil, pwerr.Newf(pwerr.MalformedContainer, "password-history entry %d truncated", n)
		}
		when := binary.LittleEndian.Uint32(raw[off : off+4])
		pwLen := int(binary.LittleEndian.Uint16(raw[off+4 : off+6]))
		off += 6
		if off+pwLen > len(raw) {
			return nil, pwerr.Newf(pwerr.MalformedContainer, "password-history entry %d password truncated", n)
		}
		h.Push(HistoryEntry{
			When:     time.Unix(int64(when), 0).UTC(),
			Password: TextFromBytes(raw[off : off+pwLen]),
		})
		off += pwLen
	}
	if off != len(raw) {
		return nil, pwerr.Newf(pwerr.MalformedContainer, "password-history field has %d trailing bytes", len(raw)-off)
	}
	return h, nil
}

// Encode serializes the history back to its wire form. Count reflects how
// many entries are actually stored (at most Max, by construction).
func (h *History) Encode() []byte {
	entries := h.Entries()
	out := make([]byte, 5)
	out[0] = byte(h.Status)
	binary.LittleEndian.PutUint16(out[1:3], h.Max)
	binary.LittleEndian.PutUint16(out[3:5], uint16(len(entries)))
	for _, e := range entries {
		var hdr [6]byte
		binary.LittleEndian.PutUint32(hdr[0:4], uint32(e.When.Unix()))
		pwBytes := e.Password.Bytes()
		binary.LittleEndian.PutUint16(hdr[4:6], uint16(len(pwBytes)))
		out = append(out, hdr[:]...)
		out = append(out, pwBytes...)
	}
	return out
}
