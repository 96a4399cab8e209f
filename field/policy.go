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

	"github.com/go-pwsafe/pwsafe/pwerr"
)

// PolicyFlags is the bitfield of character classes and generation modes a
// named or record-level password policy requires.
type PolicyFlags uint16

const (
	FlagLowercase PolicyFlags = 1 << iota
	FlagUppercase
	FlagDigits
	FlagSymbols
	FlagHex
	FlagEasyVision
	FlagPronounceable
)

// Policy is one password-generation policy: either a named entry inside
// the header's named-policies list, or the unnamed policy embedded
// directly in a record (same layout, empty Name).
type Policy struct {
	Name        string
	Flags       PolicyFlags
	TotalLength uint16
	MinLower    uint16
	MinUpper    uint16
	MinDigit    uint16
	MinSymbol   uint16
	Symbols     string
}

// decodePolicyEntry reads one policy entry starting at offset off,
// returning the entry and the offset just past it.
func decodePolicyEntry(b []byte, off int) (Policy, int, error) {
	var p Policy
	need := func(n int) error {
		if off+n > len(b) {
			return pwerr.Newf(pwerr.MalformedContainer, "policy entry truncated at offset %d", off)
		}
		return nil
	}
	if err := need(2); err != nil {
		return p, off, err
	}
	nameLen := int(binary.LittleEndian.Uint16(b[off : off+2]))
	off += 2
	if err := need(nameLen); err != nil {
		return p, off, err
	}
	p.Name = string(b[off : off+nameLen])
	off += nameLen

	if err := need(2); err != nil {
		return p, off, err
	}
	p.Flags = PolicyFlags(binary.LittleEndian.Uint16(b[off : off+2]))
	off += 2

	if err := need(2); err != nil {
		return p, off, err
	}
	p.TotalLength = binary.LittleEndian.Uint16(b[off : off+2])
	off += 2

	fields := []*uint16{&p.MinLower, &p.MinUpper, &p.MinDigit, &p.MinSymbol}
	for _, f := range fields {
		if err := need(2); err != nil {
			return p, off, err
		}
		*f = binary.LittleEndian.Uint16(b[off : off+2])
		off += 2
	}

	if err := need(2); err != nil {
		return p, off, err
	}
	symLen := int(binary.LittleEndian.Uint16(b[off : off+2]))
	off += 2
	if err := need(symLen); err != nil {
		return p, off, err
	}
	p.Symbols = string(b[off : off+symLen])
	off += symLen

	return p, off, nil
}

func (p Policy) encodeInto(out []byte) []byte {
	u16 := func(v uint16) {
		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], v)
		out = append(out, buf[:]...)
	}
	u16(uint16(len(p.Name)))
	out = append(out, p.Name...)
	u16(uint16(p.Flags))
	u16(p.TotalLength)
	u16(p.MinLower)
	u16(p.MinUpper)
	u16(p.MinDigit)
	u16(p.MinSymbol)
	u16(uint16(len(p.Symbols)))
	out = append(out, p.Symbols...)
	return out
}

// Encode returns the single-entry wire form used by a record's embedded
// password-policy field.
func (p Policy) Encode() []byte {
	return p.encodeInto(nil)
}

// DecodeSinglePolicy reads a record's embedded password-policy field,
// which has exactly the same layout as one named-policies entry.
func DecodeSinglePolicy(raw []byte) (Policy, error) {
	p, off, err := decodePolicyEntry(raw, 0)
	if err != nil {
		return Policy{}, err
	}
	if off != len(raw) {
		return Policy{}, pwerr.Newf(pwerr.MalformedContainer, "password-policy field has %d trailing bytes", len(raw)-off)
	}
	return p, nil
}

// DecodeNamedPolicies reads the header's named-policies field: a count
// followed by that many repeated policy entries.
func DecodeNamedPolicies(raw []byte) ([]Policy, error) {
	if len(raw) < 2 {
		return nil, pwerr.Newf(pwerr.MalformedContainer, "named-policies field too short: %d bytes", len(raw))
	}
	count := int(binary.LittleEndian.Uint16(raw[0:2]))
	off := 2
	policies := make([]Policy, 0, count)
	for n := 0; n < count; n++ {
		p, next, err := decodePolicyEntry(raw, off)
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
		off = next
	}
	if off != len(raw) {
		return nil, pwerr.Newf(pwerr.MalformedContainer, "named-policies field has %d trailing bytes", len(raw)-off)
	}
	return policies, nil
}

// EncodeNamedPolicies serializes the full named-policies list.
func EncodeNamedPolicies(policies []Policy) []byte {
	out := make([]byte, 2)
	binary.LittleEndian.PutUint16(out, uint16(len(policies)))
	for _, p := range policies {
		out = p.encodeInto(out)
	}
	return out
}
