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

package record

import (
	"github.com/go-pwsafe/pwsafe/field"
	"github.com/go-pwsafe/pwsafe/pwerr"
)

// Set is every record in a safe, indexed by UUID but kept in on-disk
// order: existing records keep their original position, new ones are
// appended at the end.
type Set struct {
	records []*Record
	index   map[field.UUID]*Record
}

// NewSet returns an empty record set.
func NewSet() *Set {
	return &Set{index: make(map[field.UUID]*Record)}
}

// ParseSet reads repeated record groups from body until it is exhausted.
func ParseSet(body []byte) (*Set, error) {
	s := NewSet()
	off := 0
	for off < len(body) {
		rec, n, err := Parse(body[off:])
		if err != nil {
			return nil, err
		}
		if err := s.Add(rec); err != nil {
			return nil, pwerr.Wrap(pwerr.MalformedContainer, err)
		}
		off += n
	}
	return s, nil
}

// Encode serializes every record, in order.
func (s *Set) Encode() ([]byte, error) {
	var out []byte
	for _, r := range s.records {
		b, err := r.Encode()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

// Values returns the HMAC domain contribution of every record, in order.
func (s *Set) Values() [][]byte {
	var out [][]byte
	for _, r := range s.records {
		out = append(out, r.Values()...)
	}
	return out
}

// Add validates rec and appends it at the end of the set. It fails with
// FieldValidation if rec is missing a required field, or if its UUID
// collides with a record already present.
func (s *Set) Add(rec *Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	u, _, err := rec.UUID()
	if err != nil {
		return err
	}
	if _, exists := s.index[u]; exists {
		return pwerr.Newf(pwerr.FieldValidation, "duplicate record UUID %s", u)
	}
	s.records = append(s.records, rec)
	s.index[u] = rec
	return nil
}

// Get returns the record with the given UUID, if any.
func (s *Set) Get(u field.UUID) (*Record, bool) {
	r, ok := s.index[u]
	return r, ok
}

// Remove deletes the record with the given UUID, preserving the order of
// the remaining records. It fails with NotFound if no such record exists.
func (s *Set) Remove(u field.UUID) error {
	if _, ok := s.index[u]; !ok {
		return pwerr.New(pwerr.NotFound, "no record with that UUID")
	}
	delete(s.index, u)
	out := s.records[:0]
	for _, r := range s.records {
		if ru, _, _ := r.UUID(); ru != u {
			out = append(out, r)
		}
	}
	s.records = out
	return nil
}

// All returns every record, in on-disk order. The slice is owned by the
// caller; mutating the returned Records mutates the set.
func (s *Set) All() []*Record {
	out := make([]*Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records in the set.
func (s *Set) Len() int { return len(s.records) }
