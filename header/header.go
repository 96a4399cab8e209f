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

// Package header implements the ordered header set that precedes every
// safe's records: parsing and serializing the header TLV stream, and the
// singleton/repeatable accessors layered on top of it. Every field, known
// or not, is kept in an ordered vector so an unrecognized header type
// still survives a load/save round-trip unchanged.
package header

import (
	"strings"
	"time"

	"github.com/go-pwsafe/pwsafe/field"
	"github.com/go-pwsafe/pwsafe/pwerr"
	"github.com/go-pwsafe/pwsafe/wire"
)

// Field is one raw header entry: a type byte and its encoded value bytes.
// Decoding into a concrete Go type happens in the accessors below, on
// demand, never during parsing itself.
type Field struct {
	Type  field.HeaderType
	Value []byte
}

// Set is the ordered collection of header fields, not counting the
// terminator (which Parse consumes and Encode regenerates).
type Set struct {
	entries []Field
}

// New returns an empty header set.
func New() *Set { return &Set{} }

// Parse reads a header set from the start of body, stopping at (and
// consuming) the header terminator. It returns the set and the number of
// bytes consumed, so the caller can continue parsing records from the
// same buffer.
func Parse(body []byte) (*Set, int, error) {
	r := wire.NewReader(body)
	s := New()
	for {
		f, more, err := r.Next(byte(field.HeaderEnd))
		if err != nil {
			return nil, 0, err
		}
		if !more {
			r.SkipTerminator()
			break
		}
		s.entries = append(s.entries, Field{Type: field.HeaderType(f.Type), Value: f.Value})
	}
	return s, r.Pos(), nil
}

// Encode serializes the header set, including its terminator.
func (s *Set) Encode() ([]byte, error) {
	w := wire.NewWriter()
	for _, f := range s.entries {
		if err := w.Write(byte(f.Type), f.Value); err != nil {
			return nil, err
		}
	}
	if err := w.WriteTerminator(byte(field.HeaderEnd)); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Values returns the HMAC domain contribution of this header set: every
// field's value bytes, in wire order, including the terminator's (empty)
// value.
func (s *Set) Values() [][]byte {
	out := make([][]byte, 0, len(s.entries)+1)
	for _, f := range s.entries {
		out = append(out, f.Value)
	}
	out = append(out, nil)
	return out
}

func (s *Set) firstOfKind(t field.HeaderType) (Field, bool) {
	for _, f := range s.entries {
		if f.Type == t {
			return f, true
		}
	}
	return Field{}, false
}

func (s *Set) allOfKind(t field.HeaderType) []Field {
	var out []Field
	for _, f := range s.entries {
		if f.Type == t {
			out = append(out, f)
		}
	}
	return out
}

// upsertSingleton replaces the first field of type t with value, or
// appends one at the end if none exists yet.
func (s *Set) upsertSingleton(t field.HeaderType, value []byte) {
	for i, f := range s.entries {
		if f.Type == t {
			s.entries[i].Value = value
			return
		}
	}
	s.entries = append(s.entries, Field{Type: t, Value: value})
}

// appendRepeatable appends a new field of a repeatable type without
// disturbing any existing field of that type.
func (s *Set) appendRepeatable(t field.HeaderType, value []byte) {
	s.entries = append(s.entries, Field{Type: t, Value: value})
}

// removeAllOfKind drops every field of type t.
func (s *Set) removeAllOfKind(t field.HeaderType) {
	out := s.entries[:0]
	for _, f := range s.entries {
		if f.Type != t {
			out = append(out, f)
		}
	}
	s.entries = out
}

// Unknown returns every field whose type this package does not expose a
// named accessor for. It exists mainly for round-trip tests: unknown
// fields need no help from this package to survive, since Encode emits
// every stored entry regardless of whether a typed accessor recognizes it.
func (s *Set) Unknown() []Field {
	var out []Field
	for _, f := range s.entries {
		if !isKnown(f.Type) {
			out = append(out, f)
		}
	}
	return out
}

func isKnown(t field.HeaderType) bool {
	switch t {
	case field.HeaderVersion, field.HeaderUUID, field.HeaderNonDefaultPreferences,
		field.HeaderTreeDisplayStatus, field.HeaderTimestampOfLastSave, field.HeaderWhoLastSaved,
		field.HeaderWhatLastSaved, field.HeaderLastSavedByUser, field.HeaderLastSavedOnHost,
		field.HeaderDatabaseName, field.HeaderDatabaseDescription, field.HeaderDatabaseFilters,
		field.HeaderRecentEntries, field.HeaderNamedPasswordPolicies, field.HeaderEmptyGroups,
		field.HeaderYubico:
		return true
	default:
		return false
	}
}

// UUID returns the safe's instance identifier, if present.
func (s *Set) UUID() (field.UUID, bool, error) {
	f, ok := s.firstOfKind(field.HeaderUUID)
	if !ok {
		return field.UUID{}, false, nil
	}
	u, err := field.DecodeUUID(f.Value)
	return u, true, err
}

// SetUUID sets the safe's instance identifier.
func (s *Set) SetUUID(u field.UUID) {
	s.upsertSingleton(field.HeaderUUID, u.Encode())
}

// knownVersions maps the human-readable "pretty" version label to its
// packed on-disk form. Unknown labels are rejected with FieldValidation
// rather than guessed at.
var knownVersions = map[string]uint16{
	"PasswordSafe V3.01": 0x0301,
	"PasswordSafe V3.03": 0x0303,
	"PasswordSafe V3.09": 0x0309,
	"PasswordSafe V3.19": 0x0313,
	"PasswordSafe V3.28": 0x030a,
}

// VersionID returns the raw packed version field, if present.
func (s *Set) VersionID() (uint16, bool, error) {
	f, ok := s.firstOfKind(field.HeaderVersion)
	if !ok {
		return 0, false, nil
	}
	v, err := field.DecodeU16(f.Value)
	return v, true, err
}

// SetPretty sets the version field from a known human-readable label.
func (s *Set) SetPretty(label string) error {
	v, ok := knownVersions[label]
	if !ok {
		return pwerr.Newf(pwerr.FieldValidation, "unrecognized version label %q", label)
	}
	s.upsertSingleton(field.HeaderVersion, field.EncodeU16(v))
	return nil
}

// LastSaveTime returns the timestamp of the last save, if present.
func (s *Set) LastSaveTime() (time.Time, bool, error) {
	f, ok := s.firstOfKind(field.HeaderTimestampOfLastSave)
	if !ok {
		return time.Time{}, false, nil
	}
	t, err := field.DecodeTimestamp(f.Value)
	return t, true, err
}

// SetLastSaveTime sets the timestamp of the last save.
func (s *Set) SetLastSaveTime(t time.Time) {
	s.upsertSingleton(field.HeaderTimestampOfLastSave, field.EncodeTimestamp(t))
}

// LastSaveApp returns the application identifier of the last save.
func (s *Set) LastSaveApp() (string, bool) {
	f, ok := s.firstOfKind(field.HeaderWhatLastSaved)
	if !ok {
		return "", false
	}
	return field.TextFromBytes(f.Value).String(), true
}

// SetLastSaveApp sets the application identifier of the last save.
func (s *Set) SetLastSaveApp(app string) {
	s.upsertSingleton(field.HeaderWhatLastSaved, field.NewText(app).Bytes())
}

// LastSaveUser returns the user who performed the last save. It checks
// the modern, split field first and falls back to parsing the obsolete
// combined "user@host" field some older files still carry.
func (s *Set) LastSaveUser() (string, bool) {
	if f, ok := s.firstOfKind(field.HeaderLastSavedByUser); ok {
		return field.TextFromBytes(f.Value).String(), true
	}
	if f, ok := s.firstOfKind(field.HeaderWhoLastSaved); ok {
		who := field.TextFromBytes(f.Value).String()
		if idx := strings.IndexByte(who, '@'); idx >= 0 {
			return who[:idx], true
		}
	}
	return "", false
}

// LastSaveHost returns the host the last save ran on, with the same
// modern-then-legacy fallback as LastSaveUser.
func (s *Set) LastSaveHost() (string, bool) {
	if f, ok := s.firstOfKind(field.HeaderLastSavedOnHost); ok {
		return field.TextFromBytes(f.Value).String(), true
	}
	if f, ok := s.firstOfKind(field.HeaderWhoLastSaved); ok {
		who := field.TextFromBytes(f.Value).String()
		if idx := strings.IndexByte(who, '@'); idx >= 0 {
			return who[idx+1:], true
		}
	}
	return "", false
}

// SetLastSaveUser sets the modern last-save-user field. When addOld is
// true it also writes the obsolete combined "user@host" field so readers
// that only understand the old form still see the new value.
func (s *Set) SetLastSaveUser(user string, addOld bool) {
	s.upsertSingleton(field.HeaderLastSavedByUser, field.NewText(user).Bytes())
	if addOld {
		host, _ := s.LastSaveHost()
		s.upsertSingleton(field.HeaderWhoLastSaved, field.NewText(user+"@"+host).Bytes())
	}
}

// SetLastSaveHost sets the modern last-save-host field, with the same
// legacy-combined-field behavior as SetLastSaveUser.
func (s *Set) SetLastSaveHost(host string, addOld bool) {
	s.upsertSingleton(field.HeaderLastSavedOnHost, field.NewText(host).Bytes())
	if addOld {
		user, _ := s.LastSaveUser()
		s.upsertSingleton(field.HeaderWhoLastSaved, field.NewText(user+"@"+host).Bytes())
	}
}

// DatabaseName returns the database's display name.
func (s *Set) DatabaseName() (string, bool) {
	f, ok := s.firstOfKind(field.HeaderDatabaseName)
	if !ok {
		return "", false
	}
	return field.TextFromBytes(f.Value).String(), true
}

// SetDatabaseName sets the database's display name.
func (s *Set) SetDatabaseName(name string) {
	s.upsertSingleton(field.HeaderDatabaseName, field.NewText(name).Bytes())
}

// DatabaseDescription returns the database's free-text description.
func (s *Set) DatabaseDescription() (string, bool) {
	f, ok := s.firstOfKind(field.HeaderDatabaseDescription)
	if !ok {
		return "", false
	}
	return field.TextFromBytes(f.Value).String(), true
}

// SetDatabaseDescription sets the database's free-text description.
func (s *Set) SetDatabaseDescription(desc string) {
	s.upsertSingleton(field.HeaderDatabaseDescription, field.NewText(desc).Bytes())
}

// EmptyGroups returns every empty-group name currently recorded.
func (s *Set) EmptyGroups() []string {
	fs := s.allOfKind(field.HeaderEmptyGroups)
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, field.TextFromBytes(f.Value).String())
	}
	return out
}

// AddEmptyGroup records one additional empty group.
func (s *Set) AddEmptyGroup(name string) {
	s.appendRepeatable(field.HeaderEmptyGroups, field.NewText(name).Bytes())
}

// RemoveEmptyGroup drops every empty-group entry matching name.
func (s *Set) RemoveEmptyGroup(name string) {
	out := s.entries[:0]
	for _, f := range s.entries {
		if f.Type == field.HeaderEmptyGroups && field.TextFromBytes(f.Value).String() == name {
			continue
		}
		out = append(out, f)
	}
	s.entries = out
}

// RecentEntries returns the UUIDs of recently used records, across all
// recent-entries fields present (each field may itself carry more than
// one concatenated UUID).
func (s *Set) RecentEntries() ([]field.UUID, error) {
	var out []field.UUID
	for _, f := range s.allOfKind(field.HeaderRecentEntries) {
		uuids, err := field.DecodeRecentEntries(f.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, uuids...)
	}
	return out, nil
}

// SetRecentEntries replaces the recent-entries list with a single field
// holding exactly these UUIDs, in order.
func (s *Set) SetRecentEntries(uuids []field.UUID) {
	s.removeAllOfKind(field.HeaderRecentEntries)
	if len(uuids) > 0 {
		s.appendRepeatable(field.HeaderRecentEntries, field.EncodeRecentEntries(uuids))
	}
}

// NonDefaultPreferences returns the decoded application preference list.
func (s *Set) NonDefaultPreferences() ([]field.Pref, error) {
	f, ok := s.firstOfKind(field.HeaderNonDefaultPreferences)
	if !ok {
		return nil, nil
	}
	return field.DecodeNonDefaultPrefs(f.Value)
}

// SetNonDefaultPreferences replaces the preference list.
func (s *Set) SetNonDefaultPreferences(prefs []field.Pref) {
	s.upsertSingleton(field.HeaderNonDefaultPreferences, field.EncodeNonDefaultPrefs(prefs))
}

// NamedPolicies returns the database's named password-generation policies.
func (s *Set) NamedPolicies() ([]field.Policy, error) {
	f, ok := s.firstOfKind(field.HeaderNamedPasswordPolicies)
	if !ok {
		return nil, nil
	}
	return field.DecodeNamedPolicies(f.Value)
}

// SetNamedPolicies replaces the named policy list.
func (s *Set) SetNamedPolicies(policies []field.Policy) {
	s.upsertSingleton(field.HeaderNamedPasswordPolicies, field.EncodeNamedPolicies(policies))
}
