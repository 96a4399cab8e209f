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

// Package record implements a single credential record (an ordered group
// of typed fields terminated by a record terminator) and the record set
// that holds every record in a safe, indexed by UUID.
package record

import (
	"time"

	"github.com/go-pwsafe/pwsafe/field"
	"github.com/go-pwsafe/pwsafe/pwerr"
	"github.com/go-pwsafe/pwsafe/wire"
)

// Field is one raw record entry.
type Field struct {
	Type  field.RecordType
	Value []byte
}

// Record is one credential entry: an ordered list of fields. Unknown
// field types are kept verbatim, same as in the header set.
type Record struct {
	entries []Field
}

// New returns an empty record. Callers must set UUID, Title, and Password
// before the record can pass Validate.
func New() *Record { return &Record{} }

// Parse reads one record group from the start of body, stopping at (and
// consuming) its terminator. It returns the record and the number of
// bytes consumed.
func Parse(body []byte) (*Record, int, error) {
	r := wire.NewReader(body)
	rec := New()
	for {
		f, more, err := r.Next(byte(field.RecordEnd))
		if err != nil {
			return nil, 0, err
		}
		if !more {
			r.SkipTerminator()
			break
		}
		rec.entries = append(rec.entries, Field{Type: field.RecordType(f.Type), Value: f.Value})
	}
	return rec, r.Pos(), nil
}

// Encode serializes the record, including its terminator.
func (r *Record) Encode() ([]byte, error) {
	w := wire.NewWriter()
	for _, f := range r.entries {
		if err := w.Write(byte(f.Type), f.Value); err != nil {
			return nil, err
		}
	}
	if err := w.WriteTerminator(byte(field.RecordEnd)); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Values returns this record's HMAC domain contribution: every field
// value in wire order, including the terminator's empty value.
func (r *Record) Values() [][]byte {
	out := make([][]byte, 0, len(r.entries)+1)
	for _, f := range r.entries {
		out = append(out, f.Value)
	}
	return append(out, nil)
}

// Validate reports whether the record carries every field the format
// requires (UUID, title, password).
func (r *Record) Validate() error {
	for _, t := range []field.RecordType{field.RecordUUID, field.RecordTitle, field.RecordPassword} {
		if _, ok := r.firstOfKind(t); !ok {
			return pwerr.Newf(pwerr.FieldValidation, "record is missing required field %d", t)
		}
	}
	return nil
}

func (r *Record) firstOfKind(t field.RecordType) (Field, bool) {
	for _, f := range r.entries {
		if f.Type == t {
			return f, true
		}
	}
	return Field{}, false
}

func (r *Record) upsert(t field.RecordType, value []byte) {
	for i, f := range r.entries {
		if f.Type == t {
			r.entries[i].Value = value
			return
		}
	}
	r.entries = append(r.entries, Field{Type: t, Value: value})
}

func (r *Record) remove(t field.RecordType) {
	out := r.entries[:0]
	for _, f := range r.entries {
		if f.Type != t {
			out = append(out, f)
		}
	}
	r.entries = out
}

func textField(r *Record, t field.RecordType) (string, bool) {
	f, ok := r.firstOfKind(t)
	if !ok {
		return "", false
	}
	return field.TextFromBytes(f.Value).String(), true
}

// UUID returns the record's identifier.
func (r *Record) UUID() (field.UUID, bool, error) {
	f, ok := r.firstOfKind(field.RecordUUID)
	if !ok {
		return field.UUID{}, false, nil
	}
	u, err := field.DecodeUUID(f.Value)
	return u, true, err
}

// SetUUID sets the record's identifier.
func (r *Record) SetUUID(u field.UUID) { r.upsert(field.RecordUUID, u.Encode()) }

// Title returns the record's title.
func (r *Record) Title() (string, bool) { return textField(r, field.RecordTitle) }

// SetTitle sets the record's title.
func (r *Record) SetTitle(v string) { r.upsert(field.RecordTitle, field.NewText(v).Bytes()) }

// Password returns the record's password.
func (r *Record) Password() (string, bool) { return textField(r, field.RecordPassword) }

// SetPassword sets the record's password.
func (r *Record) SetPassword(v string) { r.upsert(field.RecordPassword, field.NewText(v).Bytes()) }

// Group returns the record's group path (dot-separated).
func (r *Record) Group() (string, bool) { return textField(r, field.RecordGroup) }

// SetGroup sets the record's group path.
func (r *Record) SetGroup(v string) { r.upsert(field.RecordGroup, field.NewText(v).Bytes()) }

// Username returns the record's username.
func (r *Record) Username() (string, bool) { return textField(r, field.RecordUsername) }

// SetUsername sets the record's username.
func (r *Record) SetUsername(v string) { r.upsert(field.RecordUsername, field.NewText(v).Bytes()) }

// Notes returns the record's free-text notes.
func (r *Record) Notes() (string, bool) { return textField(r, field.RecordNotes) }

// SetNotes sets the record's free-text notes.
func (r *Record) SetNotes(v string) { r.upsert(field.RecordNotes, field.NewText(v).Bytes()) }

// URL returns the record's URL.
func (r *Record) URL() (string, bool) { return textField(r, field.RecordURL) }

// SetURL sets the record's URL.
func (r *Record) SetURL(v string) { r.upsert(field.RecordURL, field.NewText(v).Bytes()) }

// Email returns the record's email address.
func (r *Record) Email() (string, bool) { return textField(r, field.RecordEmail) }

// SetEmail sets the record's email address.
func (r *Record) SetEmail(v string) { r.upsert(field.RecordEmail, field.NewText(v).Bytes()) }

// Autotype returns the record's autotype command string.
func (r *Record) Autotype() (string, bool) { return textField(r, field.RecordAutotype) }

// SetAutotype sets the record's autotype command string.
func (r *Record) SetAutotype(v string) { r.upsert(field.RecordAutotype, field.NewText(v).Bytes()) }

// RunCommand returns the record's run-command string.
func (r *Record) RunCommand() (string, bool) { return textField(r, field.RecordRunCommand) }

// SetRunCommand sets the record's run-command string.
func (r *Record) SetRunCommand(v string) {
	r.upsert(field.RecordRunCommand, field.NewText(v).Bytes())
}

// PolicyName returns the name of the named policy this record uses.
func (r *Record) PolicyName() (string, bool) { return textField(r, field.RecordPasswordPolicyName) }

// SetPolicyName sets the name of the named policy this record uses.
func (r *Record) SetPolicyName(v string) {
	r.upsert(field.RecordPasswordPolicyName, field.NewText(v).Bytes())
}

func timeField(r *Record, t field.RecordType) (time.Time, bool, error) {
	f, ok := r.firstOfKind(t)
	if !ok {
		return time.Time{}, false, nil
	}
	ts, err := field.DecodeTimestamp(f.Value)
	return ts, true, err
}

// CreatedTime returns when the record was created.
func (r *Record) CreatedTime() (time.Time, bool, error) { return timeField(r, field.RecordCreationTime) }

// SetCreatedTime sets when the record was created.
func (r *Record) SetCreatedTime(t time.Time) { r.upsert(field.RecordCreationTime, field.EncodeTimestamp(t)) }

// PasswordModTime returns when the password was last changed.
func (r *Record) PasswordModTime() (time.Time, bool, error) {
	return timeField(r, field.RecordPasswordModTime)
}

// SetPasswordModTime sets when the password was last changed.
func (r *Record) SetPasswordModTime(t time.Time) {
	r.upsert(field.RecordPasswordModTime, field.EncodeTimestamp(t))
}

// LastAccessTime returns when the record was last accessed.
func (r *Record) LastAccessTime() (time.Time, bool, error) {
	return timeField(r, field.RecordLastAccessTime)
}

// SetLastAccessTime sets when the record was last accessed.
func (r *Record) SetLastAccessTime(t time.Time) {
	r.upsert(field.RecordLastAccessTime, field.EncodeTimestamp(t))
}

// ExpiryTime returns when the password expires.
func (r *Record) ExpiryTime() (time.Time, bool, error) {
	return timeField(r, field.RecordPasswordExpiryTime)
}

// SetExpiryTime sets when the password expires.
func (r *Record) SetExpiryTime(t time.Time) {
	r.upsert(field.RecordPasswordExpiryTime, field.EncodeTimestamp(t))
}

// LastModTime returns when the record was last modified.
func (r *Record) LastModTime() (time.Time, bool, error) { return timeField(r, field.RecordLastModTime) }

// SetLastModTime sets when the record was last modified.
func (r *Record) SetLastModTime(t time.Time) { r.upsert(field.RecordLastModTime, field.EncodeTimestamp(t)) }

// DCA returns the record's double-click action code.
func (r *Record) DCA() (uint16, bool, error) {
	f, ok := r.firstOfKind(field.RecordDCA)
	if !ok {
		return 0, false, nil
	}
	v, err := field.DecodeU16(f.Value)
	return v, true, err
}

// SetDCA sets the record's double-click action code.
func (r *Record) SetDCA(v uint16) { r.upsert(field.RecordDCA, field.EncodeU16(v)) }

// ShiftDCA returns the record's shift-double-click action code.
func (r *Record) ShiftDCA() (uint16, bool, error) {
	f, ok := r.firstOfKind(field.RecordShiftDCA)
	if !ok {
		return 0, false, nil
	}
	v, err := field.DecodeU16(f.Value)
	return v, true, err
}

// SetShiftDCA sets the record's shift-double-click action code.
func (r *Record) SetShiftDCA(v uint16) { r.upsert(field.RecordShiftDCA, field.EncodeU16(v)) }

// ProtectedEntry reports whether the record is marked protected
// (read-only in the UI, distinct from the safe's own read-only mode).
func (r *Record) ProtectedEntry() (bool, bool) {
	f, ok := r.firstOfKind(field.RecordProtectedEntry)
	if !ok || len(f.Value) == 0 {
		return false, ok
	}
	return f.Value[0] != 0, true
}

// SetProtectedEntry sets the record's protected-entry flag.
func (r *Record) SetProtectedEntry(v bool) {
	b := byte(0)
	if v {
		b = 1
	}
	r.upsert(field.RecordProtectedEntry, []byte{b})
}

// TwoFactorKey returns the record's raw two-factor-auth secret.
func (r *Record) TwoFactorKey() ([]byte, bool) {
	f, ok := r.firstOfKind(field.RecordTwoFactorKey)
	if !ok {
		return nil, false
	}
	out := make([]byte, len(f.Value))
	copy(out, f.Value)
	return out, true
}

// SetTwoFactorKey sets the record's raw two-factor-auth secret.
func (r *Record) SetTwoFactorKey(key []byte) { r.upsert(field.RecordTwoFactorKey, key) }

// PasswordPolicy returns the record's embedded (unnamed) password policy.
func (r *Record) PasswordPolicy() (field.Policy, bool, error) {
	f, ok := r.firstOfKind(field.RecordPasswordPolicy)
	if !ok {
		return field.Policy{}, false, nil
	}
	p, err := field.DecodeSinglePolicy(f.Value)
	return p, true, err
}

// SetPasswordPolicy sets the record's embedded password policy.
func (r *Record) SetPasswordPolicy(p field.Policy) {
	r.upsert(field.RecordPasswordPolicy, p.Encode())
}

// PasswordHistory returns the record's archived former passwords, if any.
func (r *Record) PasswordHistory() (*field.History, bool, error) {
	f, ok := r.firstOfKind(field.RecordPasswordHistory)
	if !ok {
		return nil, false, nil
	}
	h, err := field.DecodePasswordHistory(f.Value)
	return h, true, err
}

// SetPasswordHistory sets the record's password history.
func (r *Record) SetPasswordHistory(h *field.History) {
	r.upsert(field.RecordPasswordHistory, h.Encode())
}

// ClearPasswordHistory removes the record's password history field.
func (r *Record) ClearPasswordHistory() { r.remove(field.RecordPasswordHistory) }

// Unknown returns every field whose type this package does not expose a
// named accessor for.
func (r *Record) Unknown() []Field {
	var out []Field
	for _, f := range r.entries {
		if !isKnown(f.Type) {
			out = append(out, f)
		}
	}
	return out
}

func isKnown(t field.RecordType) bool {
	switch t {
	case field.RecordUUID, field.RecordGroup, field.RecordTitle, field.RecordUsername,
		field.RecordNotes, field.RecordPassword, field.RecordCreationTime, field.RecordPasswordModTime,
		field.RecordLastAccessTime, field.RecordPasswordExpiryTime, field.RecordLastModTime,
		field.RecordURL, field.RecordAutotype, field.RecordPasswordHistory, field.RecordPasswordPolicy,
		field.RecordPasswordExpiryInterval, field.RecordRunCommand, field.RecordDCA, field.RecordEmail,
		field.RecordProtectedEntry, field.RecordOwnSymbolsForPassword, field.RecordShiftDCA,
		field.RecordPasswordPolicyName, field.RecordEntryKeyboardShortcut, field.RecordTwoFactorKey:
		return true
	default:
		return false
	}
}
