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

// Package field decodes and encodes the payload of every typed field that
// can appear in a header set or a record: the tagged-union of field kinds
// the format defines, each with its own byte layout. Framing (TLV
// block/pad bookkeeping) lives in wire; this package only ever sees
// already-extracted value bytes.
package field

// HeaderType identifies a field's role within the header stream.
type HeaderType byte

const (
	HeaderVersion               HeaderType = 0x00
	HeaderUUID                  HeaderType = 0x01
	HeaderNonDefaultPreferences HeaderType = 0x02
	HeaderTreeDisplayStatus     HeaderType = 0x03
	HeaderTimestampOfLastSave   HeaderType = 0x04
	HeaderWhoLastSaved          HeaderType = 0x05 // obsolete, still round-tripped
	HeaderWhatLastSaved         HeaderType = 0x06
	HeaderLastSavedByUser       HeaderType = 0x07
	HeaderLastSavedOnHost       HeaderType = 0x08
	HeaderDatabaseName          HeaderType = 0x09
	HeaderDatabaseDescription   HeaderType = 0x0a
	HeaderDatabaseFilters       HeaderType = 0x0b
	HeaderRecentEntries         HeaderType = 0x0f
	HeaderNamedPasswordPolicies HeaderType = 0x10
	HeaderEmptyGroups           HeaderType = 0x11
	HeaderYubico                HeaderType = 0x12
	HeaderEnd                   HeaderType = 0xff
)

// Repeatable reports whether more than one field of this type may appear
// in a single header set.
func (t HeaderType) Repeatable() bool {
	switch t {
	case HeaderRecentEntries, HeaderEmptyGroups:
		return true
	default:
		return false
	}
}

// RecordType identifies a field's role within one record group.
type RecordType byte

const (
	RecordUUID                        RecordType = 0x01
	RecordGroup                       RecordType = 0x02
	RecordTitle                       RecordType = 0x03
	RecordUsername                    RecordType = 0x04
	RecordNotes                       RecordType = 0x05
	RecordPassword                    RecordType = 0x06
	RecordCreationTime                RecordType = 0x07
	RecordPasswordModTime             RecordType = 0x08
	RecordLastAccessTime              RecordType = 0x09
	RecordPasswordExpiryTime          RecordType = 0x0a
	RecordLastModTime                 RecordType = 0x0c
	RecordURL                         RecordType = 0x0d
	RecordAutotype                    RecordType = 0x0e
	RecordPasswordHistory             RecordType = 0x0f
	RecordPasswordPolicy              RecordType = 0x10
	RecordPasswordExpiryInterval      RecordType = 0x11
	RecordRunCommand                  RecordType = 0x12
	RecordDCA                         RecordType = 0x13
	RecordEmail                       RecordType = 0x14
	RecordProtectedEntry              RecordType = 0x15
	RecordOwnSymbolsForPassword       RecordType = 0x16
	RecordShiftDCA                    RecordType = 0x17
	RecordPasswordPolicyName          RecordType = 0x18
	RecordEntryKeyboardShortcut       RecordType = 0x19
	RecordTwoFactorKey                RecordType = 0x1a
	RecordEnd                         RecordType = 0xff
)

// Required reports whether every record must carry this field.
func (t RecordType) Required() bool {
	switch t {
	case RecordUUID, RecordTitle, RecordPassword:
		return true
	default:
		return false
	}
}
