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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextPreservesInvalidUTF8(t *testing.T) {
	raw := []byte{'a', 0xff, 'b'}
	txt := TextFromBytes(raw)
	assert.Equal(t, raw, txt.Bytes())
	assert.Contains(t, txt.String(), "a")
	assert.Contains(t, txt.String(), "b")
}

func TestUUIDRoundTrip(t *testing.T) {
	u := NewUUID()
	decoded, err := DecodeUUID(u.Encode())
	require.NoError(t, err)
	assert.Equal(t, u, decoded)
	assert.False(t, u.IsZero())
}

func TestTimestampLegacyHexForm(t *testing.T) {
	modern := EncodeTimestamp(time.Unix(0x11223344, 0))
	legacy := []byte("11223344")
	tsModern, err := DecodeTimestamp(modern)
	require.NoError(t, err)
	tsLegacy, err := DecodeTimestamp(legacy)
	require.NoError(t, err)
	assert.Equal(t, tsModern.Unix(), tsLegacy.Unix())
}

func TestNonDefaultPrefsRoundTripDatabaseScopeOnly(t *testing.T) {
	prefs := []Pref{
		{ID: 1, Scope: ScopeDatabase, Kind: PrefBool, BoolVal: true},
		{ID: 2, Scope: ScopeDatabase, Kind: PrefInt, IntVal: -7},
		{ID: 3, Scope: ScopeDatabase, Kind: PrefString, StrVal: "hello world"},
		{ID: 4, Scope: ScopeOther, Kind: PrefBool, BoolVal: false},
	}
	encoded := EncodeNonDefaultPrefs(prefs)
	decoded, err := DecodeNonDefaultPrefs(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, 3)
	assert.Equal(t, 1, decoded[0].ID)
	assert.True(t, decoded[0].BoolVal)
	assert.Equal(t, -7, decoded[1].IntVal)
	assert.Equal(t, "hello world", decoded[2].StrVal)
}

func TestNonDefaultPrefsAcceptsAnyScopeOnRead(t *testing.T) {
	decoded, err := DecodeNonDefaultPrefs([]byte("b 9 1"))
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, ScopeOther, decoded[0].Scope)
}

func TestPolicyRoundTrip(t *testing.T) {
	p := Policy{
		Name:        "Policy Hex",
		Flags:       FlagHex,
		TotalLength: 20,
		MinLower:    1,
		MinUpper:    1,
		MinDigit:    1,
		MinSymbol:   1,
		Symbols:     "+-=_@#$%^&;:,.<>/~\\[](){}?!|",
	}
	decoded, err := DecodeSinglePolicy(p.Encode())
	require.NoError(t, err)
	assert.Equal(t, p, decoded)
}

func TestNamedPoliciesRoundTrip(t *testing.T) {
	policies := []Policy{
		{Name: "a", Flags: FlagLowercase | FlagDigits, TotalLength: 12},
		{Name: "b", Flags: FlagUppercase, TotalLength: 16},
	}
	decoded, err := DecodeNamedPolicies(EncodeNamedPolicies(policies))
	require.NoError(t, err)
	assert.Equal(t, policies, decoded)
}

func TestPasswordHistoryCapsAndEvictsOldest(t *testing.T) {
	h := NewHistory(HistoryEnabled, 2)
	base := time.Unix(1000, 0).UTC()
	h.Push(HistoryEntry{When: base, Password: NewText("first")})
	h.Push(HistoryEntry{When: base.Add(time.Hour), Password: NewText("second")})
	h.Push(HistoryEntry{When: base.Add(2 * time.Hour), Password: NewText("third")})

	entries := h.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Password.String())
	assert.Equal(t, "third", entries[1].Password.String())

	decoded, err := DecodePasswordHistory(h.Encode())
	require.NoError(t, err)
	assert.Equal(t, h.Entries(), decoded.Entries())
	assert.Equal(t, h.Status, decoded.Status)
	assert.Equal(t, h.Max, decoded.Max)
}

func TestPasswordHistoryZeroMaxRetainsNothing(t *testing.T) {
	h := NewHistory(HistoryEnabled, 0)
	h.Push(HistoryEntry{When: time.Unix(1000, 0), Password: NewText("first")})
	h.Push(HistoryEntry{When: time.Unix(2000, 0), Password: NewText("second")})

	assert.Empty(t, h.Entries())

	decoded, err := DecodePasswordHistory(h.Encode())
	require.NoError(t, err)
	assert.Empty(t, decoded.Entries())
	assert.Equal(t, uint16(0), decoded.Max)
}

func TestRecentEntriesRoundTrip(t *testing.T) {
	uuids := []UUID{NewUUID(), NewUUID(), NewUUID()}
	decoded, err := DecodeRecentEntries(EncodeRecentEntries(uuids))
	require.NoError(t, err)
	assert.Equal(t, uuids, decoded)
}
