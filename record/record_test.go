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
	"testing"

	"github.com/go-pwsafe/pwsafe/field"
	"github.com/go-pwsafe/pwsafe/pwerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidRecord(t *testing.T, title, password string) *Record {
	t.Helper()
	r := New()
	r.SetUUID(field.NewUUID())
	r.SetTitle(title)
	r.SetPassword(password)
	return r
}

func TestRecordRoundTrip(t *testing.T) {
	r := newValidRecord(t, "t", "p")
	r.SetUsername("alice")
	r.SetURL("https://example.com")

	encoded, err := r.Encode()
	require.NoError(t, err)
	decoded, n, err := Parse(encoded)
	require.NoError(t, err)
	assert.Equal(t, len(encoded), n)

	title, _ := decoded.Title()
	assert.Equal(t, "t", title)
	username, _ := decoded.Username()
	assert.Equal(t, "alice", username)
}

func TestRecordValidateRequiresCoreFields(t *testing.T) {
	r := New()
	err := r.Validate()
	require.Error(t, err)
	assert.True(t, pwerr.Is(err, pwerr.FieldValidation))
}

func TestRecordSetAddRemoveGet(t *testing.T) {
	s := NewSet()
	r1 := newValidRecord(t, "one", "p1")
	r2 := newValidRecord(t, "two", "p2")
	require.NoError(t, s.Add(r1))
	require.NoError(t, s.Add(r2))
	assert.Equal(t, 2, s.Len())

	u1, _, _ := r1.UUID()
	got, ok := s.Get(u1)
	require.True(t, ok)
	title, _ := got.Title()
	assert.Equal(t, "one", title)

	require.NoError(t, s.Remove(u1))
	assert.Equal(t, 1, s.Len())
	_, ok = s.Get(u1)
	assert.False(t, ok)

	err := s.Remove(u1)
	require.Error(t, err)
	assert.True(t, pwerr.Is(err, pwerr.NotFound))
}

func TestRecordSetPreservesOrderAndAppendsNew(t *testing.T) {
	s := NewSet()
	r1 := newValidRecord(t, "first", "p")
	r2 := newValidRecord(t, "second", "p")
	require.NoError(t, s.Add(r1))
	require.NoError(t, s.Add(r2))

	encoded, err := s.Encode()
	require.NoError(t, err)
	decoded, err := ParseSet(encoded)
	require.NoError(t, err)

	all := decoded.All()
	require.Len(t, all, 2)
	title0, _ := all[0].Title()
	title1, _ := all[1].Title()
	assert.Equal(t, "first", title0)
	assert.Equal(t, "second", title1)

	r3 := newValidRecord(t, "third", "p")
	require.NoError(t, decoded.Add(r3))
	all = decoded.All()
	require.Len(t, all, 3)
	title2, _ := all[2].Title()
	assert.Equal(t, "third", title2)
}

func TestPasswordHistoryOnRecord(t *testing.T) {
	r := newValidRecord(t, "t", "p")
	h := field.NewHistory(field.HistoryEnabled, 3)
	h.Push(field.HistoryEntry{Password: field.NewText("old1")})
	r.SetPasswordHistory(h)

	encoded, err := r.Encode()
	require.NoError(t, err)
	decoded, _, err := Parse(encoded)
	require.NoError(t, err)

	got, ok, err := decoded.PasswordHistory()
	require.NoError(t, err)
	require.True(t, ok)
	entries := got.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "old1", entries[0].Password.String())
}
