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

package header

import (
	"testing"

	"github.com/go-pwsafe/pwsafe/field"
	"github.com/go-pwsafe/pwsafe/pwerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyGroupsRoundTrip(t *testing.T) {
	s := New()
	s.AddEmptyGroup("asdf")
	s.AddEmptyGroup("fdas")
	assert.Equal(t, []string{"asdf", "fdas"}, s.EmptyGroups())

	s.AddEmptyGroup("bogus5324")
	assert.Contains(t, s.EmptyGroups(), "bogus5324")

	encoded, err := s.Encode()
	require.NoError(t, err)
	decoded, n, err := Parse(encoded)
	require.NoError(t, err)
	assert.Equal(t, len(encoded), n)
	assert.Equal(t, s.EmptyGroups(), decoded.EmptyGroups())
}

func TestLastSaveUserOldStyleFallback(t *testing.T) {
	s := New()
	s.SetLastSaveUser("user123", true)
	s.SetLastSaveHost("examplehost", false)

	user, ok := s.LastSaveUser()
	require.True(t, ok)
	assert.Equal(t, "user123", user)

	encoded, err := s.Encode()
	require.NoError(t, err)
	decoded, _, err := Parse(encoded)
	require.NoError(t, err)

	modernUser, ok := decoded.LastSaveUser()
	require.True(t, ok)
	assert.Equal(t, "user123", modernUser)

	decoded.removeAllOfKind(field.HeaderLastSavedByUser)
	oldUser, ok := decoded.LastSaveUser()
	require.True(t, ok)
	assert.Equal(t, "user123", oldUser)
}

func TestVersionSetPretty(t *testing.T) {
	s := New()
	_, ok, err := s.VersionID()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetPretty("PasswordSafe V3.28"))
	v, ok, err := s.VersionID()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint16(0x030a), v)

	err = s.SetPretty("Bogus version")
	require.Error(t, err)
	assert.True(t, pwerr.Is(err, pwerr.FieldValidation))
}

func TestUnknownHeaderFieldRoundTrips(t *testing.T) {
	s := New()
	raw := make([]byte, 37)
	for i := range raw {
		raw[i] = byte(i * 7)
	}
	s.entries = append(s.entries, Field{Type: field.HeaderType(0x7e), Value: raw})

	encoded, err := s.Encode()
	require.NoError(t, err)
	decoded, _, err := Parse(encoded)
	require.NoError(t, err)

	unknown := decoded.Unknown()
	require.Len(t, unknown, 1)
	assert.Equal(t, field.HeaderType(0x7e), unknown[0].Type)
	assert.Equal(t, raw, unknown[0].Value)
}

func TestNamedPoliciesRoundTrip(t *testing.T) {
	s := New()
	policies := []field.Policy{{
		Name:        "Policy Hex",
		Flags:       field.FlagHex,
		TotalLength: 20,
		MinLower:    1,
		MinUpper:    1,
		MinDigit:    1,
		MinSymbol:   1,
		Symbols:     "+-=_@#$%^&;:,.<>/~\\[](){}?!|",
	}}
	s.SetNamedPolicies(policies)

	encoded, err := s.Encode()
	require.NoError(t, err)
	decoded, _, err := Parse(encoded)
	require.NoError(t, err)

	got, err := decoded.NamedPolicies()
	require.NoError(t, err)
	assert.Equal(t, policies, got)
}
