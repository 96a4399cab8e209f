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
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pwsafe/pwsafe/pwerr"
)

// PrefKind is the value shape of one non-default preference.
type PrefKind byte

const (
	PrefBool PrefKind = iota
	PrefInt
	PrefString
)

// PrefScope distinguishes database-scope preferences (the only ones this
// codec ever writes) from other scopes found in the wild, which are
// accepted on read but dropped on re-encode per the format's own policy.
type PrefScope byte

const (
	ScopeDatabase PrefScope = iota
	ScopeOther
)

// Pref is one decoded `<letter> <id> <value>` token from the non-default
// preferences payload.
type Pref struct {
	ID      int
	Scope   PrefScope
	Kind    PrefKind
	BoolVal bool
	IntVal  int
	StrVal  string
}

func scopeFor(letter byte) PrefScope {
	if letter >= 'A' && letter <= 'Z' {
		return ScopeDatabase
	}
	return ScopeOther
}

// DecodeNonDefaultPrefs parses the token stream described in the format:
// `B <id> <0|1>`, `I <id> <value>`, or `S <id> <delim><value><delim>`,
// whitespace-separated, repeated. Scope (upper vs. lower case letter) is
// preserved on the decoded Pref but not otherwise interpreted here.
func DecodeNonDefaultPrefs(raw []byte) ([]Pref, error) {
	s := string(raw)
	i := 0
	n := len(s)
	skipSpace := func() {
		for i < n && s[i] == ' ' {
			i++
		}
	}
	malformed := func(why string) error {
		return pwerr.Newf(pwerr.MalformedContainer, "non-default-prefs: %s at offset %d", why, i)
	}

	var prefs []Pref
	for {
		skipSpace()
		if i >= n {
			break
		}
		letter := s[i]
		i++
		if i >= n || s[i] != ' ' {
			return nil, malformed("expected space after type letter")
		}
		i++

		idStart := i
		for i < n && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == idStart {
			return nil, malformed("expected numeric id")
		}
		id, err := strconv.Atoi(s[idStart:i])
		if err != nil {
			return nil, malformed("invalid id")
		}
		if i >= n || s[i] != ' ' {
			return nil, malformed("expected space after id")
		}
		i++

		pref := Pref{ID: id, Scope: scopeFor(letter)}
		switch letter {
		case 'B', 'b':
			if i >= n || (s[i] != '0' && s[i] != '1') {
				return nil, malformed("expected 0 or 1 for bool pref")
			}
			pref.Kind = PrefBool
			pref.BoolVal = s[i] == '1'
			i++
		case 'I', 'i':
			start := i
			if i < n && s[i] == '-' {
				i++
			}
			for i < n && s[i] >= '0' && s[i] <= '9' {
				i++
			}
			if i == start {
				return nil, malformed("expected integer value")
			}
			v, err := strconv.Atoi(s[start:i])
			if err != nil {
				return nil, malformed("invalid integer value")
			}
			pref.Kind = PrefInt
			pref.IntVal = v
		case 'S', 's':
			if i >= n {
				return nil, malformed("expected delimiter for string pref")
			}
			delim := s[i]
			i++
			start := i
			for i < n && s[i] != delim {
				i++
			}
			if i >= n {
				return nil, malformed("unterminated delimited string")
			}
			pref.Kind = PrefString
			pref.StrVal = s[start:i]
			i++ // consume closing delimiter
		default:
			return nil, malformed(fmt.Sprintf("unknown preference type letter %q", letter))
		}
		prefs = append(prefs, pref)
	}
	return prefs, nil
}

// stringDelimiter picks a byte not present in v to bracket it with. The
// candidates are tried in order; real-world values essentially never
// exhaust all of them.
func stringDelimiter(v string) byte {
	candidates := []byte{'"', '\'', '|', '~', '`'}
	for _, c := range candidates {
		if !strings.ContainsRune(v, rune(c)) {
			return c
		}
	}
	return '"'
}

// EncodeNonDefaultPrefs serializes prefs back to the token stream. Per the
// format's own policy, only database-scope preferences are written;
// preferences read with another scope are silently dropped on re-encode.
func EncodeNonDefaultPrefs(prefs []Pref) []byte {
	var sb strings.Builder
	first := true
	for _, p := range prefs {
		if p.Scope != ScopeDatabase {
			continue
		}
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		switch p.Kind {
		case PrefBool:
			sb.WriteByte('B')
			sb.WriteByte(' ')
			sb.WriteString(strconv.Itoa(p.ID))
			sb.WriteByte(' ')
			if p.BoolVal {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		case PrefInt:
			sb.WriteByte('I')
			sb.WriteByte(' ')
			sb.WriteString(strconv.Itoa(p.ID))
			sb.WriteByte(' ')
			sb.WriteString(strconv.Itoa(p.IntVal))
		case PrefString:
			delim := stringDelimiter(p.StrVal)
			sb.WriteByte('S')
			sb.WriteByte(' ')
			sb.WriteString(strconv.Itoa(p.ID))
			sb.WriteByte(' ')
			sb.WriteByte(delim)
			sb.WriteString(p.StrVal)
			sb.WriteByte(delim)
		}
	}
	return []byte(sb.String())
}
