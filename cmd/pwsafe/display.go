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

package main

import (
	"fmt"
	"strings"

	"github.com/go-pwsafe/pwsafe/record"
)

var defaultDisplayFields = []string{"uuid", "title", "username", "password", "url", "group"}

// renderFields prints the requested display fields for rec, one
// "field: value" pair per line.
func renderFields(rec *record.Record, fields []string) string {
	if len(fields) == 0 {
		fields = defaultDisplayFields
	}
	var sb strings.Builder
	for _, f := range fields {
		var value string
		switch strings.ToLower(f) {
		case "uuid":
			u, ok, _ := rec.UUID()
			if ok {
				value = u.String()
			}
		case "title":
			value, _ = rec.Title()
		case "username":
			value, _ = rec.Username()
		case "password":
			value, _ = rec.Password()
		case "url":
			value, _ = rec.URL()
		case "group":
			value, _ = rec.Group()
		case "email":
			value, _ = rec.Email()
		case "notes":
			value, _ = rec.Notes()
		default:
			value = fmt.Sprintf("<unknown field %q>", f)
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", f, value))
	}
	return sb.String()
}
