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

// Package safe is the façade over envelope, header, and record: it opens
// and creates safes, exposes their header and record sets to callers, and
// serializes the whole thing back to disk on Save. Nothing outside this
// package touches the cryptographic envelope directly.
package safe

import (
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/go-pwsafe/pwsafe/envelope"
	"github.com/go-pwsafe/pwsafe/field"
	"github.com/go-pwsafe/pwsafe/header"
	"github.com/go-pwsafe/pwsafe/pwcrypto"
	"github.com/go-pwsafe/pwsafe/pwerr"
	"github.com/go-pwsafe/pwsafe/record"
)

// AppID is written to the last-save-app header on every save unless the
// caller suppresses auto-metadata.
const AppID = "go-pwsafe"

// Mode selects whether a Safe may be mutated and saved.
type Mode int

const (
	ReadWrite Mode = iota
	ReadOnly
)

// Safe is an opened or newly created Password Safe v3 database.
type Safe struct {
	path     string
	mode     Mode
	password []byte
	material envelope.Material
	headers  *header.Set
	records  *record.Set
}

// Open loads path with password. If the file does not exist and mode is
// ReadWrite, a brand new empty safe is constructed instead (it is not
// written to disk until Save is called).
func Open(path string, password []byte, mode Mode) (*Safe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if mode == ReadOnly {
				return nil, pwerr.Wrap(pwerr.NotFound, err)
			}
			return create(path, password)
		}
		if os.IsPermission(err) {
			return nil, pwerr.Wrap(pwerr.AccessDenied, err)
		}
		return nil, err
	}

	plaintext, material, fileHMAC, err := envelope.Load(data, password)
	if err != nil {
		return nil, err
	}
	defer pwcrypto.Zero(plaintext)

	hdrs, n, err := header.Parse(plaintext)
	if err != nil {
		return nil, err
	}
	recs, err := record.ParseSet(plaintext[n:])
	if err != nil {
		return nil, err
	}

	values := append(hdrs.Values(), recs.Values()...)
	if err := envelope.VerifyHMAC(material.L, values, fileHMAC); err != nil {
		return nil, err
	}

	return &Safe{
		path:     path,
		mode:     mode,
		password: append([]byte(nil), password...),
		material: material,
		headers:  hdrs,
		records:  recs,
	}, nil
}

// create builds a brand new, empty safe in memory.
func create(path string, password []byte) (*Safe, error) {
	material, err := envelope.Generate()
	if err != nil {
		return nil, err
	}
	s := &Safe{
		path:     path,
		mode:     ReadWrite,
		password: append([]byte(nil), password...),
		material: material,
		headers:  header.New(),
		records:  record.NewSet(),
	}
	s.touchMetadata()
	return s, nil
}

// Headers returns the safe's header set.
func (s *Safe) Headers() *header.Set { return s.headers }

// Records returns the safe's record set.
func (s *Safe) Records() *record.Set { return s.records }

// Mode reports whether this safe was opened read-only.
func (s *Safe) Mode() Mode { return s.mode }

// touchMetadata applies the auto-updated headers described in the
// façade's save contract: instance UUID (once), last-save-app,
// time-of-last-save, last-save-host, last-save-user.
func (s *Safe) touchMetadata() {
	if _, ok, _ := s.headers.UUID(); !ok {
		s.headers.SetUUID(field.NewUUID())
	}
	s.headers.SetLastSaveApp(AppID)
	s.headers.SetLastSaveTime(time.Now().Truncate(time.Second))
	if host, err := os.Hostname(); err == nil {
		s.headers.SetLastSaveHost(host, false)
	}
	if u, err := user.Current(); err == nil {
		s.headers.SetLastSaveUser(u.Username, false)
	}
}

// Save re-serializes the entire safe and atomically replaces the file at
// its path. Unless suppressAutoMetadata is set, the auto-updated headers
// are refreshed first. Save on a read-only safe fails with ReadOnly.
func (s *Safe) Save(suppressAutoMetadata bool) error {
	if s.mode == ReadOnly {
		return pwerr.New(pwerr.ReadOnly, "safe was opened read-only")
	}
	if !suppressAutoMetadata {
		s.touchMetadata()
	}

	headerBytes, err := s.headers.Encode()
	if err != nil {
		return err
	}
	recordBytes, err := s.records.Encode()
	if err != nil {
		return err
	}
	plaintext := append(headerBytes, recordBytes...)
	defer pwcrypto.Zero(plaintext)

	values := append(s.headers.Values(), s.records.Values()...)
	data, err := envelope.Save(s.password, s.material, plaintext, values)
	if err != nil {
		return err
	}

	return atomicWrite(s.path, data)
}

// atomicWrite writes data to a temporary file in the same directory as
// path and renames it into place, so a crash mid-write never leaves a
// half-written database behind.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".pwsafe-tmp-*")
	if err != nil {
		if os.IsPermission(err) {
			return pwerr.Wrap(pwerr.AccessDenied, err)
		}
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// Close releases the safe's secret material. The Safe must not be used
// after Close.
func (s *Safe) Close() {
	pwcrypto.Zero(s.password)
	s.material.Zero()
}
