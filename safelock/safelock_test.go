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

package safelock

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-pwsafe/pwsafe/pwerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathForReplacesExtension(t *testing.T) {
	assert.Equal(t, "/tmp/foo.plk", PathFor("/tmp/foo.psafe3"))
}

func TestParseLineRegex(t *testing.T) {
	user, host, pid, err := ParseLine("alice@host.example:4321")
	require.NoError(t, err)
	assert.Equal(t, "alice", user)
	assert.Equal(t, "host.example", host)
	assert.Equal(t, 4321, pid)
}

func TestAcquireReleaseRoundTrip(t *testing.T) {
	dir := t.TempDir()
	safePath := filepath.Join(dir, "db.psafe3")

	l := New(safePath)
	require.NoError(t, l.Acquire())

	_, err := os.Stat(PathFor(safePath))
	require.NoError(t, err)

	require.NoError(t, l.Release())
	_, err = os.Stat(PathFor(safePath))
	assert.True(t, os.IsNotExist(err))
}

func TestAcquireTwiceOnSameInstanceFails(t *testing.T) {
	dir := t.TempDir()
	safePath := filepath.Join(dir, "db.psafe3")

	l := New(safePath)
	require.NoError(t, l.Acquire())
	defer l.Release()

	err := l.Acquire()
	require.Error(t, err)
	assert.True(t, pwerr.Is(err, pwerr.LockAlreadyAcquired))
}

func TestReleaseWithoutAcquireIsNotLocked(t *testing.T) {
	dir := t.TempDir()
	safePath := filepath.Join(dir, "db.psafe3")
	l := New(safePath)
	err := l.Release()
	require.Error(t, err)
	assert.True(t, pwerr.Is(err, pwerr.NotLocked))
}

func TestStaleLockIsReclaimed(t *testing.T) {
	dir := t.TempDir()
	safePath := filepath.Join(dir, "db.psafe3")
	host, _ := os.Hostname()
	require.NoError(t, os.WriteFile(PathFor(safePath), []byte("someone@"+host+":999999"), 0o644))

	orig := aliveProbe
	aliveProbe = func(pid int) bool { return false }
	defer func() { aliveProbe = orig }()

	l := New(safePath)
	require.NoError(t, l.Acquire())
	defer l.Release()
}

func TestLiveLockOnLocalHostFailsAlreadyLocked(t *testing.T) {
	dir := t.TempDir()
	safePath := filepath.Join(dir, "db.psafe3")
	host, _ := os.Hostname()
	require.NoError(t, os.WriteFile(PathFor(safePath), []byte("someone@"+host+":1"), 0o644))

	orig := aliveProbe
	aliveProbe = func(pid int) bool { return true }
	defer func() { aliveProbe = orig }()

	l := New(safePath)
	err := l.Acquire()
	require.Error(t, err)
	assert.True(t, pwerr.Is(err, pwerr.AlreadyLocked))
}
