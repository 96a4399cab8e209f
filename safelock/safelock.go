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

// Package safelock implements the advisory sidecar lockfile that
// protects a safe from being edited by two processes at once. The core
// safe package neither calls nor requires this package; it is a
// collaborator callers opt into around an Open/Save sequence.
package safelock

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"syscall"

	"github.com/go-pwsafe/pwsafe/pwerr"
)

// lineRegexp matches the lockfile's single content line: user@host:pid.
var lineRegexp = regexp.MustCompile(`^(.*)@([^@:]*):(\d+)$`)

// aliveProbe reports whether pid is a live process. It's a package
// variable so tests can fake a dead or live process without spawning one.
var aliveProbe = func(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}

// Lock is one advisory lock on a safe file.
type Lock struct {
	path     string
	acquired bool
}

// PathFor returns the sidecar lock path for a safe at safePath: the same
// path with its extension replaced by ".plk".
func PathFor(safePath string) string {
	ext := filepath.Ext(safePath)
	return strings.TrimSuffix(safePath, ext) + ".plk"
}

// New returns a Lock for the safe at safePath. It is not yet acquired.
func New(safePath string) *Lock {
	return &Lock{path: PathFor(safePath)}
}

// ParseLine parses a lockfile's content line into (user, host, pid).
func ParseLine(line string) (user, host string, pid int, err error) {
	m := lineRegexp.FindStringSubmatch(line)
	if m == nil {
		return "", "", 0, pwerr.Newf(pwerr.MalformedContainer, "unparseable lock line %q", line)
	}
	pid, convErr := strconv.Atoi(m[3])
	if convErr != nil {
		return "", "", 0, pwerr.Wrap(pwerr.MalformedContainer, convErr)
	}
	return m[1], m[2], pid, nil
}

func localIdentity() (user, host string) {
	if u, err := osUserCurrent(); err == nil {
		user = u
	}
	if h, err := os.Hostname(); err == nil {
		host = h
	}
	return user, host
}

func osUserCurrent() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

// Acquire takes the lock, creating the sidecar file exclusively. If the
// file already exists, its content is parsed: when it names the local
// host and a pid that is no longer alive, the stale file is removed and
// acquisition is retried exactly once. Otherwise Acquire fails with
// AlreadyLocked. Calling Acquire on a Lock that already holds the lock
// fails with LockAlreadyAcquired.
func (l *Lock) Acquire() error {
	if l.acquired {
		return pwerr.New(pwerr.LockAlreadyAcquired, "this instance already holds the lock")
	}

	user, host := localIdentity()
	content := fmt.Sprintf("%s@%s:%d", user, host, os.Getpid())

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			_, writeErr := f.WriteString(content)
			closeErr := f.Close()
			if writeErr != nil {
				os.Remove(l.path)
				return writeErr
			}
			if closeErr != nil {
				os.Remove(l.path)
				return closeErr
			}
			l.acquired = true
			return nil
		}
		if !os.IsExist(err) {
			return err
		}

		raw, readErr := os.ReadFile(l.path)
		if readErr != nil {
			return readErr
		}
		heldUser, heldHost, pid, parseErr := ParseLine(string(raw))
		if parseErr != nil {
			return pwerr.Wrap(pwerr.AlreadyLocked, parseErr)
		}
		if heldHost == host && !aliveProbe(pid) {
			os.Remove(l.path)
			continue
		}
		return pwerr.Newf(pwerr.AlreadyLocked, "locked by %s@%s:%d", heldUser, heldHost, pid)
	}
	return pwerr.New(pwerr.AlreadyLocked, "lock still held after stale-lock retry")
}

// Release drops the lock by unlinking the sidecar file. Releasing a lock
// whose file is missing fails with NotLocked.
func (l *Lock) Release() error {
	if _, err := os.Stat(l.path); err != nil {
		if os.IsNotExist(err) {
			return pwerr.New(pwerr.NotLocked, "lock file does not exist")
		}
		return err
	}
	if err := os.Remove(l.path); err != nil {
		return err
	}
	l.acquired = false
	return nil
}
