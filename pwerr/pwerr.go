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

// Package pwerr defines the distinct, reported error kinds raised by the
// PWS3 file-format engine. Each Error carries a Kind so callers can branch
// on errors.Is/errors.As instead of string-matching messages.
package pwerr

import "fmt"

// Kind identifies one of the error categories the engine reports.
// Kinds are never conflated: a wrong password is never reported as a
// malformed container, and a structural problem is never reported as a
// field-validation problem.
type Kind uint8

const (
	_ Kind = iota

	// WrongPassword means H(P') did not match the stored authenticator.
	WrongPassword

	// IntegrityFailure means the HMAC, EOF tag, or magic TAG did not verify.
	IntegrityFailure

	// MalformedContainer means the byte stream violates the container's
	// structural rules (truncated TLV, bad block alignment, missing
	// terminator, a length that overruns the remaining bytes).
	MalformedContainer

	// ReadOnly means a mutating operation was attempted on a safe opened
	// read-only.
	ReadOnly

	// AlreadyLocked means the advisory lockfile protocol found a live lock
	// held by another process.
	AlreadyLocked

	// LockAlreadyAcquired means the caller already holds this lock.
	LockAlreadyAcquired

	// NotLocked means a release was attempted on a lock that isn't held.
	NotLocked

	// AccessDenied means a filesystem permission check failed.
	AccessDenied

	// NotFound means a UUID lookup found no matching record.
	NotFound

	// FieldValidation means a caller-supplied value failed a field's own
	// validation rule (e.g. an unrecognized pretty version string).
	FieldValidation
)

func (k Kind) String() string {
	switch k {
	case WrongPassword:
		return "wrong password"
	case IntegrityFailure:
		return "integrity failure"
	case MalformedContainer:
		return "malformed container"
	case ReadOnly:
		return "read-only"
	case AlreadyLocked:
		return "already locked"
	case LockAlreadyAcquired:
		return "lock already acquired"
	case NotLocked:
		return "not locked"
	case AccessDenied:
		return "access denied"
	case NotFound:
		return "not found"
	case FieldValidation:
		return "field validation"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by this module. It wraps an
// optional underlying cause while keeping the reported Kind stable, the
// same shape as a typed protocol exception: callers branch on Kind, not on
// message text.
type Error struct {
	Kind Kind
	Msg  string
	err  error
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches kind to an underlying error, preserving it for Unwrap.
func Wrap(kind Kind, err error) *Error {
	return &Error{Kind: kind, Msg: err.Error(), err: err}
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.err }

// Is lets errors.Is(err, pwerr.New(SomeKind, "")) match on Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	// A zero-message target (such as New(kind, "")) matches any message
	// of the same Kind.
	if t.Msg == "" {
		return true
	}
	return t.Msg == e.Msg
}

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if ee, ok := err.(*Error); ok {
			e = ee
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	if e == nil {
		return false
	}
	return e.Kind == kind
}
