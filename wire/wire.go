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

// Package wire implements the block-aligned, type-length-value field
// framing shared by both the header stream and the record stream of a
// decrypted safe body. It knows nothing about what any given type byte
// means; that belongs to the field package one layer up. This mirrors how
// a binary protocol's core reader/writer separates raw framing
// (Append*/Read* primitives, block/length bookkeeping) from the
// higher-level struct that interprets field IDs.
package wire

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/go-pwsafe/pwsafe/pwerr"
)

// BlockSize is the cipher block size every field is padded out to.
const BlockSize = 16

// headerLen is the 5-byte length+type prefix in front of every field's
// value bytes.
const headerLen = 5

// Field is one decoded type-length-value unit from the stream. Value holds
// exactly Length bytes; the random pad bytes that follow it on disk are
// never exposed past this package.
type Field struct {
	Type  byte
	Value []byte
}

// BlockLen returns the on-disk size of a field carrying n value bytes:
// the 5-byte header plus n, rounded up to the next block boundary. Every
// field occupies at least one block, even a zero-length terminator.
func BlockLen(n int) int {
	total := headerLen + n
	rem := total % BlockSize
	if rem != 0 {
		total += BlockSize - rem
	}
	return total
}

// Reader walks a decrypted, block-aligned byte stream one field at a time.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf, which must already be the plaintext body (header
// stream or record stream) produced by the envelope's CBC decryption.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Pos returns the number of bytes consumed so far.
func (r *Reader) Pos() int { return r.pos }

// Remaining reports how many bytes are left to read.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

// Next decodes the field at the current position and advances past it,
// including its padding. It returns (field, false, nil) for a terminator
// field (zero-length, type terminatorType) without advancing past it, so
// callers can distinguish "end of this stream" from "more fields follow"
// while still being able to re-read the terminator's type if needed.
func (r *Reader) Next(terminatorType byte) (Field, bool, error) {
	if r.Remaining() < headerLen {
		return Field{}, false, pwerr.Newf(pwerr.MalformedContainer, "truncated field header: %d bytes remain", r.Remaining())
	}
	start := r.pos
	length := binary.LittleEndian.Uint32(r.buf[start : start+4])
	typ := r.buf[start+4]

	blockLen := BlockLen(int(length))
	if r.Remaining() < blockLen {
		return Field{}, false, pwerr.Newf(pwerr.MalformedContainer, "field claims %d value bytes but only %d bytes remain", length, r.Remaining()-headerLen)
	}

	if length == 0 && typ == terminatorType {
		// Do not advance: Next is idempotent on a terminator so callers
		// that re-check "have I hit the end" don't have to remember they
		// already consumed it.
		return Field{Type: typ}, false, nil
	}

	valStart := start + headerLen
	value := make([]byte, length)
	copy(value, r.buf[valStart:valStart+int(length)])
	r.pos = start + blockLen
	return Field{Type: typ, Value: value}, true, nil
}

// Writer accumulates block-aligned fields into a byte stream, matching the
// random-padding requirement of the container format (padding bytes come
// from crypto/rand rather than being zero-filled, so padding does not
// stand out from value bytes as runs of zeros).
type Writer struct {
	out []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Write appends one field (type and value) to the stream, padding with
// random bytes to the next block boundary.
func (w *Writer) Write(typ byte, value []byte) error {
	blockLen := BlockLen(len(value))
	field := make([]byte, blockLen)
	binary.LittleEndian.PutUint32(field[0:4], uint32(len(value)))
	field[4] = typ
	copy(field[headerLen:], value)
	if pad := field[headerLen+len(value):]; len(pad) > 0 {
		if _, err := rand.Read(pad); err != nil {
			return err
		}
	}
	w.out = append(w.out, field...)
	return nil
}

// WriteTerminator appends the zero-length terminator field for the stream.
func (w *Writer) WriteTerminator(terminatorType byte) error {
	return w.Write(terminatorType, nil)
}

// Bytes returns the accumulated stream.
func (w *Writer) Bytes() []byte { return w.out }

// SkipTerminator advances the reader past a terminator field previously
// observed (but not consumed) by Next. Terminators are always exactly one
// block long.
func (r *Reader) SkipTerminator() {
	r.pos += BlockLen(0)
}
