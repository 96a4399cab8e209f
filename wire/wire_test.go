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

package wire

import (
	"testing"

	"github.com/go-pwsafe/pwsafe/pwerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTerminator = 0xFF

func TestBlockLenAlwaysAligned(t *testing.T) {
	for _, n := range []int{0, 1, 11, 16, 17, 31, 32, 4096} {
		bl := BlockLen(n)
		assert.Zero(t, bl%BlockSize, "BlockLen(%d) = %d not block-aligned", n, bl)
		assert.GreaterOrEqual(t, bl, headerLen+n)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.Write(0x01, []byte("hello")))
	require.NoError(t, w.Write(0x06, []byte{}))
	require.NoError(t, w.Write(0x02, []byte("a longer value that spans more than one block of sixteen bytes")))
	require.NoError(t, w.WriteTerminator(testTerminator))

	r := NewReader(w.Bytes())

	f, more, err := r.Next(testTerminator)
	require.NoError(t, err)
	assert.True(t, more)
	assert.Equal(t, byte(0x01), f.Type)
	assert.Equal(t, []byte("hello"), f.Value)

	f, more, err = r.Next(testTerminator)
	require.NoError(t, err)
	assert.True(t, more)
	assert.Equal(t, byte(0x06), f.Type)
	assert.Empty(t, f.Value)

	f, more, err = r.Next(testTerminator)
	require.NoError(t, err)
	assert.True(t, more)
	assert.Equal(t, byte(0x02), f.Type)

	f, more, err = r.Next(testTerminator)
	require.NoError(t, err)
	assert.False(t, more)
	assert.Equal(t, byte(testTerminator), f.Type)
}

func TestNextOnTerminatorDoesNotAdvance(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.WriteTerminator(testTerminator))
	r := NewReader(w.Bytes())

	_, more1, err1 := r.Next(testTerminator)
	require.NoError(t, err1)
	assert.False(t, more1)

	posBefore := r.Pos()
	_, more2, err2 := r.Next(testTerminator)
	require.NoError(t, err2)
	assert.False(t, more2)
	assert.Equal(t, posBefore, r.Pos())
}

func TestTruncatedHeaderIsMalformed(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03})
	_, _, err := r.Next(testTerminator)
	require.Error(t, err)
	assert.True(t, pwerr.Is(err, pwerr.MalformedContainer))
}

func TestTruncatedValueIsMalformed(t *testing.T) {
	buf := make([]byte, BlockSize)
	buf[0] = 0xFF // claims 255 value bytes, but buffer only has one block
	r := NewReader(buf)
	_, _, err := r.Next(testTerminator)
	require.Error(t, err)
	assert.True(t, pwerr.Is(err, pwerr.MalformedContainer))
}
