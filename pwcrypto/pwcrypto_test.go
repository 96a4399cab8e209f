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

package pwcrypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStretchIsDeterministic(t *testing.T) {
	salt := bytes.Repeat([]byte{0x42}, 32)
	a := Stretch([]byte("hunter2"), salt, MinIterations)
	b := Stretch([]byte("hunter2"), salt, MinIterations)
	assert.Equal(t, a, b)

	c := Stretch([]byte("hunter3"), salt, MinIterations)
	assert.NotEqual(t, a, c)
}

func TestAuthenticatorDiffersFromStretched(t *testing.T) {
	salt := bytes.Repeat([]byte{0x01}, 32)
	stretched := Stretch([]byte("pw"), salt, MinIterations)
	auth := Authenticator(stretched)
	assert.NotEqual(t, stretched, auth)
}

func TestConstantTimeEqual(t *testing.T) {
	assert.True(t, ConstantTimeEqual([]byte("abc"), []byte("abc")))
	assert.False(t, ConstantTimeEqual([]byte("abc"), []byte("abd")))
	assert.False(t, ConstantTimeEqual([]byte("abc"), []byte("ab")))
}

func TestHMACDetectsTampering(t *testing.T) {
	key := bytes.Repeat([]byte{0x07}, 32)
	sum := HMAC(key, []byte("field values concatenated"))
	tampered := HMAC(key, []byte("field values concatenatec"))
	assert.NotEqual(t, sum, tampered)
}

func TestECBPairRoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{0x11}, KeySize)
	plain := bytes.Repeat([]byte{0x22}, 2*BlockSize)

	wrapped := make([]byte, 2*BlockSize)
	require.NoError(t, ECBEncryptPairInto(wrapped, key, plain))

	unwrapped := make([]byte, 2*BlockSize)
	require.NoError(t, ECBDecryptPairInto(unwrapped, key, wrapped))

	assert.Equal(t, plain, unwrapped)
}

func TestCBCRoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{0x33}, KeySize)
	iv := bytes.Repeat([]byte{0x44}, BlockSize)
	plain := bytes.Repeat([]byte{0x55}, BlockSize*3)

	ciphertext, err := CBCEncrypt(key, iv, plain)
	require.NoError(t, err)
	assert.NotEqual(t, plain, ciphertext)

	decrypted, err := CBCDecrypt(key, iv, ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plain, decrypted)
}

func TestCBCRejectsMisalignedInput(t *testing.T) {
	key := bytes.Repeat([]byte{0x33}, KeySize)
	iv := bytes.Repeat([]byte{0x44}, BlockSize)

	_, err := CBCEncrypt(key, iv, make([]byte, BlockSize+1))
	assert.Error(t, err)

	_, err = CBCDecrypt(key, iv, make([]byte, BlockSize+1))
	assert.Error(t, err)
}

func TestScratchPooledAndOversized(t *testing.T) {
	pooled := GetScratch(32)
	require.Len(t, pooled.Bytes(), 32)
	copy(pooled.Bytes(), bytes.Repeat([]byte{0x9}, 32))
	pooled.Release()

	reused := GetScratch(32)
	defer reused.Release()
	assert.Len(t, reused.Bytes(), 32)

	oversized := GetScratch(8192)
	defer oversized.Release()
	assert.Len(t, oversized.Bytes(), 8192)
}

func TestZeroWipesBuffer(t *testing.T) {
	b := bytes.Repeat([]byte{0xAB}, 16)
	Zero(b)
	assert.Equal(t, make([]byte, 16), b)

	var arr [32]byte
	for i := range arr {
		arr[i] = 0xCD
	}
	Zero32(&arr)
	assert.Equal(t, [32]byte{}, arr)
}
