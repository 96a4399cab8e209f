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

package envelope

import (
	"testing"

	"github.com/go-pwsafe/pwsafe/pwerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSample(t *testing.T, password string) ([]byte, Material, [][]byte) {
	t.Helper()
	m, err := Generate()
	require.NoError(t, err)
	plaintext := make([]byte, 32)
	for i := range plaintext {
		plaintext[i] = byte(i)
	}
	values := [][]byte{plaintext[:10], plaintext[10:32]}
	data, err := Save([]byte(password), m, plaintext, values)
	require.NoError(t, err)
	return data, m, values
}

func TestSaveLoadRoundTrip(t *testing.T) {
	data, m, values := buildSample(t, "correct horse battery staple")

	plaintext, loadedM, fileHMAC, err := Load(data, []byte("correct horse battery staple"))
	require.NoError(t, err)
	assert.Equal(t, m.Salt, loadedM.Salt)
	assert.Equal(t, m.K, loadedM.K)
	assert.Equal(t, m.L, loadedM.L)
	assert.Len(t, plaintext, 32)

	require.NoError(t, VerifyHMAC(loadedM.L, values, fileHMAC))
}

func TestWrongPassword(t *testing.T) {
	data, _, _ := buildSample(t, "right password")
	_, _, _, err := Load(data, []byte("wrong password"))
	require.Error(t, err)
	assert.True(t, pwerr.Is(err, pwerr.WrongPassword))
}

func TestBitFlipInCiphertextFailsHMAC(t *testing.T) {
	data, _, _ := buildSample(t, "pw")
	flipped := make([]byte, len(data))
	copy(flipped, data)
	flipped[prologueLen] ^= 0x01

	plaintext, m, fileHMAC, err := Load(flipped, []byte("pw"))
	require.NoError(t, err) // password check still passes; only the body differs
	// The HMAC domain is rebuilt from the decrypted (now corrupted) body,
	// split the same way buildSample split the original plaintext.
	values := [][]byte{plaintext[:10], plaintext[10:32]}
	err = VerifyHMAC(m.L, values, fileHMAC)
	require.Error(t, err)
	assert.True(t, pwerr.Is(err, pwerr.IntegrityFailure))
}

func TestBadMagicIsIntegrityFailure(t *testing.T) {
	data, _, _ := buildSample(t, "pw")
	corrupt := make([]byte, len(data))
	copy(corrupt, data)
	corrupt[0] = 'X'
	_, _, _, err := Load(corrupt, []byte("pw"))
	require.Error(t, err)
	assert.True(t, pwerr.Is(err, pwerr.IntegrityFailure))
}

func TestBadEOFTagIsIntegrityFailure(t *testing.T) {
	data, _, _ := buildSample(t, "pw")
	corrupt := make([]byte, len(data))
	copy(corrupt, data)
	corrupt[len(corrupt)-hmacLen-1] ^= 0xff
	_, _, _, err := Load(corrupt, []byte("pw"))
	require.Error(t, err)
	assert.True(t, pwerr.Is(err, pwerr.IntegrityFailure))
}

func TestCiphertextLengthAlwaysBlockAligned(t *testing.T) {
	data, _, _ := buildSample(t, "pw")
	ciphertextLen := len(data) - prologueLen - trailerLen
	assert.Greater(t, ciphertextLen, 0)
	assert.Zero(t, ciphertextLen%16)
}
