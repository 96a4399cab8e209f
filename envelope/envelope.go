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

// Package envelope implements the container's fixed-layout prologue and
// epilogue, the key-stretch/unwrap/wrap chain, bulk body encryption, and
// the HMAC authentication domain. It has no notion of headers or records:
// it hands the caller a decrypted plaintext blob and takes a plaintext
// blob to re-encrypt, leaving the meaning of those bytes to the header
// and record packages.
package envelope

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"

	"github.com/go-pwsafe/pwsafe/pwcrypto"
	"github.com/go-pwsafe/pwsafe/pwerr"
)

// Tag is the 4-byte ASCII magic at the start of every container.
var Tag = []byte("PWS3")

// EOFTag is the 16-byte ASCII marker between the ciphertext and the HMAC.
var EOFTag = []byte("PWS3-EOFPWS3-EOF")

const (
	tagLen      = 4
	eofTagLen   = 16
	saltLen     = 32
	authLen     = 32
	wrapLen     = 32 // B1||B2 or B3||B4
	ivLen       = 16
	hmacLen     = 32
	prologueLen = tagLen + saltLen + 4 + authLen + wrapLen + wrapLen + ivLen
	trailerLen  = eofTagLen + hmacLen
)

// Material is the per-safe secret and keying state that persists across
// an open/mutate/save cycle: the salt and iteration count that produced
// P', and the unwrapped data and HMAC keys.
type Material struct {
	Salt [32]byte
	Iter uint32
	K    [32]byte
	L    [32]byte
	IV   [16]byte
}

// Generate returns fresh, randomly generated material for a brand new
// safe, with the default iteration count.
func Generate() (Material, error) {
	var m Material
	m.Iter = pwcrypto.DefaultIterations
	for _, b := range [][]byte{m.Salt[:], m.K[:], m.L[:], m.IV[:]} {
		if _, err := rand.Read(b); err != nil {
			return Material{}, err
		}
	}
	return m, nil
}

// Zero wipes every secret field of m.
func (m *Material) Zero() {
	pwcrypto.Zero32(&m.Salt)
	pwcrypto.Zero32(&m.K)
	pwcrypto.Zero32(&m.L)
	pwcrypto.Zero(m.IV[:])
}

// Load parses a full container image, verifies the password, and returns
// the decrypted plaintext body along with the unwrapped keying material
// and the trailer HMAC (which the caller verifies once it has decoded
// the header and record streams and can assemble the HMAC domain).
func Load(data, password []byte) (plaintext []byte, m Material, fileHMAC [32]byte, err error) {
	if len(data) < prologueLen+trailerLen+16 {
		return nil, Material{}, fileHMAC, pwerr.Newf(pwerr.MalformedContainer, "container too short: %d bytes", len(data))
	}
	off := 0
	tag := data[off : off+len(Tag)]
	off += len(Tag)
	if !bytes.Equal(tag, Tag) {
		return nil, Material{}, fileHMAC, pwerr.New(pwerr.IntegrityFailure, "bad container magic")
	}

	copy(m.Salt[:], data[off:off+saltLen])
	off += saltLen

	m.Iter = binary.LittleEndian.Uint32(data[off : off+4])
	off += 4
	if m.Iter < pwcrypto.MinIterations {
		return nil, Material{}, fileHMAC, pwerr.Newf(pwerr.MalformedContainer, "iteration count %d below minimum %d", m.Iter, pwcrypto.MinIterations)
	}

	storedAuth := make([]byte, authLen)
	copy(storedAuth, data[off:off+authLen])
	off += authLen

	wrappedK := data[off : off+wrapLen]
	off += wrapLen
	wrappedL := data[off : off+wrapLen]
	off += wrapLen

	copy(m.IV[:], data[off:off+ivLen])
	off += ivLen

	ciphertext := data[off : len(data)-trailerLen]
	if len(ciphertext) == 0 || len(ciphertext)%pwcrypto.BlockSize != 0 {
		return nil, Material{}, fileHMAC, pwerr.Newf(pwerr.MalformedContainer, "ciphertext length %d is not a positive multiple of %d", len(ciphertext), pwcrypto.BlockSize)
	}

	eofTag := data[len(data)-trailerLen : len(data)-hmacLen]
	if !bytes.Equal(eofTag, EOFTag) {
		return nil, Material{}, fileHMAC, pwerr.New(pwerr.IntegrityFailure, "bad EOF marker")
	}
	copy(fileHMAC[:], data[len(data)-hmacLen:])

	stretched := pwcrypto.Stretch(password, m.Salt[:], m.Iter)
	defer pwcrypto.Zero32(&stretched)

	auth := pwcrypto.Authenticator(stretched)
	if !pwcrypto.ConstantTimeEqual(auth[:], storedAuth) {
		return nil, Material{}, fileHMAC, pwerr.New(pwerr.WrongPassword, "password authenticator mismatch")
	}

	kScratch := pwcrypto.GetScratch(2 * pwcrypto.BlockSize)
	defer kScratch.Release()
	if err := pwcrypto.ECBDecryptPairInto(kScratch.Bytes(), stretched[:], wrappedK); err != nil {
		return nil, Material{}, fileHMAC, pwerr.Wrap(pwerr.MalformedContainer, err)
	}
	copy(m.K[:], kScratch.Bytes())

	lScratch := pwcrypto.GetScratch(2 * pwcrypto.BlockSize)
	defer lScratch.Release()
	if err := pwcrypto.ECBDecryptPairInto(lScratch.Bytes(), stretched[:], wrappedL); err != nil {
		return nil, Material{}, fileHMAC, pwerr.Wrap(pwerr.MalformedContainer, err)
	}
	copy(m.L[:], lScratch.Bytes())

	plaintext, err = pwcrypto.CBCDecrypt(m.K[:], m.IV[:], ciphertext)
	if err != nil {
		return nil, Material{}, fileHMAC, pwerr.Wrap(pwerr.MalformedContainer, err)
	}
	return plaintext, m, fileHMAC, nil
}

// ComputeHMAC concatenates values (the field-value-only HMAC domain
// defined by the format) and authenticates it under L.
func ComputeHMAC(L [32]byte, values [][]byte) [32]byte {
	var buf bytes.Buffer
	for _, v := range values {
		buf.Write(v)
	}
	return pwcrypto.HMAC(L[:], buf.Bytes())
}

// VerifyHMAC reports an IntegrityFailure if the HMAC computed over values
// under L does not match want, using a constant-time comparison.
func VerifyHMAC(L [32]byte, values [][]byte, want [32]byte) error {
	got := ComputeHMAC(L, values)
	if !pwcrypto.ConstantTimeEqual(got[:], want[:]) {
		return pwerr.New(pwerr.IntegrityFailure, "HMAC mismatch")
	}
	return nil
}

// Save re-derives every envelope field from password and m, encrypts
// plaintext under m.K/m.IV, authenticates values under m.L, and returns
// the full on-disk container image.
func Save(password []byte, m Material, plaintext []byte, values [][]byte) ([]byte, error) {
	if len(plaintext) == 0 || len(plaintext)%pwcrypto.BlockSize != 0 {
		return nil, pwerr.Newf(pwerr.MalformedContainer, "plaintext length %d is not a positive multiple of %d", len(plaintext), pwcrypto.BlockSize)
	}
	if m.Iter < pwcrypto.MinIterations {
		return nil, pwerr.Newf(pwerr.MalformedContainer, "iteration count %d below minimum %d", m.Iter, pwcrypto.MinIterations)
	}

	stretched := pwcrypto.Stretch(password, m.Salt[:], m.Iter)
	defer pwcrypto.Zero32(&stretched)

	auth := pwcrypto.Authenticator(stretched)

	wrappedKScratch := pwcrypto.GetScratch(2 * pwcrypto.BlockSize)
	defer wrappedKScratch.Release()
	if err := pwcrypto.ECBEncryptPairInto(wrappedKScratch.Bytes(), stretched[:], m.K[:]); err != nil {
		return nil, err
	}
	wrappedK := wrappedKScratch.Bytes()

	wrappedLScratch := pwcrypto.GetScratch(2 * pwcrypto.BlockSize)
	defer wrappedLScratch.Release()
	if err := pwcrypto.ECBEncryptPairInto(wrappedLScratch.Bytes(), stretched[:], m.L[:]); err != nil {
		return nil, err
	}
	wrappedL := wrappedLScratch.Bytes()

	ciphertext, err := pwcrypto.CBCEncrypt(m.K[:], m.IV[:], plaintext)
	if err != nil {
		return nil, err
	}
	mac := ComputeHMAC(m.L, values)

	out := make([]byte, 0, prologueLen+len(ciphertext)+trailerLen)
	out = append(out, Tag...)
	out = append(out, m.Salt[:]...)
	var iterBuf [4]byte
	binary.LittleEndian.PutUint32(iterBuf[:], m.Iter)
	out = append(out, iterBuf[:]...)
	out = append(out, auth[:]...)
	out = append(out, wrappedK...)
	out = append(out, wrappedL...)
	out = append(out, m.IV[:]...)
	out = append(out, ciphertext...)
	out = append(out, EOFTag...)
	out = append(out, mac[:]...)
	return out, nil
}
