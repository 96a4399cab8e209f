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
	"fmt"

	"golang.org/x/crypto/twofish"
)

const (
	// BlockSize is the Twofish block size in bytes (128 bits).
	BlockSize = twofish.BlockSize
	// KeySize is the only key size this format uses (256 bits).
	KeySize = 32
)

// NewCipher builds a Twofish block cipher from a 256-bit key.
func NewCipher(key []byte) (cipher twofishCipher, err error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("pwcrypto: key must be %d bytes, got %d", KeySize, len(key))
	}
	c, err := twofish.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// twofishCipher is the subset of cipher.Block this package depends on,
// named so callers don't need to import crypto/cipher just to hold one.
type twofishCipher interface {
	BlockSize() int
	Encrypt(dst, src []byte)
	Decrypt(dst, src []byte)
}

// ECBDecryptPairInto decrypts two independent 16-byte blocks under key
// using ECB (i.e. each block decrypted on its own, with no chaining) into
// the caller-supplied dst, which must be exactly 2*BlockSize long. This is
// how the format unwraps its 32-byte data and HMAC keys: K and L are
// uniformly random and used exactly once per file, which is precisely
// the condition under which ECB's determinism is harmless.
func ECBDecryptPairInto(dst, key, twoBlocks []byte) error {
	if len(dst) != 2*BlockSize {
		return fmt.Errorf("pwcrypto: ECBDecryptPairInto needs a %d-byte dst, got %d", 2*BlockSize, len(dst))
	}
	if len(twoBlocks) != 2*BlockSize {
		return fmt.Errorf("pwcrypto: ECBDecryptPairInto needs %d bytes, got %d", 2*BlockSize, len(twoBlocks))
	}
	c, err := NewCipher(key)
	if err != nil {
		return err
	}
	c.Decrypt(dst[:BlockSize], twoBlocks[:BlockSize])
	c.Decrypt(dst[BlockSize:], twoBlocks[BlockSize:])
	return nil
}

// ECBEncryptPairInto is the inverse of ECBDecryptPairInto, used when
// wrapping a freshly generated K or L for a new or re-keyed safe.
func ECBEncryptPairInto(dst, key, twoBlocks []byte) error {
	if len(dst) != 2*BlockSize {
		return fmt.Errorf("pwcrypto: ECBEncryptPairInto needs a %d-byte dst, got %d", 2*BlockSize, len(dst))
	}
	if len(twoBlocks) != 2*BlockSize {
		return fmt.Errorf("pwcrypto: ECBEncryptPairInto needs %d bytes, got %d", 2*BlockSize, len(twoBlocks))
	}
	c, err := NewCipher(key)
	if err != nil {
		return err
	}
	c.Encrypt(dst[:BlockSize], twoBlocks[:BlockSize])
	c.Encrypt(dst[BlockSize:], twoBlocks[BlockSize:])
	return nil
}

// CBCDecrypt decrypts ciphertext (a positive multiple of BlockSize) under
// key/iv using raw CBC: no padding is added or removed here, length
// alignment is the caller's responsibility (the TLV stream inside is
// self-describing and tolerates trailing pad bytes).
func CBCDecrypt(key, iv, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%BlockSize != 0 {
		return nil, fmt.Errorf("pwcrypto: ciphertext length %d is not a positive multiple of %d", len(ciphertext), BlockSize)
	}
	c, err := NewCipher(key)
	if err != nil {
		return nil, err
	}
	plain := make([]byte, len(ciphertext))
	prev := iv
	for off := 0; off < len(ciphertext); off += BlockSize {
		block := ciphertext[off : off+BlockSize]
		var decrypted [BlockSize]byte
		c.Decrypt(decrypted[:], block)
		for i := 0; i < BlockSize; i++ {
			plain[off+i] = decrypted[i] ^ prev[i]
		}
		prev = block
	}
	return plain, nil
}

// CBCEncrypt encrypts plaintext (a positive multiple of BlockSize) under
// key/iv using raw CBC, XORing the previous ciphertext block into the
// plaintext before encrypting, as the format requires.
func CBCEncrypt(key, iv, plaintext []byte) ([]byte, error) {
	if len(plaintext) == 0 || len(plaintext)%BlockSize != 0 {
		return nil, fmt.Errorf("pwcrypto: plaintext length %d is not a positive multiple of %d", len(plaintext), BlockSize)
	}
	c, err := NewCipher(key)
	if err != nil {
		return nil, err
	}
	cipherText := make([]byte, len(plaintext))
	prev := iv
	for off := 0; off < len(plaintext); off += BlockSize {
		var xored [BlockSize]byte
		for i := 0; i < BlockSize; i++ {
			xored[i] = plaintext[off+i] ^ prev[i]
		}
		c.Encrypt(cipherText[off:off+BlockSize], xored[:])
		prev = cipherText[off : off+BlockSize]
	}
	return cipherText, nil
}
