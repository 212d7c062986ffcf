package crypto

import (
	"bytes"
	"crypto/aes"
	"encoding/base64"
	"fmt"
)

// blockCodec implements [BlockCodec] with AES-128 in ECB mode and PKCS#7
// padding.
//
// ECB carries no IV and no authentication: identical plaintext blocks under
// the same key always yield identical ciphertext blocks. Existing payloads
// were produced under exactly this mode and the determinism is pinned by
// tests; do not swap the mode without a migration path for old ciphertext.
type blockCodec struct{}

// NewBlockCodec constructs the AES-128-ECB [BlockCodec].
func NewBlockCodec() BlockCodec {
	return &blockCodec{}
}

// EncryptText implements [BlockCodec]. The ciphertext is returned in base64
// (standard encoding) so it can round-trip through text widgets and files.
func (c *blockCodec) EncryptText(plaintext string, key []byte) (string, error) {
	ct, err := c.EncryptBytes([]byte(plaintext), key)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(ct), nil
}

// DecryptText implements [BlockCodec]. It fails with [ErrCipher] before any
// decryption is attempted when encoded is not valid base64.
func (c *blockCodec) DecryptText(encoded string, key []byte) (string, error) {
	ct, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: decode base64: %v", ErrCipher, err)
	}
	pt, err := c.DecryptBytes(ct, key)
	if err != nil {
		return "", err
	}
	return string(pt), nil
}

// EncryptBytes implements [BlockCodec].
func (c *blockCodec) EncryptBytes(data, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: create cipher: %v", ErrCipher, err)
	}

	bs := block.BlockSize()
	padded := padPKCS7(data, bs)

	out := make([]byte, len(padded))
	for i := 0; i < len(padded); i += bs {
		block.Encrypt(out[i:i+bs], padded[i:i+bs])
	}
	return out, nil
}

// DecryptBytes implements [BlockCodec]. A wrong key, corrupted ciphertext,
// or truncated input surfaces as [ErrCipher] through the padding check —
// never as silently corrupted plaintext.
func (c *blockCodec) DecryptBytes(data, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: create cipher: %v", ErrCipher, err)
	}

	bs := block.BlockSize()
	if len(data) == 0 || len(data)%bs != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d is not a positive multiple of the block size", ErrCipher, len(data))
	}

	out := make([]byte, len(data))
	for i := 0; i < len(data); i += bs {
		block.Decrypt(out[i:i+bs], data[i:i+bs])
	}
	return unpadPKCS7(out, bs)
}

// padPKCS7 appends 1..blockSize bytes, each holding the pad length. A
// payload already at a block boundary gains a full padding block, so the
// pad is always removable unambiguously.
func padPKCS7(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, 0, len(data)+n)
	padded = append(padded, data...)
	return append(padded, bytes.Repeat([]byte{byte(n)}, n)...)
}

// unpadPKCS7 validates and strips the padding written by padPKCS7.
func unpadPKCS7(data []byte, blockSize int) ([]byte, error) {
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("%w: invalid padding", ErrCipher)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: invalid padding", ErrCipher)
		}
	}
	return data[:len(data)-n], nil
}
