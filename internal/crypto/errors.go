package crypto

import "errors"

// Sentinel errors of the built-in cipher path. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrKeyDerivation is returned when the key cannot be derived from the
	// passphrase. This is a configuration-level failure (e.g. an unknown
	// derivation profile), not a user error, and is treated as fatal.
	ErrKeyDerivation = errors.New("key derivation failed")

	// ErrCipher is returned on recoverable cipher failures: decryption
	// under the wrong key, corrupted or truncated ciphertext, or an
	// encoded input that is not valid base64. The caller surfaces it to
	// the user rather than aborting.
	ErrCipher = errors.New("cipher operation failed")
)
