// Package crypto implements the built-in symmetric cipher path: passphrase
// to key derivation and the AES block codec for text and binary payloads.
package crypto

// KeyDeriver turns a user-supplied passphrase into a fixed-length symmetric
// key. Derivation is a pure function of the passphrase: the same input
// always produces the same key bytes, with no external state involved.
// Empty passphrases derive fine; rejecting them is the caller's job.
type KeyDeriver interface {
	// Derive returns the 16-byte symmetric key for passphrase. It fails
	// only on configuration-level impossibility, never on user input.
	Derive(passphrase string) ([]byte, error)
}

// BlockCodec encrypts and decrypts payloads with a 128-bit block cipher
// under a derived key. The text methods transport ciphertext as base64 so
// it survives text widgets and files; the byte methods operate on raw
// buffers (images) without any transcoding.
//
// All methods are pure transforms over their explicit inputs; the codec
// retains no references to payloads after returning.
type BlockCodec interface {
	EncryptText(plaintext string, key []byte) (string, error)
	DecryptText(encoded string, key []byte) (string, error)
	EncryptBytes(data, key []byte) ([]byte, error)
	DecryptBytes(data, key []byte) ([]byte, error)
}
