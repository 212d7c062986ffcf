// Package service implements the scriptum application core: it selects a
// cipher algorithm for each request, derives the key material where needed
// and delegates the actual work to the crypto codec, the local script bridge
// or the remote API client.
package service

import (
	"context"

	"scriptum/models"
)

// CipherService is the application-facing cipher API. A request carries the
// algorithm, the payload kind and the passphrase; the service routes it to
// the right backend.
type CipherService interface {
	Encrypt(ctx context.Context, req models.CipherRequest) (models.CipherResult, error)
	Decrypt(ctx context.Context, req models.CipherRequest) (models.CipherResult, error)
}

// ExternalCipher runs a cipher operation through an external process.
// Implemented by vigenere.Bridge.
type ExternalCipher interface {
	ProcessText(ctx context.Context, op models.Operation, payload, key string) (models.ExternalResult, error)
	ProcessFile(ctx context.Context, op models.Operation, inputPath, outputPath, key string) (models.ExternalResult, error)
}

// RemoteCipher runs a cipher operation through a remote REST service.
// Implemented by adapter.Client.
type RemoteCipher interface {
	EncryptText(ctx context.Context, text, key string) (string, error)
	DecryptText(ctx context.Context, text, key string) (string, error)
	EncryptFile(ctx context.Context, content, key, filename string) (string, error)
	DecryptFile(ctx context.Context, content, key, filename string) (string, error)
}
