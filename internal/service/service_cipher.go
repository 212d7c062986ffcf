package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"scriptum/internal/crypto"
	"scriptum/internal/logger"
	"scriptum/models"
)

type cipherService struct {
	deriver crypto.KeyDeriver
	codec   crypto.BlockCodec
	bridge  ExternalCipher
	remote  RemoteCipher
	log     *logger.Logger
}

// NewCipherService wires the cipher backends together. bridge and remote may
// be nil; requests for the corresponding algorithms will then fail with
// [ErrAlgorithmUnavailable].
func NewCipherService(deriver crypto.KeyDeriver, codec crypto.BlockCodec, bridge ExternalCipher, remote RemoteCipher, log *logger.Logger) CipherService {
	return &cipherService{
		deriver: deriver,
		codec:   codec,
		bridge:  bridge,
		remote:  remote,
		log:     log,
	}
}

func (s *cipherService) Encrypt(ctx context.Context, req models.CipherRequest) (models.CipherResult, error) {
	return s.process(ctx, models.OperationEncrypt, req)
}

func (s *cipherService) Decrypt(ctx context.Context, req models.CipherRequest) (models.CipherResult, error) {
	return s.process(ctx, models.OperationDecrypt, req)
}

func (s *cipherService) process(ctx context.Context, op models.Operation, req models.CipherRequest) (models.CipherResult, error) {
	if req.Passphrase == "" {
		return models.CipherResult{}, ErrEmptyKey
	}

	s.log.Debug().
		Str("operation", op.String()).
		Int("algorithm", int(req.Algorithm)).
		Int("kind", int(req.Kind)).
		Msg("processing cipher request")

	switch req.Algorithm {
	case models.AlgorithmAES:
		return s.processAES(op, req)
	case models.AlgorithmVigenere:
		return s.processVigenere(ctx, op, req)
	case models.AlgorithmVigenereAPI:
		return s.processRemote(ctx, op, req)
	default:
		return models.CipherResult{}, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, req.Algorithm)
	}
}

func (s *cipherService) processAES(op models.Operation, req models.CipherRequest) (models.CipherResult, error) {
	key, err := s.deriver.Derive(req.Passphrase)
	if err != nil {
		return models.CipherResult{}, err
	}

	switch req.Kind {
	case models.PayloadBinary:
		var out []byte
		if op == models.OperationEncrypt {
			out, err = s.codec.EncryptBytes(req.Binary, key)
		} else {
			out, err = s.codec.DecryptBytes(req.Binary, key)
		}
		if err != nil {
			return models.CipherResult{}, err
		}
		return models.CipherResult{Binary: out}, nil
	default:
		var out string
		if op == models.OperationEncrypt {
			out, err = s.codec.EncryptText(req.Text, key)
		} else {
			out, err = s.codec.DecryptText(req.Text, key)
		}
		if err != nil {
			return models.CipherResult{}, err
		}
		return models.CipherResult{Output: out}, nil
	}
}

func (s *cipherService) processVigenere(ctx context.Context, op models.Operation, req models.CipherRequest) (models.CipherResult, error) {
	if s.bridge == nil {
		return models.CipherResult{}, fmt.Errorf("%w: vigenere script not configured", ErrAlgorithmUnavailable)
	}
	if req.Kind == models.PayloadBinary {
		return models.CipherResult{}, fmt.Errorf("%w: vigenere accepts text only", ErrUnsupportedPayload)
	}

	if req.InputPath != "" {
		if req.OutputPath == "" {
			return models.CipherResult{}, errors.New("file operation requires an output path")
		}
		res, err := s.bridge.ProcessFile(ctx, op, req.InputPath, req.OutputPath, req.Passphrase)
		if err != nil {
			return models.CipherResult{}, err
		}
		// The script wrote the result to the output file; it is read back
		// so the caller sees the same result shape as the inline path.
		out, err := os.ReadFile(req.OutputPath)
		if err != nil {
			return models.CipherResult{}, fmt.Errorf("read cipher output %s: %w", req.OutputPath, err)
		}
		return models.CipherResult{Output: string(out), Diagnostics: res.Diagnostics}, nil
	}

	res, err := s.bridge.ProcessText(ctx, op, req.Text, req.Passphrase)
	if err != nil {
		return models.CipherResult{}, err
	}
	return models.CipherResult{Output: res.Output, Diagnostics: res.Diagnostics}, nil
}

func (s *cipherService) processRemote(ctx context.Context, op models.Operation, req models.CipherRequest) (models.CipherResult, error) {
	if s.remote == nil {
		return models.CipherResult{}, fmt.Errorf("%w: remote vigenere service not configured", ErrAlgorithmUnavailable)
	}
	if req.Kind == models.PayloadBinary {
		return models.CipherResult{}, fmt.Errorf("%w: remote vigenere accepts text only", ErrUnsupportedPayload)
	}

	if req.InputPath != "" {
		return s.processRemoteFile(ctx, op, req)
	}

	var (
		out string
		err error
	)
	if op == models.OperationEncrypt {
		out, err = s.remote.EncryptText(ctx, req.Text, req.Passphrase)
	} else {
		out, err = s.remote.DecryptText(ctx, req.Text, req.Passphrase)
	}
	if err != nil {
		return models.CipherResult{}, err
	}
	return models.CipherResult{Output: out}, nil
}

// processRemoteFile ships the whole file content to the remote file
// endpoints and hands the result back for delivery to the output path.
func (s *cipherService) processRemoteFile(ctx context.Context, op models.Operation, req models.CipherRequest) (models.CipherResult, error) {
	raw, err := os.ReadFile(req.InputPath)
	if err != nil {
		return models.CipherResult{}, fmt.Errorf("read payload file %s: %w", req.InputPath, err)
	}

	name := filepath.Base(req.InputPath)
	var out string
	if op == models.OperationEncrypt {
		out, err = s.remote.EncryptFile(ctx, string(raw), req.Passphrase, name)
	} else {
		out, err = s.remote.DecryptFile(ctx, string(raw), req.Passphrase, name)
	}
	if err != nil {
		return models.CipherResult{}, err
	}
	return models.CipherResult{Output: out}, nil
}
