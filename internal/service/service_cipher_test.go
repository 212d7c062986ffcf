package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scriptum/internal/crypto"
	"scriptum/internal/logger"
	"scriptum/models"
)

// fakeBridge uppercases on encrypt and lowercases on decrypt, which is easy
// to assert against without a real script on disk.
type fakeBridge struct {
	lastOp  models.Operation
	lastKey string
	err     error
}

func (f *fakeBridge) ProcessText(_ context.Context, op models.Operation, payload, key string) (models.ExternalResult, error) {
	f.lastOp = op
	f.lastKey = key
	if f.err != nil {
		return models.ExternalResult{}, f.err
	}
	if op == models.OperationEncrypt {
		return models.ExternalResult{Output: strings.ToUpper(payload), Diagnostics: "advisory"}, nil
	}
	return models.ExternalResult{Output: strings.ToLower(payload)}, nil
}

func (f *fakeBridge) ProcessFile(_ context.Context, op models.Operation, inPath, outPath, key string) (models.ExternalResult, error) {
	f.lastOp = op
	f.lastKey = key
	if f.err != nil {
		return models.ExternalResult{}, f.err
	}
	raw, err := os.ReadFile(inPath)
	if err != nil {
		return models.ExternalResult{}, err
	}
	out := strings.ToUpper(string(raw))
	if op == models.OperationDecrypt {
		out = strings.ToLower(string(raw))
	}
	if err := os.WriteFile(outPath, []byte(out), 0o600); err != nil {
		return models.ExternalResult{}, err
	}
	return models.ExternalResult{Diagnostics: "advisory"}, nil
}

type fakeRemote struct {
	err error
}

func (f *fakeRemote) EncryptText(_ context.Context, text, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "enc(" + text + "," + key + ")", nil
}

func (f *fakeRemote) DecryptText(_ context.Context, text, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "dec(" + text + "," + key + ")", nil
}

func (f *fakeRemote) EncryptFile(_ context.Context, content, key, filename string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "encfile(" + filename + "," + key + "):" + content, nil
}

func (f *fakeRemote) DecryptFile(_ context.Context, content, key, filename string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "decfile(" + filename + "," + key + "):" + content, nil
}

func newTestService(t *testing.T, bridge ExternalCipher, remote RemoteCipher) CipherService {
	t.Helper()
	deriver, err := crypto.NewKeyDeriver(crypto.ProfileSHA256)
	require.NoError(t, err)
	return NewCipherService(deriver, crypto.NewBlockCodec(), bridge, remote, logger.Nop())
}

func TestAES_TextRoundTrip(t *testing.T) {
	svc := newTestService(t, nil, nil)
	ctx := context.Background()

	enc, err := svc.Encrypt(ctx, models.CipherRequest{
		Algorithm:  models.AlgorithmAES,
		Kind:       models.PayloadText,
		Text:       "attack at dawn",
		Passphrase: "WAND",
	})
	require.NoError(t, err)
	require.NotEmpty(t, enc.Output)
	assert.NotEqual(t, "attack at dawn", enc.Output)

	dec, err := svc.Decrypt(ctx, models.CipherRequest{
		Algorithm:  models.AlgorithmAES,
		Kind:       models.PayloadText,
		Text:       enc.Output,
		Passphrase: "WAND",
	})
	require.NoError(t, err)
	assert.Equal(t, "attack at dawn", dec.Output)
}

func TestAES_TextKnownAnswer(t *testing.T) {
	svc := newTestService(t, nil, nil)

	enc, err := svc.Encrypt(context.Background(), models.CipherRequest{
		Algorithm:  models.AlgorithmAES,
		Kind:       models.PayloadText,
		Text:       "HELLO",
		Passphrase: "WAND",
	})
	require.NoError(t, err)
	assert.Equal(t, "gTnMrEC4Xzx6ahm7N9EO4g==", enc.Output)
}

func TestAES_BinaryRoundTrip(t *testing.T) {
	svc := newTestService(t, nil, nil)
	ctx := context.Background()
	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0xff}

	enc, err := svc.Encrypt(ctx, models.CipherRequest{
		Algorithm:  models.AlgorithmAES,
		Kind:       models.PayloadBinary,
		Binary:     payload,
		Passphrase: "image-key",
	})
	require.NoError(t, err)
	require.NotEmpty(t, enc.Binary)
	assert.Zero(t, len(enc.Binary)%16)

	dec, err := svc.Decrypt(ctx, models.CipherRequest{
		Algorithm:  models.AlgorithmAES,
		Kind:       models.PayloadBinary,
		Binary:     enc.Binary,
		Passphrase: "image-key",
	})
	require.NoError(t, err)
	assert.Equal(t, payload, dec.Binary)
}

func TestAES_WrongKeyFails(t *testing.T) {
	svc := newTestService(t, nil, nil)
	ctx := context.Background()

	enc, err := svc.Encrypt(ctx, models.CipherRequest{
		Algorithm:  models.AlgorithmAES,
		Kind:       models.PayloadText,
		Text:       "HELLO",
		Passphrase: "WAND",
	})
	require.NoError(t, err)

	_, err = svc.Decrypt(ctx, models.CipherRequest{
		Algorithm:  models.AlgorithmAES,
		Kind:       models.PayloadText,
		Text:       enc.Output,
		Passphrase: "SPELL",
	})
	assert.ErrorIs(t, err, crypto.ErrCipher)
}

func TestEmptyPassphrase(t *testing.T) {
	svc := newTestService(t, nil, nil)

	_, err := svc.Encrypt(context.Background(), models.CipherRequest{
		Algorithm: models.AlgorithmAES,
		Kind:      models.PayloadText,
		Text:      "HELLO",
	})
	assert.ErrorIs(t, err, ErrEmptyKey)

	_, err = svc.Decrypt(context.Background(), models.CipherRequest{
		Algorithm: models.AlgorithmAES,
		Kind:      models.PayloadText,
		Text:      "gTnMrEC4Xzx6ahm7N9EO4g==",
	})
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestVigenere_Dispatch(t *testing.T) {
	bridge := &fakeBridge{}
	svc := newTestService(t, bridge, nil)
	ctx := context.Background()

	enc, err := svc.Encrypt(ctx, models.CipherRequest{
		Algorithm:  models.AlgorithmVigenere,
		Kind:       models.PayloadText,
		Text:       "hello",
		Passphrase: "WAND",
	})
	require.NoError(t, err)
	assert.Equal(t, "HELLO", enc.Output)
	assert.Equal(t, "advisory", enc.Diagnostics)
	assert.Equal(t, models.OperationEncrypt, bridge.lastOp)
	assert.Equal(t, "WAND", bridge.lastKey)

	dec, err := svc.Decrypt(ctx, models.CipherRequest{
		Algorithm:  models.AlgorithmVigenere,
		Kind:       models.PayloadText,
		Text:       "HELLO",
		Passphrase: "WAND",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", dec.Output)
	assert.Equal(t, models.OperationDecrypt, bridge.lastOp)
}

func TestVigenere_BridgeErrorPropagates(t *testing.T) {
	boom := errors.New("script exploded")
	svc := newTestService(t, &fakeBridge{err: boom}, nil)

	_, err := svc.Encrypt(context.Background(), models.CipherRequest{
		Algorithm:  models.AlgorithmVigenere,
		Kind:       models.PayloadText,
		Text:       "hello",
		Passphrase: "WAND",
	})
	assert.ErrorIs(t, err, boom)
}

func TestVigenere_NotConfigured(t *testing.T) {
	svc := newTestService(t, nil, nil)

	_, err := svc.Encrypt(context.Background(), models.CipherRequest{
		Algorithm:  models.AlgorithmVigenere,
		Kind:       models.PayloadText,
		Text:       "hello",
		Passphrase: "WAND",
	})
	assert.ErrorIs(t, err, ErrAlgorithmUnavailable)
}

func TestVigenere_BinaryUnsupported(t *testing.T) {
	svc := newTestService(t, &fakeBridge{}, nil)

	_, err := svc.Encrypt(context.Background(), models.CipherRequest{
		Algorithm:  models.AlgorithmVigenere,
		Kind:       models.PayloadBinary,
		Binary:     []byte{1, 2, 3},
		Passphrase: "WAND",
	})
	assert.ErrorIs(t, err, ErrUnsupportedPayload)
}

func TestVigenere_FileOperation(t *testing.T) {
	bridge := &fakeBridge{}
	svc := newTestService(t, bridge, nil)

	dir := t.TempDir()
	inPath := filepath.Join(dir, "message.txt")
	outPath := filepath.Join(dir, "message_encrypted.txt")
	require.NoError(t, os.WriteFile(inPath, []byte("attack at dawn"), 0o600))

	res, err := svc.Encrypt(context.Background(), models.CipherRequest{
		Algorithm:  models.AlgorithmVigenere,
		Kind:       models.PayloadText,
		InputPath:  inPath,
		OutputPath: outPath,
		Passphrase: "WAND",
	})
	require.NoError(t, err)
	assert.Equal(t, "ATTACK AT DAWN", res.Output)
	assert.Equal(t, "advisory", res.Diagnostics)

	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "ATTACK AT DAWN", string(written))
}

func TestVigenere_FileOperationRequiresOutputPath(t *testing.T) {
	svc := newTestService(t, &fakeBridge{}, nil)

	_, err := svc.Encrypt(context.Background(), models.CipherRequest{
		Algorithm:  models.AlgorithmVigenere,
		Kind:       models.PayloadText,
		InputPath:  filepath.Join(t.TempDir(), "in.txt"),
		Passphrase: "WAND",
	})
	assert.Error(t, err)
}

func TestRemote_FileOperation(t *testing.T) {
	svc := newTestService(t, nil, &fakeRemote{})

	inPath := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(inPath, []byte("secret"), 0o600))

	res, err := svc.Encrypt(context.Background(), models.CipherRequest{
		Algorithm:  models.AlgorithmVigenereAPI,
		Kind:       models.PayloadText,
		InputPath:  inPath,
		OutputPath: filepath.Join(t.TempDir(), "notes_encrypted.txt"),
		Passphrase: "WAND",
	})
	require.NoError(t, err)
	assert.Equal(t, "encfile(notes.txt,WAND):secret", res.Output)

	dec, err := svc.Decrypt(context.Background(), models.CipherRequest{
		Algorithm:  models.AlgorithmVigenereAPI,
		Kind:       models.PayloadText,
		InputPath:  inPath,
		OutputPath: filepath.Join(t.TempDir(), "notes_decrypted.txt"),
		Passphrase: "WAND",
	})
	require.NoError(t, err)
	assert.Equal(t, "decfile(notes.txt,WAND):secret", dec.Output)
}

func TestRemote_FileOperationMissingInput(t *testing.T) {
	svc := newTestService(t, nil, &fakeRemote{})

	_, err := svc.Encrypt(context.Background(), models.CipherRequest{
		Algorithm:  models.AlgorithmVigenereAPI,
		Kind:       models.PayloadText,
		InputPath:  filepath.Join(t.TempDir(), "no-such.txt"),
		OutputPath: filepath.Join(t.TempDir(), "out.txt"),
		Passphrase: "WAND",
	})
	assert.Error(t, err)
}

func TestRemote_Dispatch(t *testing.T) {
	svc := newTestService(t, nil, &fakeRemote{})
	ctx := context.Background()

	enc, err := svc.Encrypt(ctx, models.CipherRequest{
		Algorithm:  models.AlgorithmVigenereAPI,
		Kind:       models.PayloadText,
		Text:       "hello",
		Passphrase: "WAND",
	})
	require.NoError(t, err)
	assert.Equal(t, "enc(hello,WAND)", enc.Output)

	dec, err := svc.Decrypt(ctx, models.CipherRequest{
		Algorithm:  models.AlgorithmVigenereAPI,
		Kind:       models.PayloadText,
		Text:       "XYZ",
		Passphrase: "WAND",
	})
	require.NoError(t, err)
	assert.Equal(t, "dec(XYZ,WAND)", dec.Output)
}

func TestRemote_NotConfigured(t *testing.T) {
	svc := newTestService(t, nil, nil)

	_, err := svc.Encrypt(context.Background(), models.CipherRequest{
		Algorithm:  models.AlgorithmVigenereAPI,
		Kind:       models.PayloadText,
		Text:       "hello",
		Passphrase: "WAND",
	})
	assert.ErrorIs(t, err, ErrAlgorithmUnavailable)
}

func TestRemote_BinaryUnsupported(t *testing.T) {
	svc := newTestService(t, nil, &fakeRemote{})

	_, err := svc.Decrypt(context.Background(), models.CipherRequest{
		Algorithm:  models.AlgorithmVigenereAPI,
		Kind:       models.PayloadBinary,
		Binary:     []byte{1, 2, 3},
		Passphrase: "WAND",
	})
	assert.ErrorIs(t, err, ErrUnsupportedPayload)
}

func TestUnknownAlgorithm(t *testing.T) {
	svc := newTestService(t, nil, nil)

	_, err := svc.Encrypt(context.Background(), models.CipherRequest{
		Algorithm:  models.Algorithm(99),
		Kind:       models.PayloadText,
		Text:       "hello",
		Passphrase: "WAND",
	})
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}
