// Package models defines the value types exchanged between the cipher
// execution core and its callers.
package models

// Operation selects the direction of a cipher invocation.
type Operation int

const (
	// OperationEncrypt transforms plaintext into ciphertext.
	OperationEncrypt Operation = 1

	// OperationDecrypt transforms ciphertext back into plaintext.
	OperationDecrypt Operation = 2
)

// String returns the wire name of the operation, which is also the mode
// argument understood by the external cipher script.
func (o Operation) String() string {
	switch o {
	case OperationEncrypt:
		return "encrypt"
	case OperationDecrypt:
		return "decrypt"
	default:
		return "unknown"
	}
}

// Algorithm is the tagged variant selecting which cipher path executes a
// request. The caller picks the algorithm once; all further dispatch stays
// inside the service layer.
type Algorithm int

const (
	// AlgorithmAES is the built-in 128-bit block-cipher path.
	AlgorithmAES Algorithm = 1

	// AlgorithmVigenere runs the classical cipher as an external process.
	AlgorithmVigenere Algorithm = 2

	// AlgorithmVigenereAPI runs the classical cipher through the remote
	// REST service instead of a local process.
	AlgorithmVigenereAPI Algorithm = 3
)

// String returns a human-readable algorithm name.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmAES:
		return "aes"
	case AlgorithmVigenere:
		return "vigenere"
	case AlgorithmVigenereAPI:
		return "vigenere-api"
	default:
		return "unknown"
	}
}

// PayloadKind distinguishes textual payloads from opaque binary buffers
// (images).
type PayloadKind int

const (
	// PayloadText is a UTF-8 string payload. Ciphertext for text payloads
	// travels in a printable encoding so it round-trips through text
	// widgets and files.
	PayloadText PayloadKind = 1

	// PayloadBinary is a raw byte buffer, used for image payloads. Only the
	// built-in block-cipher path accepts it.
	PayloadBinary PayloadKind = 2
)

// CipherRequest carries one cipher invocation. The payload and passphrase
// are owned exclusively by the caller for the duration of the operation;
// the core retains no references after returning.
type CipherRequest struct {
	// Algorithm selects the cipher path.
	Algorithm Algorithm

	// Kind tells whether Text or Binary holds the payload.
	Kind PayloadKind

	// Text is the payload for PayloadText requests. On decryption of the
	// built-in path it holds the printable-encoded ciphertext.
	Text string

	// Binary is the payload for PayloadBinary requests.
	Binary []byte

	// InputPath and OutputPath switch the external cipher paths to
	// whole-file operation: the payload stays on disk and the script or
	// the remote file endpoints work on it directly. Both must be set
	// together. Ignored by the built-in path.
	InputPath  string
	OutputPath string

	// Passphrase is the user-supplied symmetric key material.
	Passphrase string
}

// CipherResult is the outcome of one successful cipher invocation. It is
// created once per invocation and carries no resources needing release.
type CipherResult struct {
	// Output is the primary textual result.
	Output string

	// Binary is the primary result for binary payloads.
	Binary []byte

	// Diagnostics holds secondary output (warnings) produced by external
	// cipher paths. Empty for the built-in path.
	Diagnostics string
}

// ExternalResult is what the external-process bridge returns: the primary
// output and whatever the process wrote to its diagnostic stream.
type ExternalResult struct {
	// Output is the cipher result, taken from standard output or from the
	// output artifact depending on the invocation mode.
	Output string

	// Diagnostics is the captured standard-error content.
	Diagnostics string
}
