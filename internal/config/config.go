package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for scriptum.
// It aggregates all sub-configurations and is populated by merging values
// from environment variables, command-line flags, an optional JSON file,
// and built-in defaults (in that priority order).
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Security holds settings for the built-in block-cipher path, currently
	// the passphrase-to-key derivation profile.
	Security Security `envPrefix:"SECURITY_"`

	// Vigenere holds settings for the external classical-cipher process:
	// interpreter, script location, and the inline-invocation limit.
	Vigenere Vigenere `envPrefix:"VIGENERE_"`

	// Remote holds settings for the Vigenère REST service used by the
	// remote cipher path.
	Remote Remote `envPrefix:"REMOTE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged below the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Security holds cryptographic settings for the built-in cipher path.
type Security struct {
	// KeyProfile selects how a passphrase is stretched into key bytes:
	// "sha256" (historical behavior, default) or "argon2id" (hardened,
	// incompatible with payloads encrypted under the sha256 profile).
	// Env: SECURITY_KEY_PROFILE
	KeyProfile string `env:"KEY_PROFILE"`
}

// Vigenere holds settings for the external classical-cipher process.
type Vigenere struct {
	// Interpreter is the executable that runs the cipher script,
	// e.g. "python" or "python3".
	// Env: VIGENERE_INTERPRETER
	Interpreter string `env:"INTERPRETER"`

	// ScriptPath is the filesystem path to the Vigenère script. The
	// external cipher path is unavailable while this is empty.
	// Env: VIGENERE_SCRIPT_PATH
	ScriptPath string `env:"SCRIPT_PATH"`

	// CommandLimit caps the simulated command-line length for inline
	// invocation; longer invocations are handed over through temporary
	// files. The default (8000) sits safely below the smallest known host
	// ceiling (Windows cmd stops at 8191 characters).
	// Env: VIGENERE_COMMAND_LIMIT
	CommandLimit int `env:"COMMAND_LIMIT"`

	// TempDir overrides the directory used for temporary payload
	// artifacts. Empty means the OS default temp directory.
	// Env: VIGENERE_TEMP_DIR
	TempDir string `env:"TEMP_DIR"`
}

// Remote holds settings for the Vigenère REST service.
type Remote struct {
	// BaseURL is the root of the API, e.g. "http://localhost:5000/api".
	// Env: REMOTE_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout bounds every single API call (e.g. "30s", "1m").
	// Env: REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (earlier sources win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}

// defaultConfig carries the built-in fallback values applied with the
// lowest priority.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Security: Security{
			KeyProfile: "sha256",
		},
		Vigenere: Vigenere{
			Interpreter:  "python",
			CommandLimit: 8000,
		},
		Remote: Remote{
			BaseURL:        "http://localhost:5000/api",
			RequestTimeout: 30 * time.Second,
		},
	}
}
