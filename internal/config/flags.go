package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-interpreter external cipher interpreter executable
//	-script external cipher script path
//	-command-limit inline invocation command-length limit
//	-temp-dir directory for temporary payload artifacts
//	-key-profile key derivation profile ("sha256" or "argon2id")
//	-api-url Vigenère REST service base URL
//	-api-timeout Vigenère REST request timeout (e.g., "30s", "1m")
//	-c/-config json file path with configs
//
// Callers may register their own flags before invoking this function; the
// single flag.Parse call here picks them all up.
func ParseFlags() *StructuredConfig {
	var interpreter string
	var scriptPath string
	var commandLimit int
	var tempDir string
	var keyProfile string
	var apiBaseURL string
	var apiTimeout time.Duration
	var jsonConfigPath string

	flag.StringVar(&interpreter, "interpreter", "", "External cipher interpreter executable")
	flag.StringVar(&scriptPath, "script", "", "External cipher script path")
	flag.IntVar(&commandLimit, "command-limit", 0, "Inline invocation command-length limit")
	flag.StringVar(&tempDir, "temp-dir", "", "Directory for temporary payload artifacts")
	flag.StringVar(&keyProfile, "key-profile", "", "Key derivation profile (sha256 or argon2id)")
	flag.StringVar(&apiBaseURL, "api-url", "", "Vigenere REST service base URL")
	flag.DurationVar(&apiTimeout, "api-timeout", 0, "Vigenere REST request timeout (e.g., 30s, 1m)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		Security: Security{
			KeyProfile: keyProfile,
		},
		Vigenere: Vigenere{
			Interpreter:  interpreter,
			ScriptPath:   scriptPath,
			CommandLimit: commandLimit,
			TempDir:      tempDir,
		},
		Remote: Remote{
			BaseURL:        apiBaseURL,
			RequestTimeout: apiTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}
