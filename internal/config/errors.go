package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidSecurityConfigs indicates invalid security settings
	// (for example, an unknown key derivation profile).
	ErrInvalidSecurityConfigs = errors.New("invalid security configuration")
	// ErrInvalidVigenereConfigs indicates invalid external cipher settings
	// (for example, a negative command-length limit).
	ErrInvalidVigenereConfigs = errors.New("invalid vigenere configuration")
	// ErrInvalidRemoteConfigs indicates invalid remote API settings
	// (for example, a negative request timeout).
	ErrInvalidRemoteConfigs = errors.New("invalid remote configuration")
)
