package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Security.KeyProfile {
	case "", "sha256", "argon2id":
	default:
		return ErrInvalidSecurityConfigs
	}

	if cfg.Vigenere.CommandLimit < 0 {
		return ErrInvalidVigenereConfigs
	}

	if cfg.Remote.RequestTimeout < 0 {
		return ErrInvalidRemoteConfigs
	}

	return nil
}
