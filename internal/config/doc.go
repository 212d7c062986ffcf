// Package config loads the scriptum configuration from environment
// variables, command-line flags, an optional JSON file, and built-in
// defaults, merging them in that priority order.
//
// The entry point is [GetStructuredConfig]. All tunables of the cipher
// core live here: the key derivation profile, the external script location
// and interpreter, the inline-invocation command-length limit, and the
// remote API endpoint.
package config
