package service

import "errors"

// ErrEmptyKey is returned when a request carries no passphrase.
var ErrEmptyKey = errors.New("empty passphrase")

// ErrUnknownAlgorithm is returned when a request names an algorithm the
// service does not recognize.
var ErrUnknownAlgorithm = errors.New("unknown cipher algorithm")

// ErrAlgorithmUnavailable is returned when the requested algorithm is known
// but its backend was not configured, e.g. Vigenère without a script path.
var ErrAlgorithmUnavailable = errors.New("cipher algorithm not available")

// ErrUnsupportedPayload is returned when the requested algorithm cannot
// process the payload kind, e.g. binary data through the Vigenère script.
var ErrUnsupportedPayload = errors.New("payload kind not supported by algorithm")
