package adapter

import "errors"

// ErrRemoteUnavailable is returned when the remote Vigenère service cannot
// be reached at all: connection refused, DNS failure, timeout.
var ErrRemoteUnavailable = errors.New("remote vigenere service unavailable")

// ErrRemoteRejected is returned when the service answered but refused the
// operation, either with a non-2xx status or with success=false in the body.
var ErrRemoteRejected = errors.New("remote vigenere service rejected request")
