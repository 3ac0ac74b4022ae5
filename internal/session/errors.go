package session

import (
	"errors"
	"fmt"
)

// Error taxonomy for authentication. Anything that is not a bad credential
// or a duplicate account collapses into ErrUnknown.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("account already exists")
	ErrUnknown            = errors.New("authentication failed")

	// ErrParse marks a response the endpoint decoder could not make sense
	// of. It wraps ErrUnknown so callers that only care about the coarse
	// taxonomy still match it.
	ErrParse = fmt.Errorf("%w: malformed endpoint response", ErrUnknown)
)
