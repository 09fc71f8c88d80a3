package dispatch

import "errors"

// Terminal failure reasons delivered through OnFailure. The sentinel texts
// are the exact messages callers see for the fixed-message outcomes.
var (
	ErrInvalidConnection = errors.New("invalid connection configuration")
	ErrInvalidMessage    = errors.New("invalid message configuration")
	ErrRequestTimeout    = errors.New("request timeout")
)
