package identity

import "errors"

var (
	ErrInvalidConfig = errors.New("identity: invalid directory config")
	ErrLookupFailed  = errors.New("identity: directory lookup failed")
	ErrNotFound      = errors.New("identity: account not found in directory")
)
