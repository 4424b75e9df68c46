package expiry

import "errors"

var (
	ErrStoreQuery      = errors.New("account store query failed")
	ErrStoreUpdate     = errors.New("account store update failed")
	ErrAccountNotFound = errors.New("account not found")
)
