package audit

import "errors"

var (
	// ErrStorageUnavailable indicates the storage backend rejected the write.
	ErrStorageUnavailable = errors.New("audit storage is unavailable")

	// ErrEntryValidation indicates entry validation failed.
	ErrEntryValidation = errors.New("audit entry validation failed")
)
