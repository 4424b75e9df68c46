package batch

import "context"

// FetchFunc returns one page of items at the given offset. A page shorter
// than the requested limit signals that the scan is exhausted.
type FetchFunc[T any] func(ctx context.Context, limit, offset int) ([]T, error)

// HandleFunc processes a single item. Returning an error aborts the scan;
// handlers that want per-item failure isolation must swallow the failure
// themselves and return nil.
type HandleFunc[T any] func(ctx context.Context, item T) error

// Scan fetches fixed-size pages at increasing offsets until a short page
// signals exhaustion, handing every item to handle in order.
//
// The offset cursor assumes the matching set shrinks monotonically as
// handled items stop matching the fetch predicate. Concurrent external
// writes can make a scan skip or revisit an item; that hazard is accepted
// rather than corrected by snapshotting.
func Scan[T any](ctx context.Context, pageSize int, fetch FetchFunc[T], handle HandleFunc[T]) error {
	if pageSize <= 0 {
		return ErrInvalidPageSize
	}

	for offset := 0; ; offset += pageSize {
		page, err := fetch(ctx, pageSize, offset)
		if err != nil {
			return err
		}

		for _, item := range page {
			if err := handle(ctx, item); err != nil {
				return err
			}
		}

		if len(page) < pageSize {
			return nil
		}
	}
}
