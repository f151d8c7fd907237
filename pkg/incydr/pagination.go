package incydr

import (
	"context"
)

// PageFetcher fetches one page of items for a page number. pageSize is the
// number of items requested per page; the iterator treats a page with fewer
// items than pageSize as the last one.
type PageFetcher[T any] func(ctx context.Context, pageNum, pageSize int) ([]T, error)

// TokenFetcher fetches one page of items for a page token. The first call
// receives the empty token; the returned token is passed to the next call.
// An empty returned token ends the iteration.
type TokenFetcher[T any] func(ctx context.Context, pgToken string) ([]T, string, error)

// PaginationOptions configures page iteration.
type PaginationOptions struct {
	// PageSize is the number of items to request per page.
	PageSize int
	// StartPage is the first page number to request. Most endpoints start at
	// 0; trusted activities start at 1.
	StartPage int
	// MaxPages caps the number of pages fetched by FetchAllPages and
	// StreamPages. 0 means no cap.
	MaxPages int
}

// DefaultPaginationOptions returns options with the shared default page size.
func DefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{PageSize: DefaultPageSize}
}

// DefaultPageSize is the page size used when options do not provide one.
const DefaultPageSize = 100

func (o *PaginationOptions) normalized() PaginationOptions {
	opts := PaginationOptions{}
	if o != nil {
		opts = *o
	}

	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}

	return opts
}

// OffsetIterator iterates page-numbered list endpoints item by item. A page
// returning fewer items than the requested page size ends the iteration; a
// zero-item page ends it immediately. The page counter itself is unbounded:
// a server that keeps returning full pages keeps the iteration going.
//
// Items already yielded stay yielded when a later page fetch fails; the
// error is reported once and the iterator stops. Identical fetches are never
// cached or deduplicated.
type OffsetIterator[T any] struct {
	ctx     context.Context
	fetch   PageFetcher[T]
	opts    PaginationOptions
	page    int
	buffer  []T
	index   int
	done    bool
	pending error
}

// NewOffsetIterator creates an iterator over a page-numbered endpoint.
func NewOffsetIterator[T any](ctx context.Context, fetch PageFetcher[T], opts *PaginationOptions) *OffsetIterator[T] {
	normalized := opts.normalized()

	return &OffsetIterator[T]{
		ctx:   ctx,
		fetch: fetch,
		opts:  normalized,
		page:  normalized.StartPage,
	}
}

// HasNext reports whether another item (or a pending error) is available.
// It fetches the next page when the current one is exhausted.
func (it *OffsetIterator[T]) HasNext() bool {
	if it.index < len(it.buffer) || it.pending != nil {
		return true
	}

	if it.done {
		return false
	}

	it.fetchNextPage()

	return it.index < len(it.buffer) || it.pending != nil
}

// Next returns the next item. Callers should check HasNext first; calling
// Next past the end returns ErrNoMoreItems.
func (it *OffsetIterator[T]) Next() (T, error) {
	var zero T

	if it.pending != nil && it.index >= len(it.buffer) {
		err := it.pending
		it.pending = nil
		it.done = true

		return zero, err
	}

	if it.index >= len(it.buffer) {
		if !it.HasNext() {
			return zero, ErrNoMoreItems
		}

		return it.Next()
	}

	item := it.buffer[it.index]
	it.index++

	return item, nil
}

// All collects every remaining item. On error, the items fetched so far are
// returned alongside it.
func (it *OffsetIterator[T]) All() ([]T, error) {
	var items []T

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return items, err
		}

		items = append(items, item)
	}

	return items, nil
}

// ForEach calls fn for every remaining item, stopping on the first error
// from either the fetcher or fn.
func (it *OffsetIterator[T]) ForEach(fn func(item T) error) error {
	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return err
		}

		err = fn(item)
		if err != nil {
			return err
		}
	}

	return nil
}

func (it *OffsetIterator[T]) fetchNextPage() {
	items, err := it.fetch(it.ctx, it.page, it.opts.PageSize)
	if err != nil {
		it.pending = err

		return
	}

	it.page++
	it.buffer = items
	it.index = 0

	// A short or empty page is the end of the result set.
	if len(items) < it.opts.PageSize {
		it.done = true
	}
}

// TokenIterator iterates token-driven list endpoints item by item. The first
// request carries the empty token; iteration ends when the server stops
// returning a next-page token. A missing token field is ordinary
// end-of-stream, never an error.
type TokenIterator[T any] struct {
	ctx     context.Context
	fetch   TokenFetcher[T]
	token   string
	buffer  []T
	index   int
	done    bool
	pending error
}

// NewTokenIterator creates an iterator over a token-driven endpoint.
func NewTokenIterator[T any](ctx context.Context, fetch TokenFetcher[T]) *TokenIterator[T] {
	return &TokenIterator[T]{ctx: ctx, fetch: fetch}
}

// HasNext reports whether another item (or a pending error) is available.
// The server may return an empty page with a token for the next one, so
// fetching continues until items, an error, or the end shows up.
func (it *TokenIterator[T]) HasNext() bool {
	for {
		if it.index < len(it.buffer) || it.pending != nil {
			return true
		}

		if it.done {
			return false
		}

		it.fetchNextPage()
	}
}

// Next returns the next item. Calling Next past the end returns
// ErrNoMoreItems.
func (it *TokenIterator[T]) Next() (T, error) {
	var zero T

	if it.pending != nil && it.index >= len(it.buffer) {
		err := it.pending
		it.pending = nil
		it.done = true

		return zero, err
	}

	if it.index >= len(it.buffer) {
		if !it.HasNext() {
			return zero, ErrNoMoreItems
		}

		return it.Next()
	}

	item := it.buffer[it.index]
	it.index++

	return item, nil
}

// All collects every remaining item. On error, the items fetched so far are
// returned alongside it.
func (it *TokenIterator[T]) All() ([]T, error) {
	var items []T

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return items, err
		}

		items = append(items, item)
	}

	return items, nil
}

// ForEach calls fn for every remaining item, stopping on the first error
// from either the fetcher or fn.
func (it *TokenIterator[T]) ForEach(fn func(item T) error) error {
	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return err
		}

		err = fn(item)
		if err != nil {
			return err
		}
	}

	return nil
}

func (it *TokenIterator[T]) fetchNextPage() {
	items, next, err := it.fetch(it.ctx, it.token)
	if err != nil {
		it.pending = err

		return
	}

	it.buffer = items
	it.index = 0
	it.token = next

	if next == "" {
		it.done = true
	}
}

// FetchAllPages fetches pages until the endpoint is exhausted (or MaxPages
// is reached) and returns all items.
func FetchAllPages[T any](ctx context.Context, fetch PageFetcher[T], opts *PaginationOptions) ([]T, error) {
	normalized := opts.normalized()

	var all []T

	page := normalized.StartPage

	for fetched := 0; normalized.MaxPages == 0 || fetched < normalized.MaxPages; fetched++ {
		items, err := fetch(ctx, page, normalized.PageSize)
		if err != nil {
			return nil, err
		}

		all = append(all, items...)
		page++

		if len(items) < normalized.PageSize {
			break
		}
	}

	return all, nil
}

// PageResult is one page delivered by StreamPages.
type PageResult[T any] struct {
	Items []T
	Err   error
}

// StreamPages fetches pages in a goroutine and delivers them on the returned
// channel. The channel is closed after the last page, after the first error,
// or when ctx is done.
func StreamPages[T any](ctx context.Context, fetch PageFetcher[T], opts *PaginationOptions) <-chan PageResult[T] {
	normalized := opts.normalized()
	results := make(chan PageResult[T])

	go func() {
		defer close(results)

		page := normalized.StartPage

		for fetched := 0; normalized.MaxPages == 0 || fetched < normalized.MaxPages; fetched++ {
			items, err := fetch(ctx, page, normalized.PageSize)

			select {
			case results <- PageResult[T]{Items: items, Err: err}:
			case <-ctx.Done():
				return
			}

			if err != nil || len(items) < normalized.PageSize {
				return
			}

			page++
		}
	}()

	return results
}
