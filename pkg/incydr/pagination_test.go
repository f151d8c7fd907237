package incydr_test

import (
	"context"
	"errors"
	"testing"

	"github.com/incydr-io/incydr-client/pkg/incydr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	ID string
}

var errBackend = errors.New("backend unavailable")

// offsetFetcher serves fixed pages and counts how many were requested.
type offsetFetcher struct {
	pages [][]testItem
	calls int
	// failAt makes the fetch with this page number fail (-1 disables).
	failAt int
}

func newOffsetFetcher(pages ...[]testItem) *offsetFetcher {
	return &offsetFetcher{pages: pages, failAt: -1}
}

func (f *offsetFetcher) fetch(_ context.Context, pageNum, _ int) ([]testItem, error) {
	f.calls++

	if pageNum == f.failAt {
		return nil, errBackend
	}

	if pageNum >= len(f.pages) {
		return []testItem{}, nil
	}

	return f.pages[pageNum], nil
}

func TestOffsetIterator_YieldsAllItemsInOrder(t *testing.T) {
	t.Parallel()

	fetcher := newOffsetFetcher(
		[]testItem{{ID: "1"}, {ID: "2"}},
		[]testItem{{ID: "3"}},
	)

	iterator := incydr.NewOffsetIterator(context.Background(), fetcher.fetch, &incydr.PaginationOptions{PageSize: 2})

	items, err := iterator.All()
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "2", items[1].ID)
	assert.Equal(t, "3", items[2].ID)

	// The second page came back short, so no third fetch happens.
	assert.Equal(t, 2, fetcher.calls)
}

func TestOffsetIterator_HasNext(t *testing.T) {
	t.Parallel()

	fetcher := newOffsetFetcher(
		[]testItem{{ID: "1"}, {ID: "2"}},
		[]testItem{{ID: "3"}},
	)

	iterator := incydr.NewOffsetIterator(context.Background(), fetcher.fetch, &incydr.PaginationOptions{PageSize: 2})

	assert.True(t, iterator.HasNext())

	item1, err := iterator.Next()
	require.NoError(t, err)
	assert.Equal(t, "1", item1.ID)

	assert.True(t, iterator.HasNext())

	item2, err := iterator.Next()
	require.NoError(t, err)
	assert.Equal(t, "2", item2.ID)

	assert.True(t, iterator.HasNext())

	item3, err := iterator.Next()
	require.NoError(t, err)
	assert.Equal(t, "3", item3.ID)

	assert.False(t, iterator.HasNext())
}

func TestOffsetIterator_EmptyFirstPage(t *testing.T) {
	t.Parallel()

	fetcher := newOffsetFetcher([]testItem{})

	iterator := incydr.NewOffsetIterator(context.Background(), fetcher.fetch, &incydr.PaginationOptions{PageSize: 2})

	items, err := iterator.All()
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 1, fetcher.calls)
}

func TestOffsetIterator_ExactPageMultipleFetchesTrailingEmptyPage(t *testing.T) {
	t.Parallel()

	// Both pages are full, so the iterator cannot know the set is exhausted
	// until the third, empty page comes back.
	fetcher := newOffsetFetcher(
		[]testItem{{ID: "1"}, {ID: "2"}},
		[]testItem{{ID: "3"}, {ID: "4"}},
	)

	iterator := incydr.NewOffsetIterator(context.Background(), fetcher.fetch, &incydr.PaginationOptions{PageSize: 2})

	items, err := iterator.All()
	require.NoError(t, err)
	assert.Len(t, items, 4)
	assert.Equal(t, 3, fetcher.calls)
}

func TestOffsetIterator_ErrorKeepsYieldedItems(t *testing.T) {
	t.Parallel()

	fetcher := newOffsetFetcher(
		[]testItem{{ID: "1"}, {ID: "2"}},
		[]testItem{{ID: "3"}, {ID: "4"}},
	)
	fetcher.failAt = 1

	iterator := incydr.NewOffsetIterator(context.Background(), fetcher.fetch, &incydr.PaginationOptions{PageSize: 2})

	items, err := iterator.All()
	require.ErrorIs(t, err, errBackend)

	// Items from the first page were already delivered and stay delivered.
	assert.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "2", items[1].ID)

	// The iterator is finished after the error.
	assert.False(t, iterator.HasNext())
}

func TestOffsetIterator_ForEach(t *testing.T) {
	t.Parallel()

	fetcher := newOffsetFetcher([]testItem{{ID: "1"}, {ID: "2"}})

	iterator := incydr.NewOffsetIterator(context.Background(), fetcher.fetch, &incydr.PaginationOptions{PageSize: 5})

	var collected []string

	err := iterator.ForEach(func(item testItem) error {
		collected = append(collected, item.ID)

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, collected)
}

func TestOffsetIterator_NextPastEnd(t *testing.T) {
	t.Parallel()

	fetcher := newOffsetFetcher([]testItem{})

	iterator := incydr.NewOffsetIterator(context.Background(), fetcher.fetch, nil)

	_, err := iterator.Next()
	require.ErrorIs(t, err, incydr.ErrNoMoreItems)
}

func TestOffsetIterator_StartPage(t *testing.T) {
	t.Parallel()

	var requested []int

	fetch := func(_ context.Context, pageNum, _ int) ([]testItem, error) {
		requested = append(requested, pageNum)

		return []testItem{}, nil
	}

	iterator := incydr.NewOffsetIterator(context.Background(), fetch, &incydr.PaginationOptions{PageSize: 2, StartPage: 1})

	_, err := iterator.All()
	require.NoError(t, err)
	assert.Equal(t, []int{1}, requested)
}

// tokenFetcher serves fixed pages keyed by the incoming token.
type tokenFetcher struct {
	pages  map[string][]testItem
	next   map[string]string
	errAt  string
	hasErr bool
	calls  []string
}

func (f *tokenFetcher) fetch(_ context.Context, token string) ([]testItem, string, error) {
	f.calls = append(f.calls, token)

	if f.hasErr && token == f.errAt {
		return nil, "", errBackend
	}

	return f.pages[token], f.next[token], nil
}

func TestTokenIterator_FollowsTokensUntilEmpty(t *testing.T) {
	t.Parallel()

	fetcher := &tokenFetcher{
		pages: map[string][]testItem{
			"":  {{ID: "1"}, {ID: "2"}},
			"a": {{ID: "3"}},
		},
		next: map[string]string{"": "a", "a": ""},
	}

	iterator := incydr.NewTokenIterator(context.Background(), fetcher.fetch)

	items, err := iterator.All()
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "3", items[2].ID)

	// The first request carries the empty token, the second the server's.
	assert.Equal(t, []string{"", "a"}, fetcher.calls)
}

func TestTokenIterator_EmptyStream(t *testing.T) {
	t.Parallel()

	fetcher := &tokenFetcher{
		pages: map[string][]testItem{},
		next:  map[string]string{},
	}

	iterator := incydr.NewTokenIterator(context.Background(), fetcher.fetch)

	assert.False(t, iterator.HasNext())

	items, err := iterator.All()
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, []string{""}, fetcher.calls)
}

func TestTokenIterator_EmptyPageWithTokenContinues(t *testing.T) {
	t.Parallel()

	fetcher := &tokenFetcher{
		pages: map[string][]testItem{
			"a": {{ID: "1"}},
		},
		next: map[string]string{"": "a", "a": ""},
	}

	iterator := incydr.NewTokenIterator(context.Background(), fetcher.fetch)

	items, err := iterator.All()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].ID)
}

func TestTokenIterator_ErrorKeepsYieldedItems(t *testing.T) {
	t.Parallel()

	fetcher := &tokenFetcher{
		pages: map[string][]testItem{
			"": {{ID: "1"}},
		},
		next:   map[string]string{"": "a"},
		errAt:  "a",
		hasErr: true,
	}

	iterator := incydr.NewTokenIterator(context.Background(), fetcher.fetch)

	items, err := iterator.All()
	require.ErrorIs(t, err, errBackend)
	assert.Len(t, items, 1)
	assert.False(t, iterator.HasNext())
}

func TestFetchAllPages(t *testing.T) {
	t.Parallel()

	fetcher := newOffsetFetcher(
		[]testItem{{ID: "1"}, {ID: "2"}},
		[]testItem{{ID: "3"}, {ID: "4"}},
		[]testItem{{ID: "5"}},
	)

	items, err := incydr.FetchAllPages(context.Background(), fetcher.fetch, &incydr.PaginationOptions{PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, items, 5)
}

func TestFetchAllPages_WithMaxPages(t *testing.T) {
	t.Parallel()

	fetcher := newOffsetFetcher(
		[]testItem{{ID: "1"}, {ID: "2"}},
		[]testItem{{ID: "3"}, {ID: "4"}},
		[]testItem{{ID: "5"}},
	)

	items, err := incydr.FetchAllPages(context.Background(), fetcher.fetch, &incydr.PaginationOptions{PageSize: 2, MaxPages: 2})
	require.NoError(t, err)
	assert.Len(t, items, 4)
	assert.Equal(t, 2, fetcher.calls)
}

func TestStreamPages(t *testing.T) {
	t.Parallel()

	fetcher := newOffsetFetcher(
		[]testItem{{ID: "1"}, {ID: "2"}},
		[]testItem{{ID: "3"}},
	)

	results := incydr.StreamPages(context.Background(), fetcher.fetch, &incydr.PaginationOptions{PageSize: 2})

	var all []testItem

	pageCount := 0

	for result := range results {
		require.NoError(t, result.Err)

		all = append(all, result.Items...)
		pageCount++
	}

	assert.Equal(t, 2, pageCount)
	assert.Len(t, all, 3)
}

func TestStreamPages_DeliversError(t *testing.T) {
	t.Parallel()

	fetcher := newOffsetFetcher(
		[]testItem{{ID: "1"}, {ID: "2"}},
		[]testItem{{ID: "3"}, {ID: "4"}},
	)
	fetcher.failAt = 1

	results := incydr.StreamPages(context.Background(), fetcher.fetch, &incydr.PaginationOptions{PageSize: 2})

	var items []testItem

	var streamErr error

	for result := range results {
		if result.Err != nil {
			streamErr = result.Err

			continue
		}

		items = append(items, result.Items...)
	}

	require.ErrorIs(t, streamErr, errBackend)
	assert.Len(t, items, 2)
}
