package incydr_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/incydr-io/incydr-client/pkg/incydr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkIDs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ids      []string
		size     int
		expected [][]string
	}{
		{
			name:     "empty input",
			ids:      nil,
			size:     3,
			expected: nil,
		},
		{
			name:     "single short chunk",
			ids:      []string{"a", "b"},
			size:     3,
			expected: [][]string{{"a", "b"}},
		},
		{
			name:     "exact multiple",
			ids:      []string{"a", "b", "c", "d"},
			size:     2,
			expected: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:     "remainder chunk",
			ids:      []string{"a", "b", "c", "d", "e"},
			size:     2,
			expected: [][]string{{"a", "b"}, {"c", "d"}, {"e"}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, incydr.ChunkIDs(tt.ids, tt.size))
		})
	}
}

func TestChunkedApply_PartitionsAtCap(t *testing.T) {
	t.Parallel()

	ids := make([]string, 0, 250)
	for i := 0; i < 250; i++ {
		ids = append(ids, fmt.Sprintf("session-%d", i))
	}

	var seen [][]string

	results, err := incydr.ChunkedApply(context.Background(), ids, incydr.MaxBatchSize,
		func(_ context.Context, chunk []string) (int, error) {
			seen = append(seen, chunk)

			return len(chunk), nil
		})
	require.NoError(t, err)

	// Every request carries at most the cap, and the chunks reassemble the
	// input exactly.
	require.Len(t, seen, 3)
	assert.Equal(t, []int{100, 100, 50}, results)

	var reassembled []string
	for _, chunk := range seen {
		assert.LessOrEqual(t, len(chunk), incydr.MaxBatchSize)

		reassembled = append(reassembled, chunk...)
	}

	assert.Equal(t, ids, reassembled)
}

func TestChunkedApply_EmptyInputMakesNoCalls(t *testing.T) {
	t.Parallel()

	calls := 0

	results, err := incydr.ChunkedApply(context.Background(), nil, incydr.MaxBatchSize,
		func(_ context.Context, _ []string) (struct{}, error) {
			calls++

			return struct{}{}, nil
		})
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 0, calls)
}

func TestChunkedApply_ErrorAbortsRemainingChunks(t *testing.T) {
	t.Parallel()

	ids := []string{"a", "b", "c", "d", "e", "f"}
	calls := 0

	results, err := incydr.ChunkedApply(context.Background(), ids, 2,
		func(_ context.Context, chunk []string) (string, error) {
			calls++
			if calls == 2 {
				return "", errBackend
			}

			return chunk[0], nil
		})
	require.ErrorIs(t, err, errBackend)

	// The first chunk was applied and stays applied; the third never ran.
	assert.Equal(t, []string{"a"}, results)
	assert.Equal(t, 2, calls)
}

func TestDrainContinuation_RunsAtLeastOnce(t *testing.T) {
	t.Parallel()

	var tokens []string

	requests, err := incydr.DrainContinuation(context.Background(),
		func(_ context.Context, token string) (string, error) {
			tokens = append(tokens, token)

			return "", nil
		})
	require.NoError(t, err)
	assert.Equal(t, 1, requests)
	assert.Equal(t, []string{""}, tokens)
}

func TestDrainContinuation_RoundTripsTokensUntilAbsent(t *testing.T) {
	t.Parallel()

	responses := []string{"tok-1", "tok-2", ""}

	var tokens []string

	requests, err := incydr.DrainContinuation(context.Background(),
		func(_ context.Context, token string) (string, error) {
			tokens = append(tokens, token)

			return responses[len(tokens)-1], nil
		})
	require.NoError(t, err)
	assert.Equal(t, 3, requests)

	// Each request carries the token of the previous response, untouched.
	assert.Equal(t, []string{"", "tok-1", "tok-2"}, tokens)
}

func TestDrainContinuation_ErrorStopsLoop(t *testing.T) {
	t.Parallel()

	calls := 0

	requests, err := incydr.DrainContinuation(context.Background(),
		func(_ context.Context, _ string) (string, error) {
			calls++
			if calls == 2 {
				return "", errBackend
			}

			return "next", nil
		})
	require.ErrorIs(t, err, errBackend)
	assert.Equal(t, 2, requests)
	assert.Equal(t, 2, calls)
}
