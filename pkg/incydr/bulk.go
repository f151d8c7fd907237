package incydr

import (
	"context"
)

// MaxBatchSize is the largest ID list the bulk state-change endpoints accept
// in a single request.
const MaxBatchSize = 100

// ChunkIDs splits ids into order-preserving chunks of at most size elements.
// The chunks share the backing array of ids.
func ChunkIDs(ids []string, size int) [][]string {
	if size <= 0 {
		size = MaxBatchSize
	}

	var chunks [][]string

	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}

		chunks = append(chunks, ids[start:end])
	}

	return chunks
}

// ChunkedApply calls apply once per chunk of at most size IDs, in input
// order, and collects the results. The first failing chunk aborts the
// remaining ones; chunks already applied stay applied (there is no
// rollback). Empty input makes no calls and returns an empty result.
func ChunkedApply[R any](ctx context.Context, ids []string, size int, apply func(ctx context.Context, chunk []string) (R, error)) ([]R, error) {
	chunks := ChunkIDs(ids, size)
	results := make([]R, 0, len(chunks))

	for _, chunk := range chunks {
		result, err := apply(ctx, chunk)
		if err != nil {
			return results, err
		}

		results = append(results, result)
	}

	return results, nil
}

// DrainContinuation runs a criteria-driven bulk operation to completion. It
// calls apply at least once, starting with the empty token, and keeps
// calling with the token each response carries until a response carries
// none. The token is opaque and round-tripped untouched. It returns the
// number of requests made.
func DrainContinuation(ctx context.Context, apply func(ctx context.Context, continuationToken string) (string, error)) (int, error) {
	requests := 0
	token := ""

	for {
		next, err := apply(ctx, token)

		requests++

		if err != nil {
			return requests, err
		}

		if next == "" {
			return requests, nil
		}

		token = next
	}
}
