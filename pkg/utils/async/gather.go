package async

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
)

// Gather runs fn for every index in [0, n) on its own goroutine and waits for
// all of them. Results are indexed by position, not by completion order.
//
// Behavior:
//   - All goroutines start together; there is no cancellation between them
//   - A panic in fn is recovered, logged with its stack trace, and turned into
//     a result by recovered
//   - logger may be nil, in which case slog.Default() is used
func Gather[T any](
	ctx context.Context,
	logger *slog.Logger,
	n int,
	fn func(ctx context.Context, i int) T,
	recovered func(i int, r any) T,
) []T {
	if logger == nil {
		logger = slog.Default()
	}

	results := make([]T, n)
	var wg sync.WaitGroup
	wg.Add(n)

	for i := range n {
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					logger.Error("panic in async task",
						"index", i,
						"recover", r,
						"stack", string(debug.Stack()))
					results[i] = recovered(i, r)
				}
			}()

			results[i] = fn(ctx, i)
		}()
	}

	wg.Wait()
	return results
}
