package bosun

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

// InvokeParallel runs every prompt through InvokeAsync with at most
// maxConcurrent invocations in flight; values below one fall back to
// DefaultMaxConcurrent.
//
// The returned slice is index-aligned with prompts no matter which
// invocations finish first. Prompts fail independently: one failure or
// timeout never cancels the rest. Spawn failures are joined into the returned
// error, leaving a zero Result at the affected index.
//
// The concurrency cap is a counting permit pool shared by all tasks; each
// task acquires a permit before its process starts and releases it on the way
// out, whatever the outcome.
func (o *Orchestrator) InvokeParallel(ctx context.Context, prompts []string, maxConcurrent int) ([]Result, error) {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}

	sem := semaphore.NewWeighted(int64(maxConcurrent))
	results := make([]Result, len(prompts))
	errs := make([]error, len(prompts))

	var wg sync.WaitGroup
	for i, prompt := range prompts {
		wg.Add(1)
		go func(i int, prompt string) {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				errs[i] = fmt.Errorf("prompt %d: acquire permit: %w", i, err)
				return
			}
			defer sem.Release(1)

			res, err := o.InvokeAsync(ctx, Invocation{Prompt: prompt}).Get()
			if err != nil {
				errs[i] = fmt.Errorf("prompt %d: %w", i, err)
				return
			}
			results[i] = res
		}(i, prompt)
	}
	wg.Wait()

	return results, errors.Join(errs...)
}
