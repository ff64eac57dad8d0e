package houdiniswap

import "sync"

const defaultMaxWorkers = 5

// Result holds the outcome of one call executed by ExecuteParallel. Exactly
// one of Value and Err is meaningful.
type Result struct {
	Value any
	Err   error
}

// ExecuteParallel runs the given calls concurrently with at most maxWorkers
// in flight (default 5 when non-positive). The returned slice matches the
// input order regardless of completion order; a failing call occupies its
// slot with the error and never disturbs the others.
func ExecuteParallel(calls []func() (any, error), maxWorkers int) []Result {
	if len(calls) == 0 {
		return nil
	}
	if maxWorkers <= 0 {
		maxWorkers = defaultMaxWorkers
	}
	if maxWorkers > len(calls) {
		maxWorkers = len(calls)
	}

	results := make([]Result, len(calls))
	indexes := make(chan int)

	var wg sync.WaitGroup
	wg.Add(maxWorkers)
	for w := 0; w < maxWorkers; w++ {
		go func() {
			defer wg.Done()
			for i := range indexes {
				value, err := calls[i]()
				results[i] = Result{Value: value, Err: err}
			}
		}()
	}
	for i := range calls {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return results
}

// ExecuteParallel is a convenience method form of the package-level function.
func (c *Client) ExecuteParallel(calls []func() (any, error), maxWorkers int) []Result {
	return ExecuteParallel(calls, maxWorkers)
}
