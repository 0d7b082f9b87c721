package potential

import "sync"

const minRowsPerWorker = 8

// parallelRows runs fn over [0, n) in contiguous chunks and waits for all of
// them.
func parallelRows(n, workers int, fn func(start, end int)) {
	if workers <= 1 || n <= minRowsPerWorker {
		fn(0, n)
		return
	}
	if n/minRowsPerWorker < workers {
		workers = n / minRowsPerWorker
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
