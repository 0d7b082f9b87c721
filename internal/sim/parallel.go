package sim

import (
	"context"
	"sync"
)

// Factory builds an independent simulation for one step pair, with its own
// charges and metrics.
type Factory func(p Params) (*Simulation, error)

// Sweep runs the same scenario once per step pair, each on its own
// goroutine and its own Simulation. Results keep the order of params.
func Sweep(ctx context.Context, build Factory, params []Params, cfg RunConfig) ([]*Result, error) {
	results := make([]*Result, len(params))
	errs := make([]error, len(params))

	var wg sync.WaitGroup
	for i, p := range params {
		wg.Add(1)
		go func(idx int, p Params) {
			defer wg.Done()

			s, err := build(p)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = s.Run(ctx, cfg)
		}(i, p)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
