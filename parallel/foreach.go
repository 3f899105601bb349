// Package parallel contains the bounded ForEach worker pool shared by the
// visualization driver and hashtron evaluation.
package parallel

import "context"
import "sync"

// ForEach executes a for loop with a limited number of concurrent goroutines.
// Each goroutine processes one integer, from 0 to length.
func ForEach(length, limit int, body func(i int)) {
	ForEachContext(context.Background(), length, limit, body)
}

// ForEachContext is ForEach which stops scheduling new iterations once ctx
// is done. Iterations already started run to completion. It returns the
// context error if any iteration was not scheduled.
func ForEachContext(ctx context.Context, length, limit int, body func(i int)) error {
	if limit <= 0 {
		limit = 1
	}
	if length <= 0 {
		return nil
	}
	if limit == 1 {
		for i := 0; i < length; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			body(i)
		}
		return nil
	}

	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	var err error

	for i := 0; i < length; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
		case sem <- struct{}{}:
		}
		if err != nil {
			break
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			body(i)
		}(i)
	}

	wg.Wait()
	return err
}
