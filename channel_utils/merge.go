package channel_utils

import (
	"context"
	"sync"

	"github.com/DJRGVC/Noter/application/ports/outbound"
)

// MergeChannels fans channels into one. The merged channel preserves arrival
// order per input and closes once every input has closed. Cancelling ctx
// releases the pump workers even when nothing is draining merged, so an
// abandoned consumer cannot pin pool workers behind a blocked send.
func MergeChannels[T any](ctx context.Context, workerPool outbound.TaskDispatcher, channels ...<-chan T) (<-chan T, error) {
	var wg sync.WaitGroup
	merged := make(chan T)

	output := func(c <-chan T) {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case val, ok := <-c:
				if !ok {
					return
				}
				select {
				case merged <- val:
				case <-ctx.Done():
					return
				}
			}
		}
	}

	wg.Add(len(channels))
	for _, c := range channels {
		ch := c
		err := workerPool.Submit(func() {
			output(ch)
		})
		if err != nil {
			return nil, err
		}
	}

	err := workerPool.Submit(func() {
		wg.Wait()
		close(merged)
	})
	if err != nil {
		return nil, err
	}

	return merged, nil
}
