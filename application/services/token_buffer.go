package services

import (
	"context"
	"sync"
	"time"

	"github.com/DJRGVC/Noter/application/ports/outbound"
)

// TokenBuffer is the unbounded queue between the answer stream and the speech
// synthesizer. One producer pushes fragments, one consumer drains them; Close
// marks the end of the stream. A consumer blocked in Next observes Close
// promptly and fragments are never dropped or reordered.
type TokenBuffer struct {
	mu      sync.Mutex
	pending []string
	closed  bool
	notify  chan struct{}
}

func NewTokenBuffer() *TokenBuffer {
	return &TokenBuffer{
		notify: make(chan struct{}, 1),
	}
}

// Push appends a fragment. Pushes after Close are discarded.
func (b *TokenBuffer) Push(fragment string) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.pending = append(b.pending, fragment)
	b.mu.Unlock()
	b.wake()
}

// Close marks that no more fragments will arrive. Buffered fragments remain
// consumable; Next keeps yielding them until the buffer is drained.
func (b *TokenBuffer) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	b.wake()
}

func (b *TokenBuffer) wake() {
	select {
	case b.notify <- struct{}{}:
	default:
	}
}

// Next waits up to wait for the next fragment. ok reports whether a fragment
// was returned; open distinguishes a transiently empty buffer (true) from a
// closed and drained one (false).
func (b *TokenBuffer) Next(wait time.Duration) (fragment string, ok bool, open bool) {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		b.mu.Lock()
		if len(b.pending) > 0 {
			fragment = b.pending[0]
			b.pending = b.pending[1:]
			b.mu.Unlock()
			return fragment, true, true
		}
		closed := b.closed
		b.mu.Unlock()

		if closed {
			return "", false, false
		}

		select {
		case <-b.notify:
		case <-timer.C:
			return "", false, true
		}
	}
}

// Stream exposes the buffer as a channel for pull-based consumers. The
// channel closes once the buffer is closed and drained, or when ctx ends.
func (b *TokenBuffer) Stream(ctx context.Context, workerPool outbound.TaskDispatcher, pollInterval time.Duration) (<-chan string, error) {
	out := make(chan string)

	err := workerPool.Submit(func() {
		defer close(out)
		for {
			fragment, ok, open := b.Next(pollInterval)
			if ok {
				select {
				case out <- fragment:
				case <-ctx.Done():
					return
				}
				continue
			}
			if !open {
				return
			}
			select {
			case <-ctx.Done():
				return
			default:
			}
		}
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
