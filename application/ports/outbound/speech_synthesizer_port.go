package outbound

import "context"

// SpeechSynthesizerPort opens a streaming synthesis session seeded by a
// pull-based text source. Audio chunks arrive on the first channel in
// synthesis order; the channel closes once the source is drained and the
// session finished. Failures are reported on the error channel.
type SpeechSynthesizerPort interface {
	Synthesize(ctx context.Context, text <-chan string) (<-chan []byte, <-chan error)
}
