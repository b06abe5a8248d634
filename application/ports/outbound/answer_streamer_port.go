package outbound

import (
	"context"

	"github.com/DJRGVC/Noter/domain"
)

type AnswerRequest struct {
	Question string
	System   string
	History  []domain.ChatMessage
}

// AnswerStreamerPort drives the language-model streaming call. Fragments arrive
// on the first channel in model emission order; the channel closes when the
// stream completes. Failures are reported on the error channel.
type AnswerStreamerPort interface {
	Stream(ctx context.Context, req AnswerRequest) (<-chan string, <-chan error)
}
