package outbound

import "context"

type CompletionRequest struct {
	Prompt    string
	System    string
	Model     string
	MaxTokens int
}

// CompletionPort is the non-streaming language-model call used by the
// study-set and animation endpoints.
type CompletionPort interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
