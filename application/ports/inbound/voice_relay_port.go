package inbound

import (
	"context"

	"github.com/DJRGVC/Noter/domain"
)

type AskParams struct {
	SessionID string
	Question  string
	Context   string
	History   []domain.ChatMessage
}

// VoiceRelayPort runs one duplex relay session: model fragments and
// synthesized audio interleaved on a single event channel. The channel closes
// once both producers have finished and all events are drained. Producer
// failures surface as error events, never as a closed-with-nothing channel.
type VoiceRelayPort interface {
	StartRelay(ctx context.Context, params AskParams) (<-chan domain.RelayEvent, error)
}
