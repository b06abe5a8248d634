package inbound

import (
	"context"

	"github.com/DJRGVC/Noter/domain"
)

type NoteQuestionParams struct {
	Question    string
	NoteContent string
	NoteTitle   string
}

type AnswerServicePort interface {
	// StreamAnswer is the text-only variant of the relay: text events then
	// done, or an error event on upstream failure.
	StreamAnswer(ctx context.Context, params AskParams) (<-chan domain.RelayEvent, error)
	AskAboutNote(ctx context.Context, params NoteQuestionParams) (string, error)
}
