package services

import (
	"context"
	"fmt"

	"github.com/DJRGVC/Noter/application/ports/inbound"
	"github.com/DJRGVC/Noter/application/ports/outbound"
	"github.com/DJRGVC/Noter/domain"
)

const noteContentLimit = 10000

const noteQuestionPrompt = `You are a helpful study assistant. A student is reading their notes titled %q and has a question.

Here is the content of their notes:

%s

Student's question: %s

Please provide a helpful, concise answer based on the notes. If the answer isn't in the notes, say so and offer general guidance if appropriate.`

type answerService struct {
	logger     outbound.LoggerPort
	workerPool outbound.TaskDispatcher
	answers    outbound.AnswerStreamerPort
	completion outbound.CompletionPort
}

func NewAnswerService(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher,
	answers outbound.AnswerStreamerPort, completion outbound.CompletionPort) inbound.AnswerServicePort {
	return &answerService{
		logger:     logger,
		workerPool: workerPool,
		answers:    answers,
		completion: completion,
	}
}

func (s *answerService) StreamAnswer(ctx context.Context, params inbound.AskParams) (<-chan domain.RelayEvent, error) {
	out := make(chan domain.RelayEvent, eventQueueSize)

	newCtx, cancel := context.WithCancel(ctx)

	err := s.workerPool.Submit(func() {
		defer close(out)
		defer cancel()

		tokenCh, errCh := s.answers.Stream(newCtx, outbound.AnswerRequest{
			Question: params.Question,
			System:   params.Context,
			History:  params.History,
		})

		for tokenCh != nil || errCh != nil {
			select {
			case <-newCtx.Done():
				return
			case err, ok := <-errCh:
				if !ok {
					errCh = nil
					continue
				}
				s.logger.Error(err, "answer stream failed")
				select {
				case out <- domain.NewErrorEvent(err.Error()):
				case <-newCtx.Done():
				}
				return
			case token, ok := <-tokenCh:
				if !ok {
					tokenCh = nil
					continue
				}
				select {
				case out <- domain.NewTextEvent(token):
				case <-newCtx.Done():
					return
				}
			}
		}

		select {
		case out <- domain.NewDoneEvent():
		case <-newCtx.Done():
		}
	})
	if err != nil {
		cancel()
		s.logger.Error(err, "failed to submit answer stream")
		return nil, err
	}

	return out, nil
}

func (s *answerService) AskAboutNote(ctx context.Context, params inbound.NoteQuestionParams) (string, error) {
	if params.Question == "" || params.NoteContent == "" {
		return "", fmt.Errorf("question and note content are required")
	}

	content := params.NoteContent
	if len(content) > noteContentLimit {
		content = content[:noteContentLimit]
	}

	title := params.NoteTitle
	if title == "" {
		title = "the note"
	}

	answer, err := s.completion.Complete(ctx, outbound.CompletionRequest{
		Prompt:    fmt.Sprintf(noteQuestionPrompt, title, content, params.Question),
		MaxTokens: 1024,
	})
	if err != nil {
		s.logger.Error(err, "failed to answer note question")
		return "", err
	}

	return answer, nil
}
