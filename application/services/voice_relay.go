package services

import (
	"context"
	"strings"

	"github.com/DJRGVC/Noter/application/ports/inbound"
	"github.com/DJRGVC/Noter/application/ports/outbound"
	"github.com/DJRGVC/Noter/channel_utils"
	"github.com/DJRGVC/Noter/config"
	"github.com/DJRGVC/Noter/domain"
)

// Responses are spoken aloud, so the model is steered toward short
// conversational phrasing before the stream starts.
const voiceInstructions = `

IMPORTANT - Voice Output Optimization:
Since your responses will be converted to speech, please:
1. Keep responses concise and conversational
2. Use natural, flowing language
3. Avoid overly complex sentences
4. Add natural pauses with commas
5. Be engaging and encouraging
6. Use simple, clear explanations

Remember: Students will be HEARING this, so make it easy to follow by ear!`

const eventQueueSize = 32

type voiceRelay struct {
	logger      outbound.LoggerPort
	workerPool  outbound.TaskDispatcher
	answers     outbound.AnswerStreamerPort
	synthesizer outbound.SpeechSynthesizerPort
	relayConfig *config.RelayConfig
}

func NewVoiceRelay(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher, answers outbound.AnswerStreamerPort,
	synthesizer outbound.SpeechSynthesizerPort, relayConfig *config.RelayConfig) inbound.VoiceRelayPort {
	return &voiceRelay{
		logger:      logger,
		workerPool:  workerPool,
		answers:     answers,
		synthesizer: synthesizer,
		relayConfig: relayConfig,
	}
}

func (r *voiceRelay) StartRelay(ctx context.Context, params inbound.AskParams) (<-chan domain.RelayEvent, error) {
	buffer := NewTokenBuffer()
	textEvents := make(chan domain.RelayEvent, eventQueueSize)
	audioEvents := make(chan domain.RelayEvent, eventQueueSize)

	newCtx, cancel := context.WithCancel(ctx)

	if err := r.workerPool.Submit(func() {
		r.runTextProducer(newCtx, params, buffer, textEvents)
	}); err != nil {
		cancel()
		r.logger.Error(err, "failed to submit text producer")
		return nil, err
	}

	if err := r.workerPool.Submit(func() {
		r.runSpeechProducer(newCtx, buffer, audioEvents)
	}); err != nil {
		cancel()
		buffer.Close()
		r.logger.Error(err, "failed to submit speech producer")
		return nil, err
	}

	merged, err := channel_utils.MergeChannels(newCtx, r.workerPool, (<-chan domain.RelayEvent)(textEvents), (<-chan domain.RelayEvent)(audioEvents))
	if err != nil {
		cancel()
		buffer.Close()
		r.logger.Error(err, "failed to merge relay event channels")
		return nil, err
	}

	out := make(chan domain.RelayEvent, eventQueueSize)
	err = r.workerPool.Submit(func() {
		defer close(out)
		defer cancel()
		for event := range merged {
			select {
			case out <- event:
			case <-newCtx.Done():
				// Nobody is reading anymore. Discard the backlog so the
				// merge pumps can finish and return their workers.
				for range merged {
				}
				return
			}
		}
		r.logger.DebugWithFields("relay session drained", map[string]interface{}{
			"session_id": params.SessionID,
		})
	})
	if err != nil {
		cancel()
		buffer.Close()
		r.logger.Error(err, "failed to submit relay drain loop")
		return nil, err
	}

	return out, nil
}

// runTextProducer forwards every model fragment both to the token buffer and
// to the outbound stream. The buffer is closed on every exit path so the
// speech producer is never left waiting on a dead stream.
func (r *voiceRelay) runTextProducer(ctx context.Context, params inbound.AskParams, buffer *TokenBuffer, events chan<- domain.RelayEvent) {
	defer close(events)
	defer buffer.Close()

	tokenCh, errCh := r.answers.Stream(ctx, outbound.AnswerRequest{
		Question: params.Question,
		System:   params.Context + voiceInstructions,
		History:  params.History,
	})

	// Both channels are drained to nil so an error buffered behind a closing
	// token channel is never lost.
	var fullText strings.Builder
	for tokenCh != nil || errCh != nil {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			r.logger.ErrorWithFields(err, "answer stream failed", map[string]interface{}{
				"session_id": params.SessionID,
			})
			buffer.Close()
			select {
			case events <- domain.NewErrorEvent(err.Error()):
			case <-ctx.Done():
			}
			return
		case token, ok := <-tokenCh:
			if !ok {
				tokenCh = nil
				continue
			}
			fullText.WriteString(token)
			buffer.Push(token)
			select {
			case events <- domain.NewTextEvent(token):
			case <-ctx.Done():
				return
			}
		}
	}

	r.logger.DebugWithFields("answer stream complete", map[string]interface{}{
		"session_id": params.SessionID,
		"chars":      fullText.Len(),
	})
}

// runSpeechProducer drains the token buffer through the synthesizer and emits
// audio events, terminated by a single done event on success.
func (r *voiceRelay) runSpeechProducer(ctx context.Context, buffer *TokenBuffer, events chan<- domain.RelayEvent) {
	defer close(events)

	textSource, err := buffer.Stream(ctx, r.workerPool, r.relayConfig.PollInterval)
	if err != nil {
		r.logger.Error(err, "failed to start token buffer stream")
		select {
		case events <- domain.NewErrorEvent("TTS Error: " + err.Error()):
		case <-ctx.Done():
		}
		return
	}

	chunkCh, errCh := r.synthesizer.Synthesize(ctx, textSource)
	for chunkCh != nil || errCh != nil {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			r.logger.Error(err, "speech synthesis failed")
			select {
			case events <- domain.NewErrorEvent("TTS Error: " + err.Error()):
			case <-ctx.Done():
			}
			return
		case chunk, ok := <-chunkCh:
			if !ok {
				chunkCh = nil
				continue
			}
			select {
			case events <- domain.NewAudioEvent(chunk):
			case <-ctx.Done():
				return
			}
		}
	}

	select {
	case events <- domain.NewDoneEvent():
	case <-ctx.Done():
	}
}
