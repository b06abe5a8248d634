package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/DJRGVC/Noter/application/ports/outbound"
	"github.com/DJRGVC/Noter/config"
	"github.com/donovanhide/eventsource"
)

const MaxStreamRetries = 3

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicStreamRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Stream    bool               `json:"stream"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicStreamChunk struct {
	Type  string `json:"type"`
	Delta struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"delta"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

type claudeStreamer struct {
	logger          outbound.LoggerPort
	anthropicConfig *config.AnthropicConfig
	workerPool      outbound.TaskDispatcher
}

func NewClaudeStreamer(anthropicConfig *config.AnthropicConfig, workerPool outbound.TaskDispatcher,
	logger outbound.LoggerPort) outbound.AnswerStreamerPort {
	return &claudeStreamer{
		logger:          logger,
		anthropicConfig: anthropicConfig,
		workerPool:      workerPool,
	}
}

func (s *claudeStreamer) Stream(ctx context.Context, req outbound.AnswerRequest) (<-chan string, <-chan error) {
	out := make(chan string)
	errCh := make(chan error, 1)

	retryCount := 0

	newCtx, cancel := context.WithCancel(ctx)

	err := s.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)
		defer cancel()

		httpReq, err := s.createRequest(newCtx, req)
		if err != nil {
			s.logger.Error(err, "Failed to create HTTP request for answer stream")
			errCh <- err
			return
		}

		stream, err := eventsource.SubscribeWithRequest("", httpReq)
		if err != nil {
			s.logger.Error(err, "Failed to subscribe to answer stream")
			errCh <- err
			return
		}

		for {
			select {
			case <-newCtx.Done():
				return
			case ev := <-stream.Events:
				fragment, done, err := s.extractFragment(ev.Data())
				if err != nil {
					errCh <- err
					return
				}
				if done {
					s.logger.Debug("answer stream closed by model")
					return
				}
				if fragment != "" {
					select {
					case out <- fragment:
					case <-newCtx.Done():
						return
					}
				}
				retryCount = 0
			case err := <-stream.Errors:
				if err == io.EOF {
					s.logger.Debug("answer stream reached EOF")
					return
				}
				if retryCount < MaxStreamRetries {
					s.logger.ErrorWithFields(err, "Error occurred during streaming, retrying", map[string]interface{}{
						"retry_count": retryCount})
					retryCount++
					continue
				}
				s.logger.Error(err, "Error occurred during streaming, max retries reached")
				errCh <- err
				return
			}
		}
	})
	if err != nil {
		s.logger.Error(err, "Failed to submit task to worker pool")
		errCh <- err
	}

	return out, errCh
}

// extractFragment pulls the text delta out of one SSE payload. Only
// content_block_delta events carry text; message_stop ends the stream; error
// events surface the upstream failure message.
func (s *claudeStreamer) extractFragment(data string) (fragment string, done bool, err error) {
	var chunk anthropicStreamChunk
	if err := json.Unmarshal([]byte(data), &chunk); err != nil {
		s.logger.ErrorWithFields(err, "Failed to unmarshal stream event", map[string]interface{}{
			"data": data,
		})
		return "", false, err
	}

	switch chunk.Type {
	case "content_block_delta":
		return chunk.Delta.Text, false, nil
	case "message_stop":
		return "", true, nil
	case "error":
		return "", false, &upstreamModelError{message: chunk.Error.Message}
	default:
		return "", false, nil
	}
}

type upstreamModelError struct {
	message string
}

func (e *upstreamModelError) Error() string {
	return e.message
}

func (s *claudeStreamer) createRequest(ctx context.Context, req outbound.AnswerRequest) (*http.Request, error) {
	messages := make([]anthropicMessage, 0, len(req.History)+1)
	for _, msg := range req.History {
		messages = append(messages, anthropicMessage{Role: msg.Role, Content: msg.Content})
	}
	messages = append(messages, anthropicMessage{Role: "user", Content: req.Question})

	body := anthropicStreamRequest{
		Model:     s.anthropicConfig.Model,
		MaxTokens: s.anthropicConfig.MaxTokens,
		Stream:    true,
		System:    req.System,
		Messages:  messages,
	}

	payloadBytes, err := json.Marshal(body)
	if err != nil {
		s.logger.Error(err, "Failed to marshal the request body")
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", s.anthropicConfig.ApiUrl+"/v1/messages", bytes.NewBuffer(payloadBytes))
	if err != nil {
		s.logger.Error(err, "Failed to create the HTTP request")
		return nil, err
	}

	httpReq.Header.Set("x-api-key", s.anthropicConfig.ApiKey)
	httpReq.Header.Set("anthropic-version", s.anthropicConfig.Version)
	httpReq.Header.Set("Content-Type", "application/json")

	return httpReq, nil
}
