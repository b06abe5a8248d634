package adapters

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/DJRGVC/Noter/application/ports/outbound"
	"github.com/DJRGVC/Noter/config"
	"github.com/gorilla/websocket"
)

type fishOutboundEvent struct {
	Event   string          `json:"event"`
	Text    string          `json:"text,omitempty"`
	Request *fishTTSRequest `json:"request,omitempty"`
}

type fishTTSRequest struct {
	Text    string `json:"text"`
	ModelId string `json:"model_id"`
	Format  string `json:"format"`
}

type fishInboundEvent struct {
	Event   string `json:"event"`
	Audio   string `json:"audio,omitempty"`
	Message string `json:"message,omitempty"`
}

type fishSynthesizer struct {
	logger     outbound.LoggerPort
	fishConfig *config.FishConfig
	workerPool outbound.TaskDispatcher
	dialer     *websocket.Dialer
}

func NewFishSynthesizer(fishConfig *config.FishConfig, workerPool outbound.TaskDispatcher,
	logger outbound.LoggerPort) outbound.SpeechSynthesizerPort {
	return &fishSynthesizer{
		logger:     logger,
		fishConfig: fishConfig,
		workerPool: workerPool,
		dialer:     websocket.DefaultDialer,
	}
}

// Synthesize opens one websocket session per call: a start event seeds the
// request config, every fragment from text goes out as a text event, and a
// stop event follows source drain. Audio arrives as binary frames or
// base64-carrying audio events.
func (f *fishSynthesizer) Synthesize(ctx context.Context, text <-chan string) (<-chan []byte, <-chan error) {
	out := make(chan []byte)
	errCh := make(chan error, 1)

	err := f.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)

		header := http.Header{}
		header.Set("Authorization", "Bearer "+f.fishConfig.ApiKey)

		conn, _, err := f.dialer.DialContext(ctx, f.fishConfig.ApiUrl, header)
		if err != nil {
			f.logger.Error(err, "Failed to open speech synthesis session")
			errCh <- fmt.Errorf("failed to open synthesis session: %w", err)
			return
		}
		defer func() {
			if err := conn.Close(); err != nil {
				f.logger.Error(err, "Failed to close synthesis session")
			}
		}()

		// ReadMessage has no ctx; closing the conn unblocks it on cancel.
		watchdog := make(chan struct{})
		defer close(watchdog)
		if err := f.workerPool.Submit(func() {
			select {
			case <-ctx.Done():
				_ = conn.Close()
			case <-watchdog:
			}
		}); err != nil {
			f.logger.Error(err, "Failed to submit synthesis watchdog")
			errCh <- err
			return
		}

		if err := f.runWriter(ctx, conn, text); err != nil {
			errCh <- err
			return
		}

		if err := f.runReader(ctx, conn, out); err != nil {
			errCh <- err
		}
	})
	if err != nil {
		f.logger.Error(err, "Failed to submit synthesis task to worker pool")
		errCh <- err
		close(out)
		close(errCh)
	}

	return out, errCh
}

// runWriter feeds the session from its own goroutine; gorilla permits one
// concurrent writer and one concurrent reader per connection.
func (f *fishSynthesizer) runWriter(ctx context.Context, conn *websocket.Conn, text <-chan string) error {
	start := fishOutboundEvent{
		Event: "start",
		Request: &fishTTSRequest{
			Text:    "",
			ModelId: f.fishConfig.ModelId,
			Format:  f.fishConfig.Format,
		},
	}
	if err := conn.WriteJSON(start); err != nil {
		f.logger.Error(err, "Failed to start synthesis session")
		return fmt.Errorf("failed to start synthesis session: %w", err)
	}

	err := f.workerPool.Submit(func() {
		for {
			select {
			case <-ctx.Done():
				return
			case fragment, ok := <-text:
				if !ok {
					if err := conn.WriteJSON(fishOutboundEvent{Event: "stop"}); err != nil {
						f.logger.Error(err, "Failed to stop synthesis session")
					}
					return
				}
				if fragment == "" {
					continue
				}
				if err := conn.WriteJSON(fishOutboundEvent{Event: "text", Text: fragment}); err != nil {
					f.logger.Error(err, "Failed to write to synthesis session")
					return
				}
			}
		}
	})
	if err != nil {
		f.logger.Error(err, "Failed to submit synthesis writer")
		return fmt.Errorf("failed to start synthesis writer: %w", err)
	}

	return nil
}

func (f *fishSynthesizer) runReader(ctx context.Context, conn *websocket.Conn, out chan<- []byte) error {
	for {
		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			f.logger.Error(err, "Synthesis session read failed")
			return err
		}

		switch messageType {
		case websocket.BinaryMessage:
			select {
			case out <- payload:
			case <-ctx.Done():
				return nil
			}
		case websocket.TextMessage:
			var event fishInboundEvent
			if err := json.Unmarshal(payload, &event); err != nil {
				f.logger.Error(err, "Failed to unmarshal synthesis event")
				return err
			}
			switch event.Event {
			case "audio":
				chunk, err := base64.StdEncoding.DecodeString(event.Audio)
				if err != nil {
					f.logger.Error(err, "Failed to decode synthesis audio chunk")
					return err
				}
				select {
				case out <- chunk:
				case <-ctx.Done():
					return nil
				}
			case "finish":
				return nil
			case "error":
				return fmt.Errorf("synthesis session failed: %s", event.Message)
			}
		}
	}
}
