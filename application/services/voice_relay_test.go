package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DJRGVC/Noter/application/ports/inbound"
	"github.com/DJRGVC/Noter/application/ports/outbound"
	"github.com/DJRGVC/Noter/config"
	"github.com/DJRGVC/Noter/domain"
	"github.com/DJRGVC/Noter/infrastructure/adapters"
	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
)

type stubAnswerStreamer struct {
	tokens []string
	err    error
}

func (s *stubAnswerStreamer) Stream(ctx context.Context, _ outbound.AnswerRequest) (<-chan string, <-chan error) {
	tokenCh := make(chan string)
	errCh := make(chan error, 1)
	go func() {
		defer close(tokenCh)
		defer close(errCh)
		for _, token := range s.tokens {
			select {
			case tokenCh <- token:
			case <-ctx.Done():
				return
			}
		}
		if s.err != nil {
			errCh <- s.err
		}
	}()
	return tokenCh, errCh
}

type stubSynthesizer struct {
	chunks  [][]byte
	err     error
	failNow bool
}

func (s *stubSynthesizer) Synthesize(ctx context.Context, text <-chan string) (<-chan []byte, <-chan error) {
	chunkCh := make(chan []byte)
	errCh := make(chan error, 1)
	go func() {
		defer close(chunkCh)
		defer close(errCh)
		if s.failNow {
			errCh <- s.err
			return
		}
		for range text {
		}
		if s.err != nil {
			errCh <- s.err
			return
		}
		for _, chunk := range s.chunks {
			select {
			case chunkCh <- chunk:
			case <-ctx.Done():
				return
			}
		}
	}()
	return chunkCh, errCh
}

func testRelayConfig() *config.RelayConfig {
	return &config.RelayConfig{
		PollInterval: 10 * time.Millisecond,
		JoinTimeout:  time.Second,
	}
}

func collectRelayEvents(t *testing.T, events <-chan domain.RelayEvent) []domain.RelayEvent {
	t.Helper()

	var collected []domain.RelayEvent
	timeout := time.After(5 * time.Second)
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return collected
			}
			collected = append(collected, event)
		case <-timeout:
			t.Fatal("relay did not terminate")
		}
	}
}

func TestVoiceRelay_TextAndAudioInterleaved(t *testing.T) {
	workerPool, err := ants.NewPool(20)
	if err != nil {
		t.Fatal("Failed to create worker pool:", err)
	}
	defer workerPool.Release()

	logger := adapters.NewZerologWrapper()

	relay := NewVoiceRelay(logger, workerPool,
		&stubAnswerStreamer{tokens: []string{"Hello", " world"}},
		&stubSynthesizer{chunks: [][]byte{{0x01, 0x02}}},
		testRelayConfig())

	events, err := relay.StartRelay(context.Background(), inbound.AskParams{
		SessionID: uuid.NewString(),
		Question:  "What is photosynthesis?",
	})
	if err != nil {
		t.Fatal("Failed to start relay:", err)
	}

	collected := collectRelayEvents(t, events)

	var text strings.Builder
	var audio []string
	doneCount := 0
	for _, event := range collected {
		switch event.Type {
		case domain.TextEventType:
			text.WriteString(event.Content)
		case domain.AudioEventType:
			audio = append(audio, event.Content)
		case domain.DoneEventType:
			doneCount++
		case domain.ErrorEventType:
			t.Fatal("unexpected error event:", event.Content)
		}
	}

	if text.String() != "Hello world" {
		t.Fatalf("unexpected text: %q", text.String())
	}
	if len(audio) != 1 || audio[0] != "AQI=" {
		t.Fatalf("unexpected audio events: %v", audio)
	}
	if doneCount != 1 {
		t.Fatalf("expected exactly one done event, got %d", doneCount)
	}
}

func TestVoiceRelay_AnswerStreamFailure(t *testing.T) {
	workerPool, err := ants.NewPool(20)
	if err != nil {
		t.Fatal("Failed to create worker pool:", err)
	}
	defer workerPool.Release()

	logger := adapters.NewZerologWrapper()

	relay := NewVoiceRelay(logger, workerPool,
		&stubAnswerStreamer{tokens: []string{"partial"}, err: errors.New("upstream model error")},
		&stubSynthesizer{},
		testRelayConfig())

	events, err := relay.StartRelay(context.Background(), inbound.AskParams{
		SessionID: uuid.NewString(),
		Question:  "What is photosynthesis?",
	})
	if err != nil {
		t.Fatal("Failed to start relay:", err)
	}

	collected := collectRelayEvents(t, events)

	errorCount := 0
	for _, event := range collected {
		if event.Type == domain.ErrorEventType {
			errorCount++
			if !strings.Contains(event.Content, "upstream model error") {
				t.Fatalf("unexpected error content: %q", event.Content)
			}
		}
		if event.Type == domain.AudioEventType {
			t.Fatal("expected no audio after answer stream failure")
		}
	}
	if errorCount != 1 {
		t.Fatalf("expected exactly one error event, got %d", errorCount)
	}
}

func TestVoiceRelay_ClientDisconnectReleasesWorkers(t *testing.T) {
	workerPool, err := ants.NewPool(20)
	if err != nil {
		t.Fatal("Failed to create worker pool:", err)
	}
	defer workerPool.Release()

	logger := adapters.NewZerologWrapper()

	// Enough fragments to overflow every event buffer between the producers
	// and the abandoned output channel.
	tokens := make([]string, 200)
	for i := range tokens {
		tokens[i] = "fragment "
	}

	relay := NewVoiceRelay(logger, workerPool,
		&stubAnswerStreamer{tokens: tokens},
		&stubSynthesizer{},
		testRelayConfig())

	ctx, cancel := context.WithCancel(context.Background())

	events, err := relay.StartRelay(ctx, inbound.AskParams{
		SessionID: uuid.NewString(),
		Question:  "What is photosynthesis?",
	})
	if err != nil {
		t.Fatal("Failed to start relay:", err)
	}

	// Read a couple of events, then walk away like a dropped client.
	for i := 0; i < 2; i++ {
		select {
		case <-events:
		case <-time.After(time.Second):
			t.Fatal("relay produced no events")
		}
	}
	time.Sleep(50 * time.Millisecond)
	cancel()

	deadline := time.After(3 * time.Second)
	for workerPool.Running() > 0 {
		select {
		case <-deadline:
			t.Fatalf("%d pool workers still running after client disconnect", workerPool.Running())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestVoiceRelay_SynthesisFailure(t *testing.T) {
	workerPool, err := ants.NewPool(20)
	if err != nil {
		t.Fatal("Failed to create worker pool:", err)
	}
	defer workerPool.Release()

	logger := adapters.NewZerologWrapper()

	relay := NewVoiceRelay(logger, workerPool,
		&stubAnswerStreamer{tokens: []string{"Hello", " world"}},
		&stubSynthesizer{err: errors.New("synthesis backend unavailable"), failNow: true},
		testRelayConfig())

	events, err := relay.StartRelay(context.Background(), inbound.AskParams{
		SessionID: uuid.NewString(),
		Question:  "What is photosynthesis?",
	})
	if err != nil {
		t.Fatal("Failed to start relay:", err)
	}

	collected := collectRelayEvents(t, events)

	var text strings.Builder
	errorCount := 0
	for _, event := range collected {
		switch event.Type {
		case domain.TextEventType:
			text.WriteString(event.Content)
		case domain.AudioEventType:
			t.Fatal("expected no audio events when synthesis fails")
		case domain.DoneEventType:
			t.Fatal("expected no done event when synthesis fails")
		case domain.ErrorEventType:
			errorCount++
			if !strings.HasPrefix(event.Content, "TTS Error: ") {
				t.Fatalf("expected TTS error prefix, got %q", event.Content)
			}
		}
	}

	if text.String() != "Hello world" {
		t.Fatalf("text stream should survive synthesis failure, got %q", text.String())
	}
	if errorCount != 1 {
		t.Fatalf("expected exactly one error event, got %d", errorCount)
	}
}
