package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DJRGVC/Noter/application/ports/inbound"
	"github.com/DJRGVC/Noter/config"
	"github.com/DJRGVC/Noter/domain"
	"github.com/DJRGVC/Noter/infrastructure/adapters"
	"github.com/gin-gonic/gin"
)

type stubVoiceRelay struct {
	events []domain.RelayEvent
}

func (s *stubVoiceRelay) StartRelay(_ context.Context, _ inbound.AskParams) (<-chan domain.RelayEvent, error) {
	out := make(chan domain.RelayEvent, len(s.events))
	for _, event := range s.events {
		out <- event
	}
	close(out)
	return out, nil
}

type stubAnswerService struct{}

func (s *stubAnswerService) StreamAnswer(_ context.Context, _ inbound.AskParams) (<-chan domain.RelayEvent, error) {
	out := make(chan domain.RelayEvent, 2)
	out <- domain.NewTextEvent("Hello")
	out <- domain.NewDoneEvent()
	close(out)
	return out, nil
}

func (s *stubAnswerService) AskAboutNote(_ context.Context, _ inbound.NoteQuestionParams) (string, error) {
	return "The powerhouse.", nil
}

func newTestRouter(relay inbound.VoiceRelayPort) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	controller := NewAssistantController(adapters.NewZerologWrapper(), relay, &stubAnswerService{},
		&config.RelayConfig{PollInterval: 10 * time.Millisecond, JoinTimeout: time.Second})
	controller.RegisterRoutes(router)

	return router
}

func TestAssistantController_Ask_StreamsNDJSON(t *testing.T) {
	router := newTestRouter(&stubVoiceRelay{events: []domain.RelayEvent{
		domain.NewTextEvent("Hello"),
		domain.NewAudioEvent([]byte{0x01, 0x02}),
		domain.NewDoneEvent(),
	}})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/ask",
		strings.NewReader(`{"question": "What is photosynthesis?"}`))
	request.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if got := recorder.Header().Get("Content-Type"); got != "application/x-ndjson" {
		t.Fatalf("unexpected content type: %q", got)
	}

	lines := strings.Split(strings.TrimSpace(recorder.Body.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 NDJSON lines, got %d: %q", len(lines), recorder.Body.String())
	}

	var events []domain.RelayEvent
	for _, line := range lines {
		var event domain.RelayEvent
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			t.Fatalf("line is not valid JSON: %q", line)
		}
		events = append(events, event)
	}

	if events[0].Type != domain.TextEventType || events[0].Content != "Hello" {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	if events[1].Type != domain.AudioEventType || events[1].Content != "AQI=" {
		t.Fatalf("unexpected audio event: %+v", events[1])
	}
	if events[2].Type != domain.DoneEventType {
		t.Fatalf("unexpected final event: %+v", events[2])
	}
}

func TestAssistantController_Ask_RejectsMissingQuestion(t *testing.T) {
	router := newTestRouter(&stubVoiceRelay{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{}`))
	request.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}

func TestAssistantController_AskAboutNote(t *testing.T) {
	router := newTestRouter(&stubVoiceRelay{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/ask-about-note",
		strings.NewReader(`{"question": "What is the mitochondria?", "noteContent": "<p>notes</p>"}`))
	request.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "The powerhouse.") {
		t.Fatalf("unexpected body: %q", recorder.Body.String())
	}
}
