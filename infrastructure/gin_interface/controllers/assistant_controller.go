package controllers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/DJRGVC/Noter/application/ports/inbound"
	"github.com/DJRGVC/Noter/application/ports/outbound"
	"github.com/DJRGVC/Noter/config"
	"github.com/DJRGVC/Noter/domain"
	"github.com/DJRGVC/Noter/infrastructure/gin_interface/dto"
	"github.com/DJRGVC/Noter/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AssistantController interface {
	Ask(c *gin.Context)
	AskTextOnly(c *gin.Context)
	AskAboutNote(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type assistantController struct {
	logger      outbound.LoggerPort
	voiceRelay  inbound.VoiceRelayPort
	answers     inbound.AnswerServicePort
	relayConfig *config.RelayConfig
}

func NewAssistantController(logger outbound.LoggerPort, voiceRelay inbound.VoiceRelayPort,
	answers inbound.AnswerServicePort, relayConfig *config.RelayConfig) AssistantController {
	return &assistantController{
		logger:      logger,
		voiceRelay:  voiceRelay,
		answers:     answers,
		relayConfig: relayConfig,
	}
}

func (a *assistantController) Ask(c *gin.Context) {
	var askRequest dto.AskRequest
	if err := c.ShouldBindJSON(&askRequest); err != nil {
		err = c.AbortWithError(400, err)
		if err != nil {
			a.logger.Error(err, "failed to abort with error")
		}
		return
	}

	newCtx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	sessionID := uuid.NewString()

	events, err := a.voiceRelay.StartRelay(newCtx, inbound.AskParams{
		SessionID: sessionID,
		Question:  askRequest.Question,
		Context:   askRequest.Context,
		History:   askRequest.History,
	})
	if err != nil {
		err = c.AbortWithError(500, err)
		if err != nil {
			a.logger.Error(err, "failed to abort with error")
		}
		return
	}

	a.streamEvents(c, sessionID, events)
}

func (a *assistantController) AskTextOnly(c *gin.Context) {
	var askRequest dto.AskRequest
	if err := c.ShouldBindJSON(&askRequest); err != nil {
		err = c.AbortWithError(400, err)
		if err != nil {
			a.logger.Error(err, "failed to abort with error")
		}
		return
	}

	newCtx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	sessionID := uuid.NewString()

	events, err := a.answers.StreamAnswer(newCtx, inbound.AskParams{
		SessionID: sessionID,
		Question:  askRequest.Question,
		Context:   askRequest.Context,
		History:   askRequest.History,
	})
	if err != nil {
		err = c.AbortWithError(500, err)
		if err != nil {
			a.logger.Error(err, "failed to abort with error")
		}
		return
	}

	a.streamEvents(c, sessionID, events)
}

func (a *assistantController) AskAboutNote(c *gin.Context) {
	var noteRequest dto.NoteQuestionRequest
	if err := c.ShouldBindJSON(&noteRequest); err != nil {
		err = c.AbortWithError(400, err)
		if err != nil {
			a.logger.Error(err, "failed to abort with error")
		}
		return
	}

	answer, err := a.answers.AskAboutNote(c.Request.Context(), inbound.NoteQuestionParams{
		Question:    noteRequest.Question,
		NoteContent: noteRequest.NoteContent,
		NoteTitle:   noteRequest.NoteTitle,
	})
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, dto.NoteAnswerResponse{Answer: answer})
}

// streamEvents writes one JSON line per event. After a done event the loop
// keeps draining for at most the join timeout, then abandons the session so a
// hung producer cannot stall teardown.
func (a *assistantController) streamEvents(c *gin.Context, sessionID string, events <-chan domain.RelayEvent) {
	clientGone := c.Request.Context().Done()
	var joinDeadline <-chan time.Time

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if !a.writeEvent(c, event) {
				return
			}
			if event.Type == domain.DoneEventType {
				joinDeadline = time.After(a.relayConfig.JoinTimeout)
			}
		case <-clientGone:
			a.logger.DebugWithFields("client disconnected from relay", map[string]interface{}{
				"session_id": sessionID,
			})
			return
		case <-joinDeadline:
			a.logger.WarnWithFields("abandoning relay session after join timeout", map[string]interface{}{
				"session_id": sessionID,
			})
			return
		}
	}
}

func (a *assistantController) writeEvent(c *gin.Context, event domain.RelayEvent) bool {
	payload, err := json.Marshal(event)
	if err != nil {
		a.logger.Error(err, "failed to marshal relay event")
		return false
	}
	if _, err := c.Writer.Write(append(payload, '\n')); err != nil {
		return false
	}
	c.Writer.Flush()
	return true
}

func (a *assistantController) RegisterRoutes(g *gin.Engine) {
	g.POST("/api/ask", middleware.StreamMiddleware(), a.Ask)
	g.POST("/api/ask-text-only", middleware.StreamMiddleware(), a.AskTextOnly)
	g.POST("/api/ask-about-note", a.AskAboutNote)
}
