package mock_relay

import (
	"context"
	"encoding/json"

	"github.com/DJRGVC/Noter/application/ports/outbound"
	"github.com/DJRGVC/Noter/domain"
	"github.com/DJRGVC/Noter/middleware"
	"github.com/gin-gonic/gin"
)

type MockRelayController interface {
	Ask(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type mockRelayController struct {
	logger outbound.LoggerPort
	runner *Runner
}

func NewMockRelayController(logger outbound.LoggerPort, runner *Runner) MockRelayController {
	return &mockRelayController{
		logger: logger,
		runner: runner,
	}
}

func (m *mockRelayController) Ask(c *gin.Context) {
	newCtx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	events, err := m.runner.Run(newCtx)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	for event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			m.logger.Error(err, "failed to marshal mock relay event")
			return
		}
		if _, err := c.Writer.Write(append(payload, '\n')); err != nil {
			return
		}
		c.Writer.Flush()
		if event.Type == domain.DoneEventType {
			return
		}
	}
}

func (m *mockRelayController) RegisterRoutes(g *gin.Engine) {
	g.POST("/api/ask/mock", middleware.StreamMiddleware(), m.Ask)
}
