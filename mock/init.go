package mock_relay

import (
	"github.com/DJRGVC/Noter/application/ports/outbound"
	"github.com/gin-gonic/gin"
)

func Init(g *gin.Engine, workerPool outbound.TaskDispatcher, eventsFile string, logger outbound.LoggerPort) {
	eventReader := NewFileEventReader(logger)
	runner := NewRunner(workerPool, eventReader, eventsFile, logger)
	mockController := NewMockRelayController(logger, runner)

	mockController.RegisterRoutes(g)
}
