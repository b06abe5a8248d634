package mock_relay

import (
	"encoding/json"
	"os"

	"github.com/DJRGVC/Noter/application/ports/outbound"
	"github.com/DJRGVC/Noter/domain"
)

// MockEvent is one scripted relay event; Delay is milliseconds before emit.
type MockEvent struct {
	Type    domain.EventType `json:"type"`
	Content string           `json:"content"`
	Delay   int              `json:"delay"`
}

type EventReader interface {
	Read(fileName string) ([]MockEvent, error)
}

type fileEventReader struct {
	logger outbound.LoggerPort
}

func NewFileEventReader(logger outbound.LoggerPort) EventReader {
	return &fileEventReader{
		logger: logger,
	}
}

func (f *fileEventReader) Read(fileName string) ([]MockEvent, error) {
	payload, err := os.ReadFile(fileName)
	if err != nil {
		f.logger.Error(err, "failed to read mock events file")
		return nil, err
	}

	var events []MockEvent
	if err := json.Unmarshal(payload, &events); err != nil {
		f.logger.Error(err, "failed to unmarshal mock events file")
		return nil, err
	}

	return events, nil
}
