package mock_relay

import (
	"context"
	"time"

	"github.com/DJRGVC/Noter/application/ports/outbound"
	"github.com/DJRGVC/Noter/domain"
)

// Runner replays a scripted event sequence with the recorded delays, for
// frontend work against a stable stream without burning API credits.
type Runner struct {
	logger      outbound.LoggerPort
	workerPool  outbound.TaskDispatcher
	eventReader EventReader
	eventsFile  string
}

func NewRunner(workerPool outbound.TaskDispatcher, eventReader EventReader, eventsFile string, logger outbound.LoggerPort) *Runner {
	return &Runner{
		logger:      logger,
		workerPool:  workerPool,
		eventReader: eventReader,
		eventsFile:  eventsFile,
	}
}

func (r *Runner) Run(ctx context.Context) (<-chan domain.RelayEvent, error) {
	events, err := r.eventReader.Read(r.eventsFile)
	if err != nil {
		return nil, err
	}

	out := make(chan domain.RelayEvent)

	err = r.workerPool.Submit(func() {
		defer close(out)
		for _, event := range events {
			if event.Delay > 0 {
				select {
				case <-time.After(time.Duration(event.Delay) * time.Millisecond):
				case <-ctx.Done():
					return
				}
			}
			select {
			case out <- domain.RelayEvent{Type: event.Type, Content: event.Content}:
			case <-ctx.Done():
				return
			}
		}
	})
	if err != nil {
		r.logger.Error(err, "failed to submit mock relay runner")
		return nil, err
	}

	return out, nil
}
