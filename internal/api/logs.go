package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
	"github.com/smazurov/kbcontrol/internal/events"
	"github.com/smazurov/kbcontrol/internal/logging"
)

// publishLogs forwards every buffered log entry to the event bus.
func publishLogs(bus *events.Bus) {
	logging.SetLogCallback(func(entry logging.LogEntry) {
		bus.Publish(toLogEvent(entry))
	})
}

func toLogEvent(entry logging.LogEntry) events.LogEntryEvent {
	return events.LogEntryEvent{
		Timestamp:  entry.Timestamp.Format(time.RFC3339Nano),
		Level:      entry.Level,
		Module:     entry.Module,
		Message:    entry.Message,
		Attributes: entry.Attributes,
	}
}

// LogStreamRequest selects how much history is replayed.
type LogStreamRequest struct {
	Last int `query:"last" default:"100" minimum:"0" maximum:"500" doc:"Buffered entries to replay before streaming, 0 for all"`
}

// registerLogRoutes registers the log streaming SSE endpoint.
func (s *Server) registerLogRoutes() {
	sse.Register(s.api, huma.Operation{
		OperationID: "logs-stream",
		Method:      http.MethodGet,
		Path:        "/api/logs/stream",
		Summary:     "Log Stream",
		Description: "Buffered log history followed by new entries as they are written",
		Tags:        []string{"logs"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, map[string]any{
		"message": events.LogEntryEvent{},
	}, func(ctx context.Context, input *LogStreamRequest, send sse.Sender) {
		eventCh := make(chan any, 100)
		unsubscribe := events.SubscribeToChannel[events.LogEntryEvent](s.eventBus, eventCh)
		defer unsubscribe()

		if buffer := logging.GetBuffer(); buffer != nil {
			for _, entry := range buffer.ReadLast(input.Last) {
				if err := send.Data(toLogEvent(entry)); err != nil {
					return
				}
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event := <-eventCh:
				if err := send.Data(event); err != nil {
					return
				}
			}
		}
	})
}
