package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
	"github.com/smazurov/kbcontrol/internal/events"
)

// registerSSERoutes registers the keyboard event stream.
func (s *Server) registerSSERoutes() {
	sse.Register(s.api, huma.Operation{
		OperationID: "events-stream",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Server-Sent Events Stream",
		Description: "State changes, frames written and failures. The current state is sent first.",
		Tags:        []string{"events"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, map[string]any{
		"state-changed":  events.StateChangedEvent{},
		"frame-written":  events.FrameWrittenEvent{},
		"write-failed":   events.WriteFailedEvent{},
		"persist-failed": events.PersistFailedEvent{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		eventCh := make(chan any, 32)

		unsubscribers := []func(){
			events.SubscribeToChannel[events.StateChangedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.FrameWrittenEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.WriteFailedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.PersistFailedEvent](s.eventBus, eventCh),
		}
		defer func() {
			for _, unsub := range unsubscribers {
				unsub()
			}
		}()

		if err := send.Data(events.StateChangedEvent{
			Command:   "connected",
			State:     s.controller.State(),
			Persisted: true,
			Timestamp: time.Now().Format(time.RFC3339),
		}); err != nil {
			return
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
