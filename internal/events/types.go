package events

import "github.com/smazurov/kbcontrol/internal/keyboard"

// Event type constants for kelindar/event.
const (
	TypeStateChanged uint32 = iota + 1
	TypeFrameWritten
	TypeWriteFailed
	TypePersistFailed
	TypeLogEntry
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// StateChangedEvent is published after a command has been written to the
// hardware.
type StateChangedEvent struct {
	Command   string         `json:"command" example:"set-brightness" doc:"Command that changed the state"`
	State     keyboard.State `json:"state" doc:"Lighting state after the command"`
	Persisted bool           `json:"persisted" doc:"Whether the state was saved"`
	Timestamp string         `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for StateChangedEvent.
func (e StateChangedEvent) Type() uint32 { return TypeStateChanged }

// FrameWrittenEvent is published for every frame accepted by an endpoint.
type FrameWrittenEvent struct {
	Endpoint  string `json:"endpoint" example:"dynamic" doc:"Endpoint name (dynamic or static)"`
	Frame     string `json:"frame" example:"0105640001ffffff0001000000000000" doc:"Hex-encoded frame"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for FrameWrittenEvent.
func (e FrameWrittenEvent) Type() uint32 { return TypeFrameWritten }

// WriteFailedEvent is published when an endpoint rejects a frame.
type WriteFailedEvent struct {
	Endpoint  string `json:"endpoint" example:"static" doc:"Endpoint name"`
	Command   string `json:"command" example:"set-zone-color" doc:"Command being executed"`
	Error     string `json:"error" doc:"Write error"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for WriteFailedEvent.
func (e WriteFailedEvent) Type() uint32 { return TypeWriteFailed }

// PersistFailedEvent is published when the state could not be saved.
type PersistFailedEvent struct {
	Path      string `json:"path" example:"/home/user/.config/kbcontrol/state.toml" doc:"State file"`
	Error     string `json:"error" doc:"Save error"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for PersistFailedEvent.
func (e PersistFailedEvent) Type() uint32 { return TypePersistFailed }

// LogEntryEvent carries one log record to /api/logs/stream clients.
type LogEntryEvent struct {
	Timestamp  string         `json:"timestamp" example:"2025-01-27T10:30:00.123456789Z" doc:"Record time"`
	Level      string         `json:"level" example:"info" doc:"Log level"`
	Module     string         `json:"module" example:"session" doc:"Logging module"`
	Message    string         `json:"message" example:"Command applied" doc:"Log message"`
	Attributes map[string]any `json:"attributes,omitempty" doc:"Structured attributes"`
}

// Type returns the event type identifier for LogEntryEvent.
func (e LogEntryEvent) Type() uint32 { return TypeLogEntry }
