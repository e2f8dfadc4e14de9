package api

import (
	"net/http"

	"github.com/smazurov/kbcontrol/internal/events"
	"github.com/smazurov/kbcontrol/internal/keyboard"
	"github.com/smazurov/kbcontrol/internal/session"
)

// Controller executes keyboard commands. Implemented by *session.Session.
type Controller interface {
	State() keyboard.State
	Dispatch(cmd session.Command) (session.Result, error)
	Apply(state keyboard.State) (session.Result, error)
	Reapply() (session.Result, error)
}

// Options configures the API server.
type Options struct {
	AuthUsername      string
	AuthPassword      string
	AllowedOrigins    []string // CORS origins; empty allows any
	Controller        Controller
	EventBus          *events.Bus
	PrometheusHandler http.Handler // Optional Prometheus metrics handler
}
