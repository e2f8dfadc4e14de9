package systemd

import (
	"context"
	"errors"
	"log/slog"

	"github.com/coreos/go-systemd/v22/login1"
)

const (
	logindInterface   = "org.freedesktop.login1.Manager"
	prepareForSleep   = "PrepareForSleep"
	prepareForSleepFQ = logindInterface + "." + prepareForSleep
)

// ResumeWatcher calls a function each time the machine wakes from suspend
// or hibernation. The keyboard firmware forgets its lighting on sleep.
type ResumeWatcher struct {
	conn   *login1.Conn
	logger *slog.Logger
}

// NewResumeWatcher connects to logind on the system bus.
func NewResumeWatcher(logger *slog.Logger) (*ResumeWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := login1.New()
	if err != nil {
		return nil, err
	}
	return &ResumeWatcher{conn: conn, logger: logger}, nil
}

// Run blocks until ctx is done, calling onResume after every wake-up.
func (w *ResumeWatcher) Run(ctx context.Context, onResume func()) error {
	signals := w.conn.Subscribe(prepareForSleep)
	w.logger.Info("Watching for resume from sleep")

	for {
		select {
		case <-ctx.Done():
			return nil
		case sig, ok := <-signals:
			if !ok {
				return errors.New("logind signal channel closed")
			}
			if sig == nil {
				continue
			}
			if isResume(sig.Name, sig.Body) {
				w.logger.Info("Resumed from sleep")
				onResume()
			} else if sig.Name == prepareForSleepFQ {
				w.logger.Debug("Going to sleep")
			}
		}
	}
}

// Close releases the bus connection.
func (w *ResumeWatcher) Close() {
	w.conn.Close()
}

// isResume reports whether a logind signal announces the end of a sleep.
// PrepareForSleep carries true before sleeping and false after waking.
func isResume(name string, body []any) bool {
	if name != prepareForSleepFQ || len(body) == 0 {
		return false
	}
	start, ok := body[0].(bool)
	return ok && !start
}
