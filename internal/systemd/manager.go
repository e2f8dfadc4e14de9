// Package systemd talks to systemd over D-Bus: unit control for the
// kbcontrol service and logind sleep notifications.
package systemd

import (
	"context"

	"github.com/coreos/go-systemd/v22/dbus"
)

// ServiceName is the unit shipped for the kbcontrol daemon.
const ServiceName = "kbcontrol.service"

// Manager handles systemd service lifecycle operations via D-Bus.
type Manager struct {
	conn *dbus.Conn
}

// NewManager connects to the user instance of systemd, or to the system
// instance when system is true.
func NewManager(ctx context.Context, system bool) (*Manager, error) {
	var (
		conn *dbus.Conn
		err  error
	)
	if system {
		conn, err = dbus.NewSystemConnectionContext(ctx)
	} else {
		conn, err = dbus.NewUserConnectionContext(ctx)
	}
	if err != nil {
		return nil, err
	}
	return &Manager{conn: conn}, nil
}

// Status returns the ActiveState of a unit, e.g. "active" or "failed".
func (m *Manager) Status(ctx context.Context, unit string) (string, error) {
	prop, err := m.conn.GetUnitPropertyContext(ctx, unit, "ActiveState")
	if err != nil {
		return "", err
	}
	return unquote(prop.Value.String()), nil
}

// Restart restarts a unit and waits for the job to finish.
func (m *Manager) Restart(ctx context.Context, unit string) (string, error) {
	return m.run(ctx, unit, m.conn.RestartUnitContext)
}

// Start starts a unit and waits for the job to finish.
func (m *Manager) Start(ctx context.Context, unit string) (string, error) {
	return m.run(ctx, unit, m.conn.StartUnitContext)
}

// Stop stops a unit and waits for the job to finish.
func (m *Manager) Stop(ctx context.Context, unit string) (string, error) {
	return m.run(ctx, unit, m.conn.StopUnitContext)
}

type jobFunc func(ctx context.Context, name, mode string, ch chan<- string) (int, error)

// run queues a job in replace mode and returns its result ("done",
// "failed", ...).
func (m *Manager) run(ctx context.Context, unit string, job jobFunc) (string, error) {
	done := make(chan string, 1)
	if _, err := job(ctx, unit, "replace", done); err != nil {
		return "", err
	}
	select {
	case result := <-done:
		return result, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close cleanly closes the D-Bus connection.
func (m *Manager) Close() {
	if m.conn != nil {
		m.conn.Close()
	}
}

// unquote strips the quotes D-Bus variants add around strings.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
