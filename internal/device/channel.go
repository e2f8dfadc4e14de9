// Package device writes protocol frames to the acer-gkbbl character devices.
package device

import (
	"io"
	"log/slog"
	"os"
)

// Endpoint names.
const (
	EndpointDynamic = "dynamic"
	EndpointStatic  = "static"
)

// Default device files created by the acer-gkbbl kernel module.
const (
	DefaultDynamicPath = "/dev/acer-gkbbl-0"
	DefaultStaticPath  = "/dev/acer-gkbbl-static-0"
)

// Channel is a long-lived write handle to one endpoint.
type Channel struct {
	name   string
	path   string
	w      io.WriteCloser
	logger *slog.Logger
}

// Open opens path write-only. The file must already exist and is neither
// created nor truncated.
func Open(name, path string, logger *slog.Logger) (*Channel, error) {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, newError(ErrCodeDeviceUnavailable, name, "cannot open "+path, err)
	}
	return NewChannel(name, path, f, logger), nil
}

// NewChannel wraps an already-open writer. Used for dry runs and tests.
func NewChannel(name, path string, w io.WriteCloser, logger *slog.Logger) *Channel {
	if logger == nil {
		logger = slog.Default()
	}
	return &Channel{
		name:   name,
		path:   path,
		w:      w,
		logger: logger.With("endpoint", name),
	}
}

// Name returns the endpoint name.
func (c *Channel) Name() string {
	return c.name
}

// Path returns the device path.
func (c *Channel) Path() string {
	return c.path
}

// Send writes frame in a single call. A short write is a failure and is
// not retried: the hardware state is undefined afterwards.
func (c *Channel) Send(frame []byte) error {
	n, err := c.w.Write(frame)
	if err != nil {
		c.logger.Warn("Frame write failed", "size", len(frame), "error", err)
		return newError(ErrCodeWriteFailure, c.name, "write to "+c.path+" failed", err)
	}
	if n != len(frame) {
		c.logger.Warn("Short frame write", "written", n, "size", len(frame))
		return newError(ErrCodeWriteFailure, c.name, "short write to "+c.path, io.ErrShortWrite)
	}

	c.logger.Debug("Frame written", "frame", frameHex(frame))
	return nil
}

// Close releases the handle.
func (c *Channel) Close() error {
	return c.w.Close()
}
