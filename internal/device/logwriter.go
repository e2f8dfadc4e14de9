package device

import (
	"encoding/hex"
	"log/slog"
)

// logWriter accepts frames and logs them without touching hardware.
type logWriter struct {
	endpoint string
	logger   *slog.Logger
}

func newLogWriter(endpoint string, logger *slog.Logger) *logWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &logWriter{
		endpoint: endpoint,
		logger:   logger,
	}
}

// Write logs the frame and reports it fully written.
func (w *logWriter) Write(frame []byte) (int, error) {
	w.logger.Info("Dry run, frame not written",
		"endpoint", w.endpoint,
		"frame", frameHex(frame))
	return len(frame), nil
}

func (w *logWriter) Close() error {
	return nil
}

func frameHex(frame []byte) string {
	return hex.EncodeToString(frame)
}
