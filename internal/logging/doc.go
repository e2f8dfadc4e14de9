// Package logging provides structured logging with per-module levels.
//
// Records go to stdout when it is a terminal, pipe or file, to the systemd
// journal when journald is running, and always to an in-memory ring buffer
// that the HTTP API replays to /api/logs/stream clients.
//
// Initialize once at startup, then ask for a module logger:
//
//	logging.Initialize(logging.Config{
//		Level:   "info",
//		Format:  "text",
//		Modules: map[string]string{"device": "debug"},
//	})
//
//	logger := logging.GetLogger("session")
//	logger.Info("Command applied", "command", "set-mode", "frames", 6)
//
// The device module logs every frame at debug level, which is the quickest
// way to see what actually reached the hardware:
//
//	journalctl -t kbcontrol MODULE=device -p debug -f
//
// Example TOML configuration:
//
//	[logging]
//	level = "info"
//	format = "text"
//
//	[logging.modules]
//	device = "debug"
//	http = "warn"
package logging
