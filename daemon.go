package main

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smazurov/kbcontrol/internal/api"
	"github.com/smazurov/kbcontrol/internal/config"
	"github.com/smazurov/kbcontrol/internal/events"
	"github.com/smazurov/kbcontrol/internal/keyboard"
	"github.com/smazurov/kbcontrol/internal/logging"
	"github.com/smazurov/kbcontrol/internal/metrics"
	"github.com/smazurov/kbcontrol/internal/session"
	"github.com/smazurov/kbcontrol/internal/store"
	"github.com/smazurov/kbcontrol/internal/systemd"
)

const shutdownTimeout = 5 * time.Second

// daemon owns the long-running pieces of the server command.
type daemon struct {
	opts   *Options
	logger *slog.Logger

	mu            sync.Mutex
	session       *session.Session
	server        *api.Server
	watcher       *config.Watcher[keyboard.State]
	stopMetrics   func()
	stopResume    context.CancelFunc
	stopRequested bool
}

func newDaemon(opts *Options, logger *slog.Logger) *daemon {
	return &daemon{opts: opts, logger: logger}
}

// run opens the devices, restores the saved state and serves until stop.
func (d *daemon) run() {
	eventBus := events.New()

	var stopMetrics func()
	if d.opts.MetricsEnabled {
		stopMetrics = metrics.Subscribe(eventBus)
	}

	sess, err := session.Open(d.opts.sessionConfig(), eventBus, logging.GetLogger("session"))
	if err != nil {
		d.logger.Error("Failed to open keyboard devices", "error", err)
		os.Exit(1)
	}

	if res, startErr := sess.Start(); startErr != nil {
		d.logger.Error("Failed to restore saved state", "error", startErr)
	} else {
		d.logger.Info("Saved state restored", "path", sess.StatePath(), "mode", res.State.Mode, "frames", res.Frames)
	}
	if d.opts.MetricsEnabled {
		metrics.SetState(sess.State())
	}

	apiOpts := &api.Options{
		AuthUsername:   d.opts.AuthUsername,
		AuthPassword:   d.opts.AuthPassword,
		AllowedOrigins: d.opts.allowedOrigins(),
		Controller:     sess,
		EventBus:       eventBus,
	}
	if d.opts.MetricsEnabled {
		apiOpts.PrometheusHandler = promhttp.Handler()
	}
	server := api.NewServer(apiOpts)

	var watcher *config.Watcher[keyboard.State]
	if d.opts.StateWatch {
		watcher = d.watchState(sess)
	}

	d.mu.Lock()
	if d.stopRequested {
		d.mu.Unlock()
		d.release(sess, watcher, stopMetrics)
		return
	}
	d.session = sess
	d.server = server
	d.watcher = watcher
	d.stopMetrics = stopMetrics
	if d.opts.StateResume {
		d.stopResume = d.watchResume(sess)
	}
	d.mu.Unlock()

	if startErr := server.Start(d.opts.Port); startErr != nil {
		d.logger.Error("Failed to start HTTP server", "error", startErr)
		os.Exit(1)
	}
}

// watchState applies external edits of the state file. Saves made by the
// session itself reload an equal state, which Apply ignores.
func (d *daemon) watchState(sess *session.Session) *config.Watcher[keyboard.State] {
	logger := logging.GetLogger("config")
	watcher := config.NewWatcher(
		sess.StatePath(),
		func(path string) (keyboard.State, error) {
			return store.NewTOML(path).Load()
		},
		logger,
		config.WithDebounce[keyboard.State](d.opts.debounce()),
	)
	watcher.OnReload(func(st keyboard.State) {
		res, err := sess.Apply(st)
		if err != nil {
			logger.Error("Failed to apply edited state file", "error", err)
			return
		}
		if res.Frames > 0 {
			logger.Info("State file edit applied", "mode", res.State.Mode, "frames", res.Frames)
		}
	})
	if err := watcher.Start(); err != nil {
		logger.Warn("State file watcher disabled", "path", sess.StatePath(), "error", err)
		return nil
	}
	return watcher
}

// watchResume writes the state again after each wake-up. The returned
// function stops the watch.
func (d *daemon) watchResume(sess *session.Session) context.CancelFunc {
	logger := logging.GetLogger("systemd")
	watcher, err := systemd.NewResumeWatcher(logger)
	if err != nil {
		logger.Warn("Resume detection disabled, logind unavailable", "error", err)
		return func() {}
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		defer watcher.Close()
		runErr := watcher.Run(ctx, func() {
			if _, err := sess.Reapply(); err != nil {
				logger.Error("Failed to restore lighting after resume", "error", err)
			}
		})
		if runErr != nil {
			logger.Warn("Resume detection stopped", "error", runErr)
		}
	}()
	return cancel
}

func (d *daemon) stop() {
	d.logger.Info("Shutting down server")

	d.mu.Lock()
	d.stopRequested = true
	server, sess, watcher, stopMetrics := d.server, d.session, d.watcher, d.stopMetrics
	stopResume := d.stopResume
	d.mu.Unlock()

	if stopResume != nil {
		stopResume()
	}

	if server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Stop(ctx); err != nil {
			d.logger.Error("Error stopping HTTP server", "error", err)
		}
	}
	d.release(sess, watcher, stopMetrics)
}

// release stops the watcher before closing the session so no reload races
// the close.
func (d *daemon) release(sess *session.Session, watcher *config.Watcher[keyboard.State], stopMetrics func()) {
	if watcher != nil {
		if err := watcher.Stop(); err != nil {
			d.logger.Warn("Error stopping state watcher", "error", err)
		}
	}
	if sess != nil {
		if err := sess.Close(); err != nil {
			d.logger.Warn("Error closing keyboard devices", "error", err)
		}
	}
	if stopMetrics != nil {
		stopMetrics()
	}
}
