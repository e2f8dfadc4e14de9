// Package session owns the keyboard devices and the lighting state, and turns
// named commands into ordered device writes followed by a state save.
package session

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/smazurov/kbcontrol/internal/device"
	"github.com/smazurov/kbcontrol/internal/events"
	"github.com/smazurov/kbcontrol/internal/keyboard"
	"github.com/smazurov/kbcontrol/internal/store"
)

// Store is the persistence bridge.
type Store interface {
	Load() (keyboard.State, error)
	Save(keyboard.State) error
	Path() string
}

// Endpoint is a write handle to one device file.
type Endpoint interface {
	Send(frame []byte) error
	Close() error
}

// Options configures a Session built from already acquired endpoints.
type Options struct {
	Dynamic Endpoint
	Static  Endpoint
	Store   Store
	// SkipBrightnessCompanion stops the brightness-only dynamic frame that
	// follows each zone frame when switching to static.
	SkipBrightnessCompanion bool
	EventBus                *events.Bus
	Logger                  *slog.Logger
}

// Config describes where a Session finds its devices and state file.
type Config struct {
	DynamicPath             string
	StaticPath              string
	StateFile               string
	SkipBrightnessCompanion bool
	// DryRun logs frames instead of opening the devices.
	DryRun bool
}

// Result describes what a command did.
type Result struct {
	Command   string
	State     keyboard.State
	Frames    int
	Persisted bool
	// PersistErr is set when the save failed. The hardware write already
	// happened and is not rolled back.
	PersistErr error
}

// Session serializes commands so that every encode, send and save sequence
// completes before the next one starts.
type Session struct {
	mu        sync.Mutex
	state     keyboard.State
	endpoints map[string]Endpoint
	store     Store
	companion bool
	bus       *events.Bus
	logger    *slog.Logger
	closed    bool
}

// Open acquires both device endpoints and returns a session owning them.
// Release them with Close.
func Open(cfg Config, bus *events.Bus, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var pair *device.Pair
	if cfg.DryRun {
		logger.Warn("Dry run enabled, frames will be logged instead of written")
		pair = device.DryRunPair(logger)
	} else {
		var err error
		pair, err = device.OpenPair(cfg.DynamicPath, cfg.StaticPath, logger)
		if err != nil {
			return nil, err
		}
	}

	return New(Options{
		Dynamic:                 pair.Dynamic,
		Static:                  pair.Static,
		Store:                   store.NewTOML(cfg.StateFile),
		SkipBrightnessCompanion: cfg.SkipBrightnessCompanion,
		EventBus:                bus,
		Logger:                  logger,
	}), nil
}

// New creates a session around the given endpoints. The state starts at
// keyboard.Default until Load or Start is called.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		state: keyboard.Default(),
		endpoints: map[string]Endpoint{
			device.EndpointDynamic: opts.Dynamic,
			device.EndpointStatic:  opts.Static,
		},
		store:     opts.Store,
		companion: !opts.SkipBrightnessCompanion,
		bus:       opts.EventBus,
		logger:    logger,
	}
}

// State returns a snapshot of the current state.
func (s *Session) State() keyboard.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// StatePath returns the file the state is persisted to.
func (s *Session) StatePath() string {
	return s.store.Path()
}

// Load reads the persisted state without touching the hardware. A missing or
// unreadable state file is replaced by keyboard.Default.
func (s *Session) Load() keyboard.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load()
	switch {
	case err == nil:
		s.logger.Debug("State loaded", "path", s.store.Path())
	case errors.Is(err, store.ErrNotFound):
		s.logger.Info("No saved state, using defaults", "path", s.store.Path())
		state = keyboard.Default()
	default:
		s.logger.Warn("Saved state unreadable, using defaults", "path", s.store.Path(), "error", err)
		state = keyboard.Default()
	}

	s.state = state
	return state
}

// Start loads the persisted state and writes all of it to the hardware.
func (s *Session) Start() (Result, error) {
	s.Load()
	return s.Reapply()
}

// Reapply writes the current state to the hardware: the full static sequence
// in static mode, one dynamic frame in dynamic mode.
func (s *Session) Reapply() (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked("apply", s.state, false)
}

// Apply replaces the whole state and writes it to the hardware. A state equal
// to the current one is ignored.
func (s *Session) Apply(state keyboard.State) (Result, error) {
	state.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	if state == s.state {
		return Result{Command: "apply", State: state}, nil
	}
	return s.applyLocked("apply", state, true)
}

func (s *Session) applyLocked(name string, state keyboard.State, persist bool) (Result, error) {
	if s.closed {
		return Result{}, NewError(ErrCodeClosed, "session is closed", nil)
	}

	p, err := enterMode(state, s.companion)
	if err != nil {
		return Result{}, NewError(ErrCodeInvalidCommand, name, err)
	}
	s.state = state
	return s.commit(name, p, persist)
}

// Dispatch applies cmd to the state, writes the frames it requires and saves
// the new state. A write failure aborts the command and is returned; the
// in-memory state keeps the change and may now differ from the hardware.
// A save failure is reported in Result.PersistErr only.
func (s *Session) Dispatch(cmd Command) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Result{}, NewError(ErrCodeClosed, "session is closed", nil)
	}
	if cmd == nil {
		return Result{}, NewError(ErrCodeInvalidCommand, "nil command", nil)
	}

	next := s.state
	var (
		p   plan
		err error
	)

	switch c := cmd.(type) {
	case SetMode:
		if c.Mode != keyboard.ModeStatic && c.Mode != keyboard.ModeDynamic {
			return Result{}, NewError(ErrCodeInvalidCommand, fmt.Sprintf("unknown mode %d", int(c.Mode)), nil)
		}
		next.SetMode(c.Mode)
		p, err = enterMode(next, s.companion)
	case SetBrightness:
		next.SetBrightness(c.Brightness)
		p = brightnessChange(next)
	case SetEffect:
		next.SetEffect(c.Effect)
		p = dynamicParamChange(next)
	case SetSpeed:
		next.SetSpeed(c.Speed)
		p = dynamicParamChange(next)
	case SetDirection:
		next.SetDirection(c.Direction)
		p = dynamicParamChange(next)
	case SetDynamicColor:
		next.SetDynamicColor(c.Color)
		p = dynamicParamChange(next)
	case SetZoneColor:
		if !keyboard.ValidZone(c.Zone) {
			return Result{}, invalidZone(c.Zone)
		}
		next.SetZoneColor(c.Zone, c.Color)
		p, err = zoneColorChange(next, c.Zone)
	case ToggleZone:
		if !keyboard.ValidZone(c.Zone) {
			return Result{}, invalidZone(c.Zone)
		}
		next.SetZoneEnabled(c.Zone, c.Enabled)
		p, err = zoneToggle(next, c.Zone)
	default:
		return Result{}, NewError(ErrCodeInvalidCommand, fmt.Sprintf("unsupported command %T", cmd), nil)
	}
	if err != nil {
		return Result{}, NewError(ErrCodeInvalidCommand, cmd.Name(), err)
	}

	s.state = next
	if len(p) == 0 {
		s.logger.Debug("State stored, not applied in current mode", "command", cmd.Name(), "mode", next.Mode)
	}
	return s.commit(cmd.Name(), p, true)
}

// commit sends p in order and then saves the state. Caller must hold s.mu.
func (s *Session) commit(name string, p plan, persist bool) (Result, error) {
	res := Result{Command: name, State: s.state}

	for _, w := range p {
		if err := s.endpoints[w.endpoint].Send(w.frame); err != nil {
			s.logger.Error("Command aborted on write failure",
				"command", name,
				"endpoint", w.endpoint,
				"frames_written", res.Frames,
				"error", err)
			s.bus.Publish(events.WriteFailedEvent{
				Endpoint:  w.endpoint,
				Command:   name,
				Error:     err.Error(),
				Timestamp: now(),
			})
			return res, fmt.Errorf("%s: %w", name, err)
		}
		res.Frames++
		s.bus.Publish(events.FrameWrittenEvent{
			Endpoint:  w.endpoint,
			Frame:     hex.EncodeToString(w.frame),
			Timestamp: now(),
		})
	}

	if persist {
		if err := s.store.Save(s.state); err != nil {
			res.PersistErr = NewError(ErrCodePersistenceFailure, "state not saved", err)
			s.logger.Warn("Failed to save state", "command", name, "path", s.store.Path(), "error", err)
			s.bus.Publish(events.PersistFailedEvent{
				Path:      s.store.Path(),
				Error:     err.Error(),
				Timestamp: now(),
			})
		} else {
			res.Persisted = true
		}
	}

	s.logger.Info("Command applied",
		"command", name,
		"mode", s.state.Mode,
		"frames", res.Frames,
		"persisted", res.Persisted)

	s.bus.Publish(events.StateChangedEvent{
		Command:   name,
		State:     s.state,
		Persisted: res.Persisted,
		Timestamp: now(),
	})
	return res, nil
}

// Close releases both device endpoints. Further commands fail.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	for _, name := range []string{device.EndpointDynamic, device.EndpointStatic} {
		if ep := s.endpoints[name]; ep != nil {
			errs = append(errs, ep.Close())
		}
	}
	s.logger.Debug("Session closed")
	return errors.Join(errs...)
}

func invalidZone(zone int) *Error {
	return NewError(ErrCodeInvalidCommand, fmt.Sprintf("invalid zone %d: want 1..%d", zone, keyboard.ZoneCount), nil)
}

func now() string {
	return time.Now().Format(time.RFC3339)
}
