package session

import "github.com/smazurov/kbcontrol/internal/keyboard"

// Command is a named change to the lighting state. Each command maps to a
// fixed encode, send and save sequence in Session.Dispatch.
type Command interface {
	Name() string
}

// SetMode switches between static and dynamic lighting.
type SetMode struct {
	Mode keyboard.Mode
}

// SetBrightness changes brightness (clamped to 0..100).
type SetBrightness struct {
	Brightness int
}

// SetEffect selects the dynamic effect.
type SetEffect struct {
	Effect keyboard.Effect
}

// SetSpeed changes the dynamic effect speed (clamped to 1..9).
type SetSpeed struct {
	Speed int
}

// SetDirection changes the dynamic effect direction.
type SetDirection struct {
	Direction keyboard.Direction
}

// SetDynamicColor changes the dynamic effect color.
type SetDynamicColor struct {
	Color keyboard.RGB
}

// SetZoneColor changes the color of one zone. Zone is 1-based.
type SetZoneColor struct {
	Zone  int
	Color keyboard.RGB
}

// ToggleZone enables or disables one zone. Zone is 1-based.
type ToggleZone struct {
	Zone    int
	Enabled bool
}

func (SetMode) Name() string         { return "set-mode" }
func (SetBrightness) Name() string   { return "set-brightness" }
func (SetEffect) Name() string       { return "set-effect" }
func (SetSpeed) Name() string        { return "set-speed" }
func (SetDirection) Name() string    { return "set-direction" }
func (SetDynamicColor) Name() string { return "set-dynamic-color" }
func (SetZoneColor) Name() string    { return "set-zone-color" }
func (ToggleZone) Name() string      { return "toggle-zone" }
