// Package keyboard holds the in-memory lighting state of the keyboard backlight.
//
// The model performs no I/O. Callers pair every setter with an encode+send
// and a save; see internal/session.
package keyboard

// Bounds of the numeric fields.
const (
	MinBrightness = 0
	MaxBrightness = 100
	MinSpeed      = 1
	MaxSpeed      = 9

	// ZoneCount is the number of independently lit keyboard regions.
	ZoneCount = 3
)

// Zone is one keyboard region in static mode.
type Zone struct {
	Color   RGB  `toml:"color" json:"color"`
	Enabled bool `toml:"enabled" json:"enabled"`
}

// Dynamic holds the parameters of the hardware-driven animation.
type Dynamic struct {
	Effect    Effect    `toml:"effect" json:"effect"`
	Speed     uint8     `toml:"speed" json:"speed"`
	Direction Direction `toml:"direction" json:"direction"`
	Color     RGB       `toml:"color" json:"color"`
}

// State is a full lighting snapshot. It is a plain value and comparable with ==.
//
// Zones are stored 0-based; every method taking a zone number expects the
// 1-based number used on the wire.
type State struct {
	Mode       Mode            `toml:"mode" json:"mode"`
	Brightness uint8           `toml:"brightness" json:"brightness"`
	Dynamic    Dynamic         `toml:"dynamic" json:"dynamic"`
	Zones      [ZoneCount]Zone `toml:"zones" json:"zones"`
}

// Default returns the state used when nothing usable is persisted.
func Default() State {
	return State{
		Mode:       ModeStatic,
		Brightness: MaxBrightness,
		Dynamic: Dynamic{
			Effect:    EffectBreathing,
			Speed:     5,
			Direction: DirectionLeftToRight,
			Color:     White,
		},
		Zones: [ZoneCount]Zone{
			{Color: White, Enabled: true},
			{Color: White, Enabled: true},
			{Color: White, Enabled: true},
		},
	}
}

// ValidZone reports whether zone is a 1-based zone number.
func ValidZone(zone int) bool {
	return zone >= 1 && zone <= ZoneCount
}

// SetMode sets the lighting mode. Unknown modes fall back to static.
func (s *State) SetMode(m Mode) {
	if m != ModeDynamic {
		m = ModeStatic
	}
	s.Mode = m
}

// SetBrightness sets brightness, clamped to 0..100.
func (s *State) SetBrightness(v int) {
	s.Brightness = uint8(ClampBrightness(v))
}

// SetEffect sets the dynamic effect, clamped to the known range.
func (s *State) SetEffect(e Effect) {
	s.Dynamic.Effect = ClampEffect(e)
}

// SetSpeed sets the effect speed, clamped to 1..9.
func (s *State) SetSpeed(v int) {
	s.Dynamic.Speed = uint8(ClampSpeed(v))
}

// SetDirection sets the effect direction. Unknown values become None.
func (s *State) SetDirection(d Direction) {
	if !d.Valid() {
		d = DirectionNone
	}
	s.Dynamic.Direction = d
}

// SetDynamicColor sets the color of the dynamic effect.
func (s *State) SetDynamicColor(c RGB) {
	s.Dynamic.Color = c
}

// Zone returns the zone with the given 1-based number.
// ok is false for numbers outside 1..3.
func (s State) Zone(zone int) (z Zone, ok bool) {
	if !ValidZone(zone) {
		return Zone{}, false
	}
	return s.Zones[zone-1], true
}

// SetZoneColor sets a zone color. Invalid zone numbers are ignored.
func (s *State) SetZoneColor(zone int, c RGB) {
	if ValidZone(zone) {
		s.Zones[zone-1].Color = c
	}
}

// SetZoneEnabled sets a zone's enabled flag. Invalid zone numbers are ignored.
func (s *State) SetZoneEnabled(zone int, enabled bool) {
	if ValidZone(zone) {
		s.Zones[zone-1].Enabled = enabled
	}
}

// Normalize clamps every field into range. Used after loading untrusted data.
func (s *State) Normalize() {
	s.SetMode(s.Mode)
	s.SetBrightness(int(s.Brightness))
	s.SetEffect(s.Dynamic.Effect)
	s.SetSpeed(int(s.Dynamic.Speed))
	s.SetDirection(s.Dynamic.Direction)
}

// ClampBrightness limits v to 0..100.
func ClampBrightness(v int) int {
	return clamp(v, MinBrightness, MaxBrightness)
}

// ClampSpeed limits v to 1..9.
func ClampSpeed(v int) int {
	return clamp(v, MinSpeed, MaxSpeed)
}

// ClampEffect limits e to the known effects.
func ClampEffect(e Effect) Effect {
	return Effect(clamp(int(e), int(minEffect), int(maxEffect)))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
