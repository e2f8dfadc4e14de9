package keyboard

import (
	"fmt"
	"strings"
)

// Mode selects which endpoint drives the backlight.
type Mode int

const (
	ModeStatic Mode = iota
	ModeDynamic
)

var modeNames = map[Mode]string{
	ModeStatic:  "static",
	ModeDynamic: "dynamic",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if _, ok := modeNames[m]; !ok {
		return nil, fmt.Errorf("invalid mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for mode, n := range modeNames {
		if n == name {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q (want static or dynamic)", s)
}

// Effect is a hardware animation. Values match the wire codes.
type Effect uint8

const (
	EffectBreathing Effect = iota + 1
	EffectNeon
	EffectWave
	EffectShifting
	EffectZoom
	EffectMeteor
	EffectTwinkling
)

const (
	minEffect = EffectBreathing
	maxEffect = EffectTwinkling
)

var effectNames = []string{
	EffectBreathing: "breathing",
	EffectNeon:      "neon",
	EffectWave:      "wave",
	EffectShifting:  "shifting",
	EffectZoom:      "zoom",
	EffectMeteor:    "meteor",
	EffectTwinkling: "twinkling",
}

// Effects lists all effects in wire order.
func Effects() []Effect {
	out := make([]Effect, 0, maxEffect)
	for e := minEffect; e <= maxEffect; e++ {
		out = append(out, e)
	}
	return out
}

// Valid reports whether e is a known effect.
func (e Effect) Valid() bool {
	return e >= minEffect && e <= maxEffect
}

func (e Effect) String() string {
	if e.Valid() {
		return effectNames[e]
	}
	return fmt.Sprintf("effect(%d)", uint8(e))
}

// MarshalText implements encoding.TextMarshaler.
func (e Effect) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("invalid effect %d", uint8(e))
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Effect) UnmarshalText(text []byte) error {
	parsed, err := ParseEffect(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// ParseEffect accepts an effect name or its wire code ("1".."7").
func ParseEffect(s string) (Effect, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, e := range Effects() {
		if effectNames[e] == name || fmt.Sprint(uint8(e)) == name {
			return e, nil
		}
	}
	return 0, fmt.Errorf("unknown effect %q", s)
}

// Direction is the travel direction of directional effects.
type Direction uint8

const (
	DirectionNone Direction = iota
	DirectionLeftToRight
	DirectionRightToLeft
)

var directionNames = []string{
	DirectionNone:        "none",
	DirectionLeftToRight: "left-to-right",
	DirectionRightToLeft: "right-to-left",
}

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d <= DirectionRightToLeft
}

func (d Direction) String() string {
	if d.Valid() {
		return directionNames[d]
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", uint8(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection accepts the canonical names plus the short forms ltr and rtl.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "0":
		return DirectionNone, nil
	case "left-to-right", "ltr", "1":
		return DirectionLeftToRight, nil
	case "right-to-left", "rtl", "2":
		return DirectionRightToLeft, nil
	default:
		return 0, fmt.Errorf("unknown direction %q (want none, ltr or rtl)", s)
	}
}
