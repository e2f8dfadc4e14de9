package keyboard

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// RGB is a 24-bit color as sent to the hardware.
type RGB [3]uint8

// Preset colors offered for dynamic effects.
var (
	Red    = RGB{255, 0, 0}
	Orange = RGB{255, 165, 0}
	Yellow = RGB{255, 255, 0}
	Green  = RGB{0, 128, 0}
	Blue   = RGB{0, 0, 255}
	Indigo = RGB{75, 0, 130}
	Violet = RGB{148, 0, 211}
	White  = RGB{255, 255, 255}
)

// Presets maps preset names to colors.
var Presets = map[string]RGB{
	"red":    Red,
	"orange": Orange,
	"yellow": Yellow,
	"green":  Green,
	"blue":   Blue,
	"indigo": Indigo,
	"violet": Violet,
	"white":  White,
}

// String formats the color as #rrggbb.
func (c RGB) String() string {
	return "#" + hex.EncodeToString(c[:])
}

// MarshalText implements encoding.TextMarshaler.
func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *RGB) UnmarshalText(text []byte) error {
	parsed, err := ParseRGB(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseRGB accepts a preset name, "#rrggbb", "rrggbb" or "r,g,b".
func ParseRGB(s string) (RGB, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if c, ok := Presets[v]; ok {
		return c, nil
	}

	if strings.Contains(v, ",") {
		parts := strings.Split(v, ",")
		if len(parts) != 3 {
			return RGB{}, fmt.Errorf("invalid color %q: want r,g,b", s)
		}
		var c RGB
		for i, p := range parts {
			n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
			if err != nil {
				return RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
			}
			c[i] = uint8(n)
		}
		return c, nil
	}

	v = strings.TrimPrefix(v, "#")
	if len(v) != 6 {
		return RGB{}, fmt.Errorf("invalid color %q", s)
	}
	raw, err := hex.DecodeString(v)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return RGB{raw[0], raw[1], raw[2]}, nil
}
