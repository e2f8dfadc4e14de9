// Package protocol encodes lighting state into the fixed-size frames accepted
// by the acer-gkbbl character devices.
//
// Dynamic endpoint frames are 16 bytes:
//
//	0  effect      4  direction    8  reserved
//	1  speed       5  red          9  commit flag (always 1)
//	2  brightness  6  green        10-15 reserved
//	3  reserved    7  blue
//
// Static endpoint frames are 8 bytes:
//
//	0  opcode (0 set color, 1 toggle zones)
//	1  zone selector (bitmask for set color, zone number for toggle)
//	2-4  zone RGB
//	5-7  enabled flags of zones 1, 2 and 3
//
// All encoders are pure.
package protocol

import (
	"encoding/hex"
	"fmt"

	"github.com/smazurov/kbcontrol/internal/keyboard"
)

// Frame sizes in bytes.
const (
	DynamicFrameSize = 16
	StaticFrameSize  = 8
)

// Static endpoint opcodes.
const (
	OpSetColor    byte = 0
	OpToggleZones byte = 1
)

const (
	idxEffect     = 0
	idxSpeed      = 1
	idxBrightness = 2
	idxDirection  = 4
	idxRed        = 5
	idxCommit     = 9
)

// DynamicFrame is a frame for the dynamic endpoint.
type DynamicFrame [DynamicFrameSize]byte

// StaticFrame is a frame for the static endpoint.
type StaticFrame [StaticFrameSize]byte

// Bytes returns the frame as a slice for writing.
func (f DynamicFrame) Bytes() []byte { return f[:] }

// Bytes returns the frame as a slice for writing.
func (f StaticFrame) Bytes() []byte { return f[:] }

func (f DynamicFrame) String() string { return hex.EncodeToString(f[:]) }

func (f StaticFrame) String() string { return hex.EncodeToString(f[:]) }

// InvalidZoneError reports a zone number outside 1..3.
type InvalidZoneError struct {
	Zone int
}

func (e *InvalidZoneError) Error() string {
	return fmt.Sprintf("invalid zone %d: want 1..%d", e.Zone, keyboard.ZoneCount)
}

// EncodeDynamic builds a full dynamic update carrying the effect parameters.
func EncodeDynamic(s keyboard.State) DynamicFrame {
	var f DynamicFrame
	f[idxEffect] = byte(keyboard.ClampEffect(s.Dynamic.Effect))
	f[idxSpeed] = byte(keyboard.ClampSpeed(int(s.Dynamic.Speed)))
	f[idxBrightness] = brightness(s)
	f[idxDirection] = direction(s.Dynamic.Direction)
	copy(f[idxRed:idxRed+3], s.Dynamic.Color[:])
	f[idxCommit] = 1
	return f
}

// EncodeBrightness builds the frame sent when only brightness changes.
// In static mode the effect fields are zeroed; in dynamic mode it equals
// EncodeDynamic so the running animation is kept.
func EncodeBrightness(s keyboard.State) DynamicFrame {
	if s.Mode == keyboard.ModeDynamic {
		return EncodeDynamic(s)
	}
	return EncodeBrightnessCompanion(s)
}

// EncodeBrightnessCompanion builds the brightness-only dynamic frame that
// follows each static zone write during a switch to static mode.
func EncodeBrightnessCompanion(s keyboard.State) DynamicFrame {
	var f DynamicFrame
	f[idxBrightness] = brightness(s)
	f[idxCommit] = 1
	return f
}

// EncodeStaticZone builds a set-color frame for a 1-based zone number.
func EncodeStaticZone(s keyboard.State, zone int) (StaticFrame, error) {
	z, ok := s.Zone(zone)
	if !ok {
		return StaticFrame{}, &InvalidZoneError{Zone: zone}
	}
	return staticFrame(s, OpSetColor, byte(1)<<(zone-1), z.Color), nil
}

// EncodeZoneToggle builds a toggle frame for a 1-based zone number. Unlike
// set-color, byte 1 carries the zone number itself.
func EncodeZoneToggle(s keyboard.State, zone int) (StaticFrame, error) {
	z, ok := s.Zone(zone)
	if !ok {
		return StaticFrame{}, &InvalidZoneError{Zone: zone}
	}
	return staticFrame(s, OpToggleZones, byte(zone), z.Color), nil
}

func staticFrame(s keyboard.State, op, selector byte, c keyboard.RGB) StaticFrame {
	return StaticFrame{
		op,
		selector,
		c[0], c[1], c[2],
		flag(s.Zones[0].Enabled),
		flag(s.Zones[1].Enabled),
		flag(s.Zones[2].Enabled),
	}
}

func brightness(s keyboard.State) byte {
	return byte(keyboard.ClampBrightness(int(s.Brightness)))
}

func direction(d keyboard.Direction) byte {
	if !d.Valid() {
		return byte(keyboard.DirectionNone)
	}
	return byte(d)
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}
