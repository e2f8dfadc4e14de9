package protocol

import (
	"errors"
	"math/bits"
	"testing"

	"github.com/smazurov/kbcontrol/internal/keyboard"
)

func dynamicState() keyboard.State {
	s := keyboard.Default()
	s.SetMode(keyboard.ModeDynamic)
	s.SetEffect(keyboard.EffectNeon)
	s.SetSpeed(3)
	s.SetDirection(keyboard.DirectionRightToLeft)
	s.SetDynamicColor(keyboard.Red)
	return s
}

func TestEncodeDynamic_DefaultState(t *testing.T) {
	want := DynamicFrame{1, 5, 100, 0, 1, 255, 255, 255, 0, 1, 0, 0, 0, 0, 0, 0}

	if got := EncodeDynamic(keyboard.Default()); got != want {
		t.Errorf("EncodeDynamic(default) = %v, want %v", got, want)
	}
}

func TestEncodeBrightness_Dynamic(t *testing.T) {
	s := dynamicState()
	s.SetBrightness(50)

	want := DynamicFrame{2, 3, 50, 0, 2, 255, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0}
	if got := EncodeBrightness(s); got != want {
		t.Errorf("EncodeBrightness = %v, want %v", got, want)
	}
}

func TestEncodeBrightness_StaticZeroesEffectFields(t *testing.T) {
	s := dynamicState()
	s.SetMode(keyboard.ModeStatic)
	s.SetBrightness(25)

	got := EncodeBrightness(s)
	for _, i := range []int{0, 1, 4, 5, 6, 7} {
		if got[i] != 0 {
			t.Errorf("byte %d = %d, want 0 in static mode", i, got[i])
		}
	}
	if got[2] != 25 {
		t.Errorf("brightness byte = %d, want 25", got[2])
	}
	if got != EncodeBrightnessCompanion(s) {
		t.Error("static brightness frame should equal the companion frame")
	}
}

func TestDynamicFrameReservedBytes(t *testing.T) {
	states := []keyboard.State{keyboard.Default(), dynamicState()}
	for _, eff := range keyboard.Effects() {
		s := dynamicState()
		s.SetEffect(eff)
		states = append(states, s)
	}

	for _, s := range states {
		for name, f := range map[string]DynamicFrame{
			"full":       EncodeDynamic(s),
			"brightness": EncodeBrightness(s),
			"companion":  EncodeBrightnessCompanion(s),
		} {
			if len(f.Bytes()) != DynamicFrameSize {
				t.Fatalf("%s: len = %d", name, len(f.Bytes()))
			}
			if f[9] != 1 {
				t.Errorf("%s: commit byte = %d, want 1", name, f[9])
			}
			for _, i := range []int{3, 8, 10, 11, 12, 13, 14, 15} {
				if f[i] != 0 {
					t.Errorf("%s: reserved byte %d = %d", name, i, f[i])
				}
			}
		}
		if f := EncodeDynamic(s); f[0] != byte(s.Dynamic.Effect) || f[0] == 0 {
			t.Errorf("effect byte = %d for %v", f[0], s.Dynamic.Effect)
		}
	}
}

func TestEncodeDynamic_ClampsOutOfRangeFields(t *testing.T) {
	s := keyboard.Default()
	s.Brightness = 180
	s.Dynamic.Speed = 0
	s.Dynamic.Effect = 12
	s.Dynamic.Direction = 5

	got := EncodeDynamic(s)
	if got[0] != byte(keyboard.EffectTwinkling) {
		t.Errorf("effect = %d, want clamped to 7", got[0])
	}
	if got[1] != 1 {
		t.Errorf("speed = %d, want clamped to 1", got[1])
	}
	if got[2] != 100 {
		t.Errorf("brightness = %d, want clamped to 100", got[2])
	}
	if got[4] != 0 {
		t.Errorf("direction = %d, want 0", got[4])
	}
}

func TestEncodeBrightnessCompanion(t *testing.T) {
	want := DynamicFrame{0, 0, 100, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0}
	if got := EncodeBrightnessCompanion(dynamicState()); got != want {
		t.Errorf("EncodeBrightnessCompanion = %v, want %v", got, want)
	}
}

func TestEncodeStaticZone(t *testing.T) {
	s := keyboard.Default()
	s.SetZoneColor(2, keyboard.RGB{10, 20, 30})
	s.SetZoneEnabled(3, false)

	for zone := 1; zone <= 3; zone++ {
		f, err := EncodeStaticZone(s, zone)
		if err != nil {
			t.Fatalf("zone %d: %v", zone, err)
		}
		if f[0] != OpSetColor {
			t.Errorf("zone %d: opcode = %d", zone, f[0])
		}
		if f[1] != 1<<(zone-1) || bits.OnesCount8(f[1]) != 1 {
			t.Errorf("zone %d: selector = %08b, want one-hot bit %d", zone, f[1], zone-1)
		}
		z, _ := s.Zone(zone)
		if f[2] != z.Color[0] || f[3] != z.Color[1] || f[4] != z.Color[2] {
			t.Errorf("zone %d: color = %v, want %v", zone, f[2:5], z.Color)
		}
		if f[5] != 1 || f[6] != 1 || f[7] != 0 {
			t.Errorf("zone %d: enabled flags = %v, want [1 1 0]", zone, f[5:])
		}
	}
}

func TestEncodeStaticZone_DefaultState(t *testing.T) {
	for zone := 1; zone <= 3; zone++ {
		want := StaticFrame{0, 1 << (zone - 1), 255, 255, 255, 1, 1, 1}
		got, err := EncodeStaticZone(keyboard.Default(), zone)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("zone %d: got %v, want %v", zone, got, want)
		}
	}
}

func TestEncodeZoneToggle(t *testing.T) {
	s := keyboard.Default()
	s.SetZoneEnabled(2, false)

	want := StaticFrame{1, 2, 255, 255, 255, 1, 0, 1}
	got, err := EncodeZoneToggle(s, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("EncodeZoneToggle = %v, want %v", got, want)
	}

	for zone := 1; zone <= 3; zone++ {
		f, _ := EncodeZoneToggle(s, zone)
		if f[1] != byte(zone) {
			t.Errorf("zone %d: byte 1 = %d, want zone number", zone, f[1])
		}
	}
}

func TestInvalidZone(t *testing.T) {
	s := keyboard.Default()
	for _, zone := range []int{0, 4, -1} {
		_, err := EncodeStaticZone(s, zone)
		var zerr *InvalidZoneError
		if !errors.As(err, &zerr) || zerr.Zone != zone {
			t.Errorf("EncodeStaticZone(%d) error = %v", zone, err)
		}
		if _, err := EncodeZoneToggle(s, zone); err == nil {
			t.Errorf("EncodeZoneToggle(%d) should fail", zone)
		}
	}
}

func TestEncodingIsIdempotent(t *testing.T) {
	s := dynamicState()
	if EncodeDynamic(s) != EncodeDynamic(s) {
		t.Error("EncodeDynamic not idempotent")
	}
	a, _ := EncodeStaticZone(s, 3)
	b, _ := EncodeStaticZone(s, 3)
	if a != b {
		t.Error("EncodeStaticZone not idempotent")
	}
}
