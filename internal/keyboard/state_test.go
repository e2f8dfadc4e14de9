package keyboard

import "testing"

func TestDefault(t *testing.T) {
	s := Default()

	if s.Mode != ModeStatic {
		t.Errorf("Mode = %v, want static", s.Mode)
	}
	if s.Brightness != 100 {
		t.Errorf("Brightness = %d, want 100", s.Brightness)
	}
	if s.Dynamic.Effect != EffectBreathing || s.Dynamic.Speed != 5 {
		t.Errorf("Dynamic = %+v, want breathing at speed 5", s.Dynamic)
	}
	if s.Dynamic.Direction != DirectionLeftToRight {
		t.Errorf("Direction = %v, want left-to-right", s.Dynamic.Direction)
	}
	if s.Dynamic.Color != White {
		t.Errorf("Color = %v, want white", s.Dynamic.Color)
	}
	for i, z := range s.Zones {
		if z.Color != White || !z.Enabled {
			t.Errorf("zone %d = %+v, want white and enabled", i+1, z)
		}
	}
}

func TestSettersClamp(t *testing.T) {
	tests := []struct {
		name  string
		apply func(*State)
		check func(State) bool
	}{
		{"brightness above range", func(s *State) { s.SetBrightness(250) }, func(s State) bool { return s.Brightness == 100 }},
		{"brightness below range", func(s *State) { s.SetBrightness(-4) }, func(s State) bool { return s.Brightness == 0 }},
		{"brightness in range", func(s *State) { s.SetBrightness(75) }, func(s State) bool { return s.Brightness == 75 }},
		{"speed zero", func(s *State) { s.SetSpeed(0) }, func(s State) bool { return s.Dynamic.Speed == 1 }},
		{"speed above range", func(s *State) { s.SetSpeed(42) }, func(s State) bool { return s.Dynamic.Speed == 9 }},
		{"effect zero", func(s *State) { s.SetEffect(0) }, func(s State) bool { return s.Dynamic.Effect == EffectBreathing }},
		{"effect above range", func(s *State) { s.SetEffect(20) }, func(s State) bool { return s.Dynamic.Effect == EffectTwinkling }},
		{"unknown direction", func(s *State) { s.SetDirection(9) }, func(s State) bool { return s.Dynamic.Direction == DirectionNone }},
		{"unknown mode", func(s *State) { s.SetMode(7) }, func(s State) bool { return s.Mode == ModeStatic }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.apply(&s)
			if !tt.check(s) {
				t.Errorf("unexpected state after setter: %+v", s)
			}
		})
	}
}

func TestZoneSettersUseOneBasedNumbers(t *testing.T) {
	s := Default()

	s.SetZoneColor(1, Red)
	s.SetZoneEnabled(3, false)

	if s.Zones[0].Color != Red {
		t.Errorf("zone 1 color = %v, want red", s.Zones[0].Color)
	}
	if s.Zones[2].Enabled {
		t.Error("zone 3 should be disabled")
	}

	z, ok := s.Zone(1)
	if !ok || z.Color != Red {
		t.Errorf("Zone(1) = %+v, %v", z, ok)
	}
}

func TestZoneSettersIgnoreInvalidZone(t *testing.T) {
	s := Default()
	before := s

	s.SetZoneColor(0, Red)
	s.SetZoneColor(4, Red)
	s.SetZoneEnabled(-1, false)

	if s != before {
		t.Errorf("state changed for invalid zones: %+v", s)
	}
	if _, ok := s.Zone(4); ok {
		t.Error("Zone(4) should not be ok")
	}
}

func TestNormalize(t *testing.T) {
	s := State{
		Mode:       5,
		Brightness: 200,
		Dynamic:    Dynamic{Effect: 0, Speed: 0, Direction: 8},
	}
	s.Normalize()

	if s.Mode != ModeStatic || s.Brightness != 100 {
		t.Errorf("mode/brightness not normalized: %+v", s)
	}
	if s.Dynamic.Effect != EffectBreathing || s.Dynamic.Speed != 1 || s.Dynamic.Direction != DirectionNone {
		t.Errorf("dynamic not normalized: %+v", s.Dynamic)
	}
}
