package keyboard

import "testing"

func TestParseEffect(t *testing.T) {
	tests := []struct {
		input   string
		want    Effect
		wantErr bool
	}{
		{"breathing", EffectBreathing, false},
		{"Neon", EffectNeon, false},
		{" wave ", EffectWave, false},
		{"7", EffectTwinkling, false},
		{"0", 0, true},
		{"disco", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseEffect(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseEffect(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseEffect(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEffectWireCodes(t *testing.T) {
	for i, e := range Effects() {
		if uint8(e) != uint8(i+1) {
			t.Errorf("effect %v has code %d, want %d", e, uint8(e), i+1)
		}
	}
	if len(Effects()) != 7 {
		t.Errorf("len(Effects()) = %d, want 7", len(Effects()))
	}
}

func TestParseDirection(t *testing.T) {
	tests := map[string]Direction{
		"none":          DirectionNone,
		"ltr":           DirectionLeftToRight,
		"left-to-right": DirectionLeftToRight,
		"RTL":           DirectionRightToLeft,
		"2":             DirectionRightToLeft,
	}
	for input, want := range tests {
		got, err := ParseDirection(input)
		if err != nil {
			t.Errorf("ParseDirection(%q) error: %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("ParseDirection(%q) = %v, want %v", input, got, want)
		}
	}

	if _, err := ParseDirection("up"); err == nil {
		t.Error("ParseDirection(up) should fail")
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("Dynamic"); err != nil || m != ModeDynamic {
		t.Errorf("ParseMode(Dynamic) = %v, %v", m, err)
	}
	if m, err := ParseMode("static"); err != nil || m != ModeStatic {
		t.Errorf("ParseMode(static) = %v, %v", m, err)
	}
	if _, err := ParseMode("rainbow"); err == nil {
		t.Error("ParseMode(rainbow) should fail")
	}
}

func TestParseRGB(t *testing.T) {
	tests := []struct {
		input   string
		want    RGB
		wantErr bool
	}{
		{"red", Red, false},
		{"Indigo", Indigo, false},
		{"#00ff7f", RGB{0, 255, 127}, false},
		{"00FF7F", RGB{0, 255, 127}, false},
		{"255, 165, 0", Orange, false},
		{"256,0,0", RGB{}, true},
		{"#fff", RGB{}, true},
		{"zz0000", RGB{}, true},
		{"1,2", RGB{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRGB(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRGB(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRGB(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRGBString(t *testing.T) {
	if got := Violet.String(); got != "#9400d3" {
		t.Errorf("Violet.String() = %q, want #9400d3", got)
	}
}
