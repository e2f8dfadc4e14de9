package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smazurov/kbcontrol/internal/keyboard"
	"github.com/smazurov/kbcontrol/internal/session"
	"github.com/smazurov/kbcontrol/internal/store"
	"github.com/spf13/cobra"
)

func dryRunConfig(t *testing.T) session.Config {
	t.Helper()
	return session.Config{
		StateFile: filepath.Join(t.TempDir(), "state.toml"),
		DryRun:    true,
	}
}

func execute(t *testing.T, cfg session.Config, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "kbcontrol", SilenceUsage: true, SilenceErrors: true}
	AddCommands(root, func() session.Config { return cfg })

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func loadState(t *testing.T, cfg session.Config) keyboard.State {
	t.Helper()
	st, err := store.NewTOML(cfg.StateFile).Load()
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	return st
}

func TestParseSetCommand(t *testing.T) {
	tests := []struct {
		field   string
		value   string
		want    session.Command
		wantErr bool
	}{
		{"mode", "dynamic", session.SetMode{Mode: keyboard.ModeDynamic}, false},
		{"MODE", "Static", session.SetMode{Mode: keyboard.ModeStatic}, false},
		{"brightness", "40", session.SetBrightness{Brightness: 40}, false},
		{"brightness", "bright", nil, true},
		{"effect", "twinkling", session.SetEffect{Effect: keyboard.EffectTwinkling}, false},
		{"effect", "2", session.SetEffect{Effect: keyboard.EffectNeon}, false},
		{"speed", "9", session.SetSpeed{Speed: 9}, false},
		{"direction", "rtl", session.SetDirection{Direction: keyboard.DirectionRightToLeft}, false},
		{"color", "255,0,128", session.SetDynamicColor{Color: keyboard.RGB{255, 0, 128}}, false},
		{"color", "blurple", nil, true},
		{"volume", "11", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.field+"="+tt.value, func(t *testing.T) {
			got, err := ParseSetCommand(tt.field, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestSetSavesState(t *testing.T) {
	cfg := dryRunConfig(t)

	out, err := execute(t, cfg, "set", "brightness", "40")
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if !strings.Contains(out, "set-brightness: 1 frame(s) written") {
		t.Errorf("output = %q", out)
	}

	if _, err := execute(t, cfg, "set", "effect", "wave"); err != nil {
		t.Fatalf("set effect: %v", err)
	}

	st := loadState(t, cfg)
	if st.Brightness != 40 || st.Dynamic.Effect != keyboard.EffectWave {
		t.Errorf("state = %+v", st)
	}
	if st.Mode != keyboard.ModeStatic {
		t.Errorf("mode = %v, effect change must not switch mode", st.Mode)
	}
}

func TestZoneCommands(t *testing.T) {
	cfg := dryRunConfig(t)

	if _, err := execute(t, cfg, "zone", "color", "2", "#00ff00"); err != nil {
		t.Fatalf("zone color: %v", err)
	}
	if _, err := execute(t, cfg, "zone", "disable", "3"); err != nil {
		t.Fatalf("zone disable: %v", err)
	}
	if _, err := execute(t, cfg, "zone", "toggle", "1"); err != nil {
		t.Fatalf("zone toggle: %v", err)
	}

	st := loadState(t, cfg)
	if st.Zones[1].Color != (keyboard.RGB{0, 255, 0}) {
		t.Errorf("zone 2 color = %v", st.Zones[1].Color)
	}
	if st.Zones[0].Enabled || !st.Zones[1].Enabled || st.Zones[2].Enabled {
		t.Errorf("enabled flags = %v %v %v", st.Zones[0].Enabled, st.Zones[1].Enabled, st.Zones[2].Enabled)
	}

	if _, err := execute(t, cfg, "zone", "enable", "3"); err != nil {
		t.Fatalf("zone enable: %v", err)
	}
	if st := loadState(t, cfg); !st.Zones[2].Enabled {
		t.Error("zone 3 still disabled")
	}
}

func TestZoneRejectsInvalidZone(t *testing.T) {
	cfg := dryRunConfig(t)

	for _, zone := range []string{"0", "4", "left"} {
		if _, err := execute(t, cfg, "zone", "enable", zone); err == nil {
			t.Errorf("zone %q accepted", zone)
		}
	}
}

func TestStatus(t *testing.T) {
	cfg := dryRunConfig(t)

	out, err := execute(t, cfg, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "no saved state") {
		t.Errorf("output = %q", out)
	}

	if _, err := execute(t, cfg, "set", "mode", "dynamic"); err != nil {
		t.Fatalf("set mode: %v", err)
	}
	out, err = execute(t, cfg, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	for _, want := range []string{"mode:       dynamic", "brightness: 100", "zone 3:     #ffffff on"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestApplyFromFile(t *testing.T) {
	cfg := dryRunConfig(t)

	want := keyboard.Default()
	want.SetMode(keyboard.ModeDynamic)
	want.SetEffect(keyboard.EffectMeteor)
	src := filepath.Join(t.TempDir(), "preset.toml")
	if err := store.NewTOML(src).Save(want); err != nil {
		t.Fatalf("save preset: %v", err)
	}

	out, err := execute(t, cfg, "apply", src)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !strings.Contains(out, "apply: 1 frame(s) written") {
		t.Errorf("output = %q", out)
	}
	if got := loadState(t, cfg); got != want {
		t.Errorf("saved state = %+v, want %+v", got, want)
	}
}

func TestProbeMissingDevices(t *testing.T) {
	dir := t.TempDir()
	cfg := session.Config{
		DynamicPath: filepath.Join(dir, "acer-gkbbl-0"),
		StaticPath:  filepath.Join(dir, "acer-gkbbl-static-0"),
	}

	_, err := execute(t, cfg, "probe")
	if err == nil || !strings.Contains(err.Error(), "acer-gkbbl-static-0") {
		t.Errorf("err = %v", err)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, session.Config{}, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "kbcontrol ") {
		t.Errorf("output = %q", out)
	}
}
