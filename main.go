package main

import (
	"log/slog"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/smazurov/kbcontrol/cmd"
	"github.com/smazurov/kbcontrol/internal/config"
	"github.com/smazurov/kbcontrol/internal/device"
	"github.com/smazurov/kbcontrol/internal/logging"
	"github.com/smazurov/kbcontrol/internal/session"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"/etc/kbcontrol/config.toml"`

	// Device settings
	DeviceDynamic             string `help:"Dynamic effect device file" default:"/dev/acer-gkbbl-0" toml:"device.dynamic" env:"DEVICE_DYNAMIC"`
	DeviceStatic              string `help:"Static zone device file" default:"/dev/acer-gkbbl-static-0" toml:"device.static" env:"DEVICE_STATIC"`
	DeviceBrightnessCompanion bool   `help:"Send a brightness frame after each zone frame when switching to static" default:"true" toml:"device.brightness_companion" env:"DEVICE_BRIGHTNESS_COMPANION"`
	DeviceDryRun              bool   `help:"Log frames instead of writing them" default:"false" toml:"device.dry_run" env:"DEVICE_DRY_RUN"`

	// State settings
	StateFile     string `help:"State file (default $XDG_CONFIG_HOME/kbcontrol/state.toml)" toml:"state.file" env:"STATE_FILE"`
	StateWatch    bool   `help:"Apply external edits of the state file" default:"true" toml:"state.watch" env:"STATE_WATCH"`
	StateDebounce string `help:"Delay before applying a state file edit" default:"500ms" toml:"state.debounce" env:"STATE_DEBOUNCE"`
	StateResume   bool   `help:"Write the state again after resume from sleep" default:"true" toml:"state.reapply_on_resume" env:"STATE_REAPPLY_ON_RESUME"`

	// Server settings
	Port string `help:"Port to listen on" short:"p" default:"127.0.0.1:8091" toml:"server.port" env:"SERVER_PORT"`

	// Auth settings
	AuthUsername       string `help:"Basic auth username (empty disables auth)" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword       string `help:"Basic auth password" toml:"auth.password" env:"AUTH_PASSWORD"`
	AuthAllowedOrigins string `help:"Comma separated CORS origins (empty allows any)" toml:"auth.allowed_origins" env:"AUTH_ALLOWED_ORIGINS"`

	// Metrics settings
	MetricsEnabled bool `help:"Expose Prometheus metrics on /metrics" default:"true" toml:"metrics.enabled" env:"METRICS_ENABLED"`

	// Logging settings
	LoggingLevel   string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat  string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingSession string `help:"Session logging level" default:"info" toml:"logging.session" env:"LOGGING_SESSION"`
	LoggingDevice  string `help:"Device logging level" default:"info" toml:"logging.device" env:"LOGGING_DEVICE"`
	LoggingStore   string `help:"State store logging level" default:"info" toml:"logging.store" env:"LOGGING_STORE"`
	LoggingConfig  string `help:"Config watcher logging level" default:"info" toml:"logging.config" env:"LOGGING_CONFIG"`
	LoggingAPI     string `help:"API logging level" default:"info" toml:"logging.api" env:"LOGGING_API"`
	LoggingHTTP    string `help:"HTTP request logging level" default:"info" toml:"logging.http" env:"LOGGING_HTTP"`
	LoggingMetrics string `help:"Metrics logging level" default:"info" toml:"logging.metrics" env:"LOGGING_METRICS"`
	LoggingSystemd string `help:"Systemd integration logging level" default:"info" toml:"logging.systemd" env:"LOGGING_SYSTEMD"`
}

// sessionConfig maps options to the device and state settings.
func (o *Options) sessionConfig() session.Config {
	return session.Config{
		DynamicPath:             o.DeviceDynamic,
		StaticPath:              o.DeviceStatic,
		StateFile:               o.StateFile,
		SkipBrightnessCompanion: !o.DeviceBrightnessCompanion,
		DryRun:                  o.DeviceDryRun,
	}
}

func (o *Options) allowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(o.AuthAllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func (o *Options) debounce() time.Duration {
	d, err := time.ParseDuration(o.StateDebounce)
	if err != nil || d <= 0 {
		return config.DefaultDebounce
	}
	return d
}

func main() {
	// Filled in once options are parsed; subcommands read it when they run.
	resolved := session.Config{
		DynamicPath: device.DefaultDynamicPath,
		StaticPath:  device.DefaultStaticPath,
	}

	var cli humacli.CLI
	cli = humacli.New(func(hooks humacli.Hooks, opts *Options) {
		// Load configuration automatically
		if loadErr := config.LoadConfig(opts, cli.Root()); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		// Initialize logging system
		logging.Initialize(logging.Config{
			Level:  opts.LoggingLevel,
			Format: opts.LoggingFormat,
			Modules: map[string]string{
				"session": opts.LoggingSession,
				"device":  opts.LoggingDevice,
				"store":   opts.LoggingStore,
				"config":  opts.LoggingConfig,
				"api":     opts.LoggingAPI,
				"http":    opts.LoggingHTTP,
				"metrics": opts.LoggingMetrics,
				"systemd": opts.LoggingSystemd,
			},
		})

		resolved = opts.sessionConfig()

		// The daemon only starts for the root command; subcommands never
		// reach OnStart.
		d := newDaemon(opts, logging.GetLogger("main"))
		hooks.OnStart(d.run)
		hooks.OnStop(d.stop)
	})

	cli.Root().Use = "kbcontrol"
	cli.Root().Short = "Acer keyboard RGB backlight controller"
	cli.Root().Long = `Serves the keyboard backlight over HTTP. Run without a subcommand to start the server.`

	cmd.AddCommands(cli.Root(), func() session.Config { return resolved })

	// Run the CLI
	cli.Run()
}
