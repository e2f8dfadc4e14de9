package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smazurov/kbcontrol/internal/keyboard"
	"github.com/smazurov/kbcontrol/internal/session"
	"github.com/spf13/cobra"
)

// Fields accepted by the set command.
var setFields = []string{"mode", "brightness", "effect", "speed", "direction", "color"}

// CreateSetCmd creates the set command.
func CreateSetCmd(cfg ConfigFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "set <field> <value>",
		Short: "Change one lighting parameter",
		Long: `Changes one parameter and saves the new state. Fields: ` + strings.Join(setFields, ", ") + `.
Effect and color changes made in static mode are saved and used on the next switch to dynamic.`,
		Example: `  kbcontrol set mode dynamic
  kbcontrol set effect wave
  kbcontrol set color violet
  kbcontrol set brightness 40`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: setFields,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := ParseSetCommand(args[0], args[1])
			if err != nil {
				return err
			}
			return runCommand(cfg(), cmd.OutOrStdout(), c)
		},
	}
}

// ParseSetCommand maps a field name and value to a session command.
func ParseSetCommand(field, value string) (session.Command, error) {
	switch strings.ToLower(field) {
	case "mode":
		m, err := keyboard.ParseMode(value)
		if err != nil {
			return nil, err
		}
		return session.SetMode{Mode: m}, nil
	case "brightness":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("brightness %q: want a number 0-100", value)
		}
		return session.SetBrightness{Brightness: n}, nil
	case "effect":
		e, err := keyboard.ParseEffect(value)
		if err != nil {
			return nil, err
		}
		return session.SetEffect{Effect: e}, nil
	case "speed":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("speed %q: want a number 1-9", value)
		}
		return session.SetSpeed{Speed: n}, nil
	case "direction":
		d, err := keyboard.ParseDirection(value)
		if err != nil {
			return nil, err
		}
		return session.SetDirection{Direction: d}, nil
	case "color":
		c, err := keyboard.ParseRGB(value)
		if err != nil {
			return nil, err
		}
		return session.SetDynamicColor{Color: c}, nil
	default:
		return nil, fmt.Errorf("unknown field %q (want one of %s)", field, strings.Join(setFields, ", "))
	}
}
