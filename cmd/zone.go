package cmd

import (
	"fmt"
	"strconv"

	"github.com/smazurov/kbcontrol/internal/keyboard"
	"github.com/smazurov/kbcontrol/internal/session"
	"github.com/spf13/cobra"
)

// CreateZoneCmd creates the zone command and its subcommands.
func CreateZoneCmd(cfg ConfigFunc) *cobra.Command {
	zoneCmd := &cobra.Command{
		Use:   "zone",
		Short: "Change a static zone",
		Long:  `Zones are numbered 1 to 3 from the left. Changes made in dynamic mode are saved and used on the next switch to static.`,
	}

	zoneCmd.AddCommand(
		&cobra.Command{
			Use:     "color <zone> <color>",
			Short:   "Set the color of a zone",
			Example: "  kbcontrol zone color 2 #00ff00",
			Args:    cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				zone, err := parseZone(args[0])
				if err != nil {
					return err
				}
				c, err := keyboard.ParseRGB(args[1])
				if err != nil {
					return err
				}
				return runCommand(cfg(), cmd.OutOrStdout(), session.SetZoneColor{Zone: zone, Color: c})
			},
		},
		zoneEnableCmd(cfg, "enable", "Light a zone", true),
		zoneEnableCmd(cfg, "disable", "Turn a zone off", false),
		&cobra.Command{
			Use:   "toggle <zone>",
			Short: "Flip a zone between lit and dark",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				zone, err := parseZone(args[0])
				if err != nil {
					return err
				}
				sess, err := openSession(cfg())
				if err != nil {
					return err
				}
				defer sess.Close()

				current, ok := sess.Load().Zone(zone)
				if !ok {
					return fmt.Errorf("invalid zone %d", zone)
				}
				res, err := sess.Dispatch(session.ToggleZone{Zone: zone, Enabled: !current.Enabled})
				if err != nil {
					return err
				}
				printResult(cmd.OutOrStdout(), res)
				return nil
			},
		},
	)
	return zoneCmd
}

func zoneEnableCmd(cfg ConfigFunc, verb, short string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <zone>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			zone, err := parseZone(args[0])
			if err != nil {
				return err
			}
			return runCommand(cfg(), cmd.OutOrStdout(), session.ToggleZone{Zone: zone, Enabled: enabled})
		},
	}
}

func parseZone(s string) (int, error) {
	zone, err := strconv.Atoi(s)
	if err != nil || !keyboard.ValidZone(zone) {
		return 0, fmt.Errorf("invalid zone %q: want 1-%d", s, keyboard.ZoneCount)
	}
	return zone, nil
}
