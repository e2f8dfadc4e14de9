// Package cmd holds the one-shot subcommands that drive the keyboard without
// starting the API server.
package cmd

import (
	"fmt"
	"io"

	"github.com/smazurov/kbcontrol/internal/keyboard"
	"github.com/smazurov/kbcontrol/internal/logging"
	"github.com/smazurov/kbcontrol/internal/session"
	"github.com/spf13/cobra"
)

// ConfigFunc returns the session configuration resolved from flags,
// environment and config file. It is called when a subcommand runs, after
// option parsing.
type ConfigFunc func() session.Config

// AddCommands registers every subcommand on root.
func AddCommands(root *cobra.Command, cfg ConfigFunc) {
	root.AddCommand(
		CreateProbeCmd(cfg),
		CreateApplyCmd(cfg),
		CreateStatusCmd(cfg),
		CreateSetCmd(cfg),
		CreateZoneCmd(cfg),
		CreateServiceCmd(),
		CreateVersionCmd(),
	)
}

func openSession(cfg session.Config) (*session.Session, error) {
	return session.Open(cfg, nil, logging.GetLogger("session"))
}

// runCommand loads the saved state, applies cmd on top of it and reports
// the outcome.
func runCommand(cfg session.Config, out io.Writer, cmd session.Command) error {
	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	sess.Load()
	res, err := sess.Dispatch(cmd)
	if err != nil {
		return err
	}
	printResult(out, res)
	return nil
}

func printResult(out io.Writer, res session.Result) {
	fmt.Fprintf(out, "%s: %d frame(s) written\n", res.Command, res.Frames)
	if res.PersistErr != nil {
		fmt.Fprintf(out, "warning: %v\n", res.PersistErr)
	}
}

func printState(out io.Writer, st keyboard.State) {
	fmt.Fprintf(out, "mode:       %s\n", st.Mode)
	fmt.Fprintf(out, "brightness: %d\n", st.Brightness)
	fmt.Fprintf(out, "effect:     %s (speed %d, %s, %s)\n",
		st.Dynamic.Effect, st.Dynamic.Speed, st.Dynamic.Direction, st.Dynamic.Color)
	for i, z := range st.Zones {
		status := "on"
		if !z.Enabled {
			status = "off"
		}
		fmt.Fprintf(out, "zone %d:     %s %s\n", i+1, z.Color, status)
	}
}
