package cmd

import (
	"errors"
	"fmt"

	"github.com/smazurov/kbcontrol/internal/device"
	"github.com/smazurov/kbcontrol/internal/logging"
	"github.com/smazurov/kbcontrol/internal/store"
	"github.com/spf13/cobra"
)

// CreateProbeCmd creates the probe command.
func CreateProbeCmd(cfg ConfigFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Check that the keyboard device files can be opened",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := cfg()
			if err := device.Probe(c.DynamicPath, c.StaticPath, logging.GetLogger("device")); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s, %s\n", c.DynamicPath, c.StaticPath)
			return nil
		},
	}
}

// CreateApplyCmd creates the apply command.
func CreateApplyCmd(cfg ConfigFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "apply [state-file]",
		Short: "Write a saved state to the keyboard",
		Long: `Writes the saved state to the keyboard, for example after resume from suspend. ` +
			`When a state file is given it replaces the current state and is saved.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cfg())
			if err != nil {
				return err
			}
			defer sess.Close()

			if len(args) == 0 {
				res, err := sess.Start()
				if err != nil {
					return err
				}
				printResult(cmd.OutOrStdout(), res)
				return nil
			}

			st, err := store.NewTOML(args[0]).Load()
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			sess.Load()
			res, err := sess.Apply(st)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

// CreateStatusCmd creates the status command. It reads the state file only
// and never opens the devices.
func CreateStatusCmd(cfg ConfigFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the saved lighting state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := store.NewTOML(cfg().StateFile)
			st, err := s.Load()
			switch {
			case errors.Is(err, store.ErrNotFound):
				fmt.Fprintf(cmd.OutOrStdout(), "no saved state at %s\n", s.Path())
				return nil
			case err != nil:
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "state file: %s\n", s.Path())
			printState(cmd.OutOrStdout(), st)
			return nil
		},
	}
}
