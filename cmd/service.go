package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/smazurov/kbcontrol/internal/systemd"
	"github.com/spf13/cobra"
)

const serviceTimeout = 30 * time.Second

// CreateServiceCmd creates the service command, which controls the
// kbcontrol systemd unit.
func CreateServiceCmd() *cobra.Command {
	var system bool
	var unit string

	serviceCmd := &cobra.Command{
		Use:   "service",
		Short: "Control the kbcontrol systemd unit",
	}
	serviceCmd.PersistentFlags().BoolVar(&system, "system", false, "Use the system instance of systemd instead of the user instance")
	serviceCmd.PersistentFlags().StringVar(&unit, "unit", systemd.ServiceName, "Unit name")

	withManager := func(fn func(ctx context.Context, m *systemd.Manager) (string, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), serviceTimeout)
			defer cancel()

			m, err := systemd.NewManager(ctx, system)
			if err != nil {
				return fmt.Errorf("connect to systemd: %w", err)
			}
			defer m.Close()

			out, err := fn(ctx, m)
			if err != nil {
				return fmt.Errorf("%s: %w", unit, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", unit, out)
			return nil
		}
	}

	serviceCmd.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show whether the unit is active",
			Args:  cobra.NoArgs,
			RunE: withManager(func(ctx context.Context, m *systemd.Manager) (string, error) {
				return m.Status(ctx, unit)
			}),
		},
		&cobra.Command{
			Use:   "start",
			Short: "Start the unit",
			Args:  cobra.NoArgs,
			RunE: withManager(func(ctx context.Context, m *systemd.Manager) (string, error) {
				return m.Start(ctx, unit)
			}),
		},
		&cobra.Command{
			Use:   "stop",
			Short: "Stop the unit",
			Args:  cobra.NoArgs,
			RunE: withManager(func(ctx context.Context, m *systemd.Manager) (string, error) {
				return m.Stop(ctx, unit)
			}),
		},
		&cobra.Command{
			Use:   "restart",
			Short: "Restart the unit, e.g. after editing the config file",
			Args:  cobra.NoArgs,
			RunE: withManager(func(ctx context.Context, m *systemd.Manager) (string, error) {
				return m.Restart(ctx, unit)
			}),
		},
	)
	return serviceCmd
}
