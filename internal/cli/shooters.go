package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var shootersCmd = &cobra.Command{
	Use:   "shooters",
	Short: "List shooter ids known to the scoring database",
	RunE: func(cmd *cobra.Command, args []string) error {
		shooters, err := getApp().Shooters.ListShooters(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SHOOTER ID\tLAST ACTIVITY")
		for _, s := range shooters {
			fmt.Fprintf(w, "%s\t%s\n", s.ID, s.LastActivity.Format(time.DateTime))
		}
		return w.Flush()
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check connectivity to the scoring and club databases",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := getApp().Ping(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "ok")
		return nil
	},
}
