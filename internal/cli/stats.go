package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/godilite/shotstats/internal/service"
)

var (
	statsUser  int64
	statsRange string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print a member's dashboard statistics as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		if statsUser <= 0 {
			return fmt.Errorf("--user must be greater than zero")
		}
		tr, err := service.ParseTimeRange(statsRange)
		if err != nil {
			return err
		}

		stats, err := getApp().Stats.GetDashboardStats(cmd.Context(), statsUser, tr)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), stats)
	},
}

func init() {
	statsCmd.Flags().Int64Var(&statsUser, "user", 0, "Club member id")
	statsCmd.Flags().StringVar(&statsRange, "range", "all", `Time range: "all" or a number of days`)
}
