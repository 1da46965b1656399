package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/godilite/shotstats/internal/service"
)

var (
	leaderboardSort  string
	leaderboardRange string
	leaderboardLimit int
	leaderboardJSON  bool
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Rank linked club members",
	RunE: func(cmd *cobra.Command, args []string) error {
		if leaderboardLimit < 0 {
			return fmt.Errorf("--limit cannot be negative")
		}
		key, err := service.ParseSortKey(leaderboardSort)
		if err != nil {
			return err
		}
		tr, err := service.ParseTimeRange(leaderboardRange)
		if err != nil {
			return err
		}

		board, err := getApp().Stats.GetLeaderboard(cmd.Context(), key, tr, leaderboardLimit)
		if err != nil {
			return err
		}
		if leaderboardJSON {
			return printJSON(cmd.OutOrStdout(), board)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "RANK\tNAME\tSESSIONS\tSHOTS\tAVG\tBEST SESSION\tBEST TEILER")
		for _, e := range board.Entries {
			teiler := "-"
			if e.BestTeiler != nil {
				teiler = fmt.Sprintf("%.1f", *e.BestTeiler)
			}
			fmt.Fprintf(w, "%d\t%s %s\t%d\t%d\t%.2f\t%.1f\t%s\n",
				e.Rank, e.Firstname, e.Lastname, e.TotalSessions, e.TotalShots, e.AvgScore, e.BestSessionScore, teiler)
		}
		fmt.Fprintf(w, "\n%d ranked members, sorted by %s over %s\n", board.TotalPlayers, board.SortBy, board.TimeRange)
		return w.Flush()
	},
}

func init() {
	leaderboardCmd.Flags().StringVar(&leaderboardSort, "sort", string(service.SortAvgScore), "avgScore, bestTeiler, totalSessions, totalShots or bestSessionScore")
	leaderboardCmd.Flags().StringVar(&leaderboardRange, "range", "all", `Time range: "all" or a number of days`)
	leaderboardCmd.Flags().IntVar(&leaderboardLimit, "limit", 50, "Maximum number of entries")
	leaderboardCmd.Flags().BoolVar(&leaderboardJSON, "json", false, "Print JSON instead of a table")
}
