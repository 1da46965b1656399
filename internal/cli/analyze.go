package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var analyzeSession string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Print the shot group analysis of one session as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		if analyzeSession == "" {
			return fmt.Errorf("--session is required")
		}

		detail, err := getApp().Stats.GetSessionAnalysis(cmd.Context(), analyzeSession)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), detail)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeSession, "session", "", "Scoring database session (ScheibenID)")
}
