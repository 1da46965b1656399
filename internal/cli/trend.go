package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/godilite/shotstats/internal/export"
	"github.com/godilite/shotstats/internal/service"
)

var (
	trendUser    int64
	trendMetric  string
	trendPeriod  string
	trendLimit   int
	trendCSVPath string
	trendPNGPath string
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Print a member's trend series, optionally exporting CSV and/or PNG",
	RunE: func(cmd *cobra.Command, args []string) error {
		if trendUser <= 0 {
			return fmt.Errorf("--user must be greater than zero")
		}
		if trendLimit < 0 {
			return fmt.Errorf("--limit cannot be negative")
		}
		metric, err := service.ParseMetric(trendMetric)
		if err != nil {
			return err
		}
		period, err := service.ParsePeriod(trendPeriod)
		if err != nil {
			return err
		}

		series, err := getApp().Stats.GetTrend(cmd.Context(), trendUser, metric, period, trendLimit)
		if err != nil {
			return err
		}

		if trendCSVPath != "" {
			if err := export.ToFile(trendCSVPath, series, export.WriteTrendCSV); err != nil {
				return fmt.Errorf("write csv: %w", err)
			}
			logger.Info("trend exported", zap.String("format", "csv"), zap.String("path", trendCSVPath))
		}
		if trendPNGPath != "" {
			if err := export.ToFile(trendPNGPath, series, export.WriteTrendPNG); err != nil {
				return fmt.Errorf("write png: %w", err)
			}
			logger.Info("trend exported", zap.String("format", "png"), zap.String("path", trendPNGPath))
		}
		if trendCSVPath != "" || trendPNGPath != "" {
			return nil
		}
		return printJSON(cmd.OutOrStdout(), series)
	},
}

func init() {
	trendCmd.Flags().Int64Var(&trendUser, "user", 0, "Club member id")
	trendCmd.Flags().StringVar(&trendMetric, "metric", string(service.MetricAvgScore), "avgScore, bestScore, bestTeiler, avgSpread or avgOffset")
	trendCmd.Flags().StringVar(&trendPeriod, "period", string(service.Monthly), "daily, weekly or monthly")
	trendCmd.Flags().IntVar(&trendLimit, "limit", 12, "Number of most recent periods")
	trendCmd.Flags().StringVar(&trendCSVPath, "csv", "", "Path to write CSV data")
	trendCmd.Flags().StringVar(&trendPNGPath, "png", "", "Path to write PNG chart")
}
