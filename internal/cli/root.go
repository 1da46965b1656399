package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/godilite/shotstats/internal/app"
	"github.com/godilite/shotstats/internal/config"
)

var (
	cfgFile   string
	logLevel  string
	appHandle *app.App
	logger    *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "shotstats",
	Short:         "Inspect shooting statistics from the club's scoring database",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if appHandle != nil {
			return nil
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}

		logger, err = config.NewLogger(cfg)
		if err != nil {
			return err
		}

		appHandle, err = app.NewApp(cmd.Context(), cfg, logger)
		return err
	},
}

// Execute runs the root command.
func Execute() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run executes args and releases the app afterwards. Cobra skips post-run
// hooks when a command fails, so the cleanup lives here.
func run(ctx context.Context, args []string, out io.Writer) error {
	defer closeApp()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	return rootCmd.ExecuteContext(ctx)
}

func closeApp() {
	if appHandle != nil {
		appHandle.Close()
		appHandle = nil
	}
	if logger != nil {
		_ = logger.Sync()
		logger = nil
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level defined in config")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(shootersCmd)
	rootCmd.AddCommand(pingCmd)
}

func getApp() *app.App {
	if appHandle == nil {
		panic("application not initialized; PersistentPreRunE not executed")
	}
	return appHandle
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
