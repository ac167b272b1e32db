package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nnym/hab/internal/replay"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "hab",
		Short:        "Inspect layered hash tables",
		SilenceUsage: true,
	}
	cmd.AddCommand(replayCommand())
	return cmd
}

func replayCommand() *cobra.Command {
	var verbose, stats bool
	cmd := &cobra.Command{
		Use:   "replay <script.toml>",
		Short: "Run a scripted workload against a table",
		Long: "Build a table from the script's [table] section, apply every [[op]] in order " +
			"printing one result per op, then print the resulting table.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			script, err := replay.Load(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			table, err := replay.NewRunner(out, logger).Run(script)
			if err != nil {
				logger.Error("replay failed", zap.String("script", args[0]), zap.Error(err))
				return err
			}
			fmt.Fprintln(out, table.IndentedString())
			if stats {
				fmt.Fprint(out, table.Stats().ToString())
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every op and table growth")
	cmd.Flags().BoolVar(&stats, "stats", false, "print table statistics after the replay")
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
