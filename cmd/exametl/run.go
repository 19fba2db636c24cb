package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joeydtaylor/exametl/pkg/builder"
)

var runCMD = &cobra.Command{
	Use:          "run",
	Short:        "Run the exam result job once",
	Long:         "Runs the job against the configured input and writes the XML document. Exits non-zero when the run fails.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := builder.LoadConfig(configPath, cmd.Flags())
		if err != nil {
			return err
		}

		logger := builder.NewLogger(builder.LoggerWithLevel(cfg.LogLevel))
		defer logger.Flush()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		job, err := builder.BuildJob(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer job.Close()

		exec := job.Run(ctx)
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s: read=%d filtered=%d written=%d commits=%d\n",
			exec.JobName, exec.Status, exec.Step.ReadCount, exec.Step.FilterCount, exec.Step.WriteCount, exec.Step.CommitCount)
		if exec.Status == builder.JobFailed {
			if exec.Cause != nil {
				return exec.Cause
			}
			return errors.New("job failed")
		}
		return nil
	},
}

func init() {
	runCMD.Flags().String("config", "", "Path to a properties file")
	runCMD.Flags().String("input", "", "Input file (file.origin.name)")
	runCMD.Flags().String("output", "", "Output file (file.target.name)")
	runCMD.Flags().Int("chunk-size", 10, "Records per commit (batch.chunk.size)")
	runCMD.Flags().String("delimiter", "|", "Field delimiter (file.origin.delimiter)")
	runCMD.Flags().String("compression", builder.CompressionNone, "Output compression: none, gzip, zstd, snappy, brotli, lz4")
	runCMD.Flags().Float64("min-score", 0, "Drop records scoring below this value")
	runCMD.Flags().String("log-level", "info", "Log level: debug, info, warn, error")
}
