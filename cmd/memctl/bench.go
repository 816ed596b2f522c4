package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Jorgear27/Ya-lo-borro/internal/bench"
	"github.com/Jorgear27/Ya-lo-borro/internal/config"
	"github.com/Jorgear27/Ya-lo-borro/internal/logger"
	"github.com/Jorgear27/Ya-lo-borro/internal/oplog"
	"github.com/Jorgear27/Ya-lo-borro/memory"
)

var (
	benchReport      string
	benchOpLog       string
	benchInterval    time.Duration
	benchCount       int
	benchSeed        int64
	benchAllocations int
	benchMaxSize     int
	benchCapacity    int
	benchParallel    bool
)

func init() {
	cmd := newBenchCmd()
	cmd.Flags().StringVar(&benchReport, "report", "", "Report file (default $"+config.ReportPathEnv+")")
	cmd.Flags().StringVar(&benchOpLog, "oplog", "", "Operation log file (default $"+config.LogPathEnv+")")
	cmd.Flags().DurationVar(&benchInterval, "interval", 0, "Time between cycles (default $"+config.IntervalEnv+" or 1s)")
	cmd.Flags().IntVarP(&benchCount, "count", "n", 0, "Stop after this many cycles (0 runs until interrupted)")
	cmd.Flags().Int64Var(&benchSeed, "seed", 1, "Seed for request sizes and release victims")
	cmd.Flags().IntVar(&benchAllocations, "allocations", bench.NumAllocations, "Allocations per policy run")
	cmd.Flags().IntVar(&benchMaxSize, "max-size", bench.MaxAllocationSize, "Largest request in bytes")
	cmd.Flags().IntVar(&benchCapacity, "capacity", memory.DefaultOptions.Capacity, "Region capacity in bytes")
	cmd.Flags().BoolVar(&benchParallel, "parallel", false, "Run policies concurrently on separate heaps")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Periodically benchmark every placement policy",
		Long: `The bench command runs the same random workload under first-fit,
best-fit and worst-fit, then rewrites a JSON report with the elapsed time
and fragmentation of each policy. It repeats on a fixed interval until
interrupted or until --count cycles have run.

Example:
  JSON_PATH=stats.json memctl bench
  memctl bench --report stats.json --count 5 --interval 500ms
  memctl bench --report stats.json --oplog ops.log --count 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runBench(ctx)
		},
	}
	return cmd
}

func runBench(ctx context.Context) error {
	reportPath := benchReport
	if reportPath == "" {
		p, err := config.ReportPath()
		if err != nil {
			return fmt.Errorf("no report path: use --report or set %s", config.ReportPathEnv)
		}
		reportPath = p
	}

	interval := benchInterval
	if interval <= 0 {
		d, err := config.Interval(bench.DefaultInterval)
		if err != nil {
			return err
		}
		interval = d
	}

	cfg := bench.Config{
		Allocations: benchAllocations,
		MaxSize:     benchMaxSize,
		Seed:        benchSeed,
		Capacity:    benchCapacity,
		Cycles:      benchCount,
		Parallel:    benchParallel,
	}

	ops, err := openOpLog()
	if err != nil {
		// The operation log is a side channel; the benchmark runs without it.
		printError("%v\n", err)
		logger.Warn("operation log disabled", "error", err)
	}
	if ops != nil {
		defer ops.Close()
		cfg.Logger = ops
	}

	logger.Info("bench starting", "report", reportPath, "interval", interval, "parallel", cfg.Parallel)
	printVerbose("Writing report to %s every %s\n", reportPath, interval)

	return bench.Loop(ctx, cfg, reportPath, interval, func(n int, r bench.Report, err error) {
		if err != nil {
			logger.Error("bench cycle failed", "cycle", n, "error", err)
			printError("cycle %d: %v\n", n, err)
			return
		}
		logger.Debug("bench cycle done", "cycle", n)
		if jsonOut {
			_ = printJSON(r)
			return
		}
		printInfo("Cycle %d\n", n)
		for _, p := range memory.Policies {
			res := r[p.String()]
			printInfo("  %-10s TIME: %f seconds, FRAGMENTATION: %f\n", p, res.Time, res.Fragmentation)
		}
	})
}

// openOpLog opens the operation log named by --oplog or LOG_FILE_PATH.
// It returns nil, nil when neither is set.
func openOpLog() (*oplog.Logger, error) {
	path := benchOpLog
	if path == "" {
		p, err := config.LogPath()
		if errors.Is(err, config.ErrNotSet) {
			return nil, nil
		}
		path = p
	}
	return oplog.Open(path)
}
