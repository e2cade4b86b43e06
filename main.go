package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"movebench/internal/config"
	"movebench/internal/harness"
	"movebench/internal/metrics"
	"movebench/internal/report"
	"movebench/internal/sysinfo"
)

type app struct {
	cfgFile string
	verbose bool
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "movebench",
		Short: "Time deep copy against ownership transfer on large buffers",
		Long: `movebench builds, copies and assigns large int32 buffers twice: once with a
value type that can only be deep-copied and once with a value type that can
also transfer ownership of its buffer. Every step is timed and reported.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.initLogger,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
		RunE: a.runCompare,
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "C", "", "configurations file (TOML)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every step")
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run the copy/transfer comparison (default)",
		Args:  cobra.NoArgs,
		RunE:  a.runCompare,
	})
	root.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE:  a.printConfig,
	})
	return root
}

func (a *app) initLogger(cmd *cobra.Command, args []string) error {
	cfg := zap.NewProductionConfig()
	if a.verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

func (a *app) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return cfg, err
	}
	a.logger.Debug("configuration loaded",
		zap.String("file", a.cfgFile),
		zap.Int("baseline_size", cfg.BaselineSize),
		zap.Int("demo_size", cfg.DemoSize),
		zap.String("output", cfg.Output),
	)
	return cfg, nil
}

func (a *app) runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := a.load(cmd)
	if err != nil {
		return err
	}

	if cfg.MemoryCheck {
		need := sysinfo.Bytes(harness.PeakElements(cfg.BaselineSize))
		if !cfg.SkipDemo {
			if demo := sysinfo.Bytes(2 * cfg.DemoSize); demo > need {
				need = demo
			}
		}
		if _, err := sysinfo.NewChecker(a.logger).Enough(need); err != nil {
			a.logger.Warn("memory preflight skipped", zap.Error(err))
		}
	}

	out := report.NewWriter(cmd.OutOrStdout(), cfg.Format())
	opts := harness.Options{
		Fill:    cfg.Fill,
		OnBegin: out.Begin,
		OnStep:  out.Step,
		Logger:  a.logger,
	}
	plan := harness.Plan{
		BaselineSize: cfg.BaselineSize,
		DemoSize:     cfg.DemoSize,
		SkipDemo:     cfg.SkipDemo,
	}
	results, err := harness.Compare(plan, opts)
	if err != nil {
		return err
	}
	if err := out.Finish(results); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if cfg.MetricsFile != "" {
		rec := metrics.NewRecorder()
		for _, r := range results {
			rec.Observe(r)
		}
		if err := rec.WriteTextfile(cfg.MetricsFile); err != nil {
			return err
		}
		a.logger.Info("metrics written", zap.String("path", cfg.MetricsFile))
	}
	return nil
}

func (a *app) printConfig(cmd *cobra.Command, args []string) error {
	cfg, err := a.load(cmd)
	if err != nil {
		return err
	}
	return cfg.Encode(cmd.OutOrStdout())
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
