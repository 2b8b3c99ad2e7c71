package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rgehrsitz/esnet/internal/calculation"
	"github.com/rgehrsitz/esnet/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries what every subcommand needs once the root pre-run has loaded
// settings
type app struct {
	settings *config.Settings
	logger   *zap.Logger

	// outputConfigured is set when output.format comes from a settings file
	// or the environment rather than the built-in default
	outputConfigured bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "esnet",
		Short: "Spanish tax regime net income calculator",
		Long: `Spanish tax regime calculator. Compare the net income a given annual
revenue leaves as an employee, autónomo, SL company, certified startup or under
the Beckham expatriate regime.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "Settings file (default: ./esnet.yaml or $HOME/.config/esnet/esnet.yaml)")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-format", "", "Log format (console, json)")
	flags.Bool("debug", false, "Trace intermediate amounts of every calculation")

	root.AddCommand(
		a.calculateCmd(),
		a.compareCmd(),
		a.sweepCmd(),
		a.crossoverCmd(),
		validateCmd(),
		regimesCmd(),
		templatesCmd(),
		versionCmd(),
	)
	return root
}

// init loads settings, applies flag overrides and builds the logger
func (a *app) init(cmd *cobra.Command) error {
	settingsFile, _ := cmd.Flags().GetString("config")
	v := config.NewSettingsLoader(settingsFile)

	for key, flag := range map[string]string{"log.level": "log-level", "log.format": "log-format"} {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind --%s: %w", flag, err)
			}
		}
	}
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		v.Set("log.level", "debug")
	}

	settings, err := config.LoadSettings(v)
	if err != nil {
		return err
	}
	a.settings = settings
	_, fromEnv := os.LookupEnv("ESNET_OUTPUT_FORMAT")
	a.outputConfigured = fromEnv || v.InConfig("output.format")

	logger, err := initializeLogger(settings.Log)
	if err != nil {
		return err
	}
	a.logger = logger
	logger.Debug("settings loaded",
		zap.String("log_level", settings.Log.Level),
		zap.String("output_format", settings.Output.Format),
		zap.String("settings_file", v.ConfigFileUsed()))
	return nil
}

// initializeLogger creates a zap logger writing to stderr
func initializeLogger(settings config.LogSettings) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch settings.Level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info", "":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", settings.Level)
	}

	var cfg zap.Config
	switch settings.Format {
	case "console", "":
		cfg = zap.NewDevelopmentConfig()
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", settings.Format)
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg.Build()
}

// newEngine builds a calculation engine, with the tax tables from
// --constants when given
func (a *app) newEngine(cmd *cobra.Command) (*calculation.CalculationEngine, error) {
	constants, err := loadConstants(cmd)
	if err != nil {
		return nil, err
	}
	engine := calculation.NewCalculationEngineWithConstants(constants)
	if constantsFile, _ := cmd.Flags().GetString("constants"); constantsFile != "" {
		a.logger.Info("using custom tax tables", zap.String("file", constantsFile), zap.Int("year", constants.Metadata.DataYear))
	}

	if a.logger != nil && a.logger.Core().Enabled(zapcore.DebugLevel) {
		engine.SetLogger(a.logger.Sugar())
		engine.Debug = true
	}
	return engine, nil
}

// outputFormat returns --format when set, then the configured format, then
// the command's own default
func (a *app) outputFormat(cmd *cobra.Command) string {
	f := cmd.Flags().Lookup("format")
	if f != nil && f.Changed {
		return strings.ToLower(f.Value.String())
	}
	if a.outputConfigured && a.settings != nil {
		return a.settings.Output.Format
	}
	if f != nil {
		return strings.ToLower(f.DefValue)
	}
	return "console"
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "esnet %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.GoVersion
	}
	return ""
}
