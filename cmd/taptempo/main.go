// Package main provides the CLI entrypoint for taptempo.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/taptempo/internal/config"
	"github.com/verte-zerg/taptempo/internal/lineui"
	"github.com/verte-zerg/taptempo/internal/logging"
	"github.com/verte-zerg/taptempo/internal/model"
	"github.com/verte-zerg/taptempo/internal/tempo"
	"github.com/verte-zerg/taptempo/internal/tui"
)

var (
	tempoPrecision  int
	tempoResetTime  int
	tempoSampleSize int

	logFile  string
	logLevel string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(rootCmd.OutOrStdout(), errorLine(err))
		os.Exit(1)
	}
}

func errorLine(err error) string {
	return fmt.Sprintf("Error: %v\n", err)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "taptempo",
		Short:         "Estimate a tempo by tapping the enter key on each beat",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTapCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.IntVarP(&tempoPrecision, "precision", "p", model.DefaultPrecision, fmt.Sprintf("set the decimal precision of the tempo display [max: %d]", model.MaxPrecision))
	flags.IntVarP(&tempoResetTime, "reset-time", "r", model.DefaultResetTime, "set the time in second to reset the computation")
	flags.IntVarP(&tempoSampleSize, "sample-size", "s", model.DefaultSampleSize, "set the number of samples needed to compute the tempo")
	flags.StringVar(&logFile, "log-file", "", "write a JSON debug log to this file")
	flags.StringVar(&logLevel, "log-level", logging.LevelInfo, "debug log level (debug, info, warn, error)")

	rootCmd.AddCommand(newTUICmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

type settings struct {
	tempo    model.Config
	logFile  string
	logLevel string
}

// resolveSettings merges flags over the config file and clamps the result.
func resolveSettings(cmd *cobra.Command) (settings, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "precision", &tempoPrecision, fileCfg.Tempo.Precision)
	applyIntConfig(cmd, "reset-time", &tempoResetTime, fileCfg.Tempo.ResetTime)
	applyIntConfig(cmd, "sample-size", &tempoSampleSize, fileCfg.Tempo.SampleSize)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)

	cfg := model.Config{
		Precision:        tempoPrecision,
		ResetTimeSeconds: tempoResetTime,
		SampleSize:       tempoSampleSize,
	}
	return settings{
		tempo:    cfg.Clamp(),
		logFile:  logFile,
		logLevel: logLevel,
	}, nil
}

func runTapCmd(cmd *cobra.Command, _ []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	logger, err := logging.NewLogger(s.logFile, s.logLevel)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := logger.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()
	logger.Info("start", "mode", "line", "precision", s.tempo.Precision, "reset_time", s.tempo.ResetTimeSeconds, "sample_size", s.tempo.SampleSize)

	est := tempo.NewEstimator(s.tempo, tempo.SystemClock{})
	return lineui.Run(cmd.InOrStdin(), cmd.OutOrStdout(), est, logger.Logger)
}

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Tap any key in a full-screen interface",
		Args:  cobra.NoArgs,
		RunE:  runTUICmd,
	}
}

func runTUICmd(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal; use taptempo without a subcommand for piped input")
	}
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	logger, err := logging.NewLogger(s.logFile, s.logLevel)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := logger.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()
	logger.Info("start", "mode", "tui", "precision", s.tempo.Precision, "reset_time", s.tempo.ResetTimeSeconds, "sample_size", s.tempo.SampleSize)

	est := tempo.NewEstimator(s.tempo, tempo.SystemClock{})
	program := tea.NewProgram(tui.NewModel(est, logger.Logger), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeDefaultConfig(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeDefaultConfig creates path from the template unless it already exists.
func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# taptempo configuration
# Uncomment a value to enable it. CLI flags override config values.

[tempo]
# precision = %d          # Decimal digits shown for the tempo (0-%d)
# reset-time = %d         # Idle seconds before tracking restarts (>= %d)
# sample-size = %d        # Taps kept in the rolling window (>= %d)

[log]
# file = ""               # JSON debug log path (empty disables)
# level = "info"          # debug, info, warn, error
`,
		model.DefaultPrecision, model.MaxPrecision,
		model.DefaultResetTime, model.MinResetTime,
		model.DefaultSampleSize, model.MinSample,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
