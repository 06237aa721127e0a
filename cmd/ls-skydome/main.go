// Command ls-skydome renders a sun-driven sky dome: blended sky palettes,
// ground glow and a twinkling star field, in the terminal or to image files.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-skydome/internal/config"
	"github.com/litescript/ls-skydome/internal/logging"
	"github.com/litescript/ls-skydome/internal/version"
)

var (
	// Global flags
	cfgPath  string
	logLevel string
	logFile  string
	atFlag   string

	// Resolved in PersistentPreRunE
	cfg    *config.Config
	logger *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ls-skydome",
	Short: "Sky dome renderer driven by the sun's altitude",
	Long: `ls-skydome blends sky palettes by solar altitude, shades a vertical sky
gradient with a ground glow, and projects a twinkling star field for a
ground observer.

Run without arguments to open the live terminal view. When stdout is not a
terminal, or with --headless, frames are summarized as text instead.

Settings come from built-in defaults, then --config, then .env, then
SKYDOME_* environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.LoadWith(config.Options{Path: cfgPath, DotEnv: []string{".env"}})
		if err != nil {
			return err
		}
		cfg = c

		level := cfg.LogLevel
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		logger = logging.New(logging.ParseLevel(level))
		logger.SetOutput(cmd.ErrOrStderr())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runRoot,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ls-skydome %s\n", version.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&atFlag, "at", "", "Sky time as RFC 3339 (default: now)")

	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Write logs here while the terminal view runs")
	rootCmd.Flags().BoolVar(&headless, "headless", false, "Print frame summaries instead of the terminal view")
	rootCmd.Flags().IntVar(&headlessFrames, "frames", 0, "Stop after this many frames in headless mode (0: until interrupted)")

	rootCmd.AddCommand(versionCmd)
	addCommands(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// skyTime returns the --at instant, or now.
func skyTime() (time.Time, error) {
	if atFlag == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, atFlag)
	if err != nil {
		return time.Time{}, fmt.Errorf("--at: %w", err)
	}
	return t, nil
}
