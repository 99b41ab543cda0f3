package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/swellfound/standards/config"
	"github.com/swellfound/standards/internal/logging"
)

var (
	// Global flags
	verbose bool
	logFile string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "standards",
	Short: "Browse and submit SwellFound Standards",
	Long: `standards is a client for the SwellFound Standards catalog: curated
tools, techniques, toys and tastes worth keeping.

Run without arguments to open the interactive browser.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if localOnly(cmd) {
			cfg, err = config.LoadLocal()
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return err
		}

		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level, logDestination(cmd))
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runBrowse,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(browseCmd, serveCmd, searchCmd, submitCmd, onboardingCmd)
}

// localConfig marks commands that never reach the catalog store and so run
// without Airtable credentials.
const localConfig = "local-config"

func localOnly(cmd *cobra.Command) bool {
	_, ok := cmd.Annotations[localConfig]
	return ok
}

// logDestination picks where logs go. The server logs to stdout, the
// terminal UI to a file so it owns the screen, and one-shot commands to
// stderr so their output stays pipeable.
func logDestination(cmd *cobra.Command) string {
	switch {
	case logFile != "":
		return logFile
	case cfg.Log.File != "":
		return cfg.Log.File
	case cmd.Name() == "serve":
		return ""
	case !cmd.HasParent() || cmd.Name() == "browse":
		dir, err := os.UserCacheDir()
		if err != nil {
			return "stderr"
		}
		return filepath.Join(dir, "standards", "standards.log")
	default:
		return "stderr"
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
