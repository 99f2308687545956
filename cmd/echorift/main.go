// echorift is a side-scrolling runner for the terminal, the desktop and SSH.
//
// Usage:
//
//	echorift list                - List the available rift variants
//	echorift play <variant>      - Play a variant in the terminal
//	echorift menu                - Pick variants interactively
//	echorift desktop <variant>   - Play in a desktop window
//	echorift scores [variant]    - Show recorded runs
//	echorift stages <variant>    - Show the Rift stages of a variant
//	echorift config dump         - Print the effective configuration
//	echorift serve               - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible runs
//	--db <path>          - Set database path (default: ~/.echorift/runs.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/echorift/internal/core"
	"github.com/vovakirdan/echorift/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/echorift/internal/games/echorift"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "echorift",
	Short: "EchoRift - run, dash and focus through the rift",
	Long: `EchoRift is a side-scrolling runner. Elae runs along the ground while
obstacles and crystals drift in from the right. Jump, dash and focus to
survive as the rift shifts through four stages.

Available commands:
  list     - Show all variants
  play     - Play a variant in the terminal
  menu     - Interactive variant picker
  desktop  - Play in a desktop window
  scores   - View recorded runs
  stages   - Show how a variant's rift advances
  config   - Inspect or validate configuration
  serve    - Start SSH server for remote play

Examples:
  echorift list
  echorift play echorift
  echorift play echorift_shards --difficulty hard
  echorift desktop echorift_surge --scale 2
  echorift serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.echorift/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(desktopCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(stagesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger creates a logger writing to stderr.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}
	return logger
}

// fileLogger logs to ~/.echorift/echorift.log so the alternate screen stays clean.
// Falls back to stderr when the file cannot be opened.
func fileLogger(prefix string) (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return newLogger(prefix), func() {}
	}
	dir := filepath.Join(home, ".echorift")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newLogger(prefix), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "echorift.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return newLogger(prefix), func() {}
	}

	logger := newLogger(prefix)
	logger.SetOutput(f)
	return logger, func() { f.Close() }
}

// runtimeConfig builds the runtime config from the terminal size and global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg
}

// openStore opens the runs database. Games still work without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database, runs will not be saved", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func closeStore(store *storage.Store) {
	if store != nil {
		store.Close()
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
