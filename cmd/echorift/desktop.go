package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/echorift/internal/platform/desktop"
	"github.com/vovakirdan/echorift/internal/prefs"
)

var flagScale int

var desktopCmd = &cobra.Command{
	Use:   "desktop <variant>",
	Short: "Play a variant in a desktop window",
	Long: `Open a window and play the specified variant with full-resolution graphics.

Controls:
  Space/Up/W   - Jump
  D/Right      - Dash
  F            - Focus
  P/Esc        - Pause
  R            - Restart (after game over)
  Q            - Quit

Examples:
  echorift desktop echorift
  echorift desktop echorift_surge --scale 2 --difficulty hard`,
	Args: cobra.ExactArgs(1),
	RunE: runDesktop,
}

func init() {
	addGameFlags(desktopCmd)
	desktopCmd.Flags().IntVar(&flagScale, "scale", 1, "Window size multiplier")
}

func runDesktop(cmd *cobra.Command, args []string) error {
	logger := newLogger("echorift")

	pm := prefs.Open(logger)
	game, sound := prepareGame(cmd, args[0], pm, logger)

	store := openStore(logger)
	defer closeStore(store)

	opts := desktop.Options{
		Store:     store,
		SessionID: uuid.NewString(),
		Logger:    logger,
		Scale:     flagScale,
		FixedSeed: flagSeed != 0,
	}
	if cues := newCues(sound, logger); cues != nil {
		defer cues.Close()
		opts.Cues = cues
	}

	rt := runtimeConfig()
	logger.Info("window opening", "game", game.ID(), "scale", flagScale, "tps", rt.TickRate)
	if err := desktop.Run(game, rt, opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
