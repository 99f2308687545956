package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/echorift/internal/audio"
	"github.com/vovakirdan/echorift/internal/config"
	"github.com/vovakirdan/echorift/internal/games/echorift"
	"github.com/vovakirdan/echorift/internal/platform/tui"
	"github.com/vovakirdan/echorift/internal/prefs"
	"github.com/vovakirdan/echorift/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagStage      int
	flagSound      bool
)

var playCmd = &cobra.Command{
	Use:   "play <variant>",
	Short: "Play a variant in the terminal",
	Long: `Start a run of the specified variant.

Controls:
  Space/Up/W   - Jump
  D/Right      - Dash
  F            - Focus (slows the rift)
  P/Esc        - Pause
  R            - Restart (after game over)
  Ctrl+S       - Screenshot to ~/.echorift/screenshots
  Q/Ctrl+C     - Quit

Difficulty options:
  easy    - Slower scroll, sparser obstacles, faster dash recovery
  normal  - The configured values
  hard    - Faster scroll, denser obstacles, rarer crystals

Examples:
  echorift play echorift
  echorift play echorift_shards --difficulty easy
  echorift play echorift_surge --stage 2
  echorift play echorift --config ./my-rift.toml --seed 42`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	addGameFlags(playCmd)
}

// addGameFlags registers the flags shared by every command that starts a run.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config (YAML or TOML)")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard (default: last used)")
	cmd.Flags().IntVar(&flagStage, "stage", -1, "Starting Rift stage, 0-based (-1 = configured start)")
	cmd.Flags().BoolVar(&flagSound, "sound", true, "Play sound cues (default: last used)")
}

// prepareGame applies the game flags and creates the variant, rejecting bad configs up front.
// Preferences fill in flags the user did not set.
func prepareGame(cmd *cobra.Command, id string, pm *prefs.Manager, logger *log.Logger) (*echorift.Game, bool) {
	if !registry.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'echorift list' to see available variants.")
		os.Exit(1)
	}

	p := pm.Get()
	difficulty := flagDifficulty
	if !cmd.Flags().Changed("difficulty") {
		difficulty = p.Difficulty
	}
	if difficulty != "" && config.ParsePreset(difficulty) == "" {
		fail("unknown difficulty %q (want easy, normal or hard)", difficulty)
	}
	sound := flagSound
	if !cmd.Flags().Changed("sound") {
		sound = p.Sound
	}

	echorift.SetConfigPath(flagConfig)
	echorift.SetDifficultyPreset(difficulty)
	echorift.SetStartStage(flagStage)

	v, err := echorift.LookupVariant(id)
	if err != nil {
		fail("%v", err)
	}
	if _, err := echorift.BuildConfig(v, echorift.CurrentOptions()); err != nil {
		fail("%v", err)
	}

	if err := pm.Update(func(p *prefs.Prefs) {
		p.LastVariant = id
		if difficulty != "" {
			p.Difficulty = difficulty
		}
		p.Sound = sound
	}); err != nil {
		logger.Warn("could not save preferences", "error", err)
	}

	return echorift.New(v), sound
}

// newCues returns an initialized audio player, or nil when sound is off or unavailable.
func newCues(enabled bool, logger *log.Logger) *audio.Player {
	if !enabled {
		return nil
	}
	player := audio.NewPlayer(logger)
	if err := player.Init(); err != nil {
		logger.Warn("audio unavailable, playing silently", "error", err)
		return nil
	}
	return player
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger, closeLog := fileLogger("echorift")
	defer closeLog()

	pm := prefs.Open(logger)
	game, sound := prepareGame(cmd, args[0], pm, logger)

	store := openStore(logger)
	defer closeStore(store)

	opts := tui.Options{
		Store:     store,
		SessionID: uuid.NewString(),
		Logger:    logger,
		FixedSeed: flagSeed != 0,
	}
	if cues := newCues(sound, logger); cues != nil {
		defer cues.Close()
		opts.Cues = cues
	}

	logger.Info("run started", "game", game.ID(), "session", opts.SessionID)
	if err := tui.Run(game, runtimeConfig(), opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
