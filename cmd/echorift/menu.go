package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/echorift/internal/audio"
	"github.com/vovakirdan/echorift/internal/games/echorift"
	"github.com/vovakirdan/echorift/internal/platform/tui"
	"github.com/vovakirdan/echorift/internal/prefs"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick variants interactively",
	Long: `Start EchoRift in interactive menu mode.

Pick a variant, choose the Rift stage to start in, and play. After a run
you can press B to return to the menu. Difficulty and sound choices are
remembered between sessions.

Controls:
  Up/Down/j/k   - Navigate menu
  Left/Right    - Change difficulty
  M             - Toggle sound
  Enter/Space   - Select
  Tab           - Scoreboard
  Q             - Quit

Examples:
  echorift menu
  echorift menu --fps 30
  echorift menu --db ./runs.db`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config (YAML or TOML)")
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog := fileLogger("echorift")
	defer closeLog()

	pm := prefs.Open(logger)
	store := openStore(logger)
	defer closeStore(store)

	// Opened on first use, the speaker can only be initialized once
	var player *audio.Player
	defer func() { player.Close() }()

	sessionID := uuid.NewString()
	cfg := runtimeConfig()
	echorift.SetConfigPath(flagConfig)

	for {
		res, err := tui.RunMenu(store, cfg, pm.Get())
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}
		cfg = res.Config

		if err := pm.Update(func(p *prefs.Prefs) {
			p.Difficulty = string(res.Difficulty)
			p.Sound = res.Sound
		}); err != nil {
			logger.Warn("could not save preferences", "error", err)
		}

		if res.Quit {
			return nil
		}

		if res.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return fmt.Errorf("scoreboard: %w", err)
			}
			if !goBack {
				return nil
			}
			continue
		}

		v, err := echorift.LookupVariant(res.GameID)
		if err != nil {
			logger.Warn("menu offered an unknown variant", "game", res.GameID, "error", err)
			continue
		}

		echorift.SetDifficultyPreset(string(res.Difficulty))
		echorift.SetStartStage(-1)
		riftCfg, err := echorift.BuildConfig(v, echorift.CurrentOptions())
		if err != nil {
			return err
		}

		stage, err := tui.RunStageSelector(v.Title, riftCfg.Stages, cfg)
		if err != nil {
			return fmt.Errorf("stage select: %w", err)
		}
		if stage < 0 {
			continue
		}
		echorift.SetStartStage(stage)

		if err := pm.Update(func(p *prefs.Prefs) { p.LastVariant = v.ID }); err != nil {
			logger.Warn("could not save preferences", "error", err)
		}

		opts := tui.Options{
			Store:     store,
			SessionID: sessionID,
			Logger:    logger,
			AllowBack: true,
			FixedSeed: flagSeed != 0,
		}
		if res.Sound {
			if player == nil {
				player = newCues(true, logger)
			}
			if player != nil {
				opts.Cues = player
			}
		}

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		logger.Info("run started", "game", v.ID, "difficulty", res.Difficulty, "stage", stage)
		if err := tui.Run(echorift.New(v), cfg, opts); err != nil {
			return fmt.Errorf("running game: %w", err)
		}
	}
}
