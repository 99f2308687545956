package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/echorift/internal/config"
	"github.com/vovakirdan/echorift/internal/games/echorift"
)

var stagesCmd = &cobra.Command{
	Use:   "stages <variant>",
	Short: "Show how a variant's rift advances",
	Long: `Lists the Rift stages of a variant with their speed multipliers, colors
and the metric value at which each one is reached.

Examples:
  echorift stages echorift
  echorift stages echorift_shards --difficulty hard
  echorift stages echorift --config ./my-rift.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runStages,
}

func init() {
	stagesCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config (YAML or TOML)")
	stagesCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	stagesCmd.Flags().IntVar(&flagStage, "stage", -1, "Starting Rift stage, 0-based (-1 = configured start)")
}

func runStages(_ *cobra.Command, args []string) {
	v, err := echorift.LookupVariant(args[0])
	if err != nil {
		fail("%v", err)
	}

	cfg, err := echorift.BuildConfig(v, echorift.Options{
		ConfigPath: flagConfig,
		Preset:     config.ParsePreset(flagDifficulty),
		StartStage: flagStage,
	})
	if err != nil {
		fail("%v", err)
	}

	st := cfg.Stages
	fmt.Printf("Rift Stages - %s\n", v.Title)
	fmt.Println()
	fmt.Printf("Advances every %d %s.\n", st.AdvanceEvery, st.Metric)
	fmt.Println()

	fmt.Printf("  %-3s  %-12s  %-6s  %-8s  %s\n", "#", "Name", "Speed", "Color", "Reached at")
	fmt.Printf("  %-3s  %-12s  %-6s  %-8s  %s\n", "-", "----", "-----", "-----", "----------")

	for i, s := range st.List {
		fmt.Printf("  %-3d  %-12s  x%-5.2f  %-8s  %s\n", i, s.Name, s.SpeedMultiplier, s.Color, reachedAt(st, i))
	}
}

// reachedAt describes when stage i becomes active.
func reachedAt(st config.RiftStages, i int) string {
	switch {
	case i < st.Start:
		return "-"
	case i == st.Start:
		return "start"
	default:
		return fmt.Sprintf("%s %d", st.Metric, (i-st.Start)*st.AdvanceEvery)
	}
}
