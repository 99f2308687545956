package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/echorift/internal/registry"
	"github.com/vovakirdan/echorift/internal/storage"
)

var (
	flagScoresLimit int
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show recorded runs",
	Long: `Display the best runs for the specified variant, or a summary of every
variant when none is given.

Examples:
  echorift scores
  echorift scores echorift_shards
  echorift scores echorift --limit 25
  echorift scores echorift_surge --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run of the variant")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening runs database: %v", err)
	}
	defer store.Close()

	if len(args) == 0 {
		if flagClear {
			store.Close()
			fail("--clear needs a variant")
		}
		printSummary(store)
		return
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'echorift list' to see available variants.")
		os.Exit(1)
	}

	if flagClear {
		if err := store.ClearRuns(gameID); err != nil {
			store.Close()
			fail("clearing runs: %v", err)
		}
		fmt.Printf("Cleared all runs of %s.\n", gameID)
		return
	}

	printRuns(store, gameID)
}

func printRuns(store *storage.Store, gameID string) {
	game, err := registry.Create(gameID)
	if err != nil {
		store.Close()
		fail("creating game: %v", err)
	}

	runs, err := store.TopRuns(gameID, flagScoresLimit)
	if err != nil {
		store.Close()
		fail("retrieving runs: %v", err)
	}

	fmt.Printf("Best Runs - %s\n", game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'echorift play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-10s  %-8s  %s\n", "Rank", "Score", "Shards", "Rift", "Time", "When")
	fmt.Printf("  %-4s  %-8s  %-6s  %-10s  %-8s  %s\n", "----", "-----", "------", "----", "----", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-8s  %-6d  %-10s  %-8s  %s\n",
			i+1, humanize.Comma(int64(r.Score)), r.Shards, r.Stage, runDuration(r.Frames), humanize.Time(r.CreatedAt))
	}

	if stats, err := store.Stats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Runs: %s  Best: %s  Average: %.1f  Shards collected: %s\n",
			humanize.Comma(int64(stats.RunsCount)), humanize.Comma(int64(stats.HighScore)),
			stats.AvgScore, humanize.Comma(stats.TotalShards))
	}
}

func printSummary(store *storage.Store) {
	all, err := store.AllStats()
	if err != nil {
		store.Close()
		fail("retrieving stats: %v", err)
	}

	fmt.Println("Run Summary")
	fmt.Println()

	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-18s  %-6s  %-8s  %-8s  %-8s  %s\n", "Variant", "Runs", "Best", "Avg", "Longest", "Last played")
	fmt.Printf("  %-18s  %-6s  %-8s  %-8s  %-8s  %s\n", "-------", "----", "----", "---", "-------", "-----------")

	for _, g := range registry.List() {
		st, ok := all[g.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-18s  %-6d  %-8s  %-8.1f  %-8s  %s\n",
			g.ID, st.RunsCount, humanize.Comma(int64(st.HighScore)), st.AvgScore,
			runDuration(st.MostFrames), humanize.Time(st.LastPlayed))
	}
}

// runDuration formats a frame count as play time at the configured tick rate.
func runDuration(frames int) string {
	fps := max(flagFPS, 1)
	secs := frames / fps
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
