package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/june1016/PAC-MAN/internal/platform/tui"
	"github.com/june1016/PAC-MAN/internal/registry"
	"github.com/june1016/PAC-MAN/internal/storage"
)

var (
	flagScoresClear bool
	flagScoresStats bool
	flagScoresTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [maze]",
	Short: "Show high scores for a maze",
	Long: `Display the top 10 scores for a maze (default: --maze).

Examples:
  pacman scores
  pacman scores small --maze-dir ./mazes
  pacman scores --stats
  pacman scores --tui
  pacman scores classic --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every score for the maze")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show per-maze statistics")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores interactively")
}

func runScores(cmd *cobra.Command, args []string) {
	registerMazeDir(newLogger(os.Stderr, "pacman"))

	mazeID := flagMaze
	if len(args) == 1 {
		mazeID = args[0]
	}

	if err := showScores(mazeID); err != nil {
		fatalf("%v", err)
	}
}

// showScores runs the selected scores action. The store is closed before
// any error reaches the caller.
func showScores(mazeID string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	switch {
	case flagScoresTUI:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		_, err := tui.RunScoreboard(store, width, height)
		return err
	case flagScoresStats:
		return printStats(store)
	case flagScoresClear:
		if err := store.ClearScores(mazeID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s\n", mazeID)
		return nil
	default:
		return printScores(store, mazeID)
	}
}

func printScores(store *storage.Store, mazeID string) error {
	title := mazeID
	if tpl, err := registry.Create(mazeID); err == nil {
		title = tpl.Name()
	}

	scores, err := store.TopScores(mazeID, storage.MaxEntries)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'pacman play --maze %s' to set the first high score!\n", mazeID)
		return nil
	}

	fmt.Printf("  %-4s  %-*s  %-8s  %-5s  %s\n", "Rank", storage.MaxNameLen, "Name", "Score", "Level", "Date")
	fmt.Printf("  %-4s  %-*s  %-8s  %-5s  %s\n", "----", storage.MaxNameLen, "----", "-----", "-----", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-*s  %-8d  %-5d  %s\n",
			i+1, storage.MaxNameLen, e.Name, e.Score, e.Level, e.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printStats(store *storage.Store) error {
	stats, err := store.Stats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	if len(stats) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-12s  %-7s  %-8s  %-8s  %-5s  %s\n", "Maze", "Entries", "Best", "Average", "Level", "Last played")
	for _, id := range ids {
		st := stats[id]
		fmt.Printf("  %-12s  %-7d  %-8d  %-8.0f  %-5d  %s\n",
			id, st.Entries, st.HighScore, st.AvgScore, st.BestLevel, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
