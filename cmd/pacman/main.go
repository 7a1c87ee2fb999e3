// pacman is a terminal maze chase game.
//
// Usage:
//
//	pacman play              - Play in the terminal
//	pacman sim               - Run a seeded headless game and print the result
//	pacman scores [maze]     - Show high scores for a maze
//	pacman mazes             - List, export or check maze files
//	pacman serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Base tick rate (default: 60)
//	--seed <value>       - RNG seed for reproducible gameplay
//	--db <path>          - Database path (default: ~/.pacman/scores.db)
//	--maze <id>          - Maze to play (default: classic)
//	--maze-dir <dir>     - Extra directory of YAML mazes
//	--config <path>      - Custom game config YAML
//	--difficulty <name>  - easy, normal, hard or fixed
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/june1016/PAC-MAN/internal/config"
	"github.com/june1016/PAC-MAN/internal/levels"
	"github.com/june1016/PAC-MAN/internal/maze"
	"github.com/june1016/PAC-MAN/internal/registry"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagMaze       string
	flagMazeDir    string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pacman",
	Short: "Maze chase in your terminal",
	Long: `Eat every pellet in the maze while four adversaries hunt you down.
Each one chases in its own way; a power pellet turns the tables for a while.

Available commands:
  play     - Play in the terminal
  sim      - Run a seeded headless game
  scores   - View high scores
  mazes    - List, export or check mazes
  serve    - Start SSH server for remote play

Examples:
  pacman play
  pacman play --difficulty hard --seed 42
  pacman sim --seed 7 --ticks 20000
  pacman mazes --export classic > classic.yaml
  pacman serve --addr :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Base tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pacman/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagMaze, "maze", registry.DefaultID, "Maze ID")
	rootCmd.PersistentFlags().StringVar(&flagMazeDir, "maze-dir", "", "Directory of extra YAML mazes")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(mazesCmd)
	rootCmd.AddCommand(serveCmd)
}

// fatalf prints an error and exits with status 1.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds a logger at --log-level writing to w.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// registerMazeDir adds the mazes under --maze-dir to the registry.
func registerMazeDir(logger *log.Logger) {
	if flagMazeDir == "" {
		return
	}
	ids, err := levels.NewLoader(flagMazeDir).RegisterAll()
	if err != nil {
		logger.Warn("could not load maze directory", "dir", flagMazeDir, "error", err)
		return
	}
	logger.Debug("registered mazes", "dir", flagMazeDir, "ids", ids)
}

// loadGame resolves --maze and the game configuration.
func loadGame(logger *log.Logger) (maze.LevelTemplate, config.GameConfig) {
	registerMazeDir(logger)

	if !registry.Exists(flagMaze) {
		fmt.Fprintf(os.Stderr, "Error: unknown maze %q\n", flagMaze)
		fmt.Fprintln(os.Stderr, "Run 'pacman mazes' to see available mazes.")
		os.Exit(1)
	}
	tpl, err := registry.Create(flagMaze)
	if err != nil {
		fatalf("loading maze: %v", err)
	}

	cfg, err := config.LoadWithPreset(flagConfig, flagDifficulty)
	if err != nil {
		fatalf("loading config: %v", err)
	}
	return tpl, cfg
}
