package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/june1016/PAC-MAN/internal/audio"
	"github.com/june1016/PAC-MAN/internal/core"
	"github.com/june1016/PAC-MAN/internal/platform/tui"
	"github.com/june1016/PAC-MAN/internal/storage"
)

var (
	flagName    string
	flagSound   bool
	flagVolume  float64
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the game in the current terminal.

Controls:
  Arrows/WASD/HJKL  - Move
  P/Esc             - Pause
  Enter/R           - New game (after game over)
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - More lives, longer power pellets
  normal - Default tuning, adversaries speed up each level
  hard   - Fewer lives, starts closer to max difficulty
  fixed  - No per-level progression

Examples:
  pacman play
  pacman play --name ann --difficulty easy
  pacman play --maze-dir ./mazes --maze small
  pacman play --log-file /tmp/pacman.log --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name (prefills the title screen)")
	playCmd.Flags().BoolVar(&flagSound, "sound", true, "Play sound effects")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.5, "Sound volume from 0 to 1")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the terminal belongs to the game)")
}

func runPlay(cmd *cobra.Command, args []string) {
	// Bubble Tea owns the terminal, so logs go to a file or nowhere
	var out io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fatalf("opening log file: %v", err)
		}
		defer f.Close()
		out = f
	}
	logger := newLogger(out, "pacman")

	tpl, cfg := loadGame(logger)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	var sink audio.Sink = audio.Silent{}
	if flagSound {
		board := audio.NewSoundBoard(flagVolume)
		if err := board.Init(); err != nil {
			logger.Warn("sound disabled", "error", err)
		} else {
			defer board.Close()
			sink = board
		}
	}

	runErr := tui.Run(tui.Options{
		Template: tpl,
		Config:   cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Store:      store,
		Sink:       sink,
		Logger:     logger,
		PlayerName: playerName(),
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("game exited", "error", runErr)
		fatalf("running game: %v", runErr)
	}
}

// playerName returns --name or, failing that, $USER.
func playerName() string {
	if flagName != "" {
		return flagName
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return ""
}
