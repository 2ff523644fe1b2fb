// Command uciengine wraps the random-move example search in a UCI
// front end, mostly to have a runnable engine for testing hosts.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/jacobmacmillan/chessinterface/internal/log"
	"github.com/jacobmacmillan/chessinterface/randsearch"
	"github.com/jacobmacmillan/chessinterface/rules"
	"github.com/jacobmacmillan/chessinterface/uci"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	flagVerbose bool
	flagLogFile string
	flagName    string
	flagAuthor  string

	flagGames    int
	flagMoveTime int
	flagMaxMoves int

	logger *slog.Logger
)

func main() {
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "verbose logging, includes every received command")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "append logs to this file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&flagName, "name", "Random Mover", "engine name for the uci identity block")
	rootCmd.PersistentFlags().StringVar(&flagAuthor, "author", "Jacob MacMillan Software Inc.", "engine author for the uci identity block")

	playCmd.Flags().IntVar(&flagGames, "games", 1, "number of self-play games")
	playCmd.Flags().IntVar(&flagMoveTime, "movetime", 10, "milliseconds per move")
	playCmd.Flags().IntVar(&flagMaxMoves, "max-moves", 200, "abandon a game after this many moves")

	rootCmd.SilenceErrors = true
	rootCmd.PersistentPreRunE = initLogger

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("uciengine failed", "err", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "uciengine",
	Short:        "UCI front end around a random-move search task",
	SilenceUsage: true,
	RunE:         doRun,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "play engine-vs-engine games without a host",
	RunE:  doPlay,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print build information",
	Run: func(cmd *cobra.Command, args []string) {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			fmt.Println("uciengine: version info not available")
			return
		}
		fmt.Printf("uciengine: %s\n", info.Main.Version)
		fmt.Printf("go:        %s\n", info.GoVersion)
	},
}

func initLogger(cmd *cobra.Command, args []string) error {
	var target io.Writer = os.Stderr
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		target = f
	}
	logger = log.New(target, flagVerbose)
	return nil
}

func doRun(cmd *cobra.Command, args []string) error {
	logger.Info("starting",
		"name", flagName,
		"author", flagAuthor,
		"pid", os.Getpid(),
		"runtime", runtime.Version())
	var protocol = uci.New(flagName, flagAuthor, randsearch.Search, nil)
	uci.RunCli(logger, protocol)
	return nil
}

func doPlay(cmd *cobra.Command, args []string) error {
	var g, ctx = errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.NumCPU())
	for i := 0; i < flagGames; i++ {
		g.Go(func() error {
			var gameCtx = log.ContextAttrs(ctx, slog.Int("game", i))
			var board, moves, err = playGame()
			if err != nil {
				return err
			}
			logger.InfoContext(gameCtx, "game finished",
				"moves", moves,
				"fen", board.FEN())
			return nil
		})
	}
	return g.Wait()
}

// playGame runs one self-play game with the random mover on both
// sides, up to the move cap.
func playGame() (rules.Board, int, error) {
	var protocol = uci.New(flagName, flagAuthor, randsearch.Search, nil)
	protocol.SetOutput(io.Discard)
	var board = rules.NewBoard()
	for move := 0; move < flagMaxMoves; move++ {
		var result, err = uci.Play(protocol, board.FEN(), flagMoveTime)
		if err != nil {
			return board, move, err
		}
		if result.BestMove == "0000" {
			// No legal moves left, the game is over.
			return board, move, nil
		}
		board, err = board.ApplyMove(result.BestMove)
		if err != nil {
			return board, move, err
		}
	}
	return board, flagMaxMoves, nil
}
