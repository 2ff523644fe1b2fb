package uci_test

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/jacobmacmillan/chessinterface/uci"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func runSession(t *testing.T, search uci.SearchFunc, lines ...string) string {
	t.Helper()
	var out = &bytes.Buffer{}
	var protocol = uci.New("Test Engine", "Test Author", search, nil)
	protocol.SetOutput(out)

	var commands = make(chan string)
	go func() {
		defer close(commands)
		for _, line := range lines {
			commands <- line
		}
	}()
	uci.Run(discardLogger(), protocol, commands)
	return out.String()
}

func TestRunFullSession(t *testing.T) {
	var out = runSession(t, waitThenAnswer(uci.Result{BestMove: "e2e4"}),
		"uci",
		"isready",
		"position startpos",
		"go infinite",
		"stop",
	)
	require.Equal(t, []string{
		"id name Test Engine",
		"id author Test Author",
		"uciok",
		"readyok",
		"bestmove e2e4",
	}, strings.Split(strings.TrimSpace(out), "\n"))
}

func TestRunQuitStopsLoop(t *testing.T) {
	// Lines after quit must never be processed, even though the
	// channel still holds them.
	var commands = make(chan string, 3)
	commands <- "quit"
	commands <- "isready"
	close(commands)

	var out = &bytes.Buffer{}
	var protocol = uci.New("Test Engine", "Test Author", nil, nil)
	protocol.SetOutput(out)
	uci.Run(discardLogger(), protocol, commands)
	require.Empty(t, out.String())
}

func TestRunIgnoresUnknownCommands(t *testing.T) {
	var out = runSession(t, nil,
		"no such command",
		"isready",
	)
	require.Equal(t, "readyok\n", out)
}
