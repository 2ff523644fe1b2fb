package uci

import (
	"bufio"
	"errors"
	"log/slog"
	"os"
	"time"
)

const checkInterval = 100 * time.Millisecond

// RunCli reads newline-delimited commands from stdin and feeds them
// to Run until quit or EOF. On quit the stdin reader goroutine is
// abandoned mid-read; process exit reclaims it.
func RunCli(logger *slog.Logger, protocol *Protocol) {
	var commands = make(chan string)
	go func() {
		defer close(commands)
		var scanner = bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			commands <- scanner.Text()
		}
	}()
	Run(logger, protocol, commands)
}

// Run is the command loop over any line source. Between commands it
// polls for a search that finished on its own, so bestmove goes out
// without waiting for the next input line. Command errors go to the
// logger, never to the protocol output.
func Run(logger *slog.Logger, protocol *Protocol, commands <-chan string) {
	var ticker = time.NewTicker(checkInterval)
	defer ticker.Stop()
	for {
		select {
		case commandLine, ok := <-commands:
			if !ok {
				return
			}
			logger.Debug("command received", "line", commandLine)
			var err = protocol.Handle(commandLine)
			if err != nil {
				if errors.Is(err, ErrQuit) {
					return
				}
				logger.Error("command rejected", "line", commandLine, "err", err)
			}
		case <-ticker.C:
			protocol.CheckBestMove()
		}
	}
}
