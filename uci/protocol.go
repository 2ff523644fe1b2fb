// Package uci is a UCI protocol front end for a pluggable move search
// function. It parses one command line at a time, keeps the session
// state (position, limits, identity) and supervises a single
// concurrently running search task with cooperative cancellation.
//
// The search itself, the chess rules and the line transport are all
// collaborators: the integrator supplies a SearchFunc, positions are
// handled through the rules package, and command lines arrive through
// Handle from whatever reads them (RunCli for stdin).
package uci

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jacobmacmillan/chessinterface/rules"
)

// ErrQuit is returned by Handle for the quit command. The caller is
// expected to stop reading and exit; an active search is abandoned
// without being joined, a best-effort shutdown the process exit
// cleans up after.
var ErrQuit = errors.New("quit")

// Limits are the search bounds of one go command, rebuilt from
// scratch every time so stale values never leak between searches.
// Zero means unbounded.
type Limits struct {
	MoveTime int // milliseconds
	Depth    int
	Infinite bool
}

// Protocol holds one engine session. It processes commands from a
// single goroutine; the running search task is the only other
// concurrent activity, and it communicates through the supervisor's
// channel pair alone.
type Protocol struct {
	name       string
	author     string
	options    []Option
	supervisor *Supervisor
	position   rules.Board
	lastResult *Result
	output     io.Writer
}

// New builds a session around a search function. Options may be nil;
// registered options are announced by uci and settable by setoption.
func New(name, author string, search SearchFunc, options []Option) *Protocol {
	return &Protocol{
		name:       name,
		author:     author,
		options:    options,
		supervisor: NewSupervisor(search),
		position:   rules.NewBoard(),
		output:     os.Stdout,
	}
}

// SetOutput redirects protocol responses, stdout by default.
func (uci *Protocol) SetOutput(w io.Writer) {
	uci.output = w
}

// LastResult returns the most recently reported result, if any. It is
// observational only; no protocol decision reads it back.
func (uci *Protocol) LastResult() (Result, bool) {
	if uci.lastResult == nil {
		return Result{}, false
	}
	return *uci.lastResult, true
}

// Handle processes one command line. Errors mean the line was
// rejected without touching session state; they are for the caller's
// log and must not be written to the protocol output. Only stop (and
// go superseding a running search) blocks, waiting on the search
// task's result.
func (uci *Protocol) Handle(commandLine string) error {
	var fields = strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil
	}
	var commandName = fields[0]
	fields = fields[1:]

	var h func(fields []string) error

	switch commandName {
	case "uci":
		h = uci.uciCommand
	case "setoption":
		h = uci.setOptionCommand
	case "isready":
		h = uci.isReadyCommand
	case "position":
		h = uci.positionCommand
	case "go":
		h = uci.goCommand
	case "stop":
		h = uci.stopCommand
	case "ucinewgame":
		h = uci.uciNewGameCommand
	case "quit":
		return ErrQuit
	}

	if h == nil {
		return errors.New("command not found")
	}

	return h(fields)
}

// CheckBestMove reports a search that finished on its own since the
// last command, if any. Non-blocking; meant to run between command
// reads so a naturally completed search does not wait for the next
// stop to be announced.
func (uci *Protocol) CheckBestMove() bool {
	var result, ok = uci.supervisor.TryTakeResult()
	if !ok {
		return false
	}
	uci.supervisor.Join()
	uci.reportBestMove(result)
	return true
}

func (uci *Protocol) uciCommand(fields []string) error {
	fmt.Fprintf(uci.output, "id name %s\n", uci.name)
	fmt.Fprintf(uci.output, "id author %s\n", uci.author)
	for _, option := range uci.options {
		fmt.Fprintln(uci.output, option.UciString())
	}
	fmt.Fprintln(uci.output, "uciok")
	return nil
}

func (uci *Protocol) setOptionCommand(fields []string) error {
	if len(fields) < 4 {
		return errors.New("invalid setoption arguments")
	}
	var name, value = fields[1], fields[3]
	for _, option := range uci.options {
		if strings.EqualFold(option.UciName(), name) {
			return option.Set(value)
		}
	}
	// Option semantics are engine specific; unknown names are
	// accepted and ignored.
	return nil
}

func (uci *Protocol) isReadyCommand(fields []string) error {
	fmt.Fprintln(uci.output, "readyok")
	return nil
}

func (uci *Protocol) positionCommand(fields []string) error {
	if len(fields) == 0 {
		return errors.New("invalid position arguments")
	}
	var args = fields
	var token = args[0]
	var movesIndex = findIndexString(args, "moves")
	var board rules.Board
	if token == "startpos" {
		board = rules.NewBoard()
	} else if token == "fen" {
		var fen string
		if movesIndex == -1 {
			fen = strings.Join(args[1:], " ")
		} else {
			fen = strings.Join(args[1:movesIndex], " ")
		}
		var b, err = rules.FromFEN(fen)
		if err != nil {
			return err
		}
		board = b
	} else {
		return errors.New("unknown position command")
	}
	// Replay on a local board; the session position changes only
	// once the whole move list applied.
	if movesIndex >= 0 && movesIndex+1 < len(args) {
		for _, smove := range args[movesIndex+1:] {
			var next, err = board.ApplyMove(smove)
			if err != nil {
				return fmt.Errorf("parse move failed: %w", err)
			}
			board = next
		}
	}
	uci.position = board
	return nil
}

func (uci *Protocol) goCommand(fields []string) error {
	// A new go supersedes a running search: cancel it, wait it out
	// and discard its result unreported.
	if uci.supervisor.Busy() {
		uci.supervisor.Abort()
	}
	var limits = parseLimits(fields)
	return uci.supervisor.Start(uci.position.FEN(), limits)
}

func (uci *Protocol) stopCommand(fields []string) error {
	if !uci.supervisor.Busy() {
		return errors.New("no search to stop")
	}
	uci.supervisor.Cancel()
	var result = uci.supervisor.AwaitResult()
	uci.supervisor.Join()
	uci.reportBestMove(result)
	return nil
}

func (uci *Protocol) uciNewGameCommand(fields []string) error {
	uci.position = rules.NewBoard()
	return nil
}

func (uci *Protocol) reportBestMove(result Result) {
	uci.lastResult = &result
	if result.Ponder != "" {
		fmt.Fprintf(uci.output, "bestmove %v ponder %v\n", result.BestMove, result.Ponder)
	} else {
		fmt.Fprintf(uci.output, "bestmove %v\n", result.BestMove)
	}
}

// parseLimits reads the go sub-options this front end honors. The
// clock and restriction options (wtime, searchmoves, ...) are
// consumed with their values and ignored.
func parseLimits(args []string) (result Limits) {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "movetime":
			result.MoveTime, _ = strconv.Atoi(safeArg(args, i+1))
			i++
		case "depth":
			result.Depth, _ = strconv.Atoi(safeArg(args, i+1))
			i++
		case "infinite":
			result.Infinite = true
		case "wtime", "btime", "winc", "binc", "movestogo", "nodes", "mate":
			i++
		case "ponder", "searchmoves":
		}
	}
	return
}

func safeArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func findIndexString(slice []string, value string) int {
	for p, v := range slice {
		if v == value {
			return p
		}
	}
	return -1
}
