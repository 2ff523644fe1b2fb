package uci

import (
	"fmt"
	"time"
)

// Play asks a session for a single move: set the position, search for
// moveTimeMs milliseconds and wait for the reported result. Useful
// for driving an engine without a transport, e.g. self-play.
func Play(protocol *Protocol, fen string, moveTimeMs int) (Result, error) {
	var err = protocol.Handle("position fen " + fen)
	if err != nil {
		return Result{}, err
	}
	err = protocol.Handle(fmt.Sprintf("go movetime %v", moveTimeMs))
	if err != nil {
		return Result{}, err
	}
	for !protocol.CheckBestMove() {
		time.Sleep(10 * time.Millisecond)
	}
	var result, _ = protocol.LastResult()
	return result, nil
}
