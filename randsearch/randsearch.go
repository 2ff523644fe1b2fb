// Package randsearch is an example search task: it waits out its time
// budget, then answers a random legal move. It exists to exercise the
// front end and the task contract, not to play well.
package randsearch

import (
	"math/rand/v2"
	"time"

	"github.com/jacobmacmillan/chessinterface/rules"
	"github.com/jacobmacmillan/chessinterface/uci"
)

// Search implements uci.SearchFunc. An infinite search waits for the
// cancellation token; otherwise it sleeps until the time budget runs
// out or the token arrives, whichever first. The depth limit is
// ignored. Exactly one result is always sent, even under immediate
// cancellation.
func Search(position string, limits uci.Limits, control <-chan struct{}, results chan<- uci.Result) {
	var moves []string
	var board, err = rules.FromFEN(position)
	if err == nil {
		moves = board.LegalMoves()
	}

	var timeout <-chan time.Time
	if !limits.Infinite {
		var timer = time.NewTimer(time.Duration(limits.MoveTime) * time.Millisecond)
		defer timer.Stop()
		timeout = timer.C
	}
	select {
	case <-control:
	case <-timeout:
	}

	if len(moves) == 0 {
		// Checkmate, stalemate or a broken FEN: answer the null
		// move rather than break the task contract by staying silent.
		results <- uci.Result{BestMove: "0000"}
		return
	}
	results <- uci.Result{BestMove: moves[rand.IntN(len(moves))]}
}
