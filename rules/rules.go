// Package rules adapts the chess rules library to the small surface
// the protocol front end needs: build a position, replay moves in UCI
// coordinate notation, and read the canonical FEN back.
package rules

import (
	"fmt"

	"github.com/notnil/chess"
)

// Board is an immutable position. Applying a move returns a new Board
// and leaves the receiver untouched, so a failed replay never corrupts
// session state.
type Board struct {
	pos *chess.Position
}

// NewBoard returns the standard starting position.
func NewBoard() Board {
	return Board{pos: chess.NewGame().Position()}
}

// FromFEN builds a position from a full 6-field FEN string.
func FromFEN(fen string) (Board, error) {
	var opt, err = chess.FEN(fen)
	if err != nil {
		return Board{}, err
	}
	return Board{pos: chess.NewGame(opt).Position()}, nil
}

// ApplyMove plays one move given in UCI coordinate form (e2e4, e7e8q).
// The token must decode and must be legal in the current position.
func (b Board) ApplyMove(token string) (Board, error) {
	var m, err = chess.UCINotation{}.Decode(b.pos, token)
	if err != nil {
		return Board{}, err
	}
	// Update relies on the tags ValidMoves attaches (castle, en
	// passant), so play the matched legal move, not the decoded one.
	for _, valid := range b.pos.ValidMoves() {
		if valid.S1() == m.S1() && valid.S2() == m.S2() && valid.Promo() == m.Promo() {
			return Board{pos: b.pos.Update(valid)}, nil
		}
	}
	return Board{}, fmt.Errorf("illegal move %v", token)
}

// FEN returns the canonical descriptor of the position.
func (b Board) FEN() string {
	return b.pos.String()
}

// LegalMoves returns every legal move in UCI coordinate form.
func (b Board) LegalMoves() []string {
	var valid = b.pos.ValidMoves()
	var moves = make([]string, len(valid))
	for i, m := range valid {
		moves[i] = m.String()
	}
	return moves
}
