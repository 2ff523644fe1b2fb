package rules_test

import (
	"testing"

	"github.com/jacobmacmillan/chessinterface/rules"

	"github.com/stretchr/testify/require"
)

func TestStartingPositionHasTwentyMoves(t *testing.T) {
	require.Len(t, rules.NewBoard().LegalMoves(), 20)
}

func TestIncrementalMatchesDirectConstruction(t *testing.T) {
	var incremental = rules.NewBoard()
	var err error
	for _, token := range []string{"e2e4", "e7e5"} {
		incremental, err = incremental.ApplyMove(token)
		require.NoError(t, err)
	}

	var direct, derr = rules.FromFEN("rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2")
	require.NoError(t, derr)
	require.Equal(t, direct.FEN(), incremental.FEN())
}

func TestFENRoundTrip(t *testing.T) {
	var board, err = rules.NewBoard().ApplyMove("g1f3")
	require.NoError(t, err)

	var reparsed, perr = rules.FromFEN(board.FEN())
	require.NoError(t, perr)
	require.Equal(t, board.FEN(), reparsed.FEN())
}

func TestApplyMoveRejectsMalformedToken(t *testing.T) {
	var _, err = rules.NewBoard().ApplyMove("zz99")
	require.Error(t, err)
}

func TestApplyMoveRejectsIllegalMove(t *testing.T) {
	// Well formed token, but the rook is boxed in.
	var _, err = rules.NewBoard().ApplyMove("a1a5")
	require.Error(t, err)
}

func TestFromFENRejectsTruncatedDescriptor(t *testing.T) {
	var _, err = rules.FromFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq")
	require.Error(t, err)
}

func TestPromotion(t *testing.T) {
	var board, err = rules.FromFEN("8/P6k/8/8/8/8/8/K7 w - - 0 1")
	require.NoError(t, err)
	board, err = board.ApplyMove("a7a8q")
	require.NoError(t, err)
	require.Contains(t, board.FEN(), "Q")
}
