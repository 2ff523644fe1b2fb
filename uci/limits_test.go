package uci

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLimits(t *testing.T) {
	var testCases = []struct {
		args string
		want Limits
	}{
		{"", Limits{}},
		{"movetime 3000", Limits{MoveTime: 3000}},
		{"depth 12", Limits{Depth: 12}},
		{"infinite", Limits{Infinite: true}},
		{"movetime 500 depth 4", Limits{MoveTime: 500, Depth: 4}},
		{"wtime 300000 btime 300000 winc 2000 binc 2000", Limits{}},
		{"movestogo 40 movetime 100", Limits{MoveTime: 100}},
		{"nodes 100000 mate 3", Limits{}},
		{"ponder movetime 100", Limits{MoveTime: 100}},
		{"movetime", Limits{}},
		{"depth twelve", Limits{}},
	}
	for _, tc := range testCases {
		var got = parseLimits(strings.Fields(tc.args))
		require.Equal(t, tc.want, got, "go %v", tc.args)
	}
}
