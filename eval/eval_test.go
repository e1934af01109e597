package eval

import (
	"testing"

	"github.com/matryer/is"
	"lukechampine.com/frand"

	"github.com/unit117/Gomoku/board"
)

func TestConsecutiveSetScoreTable(t *testing.T) {
	is := is.New(t)
	type testcase struct {
		count  int
		blocks int
		turn   bool
		exp    int
	}
	cases := []testcase{
		{1, 2, true, 0},
		{4, 2, true, 0},
		{5, 2, false, WinScore},
		{5, 0, true, WinScore},
		{4, 1, true, NearWinScore},
		{4, 0, false, NearWinScore / 4},
		{4, 1, false, 200},
		{3, 0, true, 50000},
		{3, 0, false, 200},
		{3, 1, true, 10},
		{3, 1, false, 5},
		{2, 0, true, 7},
		{2, 0, false, 5},
		{2, 1, true, 3},
		{2, 1, false, 3},
		{1, 0, true, 1},
		{1, 1, false, 1},
		{6, 1, true, 2 * WinScore},
		{7, 2, false, 2 * WinScore},
	}
	for _, tc := range cases {
		is.Equal(ConsecutiveSetScore(tc.count, tc.blocks, tc.turn), tc.exp)
	}
}

func TestConsecutiveSetScoreMonotonic(t *testing.T) {
	is := is.New(t)
	for blocks := 0; blocks <= 2; blocks++ {
		for _, turn := range []bool{true, false} {
			prev := 0
			for count := 1; count <= 4; count++ {
				v := ConsecutiveSetScore(count, blocks, turn)
				is.True(v >= prev)
				prev = v
			}
		}
	}
}

func TestScoreSingleStones(t *testing.T) {
	is := is.New(t)
	g := board.NewGrid(19)
	g.Apply(board.Move{Row: 9, Col: 9}, board.Black)
	// one open single in each of four directions
	is.Equal(Score(g, board.Black, board.Black), 4)
	is.Equal(Score(g, board.Black, board.White), 4)
	is.Equal(Score(g, board.White, board.White), 0)
	is.Equal(Score(g, board.White, board.Black), 0)

	corner := board.NewGrid(19)
	corner.Apply(board.Move{Row: 0, Col: 0}, board.White)
	// the one-cell diagonal through the corner is closed at both ends.
	is.Equal(Score(corner, board.White, board.White), 3)
}

func TestScoreOpenThree(t *testing.T) {
	is := is.New(t)
	g := board.NewGrid(19)
	for col := 8; col <= 10; col++ {
		g.Apply(board.Move{Row: 9, Col: col}, board.Black)
	}
	// 50000 for the row, plus one for each stone in the three other
	// directions.
	is.Equal(Score(g, board.Black, board.Black), 50000+9)
	is.Equal(Score(g, board.Black, board.White), 200+9)

	g.Apply(board.Move{Row: 9, Col: 11}, board.White)
	is.Equal(Score(g, board.Black, board.Black), 10+9)
	g.Apply(board.Move{Row: 9, Col: 7}, board.White)
	is.Equal(Score(g, board.Black, board.Black), 9)
}

func TestScoreRunAgainstEdge(t *testing.T) {
	is := is.New(t)
	g, err := board.FromRows([]string{
		"X X . . . . .",
		". . . . . . .",
		". . . . . . .",
		". . . . . . .",
		". . . . . . .",
		". . . . . . .",
		". . . . . X X",
	})
	is.NoErr(err)
	// rows: two twos, each closed by the edge (3 + 3)
	// columns: four singles with one open end (4)
	// diagonals: the corner stones sit on one-cell diagonals (0 + 1 + 1 + 0)
	// anti-diagonals: four singles with one open end (4)
	is.Equal(Score(g, board.Black, board.Black), 16)
}

func TestFiveAlwaysWins(t *testing.T) {
	is := is.New(t)
	rng := frand.NewCustom(make([]byte, 32), 1024, 12)
	for trial := 0; trial < 50; trial++ {
		g := board.NewGrid(15)
		color := board.Black
		if trial%2 == 1 {
			color = board.White
		}
		d := board.Directions[trial%4]
		start := board.Move{Row: 5, Col: 5}
		for k := 0; k < 5; k++ {
			m := board.Move{Row: start.Row + d[0]*k, Col: start.Col + d[1]*k}
			g.Apply(m, color)
		}
		// scatter other stones of both colors
		for _, m := range g.AllEmptyCells() {
			if rng.Intn(3) == 0 {
				if rng.Intn(2) == 0 {
					g.Apply(m, board.Black)
				} else {
					g.Apply(m, board.White)
				}
			}
		}
		is.True(Score(g, color, color) >= WinScore)
		is.True(Score(g, color, color.Opponent()) >= WinScore)
	}
}

func TestScoreColorSymmetry(t *testing.T) {
	is := is.New(t)
	rng := frand.NewCustom(make([]byte, 32), 1024, 12)
	for trial := 0; trial < 100; trial++ {
		g := board.NewGrid(11)
		for _, m := range g.AllEmptyCells() {
			switch rng.Intn(5) {
			case 0:
				g.Apply(m, board.Black)
			case 1:
				g.Apply(m, board.White)
			}
		}
		mirrored := g.Mirror()
		is.Equal(Score(g, board.Black, board.Black), Score(mirrored, board.White, board.White))
		is.Equal(Score(g, board.White, board.Black), Score(mirrored, board.Black, board.White))
	}
}

func TestRatio(t *testing.T) {
	is := is.New(t)
	g := board.NewGrid(19)
	g.Apply(board.Move{Row: 9, Col: 9}, board.Black)
	is.Equal(Ratio(g, board.White, board.White), 0.0)
	is.Equal(Ratio(g, board.Black, board.White), 4.0)
	g.Apply(board.Move{Row: 9, Col: 10}, board.White)
	// each side: three open singles and one single closed on one end.
	is.Equal(Ratio(g, board.White, board.Black), 1.0)
}

func TestWinner(t *testing.T) {
	is := is.New(t)
	g, err := board.FromRows([]string{
		". . . . . . .",
		". O O O O . .",
		". X X X X . .",
		". . . . . . .",
		". . . . . . .",
		". . . . . . .",
		". . . . . . .",
	})
	is.NoErr(err)
	is.Equal(Winner(g), board.Empty)
	g.Apply(board.Move{Row: 1, Col: 5}, board.White)
	is.Equal(Winner(g), board.White)
}
