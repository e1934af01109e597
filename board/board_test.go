package board

import (
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestApplyOccupied(t *testing.T) {
	is := is.New(t)
	g := NewGrid(9)
	m := Move{Row: 4, Col: 4}
	is.True(g.Apply(m, Black))
	is.True(!g.Apply(m, White))
	is.Equal(g.At(m), Black)
	is.Equal(g.Stones(), 1)
}

func TestApplyRemoveRoundTrip(t *testing.T) {
	is := is.New(t)
	g, err := FromRows([]string{
		". . . . .",
		". X O . .",
		". . X . .",
		". . . O .",
		". . . . .",
	})
	is.NoErr(err)
	before := g.Clone()
	for _, m := range g.AllEmptyCells() {
		for _, c := range []Cell{White, Black} {
			is.True(g.Apply(m, c))
			is.True(!g.Equals(before))
			g.Remove(m)
			is.True(g.Equals(before))
		}
	}
}

func TestPlace(t *testing.T) {
	is := is.New(t)
	g := NewGrid(5)
	is.NoErr(g.Place(Move{Row: 0, Col: 0}, White))
	err := g.Place(Move{Row: 0, Col: 0}, Black)
	is.True(err != nil)
	is.Equal(errors.Is(err, ErrOccupied), true)
	err = g.Place(Move{Row: 5, Col: 0}, Black)
	is.Equal(errors.Is(err, ErrOutOfBounds), true)
}

func TestCandidateMovesEmptyBoard(t *testing.T) {
	is := is.New(t)
	g := NewGrid(19)
	is.Equal(len(g.CandidateMoves()), 0)
	is.Equal(len(g.AllEmptyCells()), 361)
}

func TestCandidateMovesAdjacency(t *testing.T) {
	is := is.New(t)
	g := NewGrid(19)
	g.Apply(Move{Row: 9, Col: 9}, Black)
	moves := g.CandidateMoves()
	is.Equal(len(moves), 8)
	// row-major order
	is.Equal(moves[0], Move{Row: 8, Col: 8})
	is.Equal(moves[7], Move{Row: 10, Col: 10})
	for _, m := range moves {
		dr, dc := m.Row-9, m.Col-9
		is.True(dr >= -1 && dr <= 1 && dc >= -1 && dc <= 1)
	}
}

func TestCandidateMovesCorner(t *testing.T) {
	is := is.New(t)
	g := NewGrid(5)
	g.Apply(Move{Row: 0, Col: 0}, White)
	is.Equal(g.CandidateMoves(), []Move{{0, 1}, {1, 0}, {1, 1}})
}

func TestIsFull(t *testing.T) {
	is := is.New(t)
	g := NewGrid(3)
	color := Black
	for _, m := range g.AllEmptyCells() {
		is.True(!g.IsFull())
		g.Apply(m, color)
		color = color.Opponent()
	}
	is.True(g.IsFull())
	is.Equal(len(g.AllEmptyCells()), 0)
	is.Equal(len(g.CandidateMoves()), 0)
}

func TestFiveThrough(t *testing.T) {
	is := is.New(t)
	g, err := FromRows([]string{
		"X . . . . . .",
		". X . . . . .",
		". . X . . . .",
		". . . X . . .",
		". . . . X . .",
		"O O O O . . .",
		". . . . . . .",
	})
	is.NoErr(err)
	is.True(g.FiveThrough(Move{Row: 2, Col: 2}))
	is.True(!g.FiveThrough(Move{Row: 5, Col: 0}))
	is.True(!g.FiveThrough(Move{Row: 6, Col: 6}))
	is.Equal(g.LongestLineThrough(Move{Row: 5, Col: 4}, White), 5)
}

func TestMirror(t *testing.T) {
	is := is.New(t)
	g := NewGrid(5)
	g.Apply(Move{Row: 1, Col: 1}, Black)
	g.Apply(Move{Row: 2, Col: 2}, White)
	m := g.Mirror()
	is.Equal(m.At(Move{Row: 1, Col: 1}), White)
	is.Equal(m.At(Move{Row: 2, Col: 2}), Black)
	is.Equal(m.Stones(), 2)
	is.True(m.Mirror().Equals(g))
}

func TestParseMove(t *testing.T) {
	is := is.New(t)
	type testcase struct {
		in      string
		exp     Move
		wantErr bool
	}
	cases := []testcase{
		{"a1", Move{0, 0}, false},
		{"J10", Move{9, 9}, false},
		{"s19", Move{18, 18}, false},
		{"t1", Move{}, true},
		{"a20", Move{}, true},
		{"10", Move{}, true},
		{"a", Move{}, true},
	}
	for _, tc := range cases {
		m, err := ParseMove(tc.in, 19)
		if tc.wantErr {
			is.True(err != nil)
			continue
		}
		is.NoErr(err)
		is.Equal(m, tc.exp)
		is.Equal(m.String(), strings.ToLower(tc.in))
	}
}

func TestOpponent(t *testing.T) {
	is := is.New(t)
	is.Equal(Black.Opponent(), White)
	is.Equal(White.Opponent(), Black)
	is.Equal(Empty.Opponent(), Empty)
}
