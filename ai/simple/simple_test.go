package simple

import (
	"testing"

	"github.com/matryer/is"

	"github.com/unit117/Gomoku/board"
	"github.com/unit117/Gomoku/search"
)

func rows(t *testing.T, r ...string) *board.Grid {
	g, err := board.FromRows(r)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestBlocksOpenTwo(t *testing.T) {
	is := is.New(t)
	p := NewPolicy(search.NewRNG([32]byte{1}))
	g := rows(t,
		". . . . . . .",
		". . . . . . .",
		". . O O . . .",
		". . . . . . .",
		". . . . . . .",
		". . . . . . .",
		". . . . . . .",
	)
	res := p.MakeMove(g, board.Black)
	m, ok := res.Move()
	is.True(ok)
	// (2,1) comes first in scan order; (2,4) would make the same three.
	is.Equal(m, board.Move{Row: 2, Col: 1})
	is.Equal(res.Score(), 3.0)
	is.Equal(g.At(m), board.Black)
}

func TestBlocksLongestLine(t *testing.T) {
	is := is.New(t)
	p := NewPolicy(search.NewRNG([32]byte{2}))
	g := rows(t,
		"O O . . . . .",
		". . . . . . .",
		". . . . . . .",
		". . . O . . .",
		". . . O . . .",
		". . . O . . .",
		". . . . . . .",
	)
	res := p.MakeMove(g, board.Black)
	m, _ := res.Move()
	// column d: a cell above or below makes four.
	is.Equal(m, board.Move{Row: 2, Col: 3})
	is.Equal(res.Score(), 4.0)
}

func TestRandomWhenNothingToBlock(t *testing.T) {
	is := is.New(t)
	g := board.NewGrid(9)
	g.Apply(board.Move{Row: 4, Col: 4}, board.White)
	var moves []board.Move
	for i := 0; i < 2; i++ {
		p := NewPolicy(search.NewRNG([32]byte{3}))
		res := p.MakeMove(g.Clone(), board.Black)
		m, ok := res.Move()
		is.True(ok)
		is.Equal(res.Score(), 0.0)
		moves = append(moves, m)
	}
	// same seed, same move
	is.Equal(moves[0], moves[1])
	is.True(moves[0] != board.Move{Row: 4, Col: 4})
}

func TestFullGrid(t *testing.T) {
	is := is.New(t)
	p := NewPolicy(nil)
	g := board.NewGrid(2)
	for _, m := range g.AllEmptyCells() {
		g.Apply(m, board.White)
	}
	res := p.MakeMove(g, board.Black)
	is.True(!res.IsFound())
}
