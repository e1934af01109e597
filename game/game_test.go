package game

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/unit117/Gomoku/board"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func playAll(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, s := range moves {
		if _, err := g.PlayString(s); err != nil {
			t.Fatalf("playing %s: %v", s, err)
		}
	}
}

func TestTurnsAlternate(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(15, board.White)
	is.NoErr(err)
	is.Equal(g.PlayerOnTurn(), board.White)
	playAll(t, g, "h8", "h9")
	is.Equal(g.PlayerOnTurn(), board.White)
	is.Equal(g.Turn(), 2)
	is.Equal(g.Grid().At(board.Move{Row: 7, Col: 7}), board.White)
	is.Equal(g.Grid().At(board.Move{Row: 8, Col: 7}), board.Black)
	is.Equal(g.MoveList(), "h8 h9")
}

func TestOccupied(t *testing.T) {
	is := is.New(t)
	g, _ := NewGame(9, board.Black)
	playAll(t, g, "e5")
	_, err := g.PlayString("e5")
	is.True(errors.Is(err, board.ErrOccupied))
	is.Equal(g.PlayerOnTurn(), board.White)
	is.Equal(g.Turn(), 1)

	_, err = g.PlayString("z1")
	is.True(errors.Is(err, board.ErrOutOfBounds))
}

func TestWinAndUndo(t *testing.T) {
	is := is.New(t)
	g, _ := NewGame(9, board.Black)
	playAll(t, g, "a1", "a2", "b1", "b2", "c1", "c2", "d1", "d2")
	is.Equal(g.Playing(), Playing)
	playAll(t, g, "e1")
	is.Equal(g.Playing(), GameOver)
	is.Equal(g.Winner(), board.Black)

	_, err := g.PlayString("e2")
	is.True(errors.Is(err, ErrGameOver))

	is.NoErr(g.Undo())
	is.Equal(g.Playing(), Playing)
	is.Equal(g.Winner(), board.Empty)
	is.Equal(g.PlayerOnTurn(), board.Black)
	is.Equal(g.Grid().At(board.Move{Row: 0, Col: 4}), board.Empty)
}

func TestUndoEmpty(t *testing.T) {
	is := is.New(t)
	g, _ := NewGame(9, board.Black)
	is.True(errors.Is(g.Undo(), ErrNothingToUndo))
}

func TestTie(t *testing.T) {
	is := is.New(t)
	g, _ := NewGame(5, board.Black)
	// column pairs alternate colours so that no line of five forms.
	order := []board.Move{}
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			order = append(order, board.Move{Row: row, Col: col})
		}
	}
	// black takes cells where (col/2 + row) is even
	var blacks, whites []board.Move
	for _, m := range order {
		if (m.Col/2+m.Row)%2 == 0 {
			blacks = append(blacks, m)
		} else {
			whites = append(whites, m)
		}
	}
	is.Equal(len(blacks), 13)
	is.Equal(len(whites), 12)
	for i := range whites {
		is.NoErr(g.PlayMove(blacks[i]))
		is.NoErr(g.PlayMove(whites[i]))
	}
	is.NoErr(g.PlayMove(blacks[12]))
	is.Equal(g.Playing(), GameOver)
	is.Equal(g.Winner(), board.Empty)
}

func TestHashFollowsMoves(t *testing.T) {
	is := is.New(t)
	a, _ := NewGame(9, board.Black)
	b, _ := NewGame(9, board.Black)
	playAll(t, a, "e5", "e6")
	playAll(t, b, "e5", "e6")
	is.Equal(a.Hash(), b.Hash())
	is.True(a.Uid() != b.Uid())
	playAll(t, b, "f5")
	is.True(a.Hash() != b.Hash())
}

func TestDisplay(t *testing.T) {
	is := is.New(t)
	g, _ := NewGame(9, board.Black)
	playAll(t, g, "a1", "a2", "b1", "b2", "c1", "c2", "d1", "d2", "e1")
	out := g.ToDisplayText()
	is.True(strings.Contains(out, "Game is over. black (X) wins!"))
	is.True(strings.Contains(out, "9. X e1"))
}
