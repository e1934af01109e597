// Package game keeps the rules of a single game: whose turn it is, the
// history of moves, and when the game is over. It does not care how the
// moves are chosen; human and AI players play a game outside of the scope
// of this package.
package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/unit117/Gomoku/board"
	"github.com/unit117/Gomoku/eval"
)

var (
	ErrGameOver      = errors.New("the game is over")
	ErrNothingToUndo = errors.New("there are no moves to undo")
)

type PlayState int

const (
	Playing PlayState = iota
	GameOver
)

func (p PlayState) String() string {
	if p == GameOver {
		return "game over"
	}
	return "playing"
}

// Turn is one entry in the history. The scores are both sides' evaluator
// scores right after the move, with the next player on turn.
type Turn struct {
	Move       board.Move `yaml:"move"`
	Color      board.Cell `yaml:"color"`
	BlackScore int        `yaml:"black_score"`
	WhiteScore int        `yaml:"white_score"`
}

func (t Turn) String() string {
	return fmt.Sprintf("%s %v", t.Color.DisplayString(), t.Move)
}

// Game is the internal game structure.
type Game struct {
	uid     string
	grid    *board.Grid
	first   board.Cell
	onturn  board.Cell
	playing PlayState
	winner  board.Cell
	history []Turn
}

// NewGame starts a game on an empty dim×dim grid with first on turn.
func NewGame(dim int, first board.Cell) (*Game, error) {
	if !first.Valid() {
		return nil, fmt.Errorf("first player must be black or white, not %v", first)
	}
	if dim < 5 || dim > 26 {
		return nil, fmt.Errorf("board size %d is out of range (5-26)", dim)
	}
	g := &Game{
		uid:    lo.RandomString(12, lo.AlphanumericCharset),
		grid:   board.NewGrid(dim),
		first:  first,
		onturn: first,
	}
	log.Debug().Str("uid", g.uid).Int("dim", dim).Str("first", first.String()).Msg("new-game")
	return g, nil
}

// PlayMove places a stone for the player on turn. It fails without changing
// anything if the game is over or the cell can't be played.
func (g *Game) PlayMove(m board.Move) error {
	if g.playing == GameOver {
		return ErrGameOver
	}
	if err := g.grid.Place(m, g.onturn); err != nil {
		return err
	}
	color := g.onturn
	g.onturn = color.Opponent()
	g.history = append(g.history, Turn{
		Move:       m,
		Color:      color,
		BlackScore: eval.Score(g.grid, board.Black, g.onturn),
		WhiteScore: eval.Score(g.grid, board.White, g.onturn),
	})
	g.updateState()
	return nil
}

// PlayString parses a move such as "j10" and plays it.
func (g *Game) PlayString(s string) (board.Move, error) {
	m, err := board.ParseMove(strings.TrimSpace(s), g.grid.Dim())
	if err != nil {
		return m, err
	}
	return m, g.PlayMove(m)
}

func (g *Game) updateState() {
	g.winner = eval.Winner(g.grid)
	switch {
	case g.winner != board.Empty:
		g.playing = GameOver
		log.Debug().Str("winner", g.winner.String()).Int("turns", len(g.history)).Msg("game-won")
	case g.grid.IsFull():
		g.playing = GameOver
		log.Debug().Int("turns", len(g.history)).Msg("game-tied")
	default:
		g.playing = Playing
	}
}

// Undo takes back the last move, reopening the game if it had ended.
func (g *Game) Undo() error {
	if len(g.history) == 0 {
		return ErrNothingToUndo
	}
	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.grid.Remove(last.Move)
	g.onturn = last.Color
	g.updateState()
	return nil
}

// Grid returns a copy of the current position. Searches are free to
// change it.
func (g *Game) Grid() *board.Grid {
	return g.grid.Clone()
}

func (g *Game) Dim() int {
	return g.grid.Dim()
}

func (g *Game) PlayerOnTurn() board.Cell {
	return g.onturn
}

func (g *Game) FirstPlayer() board.Cell {
	return g.first
}

func (g *Game) Playing() PlayState {
	return g.playing
}

// Winner is Empty while the game is on, and for a tie.
func (g *Game) Winner() board.Cell {
	return g.winner
}

func (g *Game) Turn() int {
	return len(g.history)
}

func (g *Game) History() []Turn {
	return g.history
}

func (g *Game) LastTurn() (Turn, bool) {
	if len(g.history) == 0 {
		return Turn{}, false
	}
	return g.history[len(g.history)-1], true
}

func (g *Game) Uid() string {
	return g.uid
}

// MoveList is the history as a space-separated list of moves.
func (g *Game) MoveList() string {
	moves := lo.Map(g.history, func(t Turn, _ int) string {
		return t.Move.String()
	})
	return strings.Join(moves, " ")
}

// Hash identifies the sequence of moves played. Two games that went the
// same way hash the same.
func (g *Game) Hash() uint64 {
	return xxhash.Sum64String(fmt.Sprintf("%d %s %s", g.grid.Dim(), g.first, g.MoveList()))
}
