// Package board contains the grid of a five-in-a-row game and the
// operations a search needs to read and mutate it.
package board

import (
	"errors"
	"fmt"
)

var (
	ErrOccupied    = errors.New("cell is already occupied")
	ErrOutOfBounds = errors.New("move is off the board")
)

// DefaultDim is the size of a standard board.
const DefaultDim = 19

// A Move addresses one intersection of the grid.
type Move struct {
	Row int
	Col int
}

// Grid is a square matrix of cells. Its dimension is fixed at construction.
type Grid struct {
	dim    int
	cells  []Cell
	stones int
}

// NewGrid makes an empty grid of the given dimension.
func NewGrid(dim int) *Grid {
	if dim < 1 {
		panic(fmt.Sprintf("invalid grid dimension %d", dim))
	}
	return &Grid{dim: dim, cells: make([]Cell, dim*dim)}
}

func (g *Grid) Dim() int {
	return g.dim
}

// Stones returns the number of occupied cells.
func (g *Grid) Stones() int {
	return g.stones
}

func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.dim && col >= 0 && col < g.dim
}

func (g *Grid) mustIndex(m Move) int {
	if !g.InBounds(m.Row, m.Col) {
		panic(fmt.Sprintf("move %v is off a %dx%d grid", m, g.dim, g.dim))
	}
	return m.Row*g.dim + m.Col
}

// At returns the state of the cell at m.
func (g *Grid) At(m Move) Cell {
	return g.cells[g.mustIndex(m)]
}

// get is At without the bounds check, for callers that already checked.
func (g *Grid) get(row, col int) Cell {
	return g.cells[row*g.dim+col]
}

// Apply places a stone of color c at m. It returns false and leaves the grid
// untouched if the cell is occupied. An out-of-range move panics.
func (g *Grid) Apply(m Move, c Cell) bool {
	if !c.Valid() {
		panic(fmt.Sprintf("cannot apply %v", c))
	}
	idx := g.mustIndex(m)
	if g.cells[idx] != Empty {
		return false
	}
	g.cells[idx] = c
	g.stones++
	return true
}

// Place is the checked form of Apply, for moves that come from outside the
// engine.
func (g *Grid) Place(m Move, c Cell) error {
	if !g.InBounds(m.Row, m.Col) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, m)
	}
	if !g.Apply(m, c) {
		return fmt.Errorf("%w: %v", ErrOccupied, m)
	}
	return nil
}

// Remove empties the cell at m. It undoes an Apply made during search.
func (g *Grid) Remove(m Move) {
	idx := g.mustIndex(m)
	if g.cells[idx] != Empty {
		g.stones--
	}
	g.cells[idx] = Empty
}

// IsFull returns true if no empty cells remain.
func (g *Grid) IsFull() bool {
	return g.stones == len(g.cells)
}

func (g *Grid) IsEmpty() bool {
	return g.stones == 0
}

// Center returns the middle intersection.
func (g *Grid) Center() Move {
	return Move{Row: g.dim / 2, Col: g.dim / 2}
}

// Clear removes every stone.
func (g *Grid) Clear() {
	clear(g.cells)
	g.stones = 0
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{dim: g.dim, cells: make([]Cell, len(g.cells)), stones: g.stones}
	copy(c.cells, g.cells)
	return c
}

// CopyFrom makes g a copy of other. Both grids must have the same dimension.
func (g *Grid) CopyFrom(other *Grid) {
	if g.dim != other.dim {
		panic("cannot copy grids of different dimensions")
	}
	copy(g.cells, other.cells)
	g.stones = other.stones
}

func (g *Grid) Equals(other *Grid) bool {
	if g.dim != other.dim || g.stones != other.stones {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Mirror returns a copy of the grid with the colors swapped.
func (g *Grid) Mirror() *Grid {
	m := g.Clone()
	for i, c := range m.cells {
		m.cells[i] = c.Opponent()
	}
	return m
}

// Count returns the number of stones of color c.
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, cell := range g.cells {
		if cell == c {
			n++
		}
	}
	return n
}
