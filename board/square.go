package board

import (
	"fmt"
	"strings"
)

// A Cell is the state of a single intersection of the grid.
type Cell uint8

const (
	Empty Cell = iota
	White
	Black
)

// Opponent returns the other color. The opponent of Empty is Empty.
func (c Cell) Opponent() Cell {
	if c == Empty {
		return Empty
	}
	return 3 - c
}

// Valid returns true for the two stone colors.
func (c Cell) Valid() bool {
	return c == White || c == Black
}

func (c Cell) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	case Empty:
		return "empty"
	}
	return fmt.Sprintf("cell(%d)", uint8(c))
}

// DisplayString is the single-character form used by ToDisplayText.
func (c Cell) DisplayString() string {
	switch c {
	case White:
		return "O"
	case Black:
		return "X"
	}
	return "."
}

// CellFromString parses a color name or display character.
func CellFromString(s string) (Cell, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w", "o":
		return White, nil
	case "black", "b", "x":
		return Black, nil
	case "empty", ".":
		return Empty, nil
	}
	return Empty, fmt.Errorf("unrecognized color %q", s)
}
