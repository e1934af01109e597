package board

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// String returns the move in board notation, for example "j10". Columns are
// lettered from 'a' and rows are numbered from 1 at the top.
func (m Move) String() string {
	if m.Col < 0 || m.Col >= 26 {
		return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+m.Col, m.Row+1)
}

// ParseMove parses board notation ("j10" or "J10") for a grid of dimension
// dim.
func ParseMove(s string, dim int) (Move, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if len(s) < 2 {
		return Move{}, fmt.Errorf("badly formatted move %q", s)
	}
	col := rune(s[0])
	if !unicode.IsLetter(col) {
		return Move{}, fmt.Errorf("badly formatted move %q", s)
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil {
		return Move{}, fmt.Errorf("badly formatted move %q: %w", s, err)
	}
	m := Move{Row: row - 1, Col: int(col - 'a')}
	if m.Row < 0 || m.Row >= dim || m.Col < 0 || m.Col >= dim {
		return Move{}, fmt.Errorf("%w: %s", ErrOutOfBounds, s)
	}
	return m, nil
}

// ToDisplayText renders the grid with column letters and row numbers.
func (g *Grid) ToDisplayText() string {
	var sb strings.Builder
	n := g.dim
	sb.WriteString("\n    ")
	for i := 0; i < n; i++ {
		sb.WriteString(fmt.Sprintf("%c ", 'A'+i))
	}
	sb.WriteString("\n    " + strings.Repeat("-", n*2) + "\n")
	for i := 0; i < n; i++ {
		sb.WriteString(fmt.Sprintf("%3d|", i+1))
		for j := 0; j < n; j++ {
			sb.WriteString(g.get(i, j).DisplayString() + " ")
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("    " + strings.Repeat("-", n*2) + "\n")
	return sb.String()
}

// FromRows builds a grid from rows of display characters: '.' for empty,
// 'X' for black and 'O' for white. Spaces are ignored. All rows must have
// the same number of cells as there are rows.
func FromRows(rows []string) (*Grid, error) {
	g := NewGrid(len(rows))
	for i, row := range rows {
		row = strings.ReplaceAll(row, " ", "")
		if len(row) != len(rows) {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", i+1, len(row), len(rows))
		}
		for j, ch := range row {
			c, err := CellFromString(string(ch))
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			if c != Empty {
				g.Apply(Move{Row: i, Col: j}, c)
			}
		}
	}
	return g, nil
}
