package board

// Directions are the four line directions a run can follow: along a row,
// down a column, and the two diagonals.
var Directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// CandidateMoves returns the empty cells that touch at least one stone,
// including diagonally, in row-major order. An empty grid has no candidates.
func (g *Grid) CandidateMoves() []Move {
	if g.stones == 0 {
		return nil
	}
	moves := make([]Move, 0, 32)
	for i := 0; i < g.dim; i++ {
		for j := 0; j < g.dim; j++ {
			if g.get(i, j) != Empty {
				continue
			}
			if g.hasNeighbor(i, j) {
				moves = append(moves, Move{Row: i, Col: j})
			}
		}
	}
	return moves
}

func (g *Grid) hasNeighbor(row, col int) bool {
	for di := -1; di <= 1; di++ {
		for dj := -1; dj <= 1; dj++ {
			if di == 0 && dj == 0 {
				continue
			}
			r, c := row+di, col+dj
			if g.InBounds(r, c) && g.get(r, c) != Empty {
				return true
			}
		}
	}
	return false
}

// AllEmptyCells returns every empty cell in row-major order.
func (g *Grid) AllEmptyCells() []Move {
	moves := make([]Move, 0, len(g.cells)-g.stones)
	for idx, c := range g.cells {
		if c == Empty {
			moves = append(moves, Move{Row: idx / g.dim, Col: idx % g.dim})
		}
	}
	return moves
}

// RunLength counts the stones of color c that follow m, not including m
// itself, stepping by (dr, dc).
func (g *Grid) RunLength(m Move, c Cell, dr, dc int) int {
	n := 0
	r, col := m.Row+dr, m.Col+dc
	for g.InBounds(r, col) && g.get(r, col) == c {
		n++
		r += dr
		col += dc
	}
	return n
}

// LongestLineThrough returns the longest run of color c that a stone at m
// would be part of, counting m as c whatever it holds.
func (g *Grid) LongestLineThrough(m Move, c Cell) int {
	longest := 0
	for _, d := range Directions {
		n := 1 + g.RunLength(m, c, d[0], d[1]) + g.RunLength(m, c, -d[0], -d[1])
		if n > longest {
			longest = n
		}
	}
	return longest
}

// FiveThrough returns true if the stone at m is part of five or more in a row.
func (g *Grid) FiveThrough(m Move) bool {
	c := g.At(m)
	if c == Empty {
		return false
	}
	return g.LongestLineThrough(m, c) >= 5
}
