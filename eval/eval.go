// Package eval scores a grid by scanning every line for runs of stones and
// weighing each run by its length, how many of its ends are closed, and
// whether its owner moves next.
package eval

import (
	"github.com/unit117/Gomoku/board"
)

const (
	// WinScore is the value of five in a row. Any score at or above it
	// means the position is won.
	WinScore = 100_000_000
	// NearWinScore is the value of an unstoppable four.
	NearWinScore = 1_000_000
)

// scanState is the running (count, blocks) pair for the run being read,
// plus the accumulated score.
type scanState struct {
	count  int
	blocks int
	score  int
}

// Score returns the heuristic strength of forColor's stones on g, given that
// turnColor moves next.
func Score(g *board.Grid, forColor, turnColor board.Cell) int {
	myTurn := forColor == turnColor
	n := g.Dim()
	s := &scanState{blocks: 2}

	// rows
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			s.visit(g.At(board.Move{Row: i, Col: j}), forColor, myTurn)
		}
		s.endLine(myTurn)
	}
	// columns
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			s.visit(g.At(board.Move{Row: i, Col: j}), forColor, myTurn)
		}
		s.endLine(myTurn)
	}
	// diagonals where row+col is constant
	for k := 0; k <= 2*(n-1); k++ {
		iStart := max(0, k-n+1)
		iEnd := min(n-1, k)
		for i := iStart; i <= iEnd; i++ {
			s.visit(g.At(board.Move{Row: i, Col: k - i}), forColor, myTurn)
		}
		s.endLine(myTurn)
	}
	// diagonals where row-col is constant
	for k := 1 - n; k < n; k++ {
		iStart := max(0, k)
		iEnd := min(n+k-1, n-1)
		for i := iStart; i <= iEnd; i++ {
			s.visit(g.At(board.Move{Row: i, Col: i - k}), forColor, myTurn)
		}
		s.endLine(myTurn)
	}
	return s.score
}

// visit advances the scan by one cell. blocks starts at 1 after an empty
// cell and at 2 after an opponent stone or the edge; the far end of a run is
// counted as closed until an empty cell proves otherwise.
func (s *scanState) visit(c, forColor board.Cell, myTurn bool) {
	switch {
	case c == forColor:
		s.count++
	case c == board.Empty:
		if s.count > 0 {
			s.blocks--
			s.score += ConsecutiveSetScore(s.count, s.blocks, myTurn)
			s.count = 0
		}
		s.blocks = 1
	case s.count > 0:
		s.score += ConsecutiveSetScore(s.count, s.blocks, myTurn)
		s.count = 0
		s.blocks = 2
	default:
		s.blocks = 2
	}
}

// endLine closes a run that reaches the edge of the board.
func (s *scanState) endLine(myTurn bool) {
	if s.count > 0 {
		s.score += ConsecutiveSetScore(s.count, s.blocks, myTurn)
	}
	s.count = 0
	s.blocks = 2
}

// ConsecutiveSetScore is the value of one run of count stones with the given
// number of closed ends. currentTurn is true if the run's owner moves next.
func ConsecutiveSetScore(count, blocks int, currentTurn bool) int {
	if blocks == 2 && count < 5 {
		return 0
	}
	switch count {
	case 5:
		return WinScore
	case 4:
		if currentTurn {
			return NearWinScore
		}
		if blocks == 0 {
			return NearWinScore / 4
		}
		return 200
	case 3:
		if blocks == 0 {
			if currentTurn {
				return 50_000
			}
			return 200
		}
		if currentTurn {
			return 10
		}
		return 5
	case 2:
		if blocks == 0 {
			if currentTurn {
				return 7
			}
			return 5
		}
		return 3
	case 1:
		return 1
	}
	// overlines
	return WinScore * 2
}

// Ratio compares side's score with its opponent's, both taken with
// turnColor to move. The opponent's score is floored at 1.
func Ratio(g *board.Grid, side, turnColor board.Cell) float64 {
	mine := float64(Score(g, side, turnColor))
	theirs := float64(Score(g, side.Opponent(), turnColor))
	if theirs == 0 {
		theirs = 1
	}
	return mine / theirs
}

// Winner returns the color that has five or more in a row, or board.Empty.
// If both colors do, black is reported.
func Winner(g *board.Grid) board.Cell {
	for _, c := range []board.Cell{board.Black, board.White} {
		if Score(g, c, c) >= WinScore {
			return c
		}
	}
	return board.Empty
}
