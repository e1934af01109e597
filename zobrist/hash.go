package zobrist

import (
	"lukechampine.com/frand"

	"github.com/unit117/Gomoku/board"
)

const bignum = 1<<63 - 2

// generate a zobrist hash for a five-in-a-row position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	whiteToMove uint64

	// posTable is indexed by cell, then by color (white=0, black=1).
	posTable [][2]uint64

	boardDim int
}

func (z *Zobrist) Initialize(boardDim int) {
	z.boardDim = boardDim
	z.posTable = make([][2]uint64, boardDim*boardDim)
	for i := 0; i < boardDim*boardDim; i++ {
		for j := 0; j < 2; j++ {
			z.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
	z.whiteToMove = frand.Uint64n(bignum) + 1
}

func (z *Zobrist) BoardDim() int {
	return z.boardDim
}

func colorIdx(c board.Cell) int {
	if c == board.Black {
		return 1
	}
	return 0
}

// Hash computes the key of g from scratch.
func (z *Zobrist) Hash(g *board.Grid, toMove board.Cell) uint64 {
	key := uint64(0)
	for i := 0; i < z.boardDim; i++ {
		for j := 0; j < z.boardDim; j++ {
			c := g.At(board.Move{Row: i, Col: j})
			if c == board.Empty {
				continue
			}
			key ^= z.posTable[i*z.boardDim+j][colorIdx(c)]
		}
	}
	if toMove == board.White {
		key ^= z.whiteToMove
	}
	return key
}

// AddMove returns the key after a stone of color c is placed at m and the
// turn passes. Calling it again with the same arguments undoes it.
func (z *Zobrist) AddMove(key uint64, m board.Move, c board.Cell) uint64 {
	key ^= z.posTable[m.Row*z.boardDim+m.Col][colorIdx(c)]
	key ^= z.whiteToMove
	return key
}

// ToggleTurn flips the side-to-move component of key.
func (z *Zobrist) ToggleTurn(key uint64) uint64 {
	return key ^ z.whiteToMove
}
