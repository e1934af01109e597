// Package simple is a reactive policy with no lookahead. It blocks the
// opponent's longest line of three or more and otherwise plays at random.
// It exists as a baseline for the real searches.
package simple

import (
	"github.com/rs/zerolog/log"

	"github.com/unit117/Gomoku/board"
	"github.com/unit117/Gomoku/search"
)

// BlockThreshold is the opponent line length that the policy blocks.
const BlockThreshold = 3

type Policy struct {
	rng search.RNG
}

func NewPolicy(rng search.RNG) *Policy {
	if rng == nil {
		rng = search.NewRNG(search.RandomSeed())
	}
	return &Policy{rng: rng}
}

func (p *Policy) SetRNG(rng search.RNG) {
	p.rng = rng
}

// MakeMove picks a move for myColor and plays it on g. The result's score
// is the length of the line it blocked, or 0 for a random move.
func (p *Policy) MakeMove(g *board.Grid, myColor board.Cell) search.Result {
	opp := myColor.Opponent()
	var block board.Move
	longest := 0
	empties := g.AllEmptyCells()
	if len(empties) == 0 {
		return search.NotFound()
	}
	for _, m := range empties {
		if n := g.LongestLineThrough(m, opp); n >= BlockThreshold && n > longest {
			block, longest = m, n
		}
	}
	m := block
	if longest == 0 {
		m = empties[p.rng.Intn(len(empties))]
	}
	g.Apply(m, myColor)
	log.Debug().Str("move", m.String()).Int("blocked", longest).Msg("simple-move")

	res := search.Found(m, float64(longest))
	res.Stats.Evaluations = uint64(len(empties))
	return res
}
