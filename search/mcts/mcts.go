// Package mcts picks a move with Monte-Carlo Tree Search. Every iteration
// walks down the tree with the UCT rule, adds one child, plays random moves
// to the end of the game from there and credits the result to every node
// on the way back up.
//
// Rewards are always counted from the searching player's point of view:
// +1 for a win, -1 for a loss and 0 for a full board with no five.
package mcts

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/unit117/Gomoku/board"
	"github.com/unit117/Gomoku/search"
)

const (
	// Epsilon keeps unvisited children from dividing by zero, and scales
	// the random tie-break between equal UCT values.
	Epsilon = 1e-6

	DefaultSimulations    = 1000
	DefaultMemoryFraction = 0.25

	// rough per-cell cost of a node: the grid snapshot plus its untried
	// move list.
	nodeBytesPerCell = 17
	nodeOverhead     = 160
)

// DefaultExploration is the usual UCT constant, 1/sqrt(2).
var DefaultExploration = math.Sqrt2 / 2

var ErrInvalidBudget = errors.New("simulation budget must be at least 1")

// Solver implements UCT Monte-Carlo Tree Search.
type Solver struct {
	rng            search.RNG
	exploration    float64
	memoryFraction float64
	thinking       search.ThinkingFunc
}

// Init initializes the solver with a random source. The same source and
// the same position give the same move.
func (s *Solver) Init(rng search.RNG) {
	s.rng = rng
	s.exploration = DefaultExploration
	s.memoryFraction = DefaultMemoryFraction
}

func (s *Solver) SetRNG(rng search.RNG) {
	s.rng = rng
}

func (s *Solver) SetExploration(c float64) {
	s.exploration = c
}

// SetMemoryFraction bounds the tree to roughly this fraction of system
// memory. The simulation budget is cut down to fit.
func (s *Solver) SetMemoryFraction(f float64) {
	s.memoryFraction = f
}

func (s *Solver) SetThinkingListener(f search.ThinkingFunc) {
	s.thinking = f
}

// maxNodes is the largest tree that fits in the memory fraction.
func (s *Solver) maxNodes(dim int) int {
	perNode := uint64(dim*dim*nodeBytesPerCell + nodeOverhead)
	n := int(s.memoryFraction * float64(memory.TotalMemory()) / float64(perNode))
	return max(n, 1)
}

// BestMove runs budget iterations for side and plays the chosen move on g.
// A grid that is full or already has five in a row gives no move.
func (s *Solver) BestMove(g *board.Grid, side board.Cell, budget int) (search.Result, error) {
	if budget < 1 {
		return search.NotFound(), fmt.Errorf("%w: %d", ErrInvalidBudget, budget)
	}
	if !side.Valid() {
		return search.NotFound(), fmt.Errorf("cannot search for %v", side)
	}
	if s.rng == nil {
		s.Init(search.NewRNG(search.RandomSeed()))
	}
	s.thinking.Notify(true)
	defer s.thinking.Notify(false)

	tstart := time.Now()
	if limit := s.maxNodes(g.Dim()); budget > limit {
		log.Info().Int("budget", budget).Int("limit", limit).Msg("mcts-budget-clamped")
		budget = limit
	}

	root := newNode(g.Clone(), side, nil, board.Move{})
	if root.terminal {
		return search.NotFound(), nil
	}
	scratch := board.NewGrid(g.Dim())
	var stats search.Stats

	for i := 0; i < budget; i++ {
		n := root
		for !n.terminal && n.fullyExpanded() {
			n = s.selectChild(n)
		}
		if !n.terminal {
			n = n.expand(s.rng)
			stats.Nodes++
		}
		winner := n.winner
		if !n.terminal {
			winner = s.playout(n, scratch)
		}
		stats.Evaluations++
		n.backPropagate(reward(winner, side))
	}

	best := root.mostVisited()
	res := search.Found(best.move, best.winRate())
	stats.Elapsed = time.Since(tstart)
	res.Stats = stats
	g.Apply(best.move, side)

	log.Debug().
		Str("side", side.String()).
		Int("budget", budget).
		Str("result", res.String()).
		Int("visits", best.visits).
		Int("tree-size", root.size()).
		Dur("elapsed", stats.Elapsed).
		Msg("mcts-finished")
	return res, nil
}

// selectChild returns the child of n with the highest UCT value. The first
// child wins a tie.
func (s *Solver) selectChild(n *node) *node {
	var best *node
	bestVal := math.Inf(-1)
	for _, c := range n.children {
		v := c.uct(n.visits, s.exploration, s.rng.Float64())
		if v > bestVal {
			best, bestVal = c, v
		}
	}
	return best
}

// playout plays uniformly random moves from n's position, starting with the
// player n has on turn, until someone makes five or the grid fills up.
func (s *Solver) playout(n *node, scratch *board.Grid) board.Cell {
	scratch.CopyFrom(n.state)
	empties := scratch.AllEmptyCells()
	toMove := n.toMove
	for len(empties) > 0 {
		i := s.rng.Intn(len(empties))
		m := empties[i]
		last := len(empties) - 1
		empties[i] = empties[last]
		empties = empties[:last]

		scratch.Apply(m, toMove)
		if scratch.FiveThrough(m) {
			return toMove
		}
		toMove = toMove.Opponent()
	}
	return board.Empty
}

func reward(winner, side board.Cell) float64 {
	switch winner {
	case board.Empty:
		return 0
	case side:
		return 1
	default:
		return -1
	}
}
