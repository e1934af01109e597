package mcts

import (
	"math"

	"github.com/unit117/Gomoku/board"
	"github.com/unit117/Gomoku/eval"
)

// node is one position in the search tree. It owns its grid snapshot and
// its children. parent is a back-reference only; the tree is freed from
// the root.
type node struct {
	state  *board.Grid
	toMove board.Cell
	parent *node
	move   board.Move

	children []*node
	untried  []board.Move

	winner   board.Cell
	terminal bool

	visits int
	wins   float64
}

// newNode makes a node for state. If parent is nil the position is checked
// for five in a row with the evaluator; otherwise only lines through the
// move that produced it can have changed.
func newNode(state *board.Grid, toMove board.Cell, parent *node, m board.Move) *node {
	n := &node{state: state, toMove: toMove, parent: parent, move: m}
	if parent == nil {
		n.winner = eval.Winner(state)
	} else if state.FiveThrough(m) {
		n.winner = parent.toMove
	}
	n.terminal = n.winner != board.Empty || state.IsFull()
	if !n.terminal {
		n.untried = state.AllEmptyCells()
	}
	return n
}

func (n *node) fullyExpanded() bool {
	return len(n.untried) == 0
}

// expand takes a random untried move and adds the child it leads to.
func (n *node) expand(rng interface{ Intn(int) int }) *node {
	i := rng.Intn(len(n.untried))
	m := n.untried[i]
	last := len(n.untried) - 1
	n.untried[i] = n.untried[last]
	n.untried = n.untried[:last]

	state := n.state.Clone()
	state.Apply(m, n.toMove)
	child := newNode(state, n.toMove.Opponent(), n, m)
	n.children = append(n.children, child)
	return child
}

// uct is the selection value of child n under a parent with parentVisits
// visits. jitter is a uniform value in [0, 1).
func (n *node) uct(parentVisits int, c, jitter float64) float64 {
	exploit := n.wins / (float64(n.visits) + Epsilon)
	explore := c * math.Sqrt(math.Log(float64(parentVisits)+1)/(float64(n.visits)+Epsilon))
	return exploit + explore + jitter*Epsilon
}

// backPropagate adds reward to n and every ancestor.
func (n *node) backPropagate(reward float64) {
	for cur := n; cur != nil; cur = cur.parent {
		cur.visits++
		cur.wins += reward
	}
}

func (n *node) winRate() float64 {
	if n.visits == 0 {
		return 0
	}
	return n.wins / float64(n.visits)
}

// mostVisited returns the child with the most visits. Ties go to the
// higher win rate, then to the earlier child.
func (n *node) mostVisited() *node {
	var best *node
	for _, c := range n.children {
		if best == nil || c.visits > best.visits ||
			(c.visits == best.visits && c.winRate() > best.winRate()) {
			best = c
		}
	}
	return best
}

func (n *node) size() int {
	s := 1
	for _, c := range n.children {
		s += c.size()
	}
	return s
}
