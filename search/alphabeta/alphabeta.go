// Package alphabeta picks a move with depth-limited minimax and alpha-beta
// pruning, after first looking for a move that wins on the spot.
package alphabeta

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/unit117/Gomoku/board"
	"github.com/unit117/Gomoku/eval"
	"github.com/unit117/Gomoku/search"
	"github.com/unit117/Gomoku/zobrist"
)

// thanks Wikipedia:
/**function alphabeta(node, depth, α, β, maximizingPlayer) is
    if depth = 0 or node is a terminal node then
        return the heuristic value of node
    if maximizingPlayer then
        value := −∞
		for each child of node do
			play(child)
			value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
			unplayLastMove()
            α := max(α, value)
            if α ≥ β then
                break (* β cut-off *)
        return value
    else
        value := +∞
		for each child of node do
			play(child)
			value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
			unplayLastMove()
            β := min(β, value)
            if α ≥ β then
                break (* α cut-off *)
        return value
(* Initial call *)
alphabeta(origin, depth, −1, WinScore, TRUE)
**/

const (
	// InitialAlpha is below any leaf value; leaf values are ratios of two
	// non-negative scores.
	InitialAlpha = -1.0
	// InitialBeta is the win score. A ratio only reaches it when the
	// searching side has five in a row, so the bounds are on different
	// scales on purpose.
	InitialBeta = float64(eval.WinScore)

	DefaultDepth         = 3
	DefaultCacheFraction = 0.02
)

var ErrInvalidDepth = errors.New("search depth must not be negative")

// Solver implements the minimax + alphabeta algorithm.
type Solver struct {
	zobrist *zobrist.Zobrist
	cache   *EvalCache

	// forcedWinOptim: try every candidate for an immediate five before
	// searching. One evaluation per candidate.
	forcedWinOptim bool
	evalCacheOptim bool
	cacheFraction  float64

	thinking  search.ThinkingFunc
	logStream io.Writer
}

// run is the state of one BestMove call. It is threaded through the
// recursion and dropped when the call returns.
type run struct {
	g     *board.Grid
	side  board.Cell
	key   uint64
	depth int
	stats search.Stats
	root  []LogMove
}

// LogSearch is a struct meant for serializing to a log stream, for debug
// purposes.
type LogSearch struct {
	Side      string    `yaml:"side"`
	Depth     int       `yaml:"depth"`
	ForcedWin bool      `yaml:"forced_win,omitempty"`
	Best      string    `yaml:"best"`
	Value     float64   `yaml:"value"`
	Moves     []LogMove `yaml:"moves,omitempty,flow"`
	Stats     search.Stats
}

type LogMove struct {
	Move  string  `yaml:"move"`
	Value float64 `yaml:"value"`
}

// Init initializes the solver.
func (s *Solver) Init() error {
	s.forcedWinOptim = true
	s.evalCacheOptim = true
	s.cacheFraction = DefaultCacheFraction
	s.cache = &EvalCache{}
	return nil
}

func (s *Solver) SetEvalCache(on bool) {
	s.evalCacheOptim = on
	s.zobrist = nil
}

func (s *Solver) SetCacheFraction(f float64) {
	s.cacheFraction = f
	s.zobrist = nil
}

// SetForcedWinCheck turns the immediate-win pre-check on or off.
func (s *Solver) SetForcedWinCheck(on bool) {
	s.forcedWinOptim = on
}

func (s *Solver) SetThinkingListener(f search.ThinkingFunc) {
	s.thinking = f
}

// SetLogStream makes the solver write a yaml record of every search to w.
func (s *Solver) SetLogStream(w io.Writer) {
	s.logStream = w
}

func (s *Solver) prepare(dim int) {
	if s.cache == nil {
		s.Init()
	}
	if s.zobrist == nil || s.zobrist.BoardDim() != dim {
		s.zobrist = &zobrist.Zobrist{}
		s.zobrist.Initialize(dim)
		if s.evalCacheOptim {
			s.cache.Reset(s.cacheFraction)
		}
	}
}

// BestMove searches depth plies ahead for side. The grid is not modified.
// A depth of 0 is searched as 1 so that a move is returned whenever one
// exists; an empty grid is answered with its centre.
func (s *Solver) BestMove(g *board.Grid, side board.Cell, depth int) (search.Result, error) {
	if depth < 0 {
		return search.NotFound(), fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}
	if !side.Valid() {
		return search.NotFound(), fmt.Errorf("cannot search for %v", side)
	}
	if depth == 0 {
		depth = 1
	}
	s.thinking.Notify(true)
	defer s.thinking.Notify(false)

	tstart := time.Now()
	s.prepare(g.Dim())
	r := &run{g: g.Clone(), side: side, depth: depth}
	r.key = s.zobrist.Hash(r.g, side)

	var res search.Result
	forcedWin := false
	switch {
	case r.g.IsEmpty():
		res = search.Found(r.g.Center(), 0)
	case r.g.IsFull():
		res = search.NotFound()
	default:
		if s.forcedWinOptim {
			if m, ok := s.findWinningMove(r); ok {
				res = search.Found(m, eval.WinScore)
				forcedWin = true
				break
			}
		}
		val, m, found := s.alphabeta(r, depth, 0, true, InitialAlpha, InitialBeta)
		if found {
			res = search.Found(m, val)
		} else {
			res = search.NotFound()
		}
	}
	r.stats.Elapsed = time.Since(tstart)
	res.Stats = r.stats

	log.Debug().
		Str("side", side.String()).
		Int("depth", depth).
		Bool("forced-win", forcedWin).
		Str("result", res.String()).
		Uint64("evaluations", r.stats.Evaluations).
		Uint64("nodes", r.stats.Nodes).
		Uint64("cache-hits", r.stats.CacheHits).
		Dur("elapsed", r.stats.Elapsed).
		Msg("alphabeta-finished")

	if s.logStream != nil {
		s.writeLog(r, res, forcedWin)
	}
	return res, nil
}

// findWinningMove returns a candidate that gives side five in a row.
func (s *Solver) findWinningMove(r *run) (board.Move, bool) {
	for _, m := range r.g.CandidateMoves() {
		r.stats.Evaluations++
		r.g.Apply(m, r.side)
		won := eval.Score(r.g, r.side, r.side) >= eval.WinScore
		r.g.Remove(m)
		if won {
			return m, true
		}
	}
	return board.Move{}, false
}

func (r *run) play(z *zobrist.Zobrist, m board.Move, c board.Cell) {
	r.g.Apply(m, c)
	r.key = z.AddMove(r.key, m, c)
}

func (r *run) unplay(z *zobrist.Zobrist, m board.Move, c board.Cell) {
	r.g.Remove(m)
	r.key = z.AddMove(r.key, m, c)
}

// leaf evaluates the position from the searching side's point of view,
// with the side to move at this node on turn.
func (s *Solver) leaf(r *run, maximizing bool) float64 {
	toMove := r.side
	if !maximizing {
		toMove = r.side.Opponent()
	}
	if s.evalCacheOptim {
		if v, ok := s.cache.lookup(r.key, r.side); ok {
			r.stats.CacheHits++
			return v
		}
	}
	r.stats.Evaluations++
	v := eval.Ratio(r.g, r.side, toMove)
	if s.evalCacheOptim {
		s.cache.store(r.key, r.side, v)
	}
	return v
}

// alphabeta returns the value of the position and, for interior nodes, the
// move that reaches it. Every stone it places is removed before it returns.
func (s *Solver) alphabeta(r *run, depth, ply int, maximizing bool, alpha, beta float64) (float64, board.Move, bool) {
	r.stats.Nodes++
	if depth == 0 {
		return s.leaf(r, maximizing), board.Move{}, false
	}
	moves := r.g.CandidateMoves()
	if len(moves) == 0 {
		return s.leaf(r, maximizing), board.Move{}, false
	}
	toMove := r.side
	best := math.Inf(-1)
	if !maximizing {
		toMove = r.side.Opponent()
		best = math.Inf(1)
	}
	var bestMove board.Move
	found := false

	for _, m := range moves {
		r.play(s.zobrist, m, toMove)
		v, _, _ := s.alphabeta(r, depth-1, ply+1, !maximizing, alpha, beta)
		r.unplay(s.zobrist, m, toMove)
		if ply == 0 && s.logStream != nil {
			r.root = append(r.root, LogMove{Move: m.String(), Value: v})
		}

		if maximizing {
			if v > best {
				best, bestMove, found = v, m, true
			}
			alpha = max(alpha, best)
		} else {
			if v < best {
				best, bestMove, found = v, m, true
			}
			beta = min(beta, best)
		}
		if beta <= alpha {
			break
		}
	}
	return best, bestMove, found
}

func (s *Solver) writeLog(r *run, res search.Result, forcedWin bool) {
	entry := LogSearch{
		Side:      r.side.String(),
		Depth:     r.depth,
		ForcedWin: forcedWin,
		Best:      res.String(),
		Value:     res.Score(),
		Moves:     r.root,
		Stats:     r.stats,
	}
	out, err := yaml.Marshal([]LogSearch{entry})
	if err != nil {
		log.Err(err).Msg("error-marshalling-search-log")
		return
	}
	if _, err := s.logStream.Write(out); err != nil {
		log.Err(err).Msg("error-writing-search-log")
	}
}
