// Package player puts the three move choosers behind one interface, so that
// the game shell and the arena can switch between them by name.
package player

import (
	"errors"
	"fmt"

	"github.com/unit117/Gomoku/ai/simple"
	"github.com/unit117/Gomoku/board"
	"github.com/unit117/Gomoku/config"
	"github.com/unit117/Gomoku/search"
	"github.com/unit117/Gomoku/search/alphabeta"
	"github.com/unit117/Gomoku/search/mcts"
)

const (
	EngineAlphaBeta = "alphabeta"
	EngineMCTS      = "mcts"
	EngineSimple    = "simple"
)

var Engines = []string{EngineAlphaBeta, EngineMCTS, EngineSimple}

var ErrUnknownEngine = errors.New("unknown engine")

// Player chooses moves. GenMove never changes g.
type Player interface {
	Name() string
	GenMove(g *board.Grid, color board.Cell) (search.Result, error)
	SetThinkingListener(f search.ThinkingFunc)
	// SetRNG replaces the random source. Deterministic engines ignore it.
	SetRNG(rng search.RNG)
}

// NewPlayer builds the named engine with the settings from cfg. rng is
// only used by the engines that need randomness; it may be nil for a
// random seed.
func NewPlayer(cfg *config.Config, engine string, rng search.RNG) (Player, error) {
	if rng == nil {
		rng = search.NewRNG(search.RandomSeed())
	}
	switch engine {
	case EngineAlphaBeta:
		s := &alphabeta.Solver{}
		s.Init()
		s.SetCacheFraction(cfg.GetFloat64(config.ConfigEvalCacheFraction))
		return &AlphaBetaPlayer{solver: s, depth: cfg.GetInt(config.ConfigDepth)}, nil
	case EngineMCTS:
		s := &mcts.Solver{}
		s.Init(rng)
		s.SetExploration(cfg.GetFloat64(config.ConfigMCTSExploration))
		s.SetMemoryFraction(cfg.GetFloat64(config.ConfigMCTSMemoryFraction))
		return &MCTSPlayer{solver: s, budget: cfg.GetInt(config.ConfigMCTSSimulations)}, nil
	case EngineSimple:
		return &SimplePlayer{policy: simple.NewPolicy(rng)}, nil
	}
	return nil, fmt.Errorf("%w: %q (choose from %v)", ErrUnknownEngine, engine, Engines)
}

type AlphaBetaPlayer struct {
	solver *alphabeta.Solver
	depth  int
}

func (p *AlphaBetaPlayer) Name() string {
	return fmt.Sprintf("%s-%d", EngineAlphaBeta, p.depth)
}

func (p *AlphaBetaPlayer) GenMove(g *board.Grid, color board.Cell) (search.Result, error) {
	return p.solver.BestMove(g, color, p.depth)
}

func (p *AlphaBetaPlayer) SetThinkingListener(f search.ThinkingFunc) {
	p.solver.SetThinkingListener(f)
}

func (p *AlphaBetaPlayer) SetRNG(search.RNG) {}

func (p *AlphaBetaPlayer) Solver() *alphabeta.Solver {
	return p.solver
}

type MCTSPlayer struct {
	solver *mcts.Solver
	budget int
}

func (p *MCTSPlayer) Name() string {
	return fmt.Sprintf("%s-%d", EngineMCTS, p.budget)
}

// GenMove searches on a copy; the solver plays its move on the grid it is
// given.
func (p *MCTSPlayer) GenMove(g *board.Grid, color board.Cell) (search.Result, error) {
	return p.solver.BestMove(g.Clone(), color, p.budget)
}

func (p *MCTSPlayer) SetThinkingListener(f search.ThinkingFunc) {
	p.solver.SetThinkingListener(f)
}

func (p *MCTSPlayer) SetRNG(rng search.RNG) {
	p.solver.SetRNG(rng)
}

type SimplePlayer struct {
	policy   *simple.Policy
	thinking search.ThinkingFunc
}

func (p *SimplePlayer) Name() string {
	return EngineSimple
}

func (p *SimplePlayer) GenMove(g *board.Grid, color board.Cell) (search.Result, error) {
	if !color.Valid() {
		return search.NotFound(), fmt.Errorf("cannot move for %v", color)
	}
	p.thinking.Notify(true)
	defer p.thinking.Notify(false)
	return p.policy.MakeMove(g.Clone(), color), nil
}

func (p *SimplePlayer) SetThinkingListener(f search.ThinkingFunc) {
	p.thinking = f
}

func (p *SimplePlayer) SetRNG(rng search.RNG) {
	p.policy.SetRNG(rng)
}
