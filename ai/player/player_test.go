package player

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unit117/Gomoku/board"
	"github.com/unit117/Gomoku/config"
	"github.com/unit117/Gomoku/search"
)

func TestEnginesLeaveGridAlone(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigDepth, 2)
	cfg.Set(config.ConfigMCTSSimulations, 50)

	for _, engine := range Engines {
		p, err := NewPlayer(cfg, engine, search.NewRNG([32]byte{9}))
		assert.NoError(t, err)
		g := board.NewGrid(9)
		g.Apply(board.Move{Row: 4, Col: 4}, board.Black)
		before := g.Clone()

		res, err := p.GenMove(g, board.White)
		assert.NoError(t, err)
		m, ok := res.Move()
		assert.True(t, ok, engine)
		assert.True(t, g.Equals(before), engine)
		assert.Equal(t, board.Empty, g.At(m), engine)
	}
}

func TestNames(t *testing.T) {
	cfg := config.DefaultConfig()
	p, err := NewPlayer(cfg, EngineAlphaBeta, nil)
	assert.NoError(t, err)
	assert.Equal(t, "alphabeta-3", p.Name())
	p, err = NewPlayer(cfg, EngineMCTS, nil)
	assert.NoError(t, err)
	assert.Equal(t, "mcts-1000", p.Name())
}

func TestUnknownEngine(t *testing.T) {
	_, err := NewPlayer(config.DefaultConfig(), "negascout", nil)
	assert.True(t, errors.Is(err, ErrUnknownEngine))
}

func TestThinkingListener(t *testing.T) {
	cfg := config.DefaultConfig()
	p, err := NewPlayer(cfg, EngineSimple, nil)
	assert.NoError(t, err)
	var calls []bool
	p.SetThinkingListener(func(th bool) { calls = append(calls, th) })
	_, err = p.GenMove(board.NewGrid(5), board.Black)
	assert.NoError(t, err)
	assert.Equal(t, []bool{true, false}, calls)
}
