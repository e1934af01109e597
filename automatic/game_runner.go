// Package automatic plays computer-vs-computer games, for comparing the
// engines against each other.
package automatic

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/unit117/Gomoku/ai/player"
	"github.com/unit117/Gomoku/board"
	"github.com/unit117/Gomoku/config"
	"github.com/unit117/Gomoku/game"
	"github.com/unit117/Gomoku/search"
)

const logHeader = "playerID,gameID,turn,color,move,score,evaluations,nodes,elapsed_ms,outcome\n"

// GameResult is the outcome of one finished game. Winner is the index of
// the winning player, or -1 for a tie.
type GameResult struct {
	ID          string        `yaml:"id"`
	Hash        uint64        `yaml:"hash"`
	Seed        string        `yaml:"seed"`
	FirstPlayer int           `yaml:"first_player"`
	Winner      int           `yaml:"winner"`
	Turns       int           `yaml:"turns"`
	Evaluations uint64        `yaml:"evaluations"`
	Elapsed     time.Duration `yaml:"elapsed"`
}

// GameRunner is the master struct here for the automatic game logic. It
// owns two players and plays games between them one after the other.
type GameRunner struct {
	game      *game.Game
	config    *config.Config
	logchan   chan string
	gamechan  chan string
	aiplayers [2]player.Player
	names     [2]string

	// colors[i] is the color player i has in the current game.
	colors [2]board.Cell
	evals  uint64
}

// NewGameRunner just instantiates and initializes a game runner with the
// configured engine for both players.
func NewGameRunner(logchan chan string, cfg *config.Config) (*GameRunner, error) {
	r := &GameRunner{logchan: logchan, config: cfg}
	engine := cfg.GetString(config.ConfigEngine)
	if err := r.Init(engine, engine); err != nil {
		return nil, err
	}
	return r, nil
}

// Init creates the two players.
func (r *GameRunner) Init(engine1, engine2 string) error {
	for idx, engine := range []string{engine1, engine2} {
		p, err := player.NewPlayer(r.config, engine, nil)
		if err != nil {
			return err
		}
		r.aiplayers[idx] = p
		r.names[idx] = fmt.Sprintf("%s-%d", p.Name(), idx+1)
	}
	return nil
}

// SetGameChan makes the runner send the final position of every game.
func (r *GameRunner) SetGameChan(c chan string) {
	r.gamechan = c
}

func (r *GameRunner) Names() [2]string {
	return r.names
}

func (r *GameRunner) Game() *game.Game {
	return r.game
}

// StartGame sets up a new game. Player first takes black and moves first;
// both players draw their randomness from seed.
func (r *GameRunner) StartGame(first int, seed [32]byte) error {
	g, err := game.NewGame(r.config.GetInt(config.ConfigBoardSize), board.Black)
	if err != nil {
		return err
	}
	r.game = g
	r.colors[first] = board.Black
	r.colors[1-first] = board.White
	rng := search.NewRNG(seed)
	for _, p := range r.aiplayers {
		p.SetRNG(rng)
	}
	r.evals = 0
	return nil
}

func (r *GameRunner) playerOnTurn() int {
	if r.colors[0] == r.game.PlayerOnTurn() {
		return 0
	}
	return 1
}

// PlayBestTurn asks the player on turn for a move and plays it.
func (r *GameRunner) PlayBestTurn() error {
	idx := r.playerOnTurn()
	color := r.game.PlayerOnTurn()
	res, err := r.aiplayers[idx].GenMove(r.game.Grid(), color)
	if err != nil {
		return err
	}
	m, ok := res.Move()
	if !ok {
		return fmt.Errorf("%s found no move on turn %d", r.names[idx], r.game.Turn())
	}
	if err := r.game.PlayMove(m); err != nil {
		return fmt.Errorf("%s played %v: %w", r.names[idx], m, err)
	}
	r.evals += res.Stats.Evaluations

	if r.logchan != nil {
		outcome := ""
		if r.game.Playing() == game.GameOver {
			outcome = "tie"
			if r.game.Winner() == color {
				outcome = "win"
			}
		}
		r.logchan <- fmt.Sprintf("%v,%v,%v,%v,%v,%.3f,%v,%v,%v,%v\n",
			r.names[idx],
			r.game.Uid(),
			r.game.Turn(),
			color,
			m,
			res.Score(),
			res.Stats.Evaluations,
			res.Stats.Nodes,
			res.Stats.Elapsed.Milliseconds(),
			outcome)
	}
	return nil
}

// PlayFull plays a whole game and reports how it went.
func (r *GameRunner) PlayFull(first int, seed [32]byte) (GameResult, error) {
	tstart := time.Now()
	if err := r.StartGame(first, seed); err != nil {
		return GameResult{}, err
	}
	for r.game.Playing() == game.Playing {
		if err := r.PlayBestTurn(); err != nil {
			return GameResult{}, err
		}
	}
	res := GameResult{
		ID:          r.game.Uid(),
		Hash:        r.game.Hash(),
		Seed:        search.FormatSeed(seed),
		FirstPlayer: first,
		Winner:      -1,
		Turns:       r.game.Turn(),
		Evaluations: r.evals,
		Elapsed:     time.Since(tstart),
	}
	if w := r.game.Winner(); w != board.Empty {
		res.Winner = 0
		if r.colors[1] == w {
			res.Winner = 1
		}
	}
	log.Debug().Str("id", res.ID).Int("winner", res.Winner).Int("turns", res.Turns).Msg("game-over")
	if r.gamechan != nil {
		r.gamechan <- r.game.ToDisplayText()
	}
	return res, nil
}
