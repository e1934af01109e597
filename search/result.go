// Package search holds what the move searches have in common: the tagged
// result they return, the statistics they collect, the seedable random
// source and the thinking-state hook.
package search

import (
	"fmt"
	"time"

	"github.com/unit117/Gomoku/board"
)

// Stats are collected per call and returned with the Result. Nothing is
// shared between calls.
type Stats struct {
	Evaluations uint64        `yaml:"evaluations"`
	Nodes       uint64        `yaml:"nodes"`
	CacheHits   uint64        `yaml:"cache_hits"`
	Elapsed     time.Duration `yaml:"elapsed"`
}

// Result is either a found move with its score, or no move at all (the
// board is full or the position is terminal).
type Result struct {
	move  board.Move
	score float64
	found bool

	Stats Stats
}

// Found returns a result holding move m with the given score.
func Found(m board.Move, score float64) Result {
	return Result{move: m, score: score, found: true}
}

// NotFound returns a result with no move.
func NotFound() Result {
	return Result{}
}

// Move returns the chosen move, and false if there is none.
func (r Result) Move() (board.Move, bool) {
	return r.move, r.found
}

func (r Result) IsFound() bool {
	return r.found
}

func (r Result) Score() float64 {
	return r.score
}

func (r Result) String() string {
	if !r.found {
		return "no move"
	}
	return fmt.Sprintf("%v (%.3f)", r.move, r.score)
}
