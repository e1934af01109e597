package search

import (
	"testing"

	"github.com/matryer/is"

	"github.com/unit117/Gomoku/board"
)

func TestResult(t *testing.T) {
	is := is.New(t)
	r := NotFound()
	_, ok := r.Move()
	is.True(!ok)
	is.Equal(r.String(), "no move")

	r = Found(board.Move{Row: 9, Col: 9}, 0.5)
	m, ok := r.Move()
	is.True(ok)
	is.Equal(m, board.Move{Row: 9, Col: 9})
	is.Equal(r.Score(), 0.5)
	is.Equal(r.String(), "j10 (0.500)")
}

func TestSeedRoundTrip(t *testing.T) {
	is := is.New(t)
	seed := RandomSeed()
	parsed, err := ParseSeed(FormatSeed(seed))
	is.NoErr(err)
	is.Equal(parsed, seed)

	_, err = ParseSeed("c2hvcnQ")
	is.True(err != nil)
	_, err = ParseSeed("!!!")
	is.True(err != nil)
}

func TestSeededRNGRepeats(t *testing.T) {
	is := is.New(t)
	var seed [32]byte
	seed[3] = 9
	a, b := NewRNG(seed), NewRNG(seed)
	for i := 0; i < 20; i++ {
		is.Equal(a.Intn(1000), b.Intn(1000))
	}
}

func TestThinkingNilSafe(t *testing.T) {
	var f ThinkingFunc
	f.Notify(true)
}
