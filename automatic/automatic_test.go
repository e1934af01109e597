package automatic

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/unit117/Gomoku/config"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigBoardSize, 9)
	cfg.Set(config.ConfigEngine, "simple")
	cfg.Set(config.ConfigDepth, 1)
	cfg.Set(config.ConfigMCTSSimulations, 30)
	return cfg
}

func TestPlayFull(t *testing.T) {
	is := is.New(t)
	logchan := make(chan string, 200)
	r, err := NewGameRunner(logchan, smallConfig())
	is.NoErr(err)

	res, err := r.PlayFull(1, [32]byte{4})
	is.NoErr(err)
	close(logchan)

	is.True(res.Turns >= 9)
	is.True(res.Winner >= -1 && res.Winner <= 1)
	is.Equal(res.FirstPlayer, 1)
	lines := 0
	for range logchan {
		lines++
	}
	is.Equal(lines, res.Turns)
}

func TestSameSeedSameGame(t *testing.T) {
	is := is.New(t)
	cfg := smallConfig()
	r, err := NewGameRunner(nil, cfg)
	is.NoErr(err)
	is.NoErr(r.Init("simple", "mcts"))

	a, err := r.PlayFull(0, [32]byte{1, 2, 3})
	is.NoErr(err)
	b, err := r.PlayFull(0, [32]byte{1, 2, 3})
	is.NoErr(err)
	is.Equal(a.Hash, b.Hash)
	is.Equal(a.Winner, b.Winner)
	is.True(a.ID != b.ID)
}

func TestAlphaBetaOpensInCentre(t *testing.T) {
	is := is.New(t)
	r, err := NewGameRunner(nil, smallConfig())
	is.NoErr(err)
	is.NoErr(r.Init("alphabeta", "simple"))
	res, err := r.PlayFull(0, [32]byte{8})
	is.NoErr(err)
	// alpha-beta opens in the centre
	first := strings.Fields(r.Game().MoveList())[0]
	is.Equal(first, "e5")
	is.True(res.Turns > 0)
}

func TestStartCompVComp(t *testing.T) {
	logfile := filepath.Join(t.TempDir(), "games.csv")
	summary, err := StartCompVComp(context.Background(), smallConfig(), MatchOptions{
		Engines:  [2]string{"simple", "simple"},
		NumGames: 6,
		Threads:  2,
		LogFile:  logfile,
	})
	assert.NoError(t, err)
	assert.Equal(t, 6, summary.Games)
	assert.Equal(t, 6, summary.Wins[0]+summary.Wins[1]+summary.Ties)
	assert.Equal(t, int64(6), CVCCounter.Value())
	assert.Equal(t, int64(0), IsPlaying.Value())
	assert.Equal(t, [2]string{"simple-1", "simple-2"}, summary.Players)

	analyzed, err := AnalyzeLogFile(logfile)
	assert.NoError(t, err)
	assert.Equal(t, summary.Games, analyzed.Games)
	assert.Equal(t, summary.Wins, analyzed.Wins)
	assert.Equal(t, summary.Ties, analyzed.Ties)
	assert.Equal(t, summary.Players, analyzed.Players)
	assert.InDelta(t, summary.Length.Mean, analyzed.Length.Mean, 1e-9)
}

func TestStartCompVCompCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	summary, err := StartCompVComp(ctx, smallConfig(), MatchOptions{
		Engines:  [2]string{"simple", "simple"},
		NumGames: 500,
		Threads:  1,
	})
	assert.NoError(t, err)
	assert.Equal(t, 0, summary.Games)
}

func TestUnknownEngine(t *testing.T) {
	_, err := StartCompVComp(context.Background(), smallConfig(), MatchOptions{
		Engines:  [2]string{"simple", "gnugo"},
		NumGames: 1,
	})
	assert.Error(t, err)
}

func TestSeedsRoundTrip(t *testing.T) {
	is := is.New(t)
	seeds, err := GenerateSeeds(5)
	is.NoErr(err)
	path := filepath.Join(t.TempDir(), "seeds.txt")
	is.NoErr(SaveSeeds(seeds, path))
	loaded, err := LoadSeeds(path)
	is.NoErr(err)
	is.Equal(loaded, seeds)

	bad := filepath.Join(t.TempDir(), "bad.txt")
	is.NoErr(os.WriteFile(bad, []byte("# header\n\nnotaseed\n"), 0o644))
	_, err = LoadSeeds(bad)
	is.True(err != nil)
}

func TestSummary(t *testing.T) {
	is := is.New(t)
	s := NewSummary([2]string{"a-1", "b-2"})
	s.Add(GameResult{Hash: 1, FirstPlayer: 0, Winner: 0, Turns: 9, Evaluations: 10})
	s.Add(GameResult{Hash: 1, FirstPlayer: 0, Winner: 0, Turns: 9, Evaluations: 20})
	s.Add(GameResult{Hash: 2, FirstPlayer: 1, Winner: 0, Turns: 20})
	s.Add(GameResult{Hash: 3, FirstPlayer: 1, Winner: -1, Turns: 81})

	is.Equal(s.Games, 4)
	is.Equal(s.Wins, [2]int{3, 0})
	is.Equal(s.Ties, 1)
	is.Equal(s.FirstMoverWins, 2)
	is.Equal(s.DistinctGames, 3)
	is.Equal(s.Length.Min, 9.0)
	is.Equal(s.Length.Max, 81.0)
	is.Equal(s.EvalsPerGame, 7.5)
	is.Equal(s.WinRate.Rate, 0.875)
	is.True(strings.Contains(s.String(), "distinct_games: 3"))

	var buf bytes.Buffer
	is.NoErr(s.Histogram(&buf, 5))
	is.True(buf.Len() > 0)
}

func TestGameChan(t *testing.T) {
	is := is.New(t)
	r, err := NewGameRunner(nil, smallConfig())
	is.NoErr(err)
	games := make(chan string, 1)
	r.SetGameChan(games)
	_, err = r.PlayFull(0, [32]byte{5})
	is.NoErr(err)
	is.True(strings.Contains(<-games, "Game is over."))
}
