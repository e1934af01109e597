package automatic

import (
	"io"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/unit117/Gomoku/stats"
)

// Confidence is the confidence level, in percent, of reported win rates.
const Confidence = 95.0

type LengthSummary struct {
	Mean  float64 `yaml:"mean"`
	Stdev float64 `yaml:"stdev"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
}

// Summary aggregates the results of a match between two players.
type Summary struct {
	Players        [2]string     `yaml:"players"`
	Games          int           `yaml:"games"`
	Wins           [2]int        `yaml:"wins,flow"`
	Ties           int           `yaml:"ties"`
	FirstMoverWins int           `yaml:"first_mover_wins"`
	WinRate        stats.WinRate `yaml:"player1_score"`
	Length         LengthSummary `yaml:"game_length"`
	DistinctGames  int           `yaml:"distinct_games"`
	EvalsPerGame   float64       `yaml:"evaluations_per_game"`

	results []GameResult
}

func NewSummary(players [2]string) *Summary {
	return &Summary{Players: players}
}

// Add counts one game.
func (s *Summary) Add(r GameResult) {
	s.results = append(s.results, r)
	s.Games++
	switch r.Winner {
	case -1:
		s.Ties++
	default:
		s.Wins[r.Winner]++
		if r.Winner == r.FirstPlayer {
			s.FirstMoverWins++
		}
	}
	s.update()
}

func (s *Summary) update() {
	s.WinRate = stats.NewWinRate(s.Wins[0], s.Ties, s.Games, Confidence)

	length := &stats.Statistic{}
	for _, r := range s.results {
		length.Push(float64(r.Turns))
	}
	s.Length = LengthSummary{
		Mean:  length.Mean(),
		Stdev: length.Stdev(),
		Min:   length.Min(),
		Max:   length.Max(),
	}
	s.DistinctGames = len(lo.UniqBy(s.results, func(r GameResult) uint64 {
		return r.Hash
	}))
	s.EvalsPerGame = float64(lo.SumBy(s.results, func(r GameResult) uint64 {
		return r.Evaluations
	})) / float64(s.Games)
}

func (s *Summary) Results() []GameResult {
	return s.results
}

// Lengths returns the number of moves of every game, in the order they
// finished.
func (s *Summary) Lengths() []float64 {
	return lo.Map(s.results, func(r GameResult, _ int) float64 {
		return float64(r.Turns)
	})
}

func (s *Summary) String() string {
	out, err := yaml.Marshal(s)
	if err != nil {
		log.Err(err).Msg("error-marshalling-summary")
		return ""
	}
	return string(out)
}

// Histogram draws the distribution of game lengths.
func (s *Summary) Histogram(w io.Writer, bins int) error {
	h := histogram.Hist(bins, s.Lengths())
	return histogram.Fprint(w, h, histogram.Linear(40))
}
