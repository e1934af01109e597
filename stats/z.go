package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ZVal returns the two-tailed Z-value for a confidence level given in
// percent, e.g. 1.96 for 95.
func ZVal(confidence float64) float64 {
	dist := distuv.Normal{Mu: 0, Sigma: 1}
	return dist.Quantile((1 + confidence/100) / 2)
}

// WinRate is a player's score over a match, counting a draw as half a win,
// with the normal-approximation margin at the given confidence.
type WinRate struct {
	Games  int     `yaml:"games"`
	Rate   float64 `yaml:"rate"`
	Margin float64 `yaml:"margin"`
}

func NewWinRate(wins, draws, games int, confidence float64) WinRate {
	if games == 0 {
		return WinRate{}
	}
	p := (float64(wins) + float64(draws)/2) / float64(games)
	return WinRate{
		Games:  games,
		Rate:   p,
		Margin: ZVal(confidence) * math.Sqrt(p*(1-p)/float64(games)),
	}
}

// Significant is true when the interval doesn't include an even match.
func (w WinRate) Significant() bool {
	return w.Games > 0 && math.Abs(w.Rate-0.5) > w.Margin
}
