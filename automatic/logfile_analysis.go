package automatic

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/samber/lo"
)

// AnalyzeLogFile rebuilds a match summary from a per-move CSV log written
// by StartCompVComp.
func AnalyzeLogFile(filepath string) (*Summary, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return analyzeLog(file)
}

type logGame struct {
	id      string
	names   []string
	moves   []string
	turns   int
	evals   uint64
	outcome string
	last    string
}

func analyzeLog(rd io.Reader) (*Summary, error) {
	r := csv.NewReader(rd)
	// Record looks like:
	// playerID,gameID,turn,color,move,score,evaluations,nodes,elapsed_ms,outcome
	var order []string
	games := map[string]*logGame{}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if record[0] == "playerID" {
			continue
		}
		if len(record) != 10 {
			return nil, fmt.Errorf("bad log line %v", record)
		}
		turn, err := strconv.Atoi(record[2])
		if err != nil {
			return nil, err
		}
		evals, err := strconv.ParseUint(record[6], 10, 64)
		if err != nil {
			return nil, err
		}
		g, ok := games[record[1]]
		if !ok {
			g = &logGame{id: record[1]}
			games[record[1]] = g
			order = append(order, record[1])
		}
		if !lo.Contains(g.names, record[0]) {
			g.names = append(g.names, record[0])
		}
		g.moves = append(g.moves, record[4])
		g.turns = max(g.turns, turn)
		g.evals += evals
		g.outcome = record[9]
		g.last = record[0]
	}

	// player names end in -1 and -2.
	var names [2]string
	for _, g := range games {
		for _, n := range g.names {
			if strings.HasSuffix(n, "-1") {
				names[0] = n
			} else if strings.HasSuffix(n, "-2") {
				names[1] = n
			}
		}
	}
	summary := NewSummary(names)
	for _, id := range order {
		g := games[id]
		if g.outcome == "" {
			// unfinished game
			continue
		}
		res := GameResult{
			ID:          g.id,
			Hash:        xxhash.Sum64String(strings.Join(g.moves, " ")),
			Winner:      -1,
			Turns:       g.turns,
			Evaluations: g.evals,
		}
		if len(g.names) > 0 && g.names[0] == names[1] {
			res.FirstPlayer = 1
		}
		if g.outcome == "win" {
			res.Winner = lo.IndexOf(names[:], g.last)
		}
		summary.Add(res)
	}
	return summary, nil
}
