package game

import (
	"fmt"
	"strings"

	"github.com/unit117/Gomoku/board"
)

func addText(lines []string, row int, hpad int, text string) {
	if row >= len(lines) {
		return
	}
	lines[row] = lines[row] + strings.Repeat(" ", hpad) + text
}

func scoreLine(c board.Cell, score int, onturn bool) string {
	marker := " "
	if onturn {
		marker = "->"
	}
	return fmt.Sprintf("%2s %-6s %-2s %d", marker, c.String(), c.DisplayString(), score)
}

// ToDisplayText turns the current state of the game into a displayable
// string: the grid with the scores, recent moves and the state next to it.
func (g *Game) ToDisplayText() string {
	bt := g.grid.ToDisplayText()
	lines := strings.Split(bt, "\n")
	hpadding := 3

	var bscore, wscore int
	if last, ok := g.LastTurn(); ok {
		bscore, wscore = last.BlackScore, last.WhiteScore
	}
	playing := g.playing == Playing
	addText(lines, 1, hpadding, scoreLine(board.Black, bscore, playing && g.onturn == board.Black))
	addText(lines, 2, hpadding, scoreLine(board.White, wscore, playing && g.onturn == board.White))

	addText(lines, 4, hpadding, fmt.Sprintf("Turn %d", g.Turn()))
	recent := g.history[max(0, len(g.history)-5):]
	for i, t := range recent {
		addText(lines, 5+i, hpadding, fmt.Sprintf("%3d. %v", len(g.history)-len(recent)+i+1, t))
	}

	if !playing {
		msg := "Game is over. Tied!"
		if g.winner != board.Empty {
			msg = fmt.Sprintf("Game is over. %s (%s) wins!", g.winner, g.winner.DisplayString())
		}
		addText(lines, 11, hpadding, msg)
	}
	return strings.Join(lines, "\n")
}
