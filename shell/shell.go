package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/unit117/Gomoku/ai/player"
	"github.com/unit117/Gomoku/automatic"
	"github.com/unit117/Gomoku/board"
	"github.com/unit117/Gomoku/config"
	"github.com/unit117/Gomoku/game"
	"github.com/unit117/Gomoku/search"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoGame            = errors.New("please start a game first with the `new` command")
)

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

// The human plays black; the computer plays white.
const (
	humanColor = board.Black
	aiColor    = board.White
)

type ShellController struct {
	l      *readline.Instance
	out    io.Writer
	config *config.Config

	game     *game.Game
	engine   string
	aiplayer player.Player

	// autoplay state, shared with the goroutine running the match.
	autoMu     sync.Mutex
	autoCancel context.CancelFunc
	autoDone   chan struct{}
	autoErr    error
	lastMatch  *automatic.Summary
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func writeln(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func (sc *ShellController) showMessage(msg string) {
	writeln(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func historyFile(cfg *config.Config) string {
	if f := cfg.GetString(config.ConfigHistoryFile); f != "" {
		return f
	}
	return filepath.Join(os.TempDir(), "gomoku-readline.tmp")
}

func NewShellController(cfg *config.Config) *ShellController {
	sc := newController(cfg, nil)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mgomoku>\033[0m ",
		HistoryFile:     historyFile(cfg),
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})

	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stderr()
	return sc
}

// newController builds a controller without a terminal. Output goes to out.
func newController(cfg *config.Config, out io.Writer) *ShellController {
	return &ShellController{
		out:    out,
		config: cfg,
		engine: cfg.GetString(config.ConfigEngine),
	}
}

func (sc *ShellController) rng() (search.RNG, error) {
	s := sc.config.GetString(config.ConfigSeed)
	if s == "" {
		return nil, nil
	}
	seed, err := search.ParseSeed(s)
	if err != nil {
		return nil, err
	}
	return search.NewRNG(seed), nil
}

// loadPlayer (re)builds the computer player from the engine name and the
// current settings.
func (sc *ShellController) loadPlayer() error {
	rng, err := sc.rng()
	if err != nil {
		return err
	}
	p, err := player.NewPlayer(sc.config, sc.engine, rng)
	if err != nil {
		return err
	}
	p.SetThinkingListener(func(thinking bool) {
		log.Debug().Bool("thinking", thinking).Str("engine", p.Name()).Msg("ai-thinking")
	})
	sc.aiplayer = p
	return nil
}

func (sc *ShellController) newGame(dim int) error {
	if err := sc.loadPlayer(); err != nil {
		return err
	}
	first := humanColor
	aiStarts := sc.config.GetBool(config.ConfigAIStarts)
	if aiStarts {
		first = aiColor
	}
	g, err := game.NewGame(dim, first)
	if err != nil {
		return err
	}
	if aiStarts {
		// the computer always opens in the centre.
		if err := g.PlayMove(g.Grid().Center()); err != nil {
			return err
		}
	}
	sc.game = g
	return nil
}

// aiMove lets the computer play for the side on turn.
func (sc *ShellController) aiMove() (search.Result, error) {
	if sc.game == nil {
		return search.NotFound(), errNoGame
	}
	if sc.game.Playing() == game.GameOver {
		return search.NotFound(), game.ErrGameOver
	}
	res, err := sc.aiplayer.GenMove(sc.game.Grid(), sc.game.PlayerOnTurn())
	if err != nil {
		return res, err
	}
	m, ok := res.Move()
	if !ok {
		return res, errors.New("the computer found no move")
	}
	log.Debug().Str("move", m.String()).Float64("score", res.Score()).
		Uint64("evaluations", res.Stats.Evaluations).Msg("ai-move")
	return res, sc.game.PlayMove(m)
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := map[string]string{}
	for i := 1; i < len(fields); i++ {
		if strings.HasPrefix(fields[i], "-") {
			if i == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			options[strings.TrimPrefix(fields[i], "-")] = fields[i+1]
			i++
			continue
		}
		args = append(args, fields[i])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

// Execute runs one line of shell input.
func (sc *ShellController) Execute(line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "help":
		return sc.help(cmd)
	case "new", "n":
		return sc.newCommand(cmd)
	case "play", "p":
		return sc.play(cmd)
	case "ai", "a":
		return sc.ai(cmd)
	case "engine":
		return sc.setEngine(cmd)
	case "set":
		return sc.set(cmd)
	case "setconfig":
		return sc.setConfig(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "undo", "u":
		return sc.undo(cmd)
	case "eval":
		return sc.eval(cmd)
	case "candidates", "c":
		return sc.candidates(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "histogram":
		return sc.histogram(cmd)
	case "script":
		return sc.script(cmd)
	default:
		msg := fmt.Sprintf("command %v not found", strconv.Quote(cmd.cmd))
		log.Info().Msg(msg)
		return nil, errors.New(msg)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {

	defer sc.l.Close()

	for {

		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if line == "exit" || line == "bye" {
			sig <- syscall.SIGINT
			break
		}
		resp, err := sc.Execute(line)
		if err != nil {
			sc.showError(err)
		} else if resp != nil && resp.message != "" {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup stops a running autoplay and waits for it to wind down.
func (sc *ShellController) Cleanup() {
	sc.autoMu.Lock()
	cancel, done := sc.autoCancel, sc.autoDone
	sc.autoMu.Unlock()
	if cancel == nil {
		return
	}
	log.Info().Msg("waiting for autoplay to stop...")
	cancel()
	<-done
}
