package shell

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/unit117/Gomoku/ai/player"
	"github.com/unit117/Gomoku/automatic"
	"github.com/unit117/Gomoku/board"
	"github.com/unit117/Gomoku/config"
	"github.com/unit117/Gomoku/eval"
	"github.com/unit117/Gomoku/game"
)

const defaultHistogramBins = 10

type Response struct {
	message string
}

func (r *Response) String() string {
	if r == nil {
		return ""
	}
	return r.message
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (c *shellcmd) intOption(key string, defaultI int) (int, error) {
	v, ok := c.options[key]
	if !ok {
		return defaultI, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("option -%s: %w", key, err)
	}
	return i, nil
}

func (sc *ShellController) scores() string {
	last, ok := sc.game.LastTurn()
	if !ok {
		return ""
	}
	return fmt.Sprintf("Black: %d White: %d", last.BlackScore, last.WhiteScore)
}

func (sc *ShellController) gameDisplay() string {
	return sc.game.ToDisplayText() + "\n" + sc.scores()
}

func (sc *ShellController) newCommand(cmd *shellcmd) (*Response, error) {
	dim := sc.config.GetInt(config.ConfigBoardSize)
	if len(cmd.args) > 0 {
		var err error
		dim, err = strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, fmt.Errorf("board size: %w", err)
		}
	}
	if err := sc.newGame(dim); err != nil {
		return nil, err
	}
	return msg(sc.gameDisplay()), nil
}

// play places the human's stone and, unless the game just ended, lets the
// computer answer.
func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <move>, for example play j10")
	}
	if sc.game.Playing() == game.GameOver {
		return nil, game.ErrGameOver
	}
	if sc.game.PlayerOnTurn() != humanColor {
		return nil, errors.New("it is the computer's turn; use `ai`")
	}
	if _, err := sc.game.PlayString(cmd.args[0]); err != nil {
		return nil, err
	}
	if sc.game.Playing() == game.Playing {
		if _, err := sc.aiMove(); err != nil {
			return nil, err
		}
	}
	return msg(sc.gameDisplay()), nil
}

// ai has the computer play for whoever is on turn.
func (sc *ShellController) ai(cmd *shellcmd) (*Response, error) {
	res, err := sc.aiMove()
	if err != nil {
		return nil, err
	}
	return msg(sc.gameDisplay() + "\n" + res.String()), nil
}

func (sc *ShellController) setEngine(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(fmt.Sprintf("engine: %s (choose from %s)", sc.engine,
			strings.Join(player.Engines, ", "))), nil
	}
	old := sc.engine
	sc.engine = cmd.args[0]
	if err := sc.loadPlayer(); err != nil {
		sc.engine = old
		return nil, err
	}
	return msg("engine set to " + sc.aiplayer.Name()), nil
}

func (sc *ShellController) settingsText() string {
	settings := sc.config.SanitizedSettings()
	keys := lo.Keys(settings)
	slices.Sort(keys)
	out := strings.Builder{}
	out.WriteString("Settings:\n")
	for _, key := range keys {
		out.WriteString(fmt.Sprintf("  %s: %v\n", key, settings[key]))
	}
	return out.String()
}

// set changes a setting for this session only.
func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(sc.settingsText()), nil
	}
	key := cmd.args[0]
	if len(cmd.args) == 1 {
		if sc.config.Get(key) == nil {
			return nil, fmt.Errorf("%w: %s", config.ErrUnknownSetting, key)
		}
		return msg(fmt.Sprintf("%s: %v", key, sc.config.Get(key))), nil
	}
	if key == config.ConfigEngine && !lo.Contains(player.Engines, cmd.args[1]) {
		return nil, fmt.Errorf("%w: %q", player.ErrUnknownEngine, cmd.args[1])
	}
	if err := sc.config.SetKnown(key, cmd.args[1]); err != nil {
		return nil, err
	}
	if key == config.ConfigEngine {
		sc.engine = cmd.args[1]
	}
	if sc.game != nil {
		if err := sc.loadPlayer(); err != nil {
			return nil, err
		}
	}
	return msg("set " + key + " to " + cmd.args[1]), nil
}

// setConfig changes a setting and saves it for later sessions.
func (sc *ShellController) setConfig(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) < 2 {
		return nil, errors.New("usage: setconfig <key> <value>")
	}
	key, value := cmd.args[0], cmd.args[1]
	if err := sc.config.SetKnown(key, value); err != nil {
		return nil, err
	}
	if err := sc.config.Write(); err != nil {
		return nil, fmt.Errorf("failed to save configuration: %w", err)
	}
	log.Info().Str("key", key).Str("value", value).Msg("config-saved")
	return msg(fmt.Sprintf("Configuration saved: %s = %s", key, value)), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(sc.gameDisplay()), nil
}

// undo takes back n moves. Without a count it goes back to the last
// position with the human on turn.
func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	n := 1
	if len(cmd.args) > 0 {
		var err error
		n, err = strconv.Atoi(cmd.args[0])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("bad number of moves %q", cmd.args[0])
		}
	} else if last, ok := sc.game.LastTurn(); ok && last.Color == aiColor && sc.game.Turn() > 1 {
		n = 2
	}
	for i := 0; i < n; i++ {
		if err := sc.game.Undo(); err != nil {
			return nil, err
		}
	}
	return msg(sc.gameDisplay()), nil
}

func (sc *ShellController) eval(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	g := sc.game.Grid()
	onturn := sc.game.PlayerOnTurn()
	out := strings.Builder{}
	for _, c := range []board.Cell{board.Black, board.White} {
		out.WriteString(fmt.Sprintf("%-6s %d\n", c, eval.Score(g, c, onturn)))
	}
	out.WriteString(fmt.Sprintf("ratio for %s (on turn): %.4f", onturn, eval.Ratio(g, onturn, onturn)))
	if w := eval.Winner(g); w != board.Empty {
		out.WriteString(fmt.Sprintf("\n%s has five in a row", w))
	}
	return msg(out.String()), nil
}

func (sc *ShellController) candidates(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	moves := sc.game.Grid().CandidateMoves()
	names := lo.Map(moves, func(m board.Move, _ int) string {
		return m.String()
	})
	return msg(fmt.Sprintf("%d candidates: %s", len(moves), strings.Join(names, " "))), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 1 {
		switch cmd.args[0] {
		case "stop":
			return sc.stopAutoplay()
		case "show":
			return sc.showAutoplay()
		}
	}
	engines := [2]string{sc.engine, sc.engine}
	if len(cmd.args) == 1 {
		engines[1] = cmd.args[0]
	} else if len(cmd.args) >= 2 {
		engines = [2]string{cmd.args[0], cmd.args[1]}
	}
	games, err := cmd.intOption("games", sc.config.GetInt(config.ConfigArenaGames))
	if err != nil {
		return nil, err
	}
	threads, err := cmd.intOption("threads", sc.config.GetInt(config.ConfigArenaThreads))
	if err != nil {
		return nil, err
	}
	opts := automatic.MatchOptions{
		Engines:  engines,
		NumGames: games,
		Threads:  threads,
		LogFile:  cmd.options["log"],
	}
	if f, ok := cmd.options["seeds"]; ok {
		opts.Seeds, err = automatic.LoadSeeds(f)
		if err != nil {
			return nil, err
		}
	}
	if err := sc.startAutoplay(opts); err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("autoplay started: %s vs %s, %d games on %d threads. "+
		"Use `autoplay show` and `autoplay stop`.", engines[0], engines[1], games, threads)), nil
}

func (sc *ShellController) startAutoplay(opts automatic.MatchOptions) error {
	sc.autoMu.Lock()
	defer sc.autoMu.Unlock()
	if sc.autoCancel != nil {
		return automatic.ErrAlreadyPlaying
	}
	for _, e := range opts.Engines {
		if !lo.Contains(player.Engines, e) {
			return fmt.Errorf("%w: %q", player.ErrUnknownEngine, e)
		}
	}
	// the match gets its own copy of the settings so that `set` can't
	// change them halfway.
	cfg := sc.config.Clone()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	sc.autoCancel, sc.autoDone, sc.autoErr = cancel, done, nil

	go func() {
		defer close(done)
		summary, err := automatic.StartCompVComp(ctx, cfg, opts)
		if err != nil {
			log.Err(err).Msg("autoplay-error")
		}
		sc.autoMu.Lock()
		defer sc.autoMu.Unlock()
		if summary != nil {
			sc.lastMatch = summary
		}
		sc.autoErr = err
		sc.autoCancel, sc.autoDone = nil, nil
		cancel()
	}()
	return nil
}

func (sc *ShellController) stopAutoplay() (*Response, error) {
	sc.autoMu.Lock()
	cancel, done := sc.autoCancel, sc.autoDone
	sc.autoMu.Unlock()
	if cancel == nil {
		return nil, errors.New("autoplay is not running")
	}
	cancel()
	<-done
	return sc.showAutoplay()
}

// waitAutoplay blocks until a running autoplay has finished.
func (sc *ShellController) waitAutoplay() {
	sc.autoMu.Lock()
	done := sc.autoDone
	sc.autoMu.Unlock()
	if done != nil {
		<-done
	}
}

func (sc *ShellController) showAutoplay() (*Response, error) {
	sc.autoMu.Lock()
	defer sc.autoMu.Unlock()
	if sc.autoCancel != nil {
		return msg(fmt.Sprintf("autoplay running, %d games played", automatic.CVCCounter.Value())), nil
	}
	if sc.autoErr != nil {
		return nil, sc.autoErr
	}
	if sc.lastMatch == nil {
		return nil, errors.New("no autoplay has been run")
	}
	return msg(sc.lastMatch.String()), nil
}

func (sc *ShellController) histogram(cmd *shellcmd) (*Response, error) {
	bins := defaultHistogramBins
	if len(cmd.args) > 0 {
		var err error
		bins, err = strconv.Atoi(cmd.args[0])
		if err != nil || bins < 1 {
			return nil, fmt.Errorf("bad number of bins %q", cmd.args[0])
		}
	}
	sc.autoMu.Lock()
	summary := sc.lastMatch
	sc.autoMu.Unlock()
	if summary == nil || summary.Games == 0 {
		return nil, errors.New("no finished autoplay games to plot")
	}
	out := strings.Builder{}
	out.WriteString("Game lengths (moves):\n")
	if err := summary.Histogram(&out, bins); err != nil {
		return nil, err
	}
	return msg(out.String()), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	out := strings.Builder{}
	if len(cmd.args) == 0 {
		usage(&out)
	} else {
		usageTopic(&out, cmd.args[0])
	}
	return msg(out.String()), nil
}
