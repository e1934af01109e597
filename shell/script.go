package shell

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/unit117/Gomoku/game"
)

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("gomoku_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// luaCommand wraps a shell command as a Lua function. Its arguments are
// joined into the command line; it returns the command's output, or the
// error text prefixed with "ERROR: ".
func luaCommand(name string, wait bool) lua.LGFunction {
	return func(L *lua.LState) int {
		parts := []string{name}
		for i := 1; i <= L.GetTop(); i++ {
			parts = append(parts, L.ToString(i))
		}
		sc := getShell(L)
		r, err := sc.Execute(strings.Join(parts, " "))
		if err == nil && wait {
			sc.waitAutoplay()
			r, err = sc.showAutoplay()
		}
		if err != nil {
			log.Err(err).Msg("error-executing-" + name)
			L.Push(lua.LString("ERROR: " + err.Error()))
			return 1
		}
		L.Push(lua.LString(r.message))
		// return number of results pushed to stack.
		return 1
	}
}

// State returns the current game as a Lua table.
func State(L *lua.LState) int {
	sc := getShell(L)
	if sc.game == nil {
		L.Push(lua.LNil)
		return 1
	}
	g := sc.game
	t := L.NewTable()
	t.RawSetString("size", lua.LNumber(g.Dim()))
	t.RawSetString("turn", lua.LNumber(g.Turn()))
	t.RawSetString("on_turn", lua.LString(g.PlayerOnTurn().String()))
	t.RawSetString("over", lua.LBool(g.Playing() == game.GameOver))
	t.RawSetString("winner", lua.LString(""))
	if g.Playing() == game.GameOver {
		t.RawSetString("winner", lua.LString(g.Winner().String()))
	}
	moves := L.NewTable()
	for _, turn := range g.History() {
		moves.Append(lua.LString(turn.Move.String()))
	}
	t.RawSetString("moves", moves)
	if last, ok := g.LastTurn(); ok {
		t.RawSetString("black_score", lua.LNumber(last.BlackScore))
		t.RawSetString("white_score", lua.LNumber(last.WhiteScore))
	}
	L.Push(t)
	return 1
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for script")
	}

	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()

	lsc := L.NewUserData()
	lsc.Value = sc

	L.SetGlobal("gomoku_shell", lsc)
	L.SetGlobal("gomoku_new", L.NewFunction(luaCommand("new", false)))
	L.SetGlobal("gomoku_play", L.NewFunction(luaCommand("play", false)))
	L.SetGlobal("gomoku_ai", L.NewFunction(luaCommand("ai", false)))
	L.SetGlobal("gomoku_set", L.NewFunction(luaCommand("set", false)))
	L.SetGlobal("gomoku_autoplay", L.NewFunction(luaCommand("autoplay", true)))
	L.SetGlobal("gomoku_state", L.NewFunction(State))

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	return msg("script finished"), nil
}
