package shell

import (
	"slices"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"

	"github.com/unit117/Gomoku/ai/player"
	"github.com/unit117/Gomoku/board"
	"github.com/unit117/Gomoku/config"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // Available options for this command (e.g., "-games", "-threads")
	Args    []string // Possible argument values (for non-option arguments)
}

var settingKeys = []string{
	config.ConfigBoardSize, config.ConfigEngine, config.ConfigDepth,
	config.ConfigMCTSSimulations, config.ConfigMCTSExploration,
	config.ConfigMCTSMemoryFraction, config.ConfigEvalCacheFraction,
	config.ConfigAIStarts, config.ConfigSeed, config.ConfigArenaThreads,
	config.ConfigArenaGames,
	config.ConfigDebug,
}

// commandMetadata maps command names to their options and arguments
var commandMetadata = map[string]CommandMetadata{
	"autoplay": {
		Options: []string{"-games", "-threads", "-log", "-seeds"},
		Args:    append([]string{"show", "stop"}, player.Engines...),
	},
	"engine": {
		Args: player.Engines,
	},
	"set": {
		Args: settingKeys,
	},
	"setconfig": {
		Args: settingKeys,
	},
	"new": {
		Args: []string{"9", "15", "19"},
	},
}

// Common command names for command completion
var commandNames = []string{
	"help", "new", "play", "ai", "show", "undo", "eval", "candidates",
	"engine", "set", "setconfig", "autoplay", "histogram", "script", "exit",
}

var boolValues = []string{"true", "false"}

// Do implements the readline.AutoComplete interface
// It provides context-aware autocomplete based on what's been typed
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	// Get the text up to the cursor position
	text := string(line[:pos])

	// Parse the line using shellquote to handle quoted strings properly
	fields, err := shellquote.Split(text)
	if err != nil {
		// If we can't parse, fall back to simple space splitting
		fields = strings.Fields(text)
	}

	// Check if we're in the middle of typing a word or just after a space
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		// Completing a command name
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		switch {
		case cmdName == "help":
			completions = commandNames
		case cmdName == "play" && c.sc.game != nil:
			// suggest the moves a search would look at.
			completions = lo.Map(c.sc.game.Grid().CandidateMoves(), func(m board.Move, _ int) string {
				return m.String()
			})
		case (cmdName == "set" || cmdName == "setconfig") && lastCompleteField == config.ConfigEngine:
			completions = player.Engines
		case (cmdName == "set" || cmdName == "setconfig") && slices.Contains(
			[]string{config.ConfigAIStarts, config.ConfigDebug}, lastCompleteField):
			completions = boolValues
		}

		// If we haven't determined completions yet, show command options/args
		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	// Filter completions based on prefix
	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			// Return only the part that needs to be added
			suffix := completion[len(prefix):]
			matches = append(matches, []rune(suffix))
		}
	}

	return matches, len(prefix)
}
