package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug              = "debug"
	ConfigCPUProfile         = "cpu-profile"
	ConfigMemProfile         = "mem-profile"
	ConfigBoardSize          = "board-size"
	ConfigEngine             = "engine"
	ConfigDepth              = "depth"
	ConfigMCTSSimulations    = "mcts-simulations"
	ConfigMCTSExploration    = "mcts-exploration"
	ConfigMCTSMemoryFraction = "mcts-memory-fraction"
	ConfigEvalCacheFraction  = "eval-cache-fraction"
	ConfigAIStarts           = "ai-starts"
	ConfigSeed               = "seed"
	ConfigHistoryFile        = "history-file"
	ConfigArenaThreads       = "arena-threads"
	ConfigArenaGames         = "arena-games"
	ConfigArenaLog           = "arena-log"
	ConfigArenaSeeds         = "arena-seeds"
)

var ErrUnknownSetting = errors.New("unknown setting")

type Config struct {
	*viper.Viper
	configDir string
	args      []string
}

func defaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "gomoku")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigCPUProfile, "")
	v.SetDefault(ConfigMemProfile, "")
	v.SetDefault(ConfigBoardSize, 19)
	v.SetDefault(ConfigEngine, "alphabeta")
	v.SetDefault(ConfigDepth, 3)
	v.SetDefault(ConfigMCTSSimulations, 1000)
	v.SetDefault(ConfigMCTSExploration, math.Sqrt2/2)
	v.SetDefault(ConfigMCTSMemoryFraction, 0.25)
	v.SetDefault(ConfigEvalCacheFraction, 0.02)
	v.SetDefault(ConfigAIStarts, true)
	v.SetDefault(ConfigSeed, "")
	v.SetDefault(ConfigHistoryFile, "")
	v.SetDefault(ConfigArenaThreads, 4)
	v.SetDefault(ConfigArenaGames, 100)
	v.SetDefault(ConfigArenaLog, "")
	v.SetDefault(ConfigArenaSeeds, "")
}

// DefaultConfig returns a config with only the built-in defaults. It reads
// no files and no environment.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	return &Config{Viper: v, configDir: defaultConfigDir()}
}

// Load builds the config in increasing order of precedence: defaults, a
// config.yaml in the config directory, GOMOKU_* environment variables and
// finally --key=value arguments.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	setDefaults(c.Viper)
	if c.configDir == "" {
		c.configDir = defaultConfigDir()
	}

	c.SetEnvPrefix("GOMOKU")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	c.SetConfigName("config")
	c.SetConfigType("yaml")
	c.AddConfigPath(c.configDir)
	if err := c.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	fs := pflag.NewFlagSet("gomoku", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigCPUProfile, "", "write a cpu profile to this file")
	fs.String(ConfigMemProfile, "", "write a heap profile to this file")
	fs.Int(ConfigBoardSize, 19, "board dimension")
	fs.String(ConfigEngine, "alphabeta", "alphabeta, mcts or simple")
	fs.Int(ConfigDepth, 3, "alpha-beta search depth")
	fs.Int(ConfigMCTSSimulations, 1000, "MCTS simulations per move")
	fs.Float64(ConfigMCTSExploration, math.Sqrt2/2, "UCT exploration constant")
	fs.Float64(ConfigMCTSMemoryFraction, 0.25, "largest fraction of memory an MCTS tree may take")
	fs.Float64(ConfigEvalCacheFraction, 0.02, "fraction of memory for the alpha-beta evaluation cache")
	fs.Bool(ConfigAIStarts, true, "the computer places the first stone")
	fs.String(ConfigSeed, "", "base64 32-byte random seed; empty for a random one")
	fs.String(ConfigHistoryFile, "", "shell history file")
	fs.Int(ConfigArenaThreads, 4, "concurrent games in the arena")
	fs.Int(ConfigArenaGames, 100, "number of arena games")
	fs.String(ConfigArenaLog, "", "CSV file for the arena's per-move log")
	fs.String(ConfigArenaSeeds, "", "arena seed file; read if it exists, written otherwise")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()
	// only flags given on the command line override lower layers.
	var bindErr error
	fs.Visit(func(f *pflag.Flag) {
		if err := c.BindPFlag(f.Name, f); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	return bindErr
}

// SanitizedSettings returns all settings except the file paths, for
// display.
func (c *Config) SanitizedSettings() map[string]any {
	settings := c.AllSettings()
	delete(settings, ConfigCPUProfile)
	delete(settings, ConfigMemProfile)
	delete(settings, ConfigHistoryFile)
	delete(settings, ConfigArenaLog)
	delete(settings, ConfigArenaSeeds)
	return settings
}

// SetKnown sets a value for a key that has a default. Unknown keys are
// rejected so that typos don't silently do nothing.
func (c *Config) SetKnown(key string, value any) error {
	if !c.InConfig(key) && c.Get(key) == nil {
		return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	c.Set(key, value)
	return nil
}

// Write saves the current settings to config.yaml in the config directory.
func (c *Config) Write() error {
	if err := os.MkdirAll(c.configDir, 0o755); err != nil {
		return err
	}
	return c.WriteConfigAs(filepath.Join(c.configDir, "config.yaml"))
}

// Clone copies the current settings into an independent config, for work
// that runs in the background while this one may still change.
func (c *Config) Clone() *Config {
	v := viper.New()
	setDefaults(v)
	for key, value := range c.AllSettings() {
		v.Set(key, value)
	}
	return &Config{Viper: v, configDir: c.configDir}
}

// Args are the command-line arguments left over after the flags.
func (c *Config) Args() []string {
	return c.args
}

// ConfigDir is where Load looks for config.yaml and Write puts it.
func (c *Config) ConfigDir() string {
	return c.configDir
}

// SetConfigDir changes ConfigDir. It must be called before Load.
func (c *Config) SetConfigDir(dir string) {
	c.configDir = dir
}
