// Command arena plays two engines against each other without a terminal
// and prints the match summary.
//
//	arena [--key=value ...] [engine1] [engine2]
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/unit117/Gomoku/automatic"
	"github.com/unit117/Gomoku/config"
)

func setupLogging(cfg *config.Config) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

// seeds reads the seed file, or creates it if it doesn't exist yet.
func seeds(path string, n int) ([][32]byte, error) {
	if path == "" {
		return nil, nil
	}
	s, err := automatic.LoadSeeds(path)
	if err == nil {
		log.Info().Int("seeds", len(s)).Str("file", path).Msg("loaded-seeds")
		return s, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	s, err = automatic.GenerateSeeds(n)
	if err != nil {
		return nil, err
	}
	if err := automatic.SaveSeeds(s, path); err != nil {
		return nil, err
	}
	log.Info().Int("seeds", len(s)).Str("file", path).Msg("saved-seeds")
	return s, nil
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error loading config:", err)
		os.Exit(1)
	}
	setupLogging(cfg)

	engine := cfg.GetString(config.ConfigEngine)
	engines := [2]string{engine, engine}
	copy(engines[:], cfg.Args())

	games := cfg.GetInt(config.ConfigArenaGames)
	s, err := seeds(cfg.GetString(config.ConfigArenaSeeds), games)
	if err != nil {
		log.Fatal().Err(err).Msg("seeds")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	summary, err := automatic.StartCompVComp(ctx, cfg, automatic.MatchOptions{
		Engines:  engines,
		NumGames: games,
		Threads:  cfg.GetInt(config.ConfigArenaThreads),
		LogFile:  cfg.GetString(config.ConfigArenaLog),
		Seeds:    s,
	})
	if err != nil {
		log.Err(err).Msg("arena-failed")
		if summary == nil {
			os.Exit(1)
		}
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("arena-finished")
	fmt.Print(summary)
	if summary.Games > 0 {
		fmt.Println("game lengths:")
		if err := summary.Histogram(os.Stdout, 10); err != nil {
			log.Err(err).Msg("histogram")
		}
	}
}
