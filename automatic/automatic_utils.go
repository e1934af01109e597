package automatic

// Data collection for automatic games: computer vs computer, many at once.

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/unit117/Gomoku/config"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

// MatchOptions describe a computer-vs-computer match.
type MatchOptions struct {
	Engines  [2]string
	NumGames int
	Threads  int
	// LogFile gets one CSV line per move. Empty for no log.
	LogFile string
	// Seeds, if given, make the games reproducible. Game i uses
	// Seeds[i%len(Seeds)].
	Seeds [][32]byte
}

type job struct {
	idx  int
	seed [32]byte
}

// StartCompVComp plays opts.NumGames games on opts.Threads goroutines and
// waits for them. The two players take turns going first. Cancelling ctx
// stops handing out games; the games already started are played out.
func StartCompVComp(ctx context.Context, cfg *config.Config, opts MatchOptions) (*Summary, error) {
	if IsPlaying.Value() > 0 {
		return nil, ErrAlreadyPlaying
	}
	threads := max(1, opts.Threads)
	seeds := opts.Seeds
	if len(seeds) == 0 {
		var err error
		seeds, err = GenerateSeeds(opts.NumGames)
		if err != nil {
			return nil, err
		}
	}

	var logfile io.WriteCloser
	if opts.LogFile != "" {
		f, err := os.Create(opts.LogFile)
		if err != nil {
			return nil, err
		}
		logfile = f
	}
	log.Debug().Msgf("Starting %v games, %v threads", opts.NumGames, threads)

	CVCCounter.Set(0)
	jobs := make(chan job, 100)
	results := make(chan GameResult, 100)
	logChan := make(chan string, 100)

	var names [2]string
	runners := make([]*GameRunner, threads)
	for i := range runners {
		r := &GameRunner{logchan: logChan, config: cfg}
		if err := r.Init(opts.Engines[0], opts.Engines[1]); err != nil {
			if logfile != nil {
				logfile.Close()
			}
			return nil, err
		}
		runners[i] = r
		names = r.Names()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < opts.NumGames; i++ {
			if gctx.Err() != nil {
				log.Info().Msg("Got stop signal, exiting soon...")
				return nil
			}
			select {
			case jobs <- job{idx: i, seed: seeds[i%len(seeds)]}:
			case <-gctx.Done():
				log.Info().Msg("Got stop signal, exiting soon...")
				return nil
			}
		}
		log.Info().Msg("Finished queueing all jobs.")
		return nil
	})

	players := errgroup.Group{}
	for _, r := range runners {
		r := r
		players.Go(func() error {
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for j := range jobs {
				res, err := r.PlayFull(j.idx%2, j.seed)
				if err != nil {
					// keep the feeder from blocking on a full queue.
					for range jobs {
					}
					return fmt.Errorf("game %d: %w", j.idx, err)
				}
				CVCCounter.Add(1)
				results <- res
			}
			return nil
		})
	}
	g.Go(func() error {
		err := players.Wait()
		close(logChan)
		close(results)
		return err
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		if logfile == nil {
			for range logChan {
			}
			return
		}
		defer logfile.Close()
		if _, err := io.WriteString(logfile, logHeader); err != nil {
			log.Err(err).Msg("writing-log-header")
		}
		for msg := range logChan {
			if _, err := io.WriteString(logfile, msg); err != nil {
				log.Err(err).Msg("writing-log-line")
			}
		}
	}()

	summary := NewSummary(names)
	for res := range results {
		summary.Add(res)
	}
	<-done
	if err := g.Wait(); err != nil {
		return summary, err
	}
	log.Info().Int("games", summary.Games).Msg("All games finished.")
	return summary, nil
}
