// Command rummysim plays batches of all-agent rummy games and reports the
// outcome of each one.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"rummy/internal/app"
	"rummy/internal/bot"
	"rummy/internal/config"
	"rummy/internal/logging"
	"rummy/internal/ports"
	"rummy/internal/ports/ws"
)

var (
	configPath = flag.String("config", "", "YAML or JSON game config file")
	numGames   = flag.Int("games", 100, "Number of games to play")
	parallel   = flag.Int("parallel", 4, "Number of games played at once")
	seed       = flag.Int64("seed", 0, "Master seed; 0 uses the config seed or the clock")
	threshold  = flag.Int("threshold", -1, "Publish threshold override")
	players    = flag.Int("players", 0, "Player count override")
	listen     = flag.String("listen", "", "Address to stream public events over WebSocket, e.g. :8080")
	format     = flag.String("format", "text", "Report format: text, json or yaml")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "rummysim:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *threshold >= 0 {
		cfg.PublishThreshold = *threshold
	}
	if *players > 0 {
		cfg.Players = *players
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logging.New(cfg.LogLevel, os.Stderr)
	if cfg.BotIdentities != "" {
		if err := bot.LoadIdentities(cfg.BotIdentities); err != nil {
			log.Warn().Err(err).Msg("using generated bot identities")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sinks := ports.MultiSink{logSink{log: log}}
	if *listen != "" {
		hub := ws.NewHub(log)
		srv := &http.Server{Addr: *listen, Handler: hub.Handler(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("websocket server stopped")
			}
		}()
		defer func() {
			hub.Close()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		log.Info().Str("addr", *listen).Msg("streaming events")
		sinks = append(sinks, hub)
	}

	opts := simOptions{Games: *numGames, Parallel: *parallel}
	start := time.Now()
	summaries, err := runGames(ctx, cfg, opts, sinks, log)
	if err != nil {
		return err
	}
	log.Info().
		Int("games", len(summaries)).
		Dur("elapsed", time.Since(start)).
		Msg("simulation finished")

	return writeReport(os.Stdout, *format, newReport(cfg, summaries))
}

// logSink writes every event at debug level.
type logSink struct {
	log zerolog.Logger
}

func (s logSink) Publish(gameID string, events []app.Event) {
	if s.log.GetLevel() > zerolog.DebugLevel {
		return
	}
	for _, ev := range events {
		s.log.Debug().
			Str("game", gameID).
			Str("kind", string(ev.Kind)).
			Strs("to", ev.Recipients).
			Interface("payload", ev.Payload).
			Msg("event")
	}
}
