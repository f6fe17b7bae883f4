package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"rummy/internal/app"
	"rummy/internal/bot"
	"rummy/internal/config"
	"rummy/internal/domain"
	"rummy/internal/ports"
)

type simOptions struct {
	Games    int
	Parallel int
}

// GameSummary is the outcome of one simulated game.
type GameSummary struct {
	Index  int              `json:"index" yaml:"index"`
	GameID string           `json:"game_id" yaml:"game_id"`
	Seed   int64            `json:"seed" yaml:"seed"`
	Reason domain.EndReason `json:"reason" yaml:"reason"`
	Winner string           `json:"winner,omitempty" yaml:"winner,omitempty"`
	Turns  int              `json:"turns" yaml:"turns"`
	Scores map[string]int   `json:"scores" yaml:"scores"`
}

// runGames plays opts.Games games, at most opts.Parallel at a time. Each game
// gets its own seed drawn from cfg.Seed, so a batch is reproducible.
func runGames(ctx context.Context, cfg config.GameConfig, opts simOptions, sink ports.EventSink, log zerolog.Logger) ([]GameSummary, error) {
	if opts.Games <= 0 {
		return nil, nil
	}
	master := cfg.Seed
	if master == 0 {
		master = time.Now().UnixNano()
	}
	seeds := make([]int64, opts.Games)
	rng := rand.New(rand.NewSource(master))
	for i := range seeds {
		seeds[i] = rng.Int63()
	}

	seats := make([]string, cfg.Players)
	for i := range seats {
		seats[i] = bot.GetBotIdentity(i).UserID
	}

	summaries := make([]GameSummary, opts.Games)
	g, ctx := errgroup.WithContext(ctx)
	if opts.Parallel > 0 {
		g.SetLimit(opts.Parallel)
	}
	for i := range seeds {
		i := i // per-iteration copy; go directive is 1.21 (pre-loopvar semantics)
		g.Go(func() error {
			summary, err := playGame(ctx, cfg, seeds[i], seats, sink)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i, seeds[i], err)
			}
			summary.Index = i
			summaries[i] = summary
			log.Debug().
				Int("game", i).
				Str("reason", string(summary.Reason)).
				Int("turns", summary.Turns).
				Msg("game finished")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func playGame(ctx context.Context, cfg config.GameConfig, seed int64, seats []string, sink ports.EventSink) (GameSummary, error) {
	svc := app.NewService(rand.New(rand.NewSource(seed)), cfg)
	table, events, err := svc.StartGame(seats)
	if err != nil {
		return GameSummary{}, err
	}
	game := table.Game
	if sink != nil {
		sink.Publish(game.ID, events)
	}
	err = svc.Run(ctx, table, func(events []app.Event) {
		if sink != nil {
			sink.Publish(game.ID, events)
		}
	})
	if err != nil {
		return GameSummary{}, err
	}

	summary := GameSummary{
		GameID: game.ID,
		Seed:   seed,
		Reason: game.EndReason,
		Turns:  game.Turn,
		Scores: game.CalculateSettlement().Scores,
	}
	if game.WinnerSeat >= 0 {
		summary.Winner = game.Players[game.WinnerSeat].ID
	}
	return summary, nil
}

// Report aggregates a batch of games.
type Report struct {
	Players          int            `json:"players" yaml:"players"`
	PublishThreshold int            `json:"publish_threshold" yaml:"publish_threshold"`
	Wins             map[string]int `json:"wins" yaml:"wins"`
	Reasons          map[string]int `json:"reasons" yaml:"reasons"`
	AverageTurns     float64        `json:"average_turns" yaml:"average_turns"`
	Games            []GameSummary  `json:"games" yaml:"games"`
}

func newReport(cfg config.GameConfig, summaries []GameSummary) Report {
	r := Report{
		Players:          cfg.Players,
		PublishThreshold: cfg.PublishThreshold,
		Wins:             make(map[string]int),
		Reasons:          make(map[string]int),
		Games:            summaries,
	}
	turns := 0
	for _, s := range summaries {
		r.Reasons[string(s.Reason)]++
		if s.Winner != "" {
			r.Wins[s.Winner]++
		}
		turns += s.Turns
	}
	if len(summaries) > 0 {
		r.AverageTurns = float64(turns) / float64(len(summaries))
	}
	return r
}

func writeReport(w io.Writer, format string, r Report) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		return writeText(w, r)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func writeText(w io.Writer, r Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "games\t%d\n", len(r.Games))
	fmt.Fprintf(tw, "players\t%d\n", r.Players)
	fmt.Fprintf(tw, "publish threshold\t%d\n", r.PublishThreshold)
	fmt.Fprintf(tw, "average turns\t%.1f\n", r.AverageTurns)
	for _, reason := range sortedKeys(r.Reasons) {
		fmt.Fprintf(tw, "ended by %s\t%d\n", reason, r.Reasons[reason])
	}
	for _, winner := range sortedKeys(r.Wins) {
		fmt.Fprintf(tw, "wins %s\t%d\n", winner, r.Wins[winner])
	}
	return tw.Flush()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
