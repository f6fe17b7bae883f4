package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"rummy/internal/app"
	"rummy/internal/config"
	"rummy/internal/domain"
)

type countingSink struct {
	mu    sync.Mutex
	games map[string]int
}

func (s *countingSink) Publish(gameID string, events []app.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.games == nil {
		s.games = make(map[string]int)
	}
	s.games[gameID] += len(events)
}

func simConfig() config.GameConfig {
	cfg := config.Default()
	cfg.Players = 3
	cfg.HandSize = 10
	cfg.MaxTurns = 150
	cfg.Seed = 42
	return cfg
}

func TestRunGamesIsReproducible(t *testing.T) {
	cfg := simConfig()
	opts := simOptions{Games: 6, Parallel: 3}

	first, err := runGames(context.Background(), cfg, opts, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("runGames error: %v", err)
	}
	second, err := runGames(context.Background(), cfg, simOptions{Games: 6, Parallel: 1}, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("runGames error: %v", err)
	}
	if len(first) != opts.Games {
		t.Fatalf("summaries = %d, want %d", len(first), opts.Games)
	}
	ignoreID := cmpopts.IgnoreFields(GameSummary{}, "GameID")
	if diff := cmp.Diff(first, second, ignoreID); diff != "" {
		t.Fatalf("same seed gave different games (-first +second):\n%s", diff)
	}
	for i, s := range first {
		if s.Index != i {
			t.Fatalf("summary %d has index %d", i, s.Index)
		}
		if s.Reason == domain.EndReasonNone {
			t.Fatalf("game %d did not end", i)
		}
		if s.Turns > cfg.MaxTurns {
			t.Fatalf("game %d ran %d turns, cap is %d", i, s.Turns, cfg.MaxTurns)
		}
		if (s.Reason == domain.EndReasonVictory) != (s.Winner != "") {
			t.Fatalf("game %d: reason %s with winner %q", i, s.Reason, s.Winner)
		}
	}
}

func TestRunGamesPublishesToSink(t *testing.T) {
	sink := &countingSink{}
	summaries, err := runGames(context.Background(), simConfig(), simOptions{Games: 3, Parallel: 2}, sink, zerolog.Nop())
	if err != nil {
		t.Fatalf("runGames error: %v", err)
	}
	for _, s := range summaries {
		if sink.games[s.GameID] == 0 {
			t.Fatalf("no events published for game %s", s.GameID)
		}
	}
}

func TestRunGamesStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := runGames(ctx, simConfig(), simOptions{Games: 2, Parallel: 1}, nil, zerolog.Nop()); err == nil {
		t.Fatal("expected an error from a cancelled context")
	}
}

func TestWriteReport(t *testing.T) {
	summaries := []GameSummary{
		{Index: 0, GameID: "g0", Seed: 1, Reason: domain.EndReasonVictory, Winner: "bot-1", Turns: 10, Scores: map[string]int{"bot-0": -5, "bot-1": 5}},
		{Index: 1, GameID: "g1", Seed: 2, Reason: domain.EndReasonTurnLimit, Turns: 20, Scores: map[string]int{"bot-0": -3, "bot-1": -4}},
	}
	report := newReport(simConfig(), summaries)
	if report.AverageTurns != 15 {
		t.Fatalf("AverageTurns = %v, want 15", report.AverageTurns)
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeReport(&buf, "json", report); err != nil {
			t.Fatalf("writeReport error: %v", err)
		}
		var got Report
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if diff := cmp.Diff(report, got); diff != "" {
			t.Fatalf("report mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeReport(&buf, "yaml", report); err != nil {
			t.Fatalf("writeReport error: %v", err)
		}
		var got Report
		if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid YAML: %v", err)
		}
		if diff := cmp.Diff(report, got); diff != "" {
			t.Fatalf("report mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeReport(&buf, "text", report); err != nil {
			t.Fatalf("writeReport error: %v", err)
		}
		for _, want := range []string{"games", "ended by turn_limit", "wins bot-1"} {
			if !strings.Contains(buf.String(), want) {
				t.Fatalf("text report missing %q:\n%s", want, buf.String())
			}
		}
	})

	if err := writeReport(&bytes.Buffer{}, "xml", report); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}
