package domain

import (
	"math/rand"
	"testing"
)

func newTestGame(hands ...[]string) *Game {
	g := &Game{
		ID:         "g1",
		Phase:      PhasePlaying,
		Pool:       NewPool(rand.New(rand.NewSource(1))),
		WinnerSeat: -1,
	}
	for seat, codes := range hands {
		g.Players = append(g.Players, NewPlayer("u"+string(rune('0'+seat)), seat, MustParseTiles(codes...)))
	}
	return g
}

func TestGameSeats(t *testing.T) {
	g := newTestGame([]string{"r1"}, []string{"r2"}, []string{"r3"})
	if got := g.NextSeat(2); got != 0 {
		t.Fatalf("NextSeat(2) = %d, want 0", got)
	}
	if got := g.NextSeat(0); got != 1 {
		t.Fatalf("NextSeat(0) = %d, want 1", got)
	}
	g.CurrentTurn = 1
	if p := g.CurrentPlayer(); p == nil || p.ID != "u1" {
		t.Fatalf("CurrentPlayer() = %v, want u1", p)
	}
	g.CurrentTurn = 5
	if g.CurrentPlayer() != nil {
		t.Fatal("CurrentPlayer() out of range should be nil")
	}
}

func TestGameTileCount(t *testing.T) {
	g := newTestGame()
	hand := g.Pool.Deal(14)
	g.Players = append(g.Players, NewPlayer("u0", 0, hand))
	if got := g.TileCount(); got != PoolSize {
		t.Fatalf("TileCount() = %d, want %d", got, PoolSize)
	}

	p := g.Players[0]
	// Publish does not validate; only conservation matters here.
	moved := Combination{Kind: KindRun, Tiles: append([]*Tile(nil), p.Hand[:3]...)}
	p.Publish([]Combination{moved})
	if got := g.TileCount(); got != PoolSize {
		t.Fatalf("TileCount() after publish = %d, want %d", got, PoolSize)
	}
}

func TestCalculateSettlement(t *testing.T) {
	tests := []struct {
		name   string
		winner int
		want   map[string]int
	}{
		{
			name:   "winner collects the pot",
			winner: 0,
			want:   map[string]int{"u0": 29, "u1": -9, "u2": -20},
		},
		{
			name:   "no winner everybody pays",
			winner: -1,
			want:   map[string]int{"u0": 0, "u1": -9, "u2": -20},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(nil, []string{"r4", "y5"}, []string{"k13", "b7"})
			g.End(EndReasonVictory, tt.winner)
			got := g.CalculateSettlement()
			if len(got.Scores) != len(tt.want) {
				t.Fatalf("scores = %v, want %v", got.Scores, tt.want)
			}
			for id, want := range tt.want {
				if got.Scores[id] != want {
					t.Fatalf("score[%s] = %d, want %d", id, got.Scores[id], want)
				}
			}
		})
	}
}

func TestGameEnd(t *testing.T) {
	g := newTestGame([]string{"r1"})
	g.End(EndReasonPoolExhausted, -1)
	if g.Phase != PhaseEnded || g.EndReason != EndReasonPoolExhausted || g.WinnerSeat != -1 {
		t.Fatalf("unexpected end state: phase=%s reason=%s winner=%d", g.Phase, g.EndReason, g.WinnerSeat)
	}
}
