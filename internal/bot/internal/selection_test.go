package internal

import (
	"testing"

	"rummy/internal/domain"
)

func twinHand() []*domain.Tile {
	return []*domain.Tile{
		domain.NewTile(domain.ColorYellow, 2, domain.LocationPool, 0),
		domain.MustParseTile("y3"),
		domain.MustParseTile("y4"),
		domain.NewTile(domain.ColorYellow, 2, domain.LocationPool, 1),
		domain.MustParseTile("r2"),
		domain.MustParseTile("k2"),
	}
}

func TestSelect_Threshold(t *testing.T) {
	tests := []struct {
		name        string
		policy      Policy
		wantCombos  int
		wantDiscard int
	}{
		{name: "meets threshold", policy: Policy{Threshold: 10}, wantCombos: 2, wantDiscard: 0},
		{name: "below threshold", policy: Policy{Threshold: 20}, wantCombos: 0, wantDiscard: 0},
		{name: "already published", policy: Policy{Threshold: 20, HasPublished: true}, wantCombos: 2, wantDiscard: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand := twinHand()
			s := Select(SearchConstellations(hand), hand, tt.policy)
			if len(s.Publish) != tt.wantCombos {
				t.Errorf("published %d combinations, want %d", len(s.Publish), tt.wantCombos)
			}
			if len(s.DiscardPool) != tt.wantDiscard {
				t.Errorf("discard pool has %d tiles, want %d", len(s.DiscardPool), tt.wantDiscard)
			}
		})
	}
}

func TestSelect_ValueEqualToThresholdQualifies(t *testing.T) {
	hand := domain.MustParseTiles("r1", "r2", "r3")
	s := Select(SearchConstellations(hand), hand, Policy{Threshold: 6})
	if len(s.Publish) != 1 || s.Publish[0].Value() != 6 {
		t.Fatalf("expected the run worth 6 to be published, got %v", s.Publish)
	}
	if len(s.DiscardPool) != 0 {
		t.Fatalf("discard pool has %d tiles, want 0", len(s.DiscardPool))
	}

	s = Select(SearchConstellations(hand), hand, Policy{Threshold: 7})
	if len(s.Publish) != 0 {
		t.Fatalf("run worth 6 must not meet threshold 7, got %v", s.Publish)
	}
}

func TestSelect_PrefersTileCountOverValue(t *testing.T) {
	hand := domain.MustParseTiles("k1", "k2", "k3")
	small, _ := domain.NewRun(hand...)
	big := domain.MustParseTiles("r13", "y13", "b13")
	book, _ := domain.NewBook(big...)

	constellations := []Constellation{
		{Combinations: []domain.Combination{book}},
		{Combinations: []domain.Combination{small, small}},
	}
	s := selectFrom(constellations, append(hand, big...), Policy{Threshold: 0})
	if len(s.Publish) != 2 {
		t.Fatalf("expected the 6-tile constellation, got %v", s.Publish)
	}
}

func TestSelect_FallbackUsesHighestValue(t *testing.T) {
	hand := domain.MustParseTiles("r13", "r12", "r11", "k1", "y9")
	s := Select(SearchConstellations(hand), hand, Policy{Threshold: 100})
	if len(s.Publish) != 0 {
		t.Fatalf("nothing should be published, got %v", s.Publish)
	}
	if len(s.DiscardPool) != 2 {
		t.Fatalf("discard pool = %v, want the 2 leftover tiles", s.DiscardPool)
	}
}

func TestSelect_FallbackToWholeHand(t *testing.T) {
	hand := domain.MustParseTiles("r1", "k5", "b9")
	s := Select(SearchConstellations(hand), hand, Policy{Threshold: 30})
	if len(s.Publish) != 0 || len(s.DiscardPool) != 3 {
		t.Fatalf("expected whole hand as discard pool, got %+v", s)
	}
}

func TestSelect_EmptyHand(t *testing.T) {
	s := Select(SearchConstellations(nil), nil, Policy{})
	if len(s.Publish) != 0 || len(s.DiscardPool) != 0 {
		t.Fatalf("expected empty selection, got %+v", s)
	}
}
