package domain

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBookValueAndCandidates(t *testing.T) {
	book, err := NewBook(MustParseTiles("k11", "y11")...)
	if err != nil {
		t.Fatalf("NewBook error: %v", err)
	}
	if got := book.Value(); got != 22 {
		t.Fatalf("Value() = %d, want 22", got)
	}
	want := []Descriptor{"r11", "b11"}
	if diff := cmp.Diff(want, book.Candidates()); diff != "" {
		t.Fatalf("Candidates() mismatch (-want +got):\n%s", diff)
	}
}

func TestRunNormalizesOrder(t *testing.T) {
	run, err := NewRun(MustParseTiles("r9", "r8", "r10")...)
	if err != nil {
		t.Fatalf("NewRun error: %v", err)
	}
	if diff := cmp.Diff([]Descriptor{"r08", "r09", "r10"}, Descriptors(run.Tiles)); diff != "" {
		t.Fatalf("run tiles mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Descriptor{"r11", "r07"}, run.Candidates()); diff != "" {
		t.Fatalf("Candidates() mismatch (-want +got):\n%s", diff)
	}
	if got := run.Value(); got != 27 {
		t.Fatalf("Value() = %d, want 27", got)
	}
}

func TestCandidatesAtBounds(t *testing.T) {
	tests := []struct {
		name  string
		kind  CombinationKind
		codes []string
		want  []Descriptor
	}{
		{name: "run touching 13", kind: KindRun, codes: []string{"b12", "b13"}, want: []Descriptor{"b11"}},
		{name: "run touching 1", kind: KindRun, codes: []string{"y1", "y2", "y3"}, want: []Descriptor{"y04"}},
		{name: "full run", kind: KindRun, codes: []string{"k1", "k2", "k3", "k4", "k5", "k6", "k7", "k8", "k9", "k10", "k11", "k12", "k13"}, want: []Descriptor{}},
		{name: "three color book", kind: KindBook, codes: []string{"r4", "y4", "k4"}, want: []Descriptor{"b04"}},
		{name: "four color book", kind: KindBook, codes: []string{"r4", "y4", "k4", "b4"}, want: []Descriptor{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCombination(tt.kind, MustParseTiles(tt.codes...)...)
			if err != nil {
				t.Fatalf("NewCombination error: %v", err)
			}
			if diff := cmp.Diff(tt.want, c.Candidates()); diff != "" {
				t.Fatalf("Candidates() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInvalidCombinations(t *testing.T) {
	tests := []struct {
		name  string
		kind  CombinationKind
		codes []string
	}{
		{name: "run mixed colors", kind: KindRun, codes: []string{"r5", "b6", "r7"}},
		{name: "run with gap", kind: KindRun, codes: []string{"r5", "r7"}},
		{name: "run with repeated value", kind: KindRun, codes: []string{"r5", "r5", "r6"}},
		{name: "run single tile", kind: KindRun, codes: []string{"r5"}},
		{name: "book repeated color", kind: KindBook, codes: []string{"r5", "y5", "r5"}},
		{name: "book mixed values", kind: KindBook, codes: []string{"r5", "y6"}},
		{name: "book single tile", kind: KindBook, codes: []string{"r5"}},
		{name: "unknown kind", kind: CombinationKind(0), codes: []string{"r5", "r6"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCombination(tt.kind, MustParseTiles(tt.codes...)...); !errors.Is(err, ErrInvalidCombination) {
				t.Fatalf("expected ErrInvalidCombination, got %v", err)
			}
		})
	}
}

func TestCombinationsRejectTilesOutsideTheSet(t *testing.T) {
	tests := []struct {
		name  string
		kind  CombinationKind
		tiles []*Tile
	}{
		{name: "book with unknown color", kind: KindBook, tiles: []*Tile{NewTile(Color(5), 3, LocationPool, 0), NewTile(ColorRed, 3, LocationPool, 0)}},
		{name: "book with negative color", kind: KindBook, tiles: []*Tile{NewTile(Color(-1), 3, LocationPool, 0), NewTile(ColorRed, 3, LocationPool, 0)}},
		{name: "book with value 0", kind: KindBook, tiles: []*Tile{NewTile(ColorYellow, 0, LocationPool, 0), NewTile(ColorRed, 0, LocationPool, 0)}},
		{name: "run past 13", kind: KindRun, tiles: []*Tile{NewTile(ColorRed, 13, LocationPool, 0), NewTile(ColorRed, 14, LocationPool, 0)}},
		{name: "run below 1", kind: KindRun, tiles: []*Tile{NewTile(ColorRed, 0, LocationPool, 0), NewTile(ColorRed, 1, LocationPool, 0)}},
		{name: "run with unknown color", kind: KindRun, tiles: []*Tile{NewTile(Color(4), 5, LocationPool, 0), NewTile(Color(4), 6, LocationPool, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCombination(tt.kind, tt.tiles...); !errors.Is(err, ErrInvalidCombination) {
				t.Fatalf("expected ErrInvalidCombination, got %v", err)
			}
		})
	}
}

func TestBookRejectsFiveTiles(t *testing.T) {
	tiles := MustParseTiles("r5", "y5", "b5", "k5")
	tiles = append(tiles, NewTile(ColorRed, 5, LocationPool, 1))
	if _, err := NewBook(tiles...); !errors.Is(err, ErrInvalidCombination) {
		t.Fatalf("expected ErrInvalidCombination, got %v", err)
	}
}
