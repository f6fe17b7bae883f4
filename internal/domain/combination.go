package domain

import (
	"errors"
	"fmt"
	"sort"
)

// CombinationKind tells a Book from a Run.
type CombinationKind int

const (
	// KindBook groups tiles of one value in distinct colors.
	KindBook CombinationKind = iota + 1
	// KindRun groups tiles of one color with consecutive values.
	KindRun
)

func (k CombinationKind) String() string {
	switch k {
	case KindBook:
		return "book"
	case KindRun:
		return "run"
	default:
		return "invalid"
	}
}

// ErrInvalidCombination is returned when tiles do not form a valid Book or Run.
var ErrInvalidCombination = errors.New("invalid combination")

// Combination is a Book or a Run. Runs keep their tiles sorted ascending.
type Combination struct {
	Kind  CombinationKind
	Tiles []*Tile
}

// NewCombination builds a combination of the given kind.
func NewCombination(kind CombinationKind, tiles ...*Tile) (Combination, error) {
	switch kind {
	case KindBook:
		return NewBook(tiles...)
	case KindRun:
		return NewRun(tiles...)
	default:
		return Combination{}, fmt.Errorf("%w: unknown kind %d", ErrInvalidCombination, kind)
	}
}

// NewBook validates 2..4 tiles of the same value and distinct colors.
func NewBook(tiles ...*Tile) (Combination, error) {
	if len(tiles) < 2 || len(tiles) > NumColors {
		return Combination{}, fmt.Errorf("%w: book of %d tiles", ErrInvalidCombination, len(tiles))
	}
	var used [NumColors]bool
	for _, t := range tiles {
		if err := checkFace(t); err != nil {
			return Combination{}, err
		}
		if t.Value != tiles[0].Value {
			return Combination{}, fmt.Errorf("%w: book mixes values %d and %d", ErrInvalidCombination, tiles[0].Value, t.Value)
		}
		if used[t.Color] {
			return Combination{}, fmt.Errorf("%w: book repeats color %s", ErrInvalidCombination, t.Color)
		}
		used[t.Color] = true
	}
	return Combination{Kind: KindBook, Tiles: append([]*Tile(nil), tiles...)}, nil
}

// NewRun validates at least 2 tiles of one color with consecutive values and
// stores them sorted ascending.
func NewRun(tiles ...*Tile) (Combination, error) {
	if len(tiles) < 2 {
		return Combination{}, fmt.Errorf("%w: run of %d tiles", ErrInvalidCombination, len(tiles))
	}
	for _, t := range tiles {
		if err := checkFace(t); err != nil {
			return Combination{}, err
		}
	}
	sorted := append([]*Tile(nil), tiles...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Value < sorted[j].Value })

	for i, t := range sorted {
		if t.Color != sorted[0].Color {
			return Combination{}, fmt.Errorf("%w: run mixes colors %s and %s", ErrInvalidCombination, sorted[0].Color, t.Color)
		}
		if i > 0 && t.Value != sorted[i-1].Value+1 {
			return Combination{}, fmt.Errorf("%w: run values %d and %d are not consecutive", ErrInvalidCombination, sorted[i-1].Value, t.Value)
		}
	}
	return Combination{Kind: KindRun, Tiles: sorted}, nil
}

// checkFace rejects tiles whose color or value lies outside the tile set.
func checkFace(t *Tile) error {
	if t == nil {
		return fmt.Errorf("%w: nil tile", ErrInvalidCombination)
	}
	if t.Color < 0 || t.Color >= NumColors {
		return fmt.Errorf("%w: color %d out of range", ErrInvalidCombination, int(t.Color))
	}
	if t.Value < MinValue || t.Value > MaxValue {
		return fmt.Errorf("%w: value %d out of range", ErrInvalidCombination, t.Value)
	}
	return nil
}

// Value is the sum of the member tile values.
func (c Combination) Value() int {
	return TilesValue(c.Tiles)
}

// Len returns the number of tiles in the combination.
func (c Combination) Len() int {
	return len(c.Tiles)
}

// Candidates returns the descriptors of tiles that would extend the
// combination.
func (c Combination) Candidates() []Descriptor {
	if len(c.Tiles) == 0 {
		return nil
	}
	switch c.Kind {
	case KindRun:
		first, last := c.Tiles[0], c.Tiles[len(c.Tiles)-1]
		out := make([]Descriptor, 0, 2)
		if last.Value+1 <= MaxValue {
			out = append(out, DescriptorOf(last.Color, last.Value+1))
		}
		if first.Value-1 >= MinValue {
			out = append(out, DescriptorOf(first.Color, first.Value-1))
		}
		return out
	case KindBook:
		var used [NumColors]bool
		for _, t := range c.Tiles {
			used[t.Color] = true
		}
		out := make([]Descriptor, 0, NumColors)
		for col := ColorYellow; col < NumColors; col++ {
			if !used[col] {
				out = append(out, DescriptorOf(col, c.Tiles[0].Value))
			}
		}
		return out
	default:
		return nil
	}
}

// Contains reports whether the exact tile is a member.
func (c Combination) Contains(t *Tile) bool {
	for _, m := range c.Tiles {
		if m == t {
			return true
		}
	}
	return false
}

func (c Combination) String() string {
	return fmt.Sprintf("%s%v", c.Kind, Descriptors(c.Tiles))
}
