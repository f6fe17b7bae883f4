package internal

import "rummy/internal/domain"

// Policy holds the read-only inputs of the publish decision.
type Policy struct {
	Threshold    int
	HasPublished bool
}

// Qualifies reports whether a constellation may be published under p.
func (p Policy) Qualifies(c Constellation) bool {
	v := c.Value()
	return v >= p.Threshold || (p.HasPublished && v > 0)
}

// Selection is the outcome of the publish decision: the combinations to move
// to the yard (possibly none) and the tiles to choose a discard from.
type Selection struct {
	Publish     []domain.Combination
	DiscardPool []*domain.Tile
}

// Select applies the publish policy to the searched constellations of hand.
//
// Among qualifying constellations the one consuming the most tiles wins. When
// none qualify nothing is published and the highest-valued constellation
// only decides the discard pool: its leftover if worth more than 2, else the
// whole hand.
func Select(constellations []Constellation, hand []*domain.Tile, p Policy) Selection {
	s := selectFrom(constellations, hand, p)
	checkHand(hand, s)
	return s
}

func selectFrom(constellations []Constellation, hand []*domain.Tile, p Policy) Selection {
	if len(hand) == 0 || len(constellations) == 0 {
		return Selection{DiscardPool: append([]*domain.Tile(nil), hand...)}
	}

	best := -1
	for i, c := range constellations {
		if !p.Qualifies(c) {
			continue
		}
		if best < 0 || c.TileCount() > constellations[best].TileCount() {
			best = i
		}
	}
	if best >= 0 {
		chosen := constellations[best]
		return Selection{Publish: chosen.Combinations, DiscardPool: chosen.Rest}
	}

	top := 0
	for i, c := range constellations {
		if c.Value() > constellations[top].Value() {
			top = i
		}
	}
	if constellations[top].Value() > 2 {
		return Selection{DiscardPool: constellations[top].Rest}
	}
	return Selection{DiscardPool: append([]*domain.Tile(nil), hand...)}
}
