package internal

import (
	"sort"
	"strconv"
	"strings"

	"rummy/internal/domain"
)

// Constellation is one candidate partition of a hand: the combinations found
// by a single greedy pass plus every tile left over.
type Constellation struct {
	Combinations []domain.Combination
	Rest         []*domain.Tile
}

// Value sums the values of all combinations.
func (c Constellation) Value() int {
	total := 0
	for _, combo := range c.Combinations {
		total += combo.Value()
	}
	return total
}

// TileCount returns how many tiles the combinations consume.
func (c Constellation) TileCount() int {
	n := 0
	for _, combo := range c.Combinations {
		n += combo.Len()
	}
	return n
}

// key identifies a constellation by the physical tiles of its combinations,
// independent of the order they were found in.
func (c Constellation) key() string {
	parts := make([]string, 0, len(c.Combinations))
	for _, combo := range c.Combinations {
		keys := make([]string, 0, combo.Len())
		for _, t := range combo.Tiles {
			keys = append(keys, tileKeyString(t))
		}
		sort.Strings(keys)
		parts = append(parts, combo.Kind.String()+":"+strings.Join(keys, ","))
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

func tileKeyString(t *domain.Tile) string {
	k := t.Key()
	return string(domain.DescriptorOf(k.Color, k.Value)) + "#" + strconv.Itoa(k.Index)
}

// SortDescending returns a copy of tiles ordered by value, highest first.
// Tiles of equal value keep their relative order.
func SortDescending(tiles []*domain.Tile) []*domain.Tile {
	out := append([]*domain.Tile(nil), tiles...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return out
}

// SearchConstellations runs one greedy extraction pass per starting offset of
// the value-sorted hand and returns the distinct results in encounter order.
// Only 3-tile combinations are ever formed.
func SearchConstellations(hand []*domain.Tile) []Constellation {
	pool := SortDescending(hand)
	seen := make(map[string]bool, len(pool))
	out := make([]Constellation, 0, len(pool))

	for p := range pool {
		combos := extract(pool[p:])
		c := Constellation{Combinations: combos, Rest: leftover(pool, combos)}
		checkConstellation(hand, c)

		k := c.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, c)
	}
	return out
}

// extract is a single greedy pass over a working copy of suffix.
func extract(suffix []*domain.Tile) []domain.Combination {
	subpool := append([]*domain.Tile(nil), suffix...)
	var combos []domain.Combination

	for len(subpool) > 2 {
		anchor := subpool[0]
		subpool = subpool[1:]

		combo, second, third, ok := complete(anchor, subpool)
		if !ok {
			continue
		}
		combos = append(combos, combo)
		subpool = domain.RemoveTiles(subpool, []*domain.Tile{second, third})
	}
	return combos
}

// complete looks for the first second tile in subpool that pairs with anchor
// and for which a third tile finishing the pair is also in subpool.
func complete(anchor *domain.Tile, subpool []*domain.Tile) (domain.Combination, *domain.Tile, *domain.Tile, bool) {
	singles := domain.SingleCandidates(anchor)
	for i, second := range subpool {
		if !domain.ContainsDescriptor(singles, second.Descriptor()) {
			continue
		}
		pair, err := domain.NewPair(anchor, second)
		if err != nil {
			continue
		}
		wanted := pair.Candidates()
		for j, third := range subpool {
			if j == i || !domain.ContainsDescriptor(wanted, third.Descriptor()) {
				continue
			}
			combo, err := domain.NewCombination(pair.Kind, anchor, second, third)
			if err != nil {
				continue
			}
			return combo, second, third, true
		}
	}
	return domain.Combination{}, nil, nil, false
}

func leftover(pool []*domain.Tile, combos []domain.Combination) []*domain.Tile {
	var used []*domain.Tile
	for _, c := range combos {
		used = append(used, c.Tiles...)
	}
	if len(used) == 0 {
		return append([]*domain.Tile(nil), pool...)
	}
	return domain.RemoveTiles(pool, used)
}
