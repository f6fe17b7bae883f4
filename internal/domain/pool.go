package domain

import (
	"math/rand"
	"sort"
	"time"
)

// PoolSize is the number of tiles in a full set.
const PoolSize = (MaxValue - MinValue + 1) * NumColors * Copies

// NewTileSet returns every tile of a full set, ordered by value, color and
// copy index, all located in the pool.
func NewTileSet() []*Tile {
	tiles := make([]*Tile, 0, PoolSize)
	for v := MinValue; v <= MaxValue; v++ {
		for c := ColorYellow; c < NumColors; c++ {
			for i := 0; i < Copies; i++ {
				tiles = append(tiles, NewTile(c, v, LocationPool, i))
			}
		}
	}
	return tiles
}

// Pool is the shared reservoir players draw from and discard to.
type Pool struct {
	tiles []*Tile
	rng   *rand.Rand
}

// NewPool creates a full pool. A nil rng falls back to a time-seeded source.
func NewPool(rng *rand.Rand) *Pool {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Pool{tiles: NewTileSet(), rng: rng}
}

// Len returns the number of tiles left in the pool.
func (p *Pool) Len() int {
	return len(p.tiles)
}

// Draw removes a uniformly random tile. ok is false once the pool is empty.
func (p *Pool) Draw() (tile *Tile, ok bool) {
	if len(p.tiles) == 0 {
		return nil, false
	}
	i := p.rng.Intn(len(p.tiles))
	tile = p.tiles[i]
	last := len(p.tiles) - 1
	p.tiles[i] = p.tiles[last]
	p.tiles[last] = nil
	p.tiles = p.tiles[:last]
	return tile, true
}

// Deal draws up to n tiles.
func (p *Pool) Deal(n int) []*Tile {
	out := make([]*Tile, 0, n)
	for len(out) < n {
		t, ok := p.Draw()
		if !ok {
			break
		}
		out = append(out, t)
	}
	return out
}

// Take removes the first pool tile with descriptor d. ok is false when no
// copy of d is left.
func (p *Pool) Take(d Descriptor) (tile *Tile, ok bool) {
	for i, t := range p.tiles {
		if t.Descriptor() != d {
			continue
		}
		last := len(p.tiles) - 1
		p.tiles[i] = p.tiles[last]
		p.tiles[last] = nil
		p.tiles = p.tiles[:last]
		return t, true
	}
	return nil, false
}

// Return puts a discarded tile back into the pool.
func (p *Pool) Return(t *Tile) {
	t.Location = LocationPool
	p.tiles = append(p.tiles, t)
}

// Tiles returns a copy of the remaining tiles sorted by value, color and index.
func (p *Pool) Tiles() []*Tile {
	out := append([]*Tile(nil), p.tiles...)
	SortTiles(out)
	return out
}

// SortTiles orders tiles ascending by value, then color, then copy index.
func SortTiles(tiles []*Tile) {
	sort.Slice(tiles, func(i, j int) bool {
		a, b := tiles[i], tiles[j]
		if a.Value != b.Value {
			return a.Value < b.Value
		}
		if a.Color != b.Color {
			return a.Color < b.Color
		}
		return a.Index < b.Index
	})
}
