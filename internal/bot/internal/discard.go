package internal

import (
	"math/rand"

	"rummy/internal/domain"
)

// ChooseDiscard picks the tile least likely to join a future combination.
//
// Pairs of remote candidates are removed from a working copy until none
// remain. A single survivor is returned; several survivors are chosen from at
// random with rng. When every tile paired away the lowest-valued tile of the
// original list is returned. An empty list yields nil.
func ChooseDiscard(candidates []*domain.Tile, rng *rand.Rand) *domain.Tile {
	if len(candidates) == 0 {
		return nil
	}

	work := append([]*domain.Tile(nil), candidates...)
	for {
		i, j, ok := firstRemotePair(work)
		if !ok {
			break
		}
		// j > i, so removing j first keeps i valid.
		work = append(work[:j], work[j+1:]...)
		work = append(work[:i], work[i+1:]...)
	}

	switch len(work) {
	case 0:
		return lowest(candidates)
	case 1:
		return work[0]
	default:
		return work[rng.Intn(len(work))]
	}
}

func firstRemotePair(tiles []*domain.Tile) (int, int, bool) {
	for i := 0; i < len(tiles); i++ {
		for j := i + 1; j < len(tiles); j++ {
			if domain.RemoteCandidates(tiles[i], tiles[j]) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

func lowest(tiles []*domain.Tile) *domain.Tile {
	low := tiles[0]
	for _, t := range tiles[1:] {
		if t.Value < low.Value {
			low = t
		}
	}
	return low
}
