package internal

import (
	"fmt"

	"rummy/internal/domain"
)

// checkConstellation panics when c does not partition hand exactly. It is a
// no-op unless built with the rummydebug tag.
func checkConstellation(hand []*domain.Tile, c Constellation) {
	if !debugChecks {
		return
	}
	inHand := make(map[*domain.Tile]bool, len(hand))
	for _, t := range hand {
		inHand[t] = true
	}
	seen := make(map[*domain.Tile]bool, len(hand))
	mark := func(t *domain.Tile, where string) {
		if !inHand[t] {
			panic(fmt.Sprintf("rummy: %s tile %s is not in hand", where, t))
		}
		if seen[t] {
			panic(fmt.Sprintf("rummy: tile %s used twice", t))
		}
		seen[t] = true
	}
	for _, combo := range c.Combinations {
		if combo.Len() != 3 {
			panic(fmt.Sprintf("rummy: search produced %d-tile combination %s", combo.Len(), combo))
		}
		for _, t := range combo.Tiles {
			mark(t, "combined")
		}
	}
	for _, t := range c.Rest {
		mark(t, "leftover")
	}
	if len(seen) != len(hand) {
		panic(fmt.Sprintf("rummy: constellation covers %d of %d tiles", len(seen), len(hand)))
	}
}

// checkHand panics when a selection would publish tiles missing from hand.
func checkHand(hand []*domain.Tile, s Selection) {
	if !debugChecks {
		return
	}
	inHand := make(map[*domain.Tile]bool, len(hand))
	for _, t := range hand {
		inHand[t] = true
	}
	for _, combo := range s.Publish {
		for _, t := range combo.Tiles {
			if !inHand[t] {
				panic(fmt.Sprintf("rummy: publishing tile %s that is not in hand", t))
			}
		}
	}
	for _, t := range s.DiscardPool {
		if !inHand[t] {
			panic(fmt.Sprintf("rummy: discard candidate %s is not in hand", t))
		}
	}
}
