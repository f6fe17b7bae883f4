//go:build rummydebug

package internal

import (
	"testing"

	"rummy/internal/domain"
)

func TestCheckConstellationPanicsOnForeignTile(t *testing.T) {
	hand := domain.MustParseTiles("r1", "r2")
	stranger := domain.MustParseTile("k9")

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a leftover tile outside the hand")
		}
	}()
	checkConstellation(hand, Constellation{Rest: append(hand, stranger)})
}

func TestCheckConstellationPanicsOnMissingTile(t *testing.T) {
	hand := domain.MustParseTiles("r1", "r2")

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic when a hand tile is unaccounted for")
		}
	}()
	checkConstellation(hand, Constellation{Rest: hand[:1]})
}
