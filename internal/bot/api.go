package bot

import (
	"rummy/internal/domain"
)

// Rules are the game-level constants an agent plays by.
type Rules struct {
	// PublishThreshold is the minimum total value of a first publish.
	PublishThreshold int
}

// Decision is the outcome of one Play call.
type Decision struct {
	Published []domain.Combination
	Discard   *domain.Tile // nil when the whole hand went into combinations
}

// Observer is notified of an agent's actions. Implementations must not
// mutate the tiles they receive.
type Observer interface {
	TileDrawn(seat int, tile *domain.Tile)
	Published(seat int, combos []domain.Combination)
	DiscardChosen(seat int, tile *domain.Tile)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) TileDrawn(int, *domain.Tile)         {}
func (NopObserver) Published(int, []domain.Combination) {}
func (NopObserver) DiscardChosen(int, *domain.Tile)     {}
