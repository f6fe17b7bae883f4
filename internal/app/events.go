package app

import "rummy/internal/domain"

// EventKind identifies emitted game events for dispatch by the ports.
type EventKind string

const (
	EventGameStarted   EventKind = "game_started"
	EventHandDealt     EventKind = "hand_dealt"
	EventTileDrawn     EventKind = "tile_drawn"
	EventPublished     EventKind = "combinations_published"
	EventTileDiscarded EventKind = "tile_discarded"
	EventTurnEnded     EventKind = "turn_ended"
	EventGameEnded     EventKind = "game_ended"
)

// Event is a game event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type GameStartedPayload struct {
	GameID          string   `json:"game_id"`
	Players         []string `json:"players"` // seat order
	FirstTurnUserID string   `json:"first_turn_user_id"`
	PoolSize        int      `json:"pool_size"`
}

type HandDealtPayload struct {
	UserID string              `json:"user_id"`
	Hand   []domain.Descriptor `json:"hand"`
}

type TileDrawnPayload struct {
	UserID   string            `json:"user_id"`
	Tile     domain.Descriptor `json:"tile"`
	PoolLeft int               `json:"pool_left"`
}

// CombinationPayload is the wire shape of one published combination.
type CombinationPayload struct {
	Kind  string              `json:"kind"`
	Tiles []domain.Descriptor `json:"tiles"`
	Value int                 `json:"value"`
}

type PublishedPayload struct {
	UserID       string               `json:"user_id"`
	Combinations []CombinationPayload `json:"combinations"`
	FirstPublish bool                 `json:"first_publish"`
}

type TileDiscardedPayload struct {
	UserID string            `json:"user_id"`
	Tile   domain.Descriptor `json:"tile"`
}

type TurnEndedPayload struct {
	UserID         string `json:"user_id"`
	Turn           int    `json:"turn"`
	HandSize       int    `json:"hand_size"`
	Discarded      bool   `json:"discarded"`
	NextTurnUserID string `json:"next_turn_user_id"`
}

type GameEndedPayload struct {
	GameID       string           `json:"game_id"`
	Reason       domain.EndReason `json:"reason"`
	WinnerUserID string           `json:"winner_user_id"` // empty when nobody won
	Turns        int              `json:"turns"`
	Scores       map[string]int   `json:"scores"`
}

func combinationPayloads(combos []domain.Combination) []CombinationPayload {
	out := make([]CombinationPayload, 0, len(combos))
	for _, c := range combos {
		out = append(out, CombinationPayload{
			Kind:  c.Kind.String(),
			Tiles: domain.Descriptors(c.Tiles),
			Value: c.Value(),
		})
	}
	return out
}
