package app

import (
	"rummy/internal/bot"
	"rummy/internal/domain"
)

// eventRecorder turns agent notifications into app events for one game.
type eventRecorder struct {
	game   *domain.Game
	events []Event
}

var _ bot.Observer = (*eventRecorder)(nil)

func (r *eventRecorder) emit(ev Event) {
	r.events = append(r.events, ev)
}

// drain returns the events recorded since the last call.
func (r *eventRecorder) drain() []Event {
	out := r.events
	r.events = nil
	return out
}

func (r *eventRecorder) userID(seat int) string {
	if seat < 0 || seat >= len(r.game.Players) {
		return ""
	}
	return r.game.Players[seat].ID
}

func (r *eventRecorder) TileDrawn(seat int, t *domain.Tile) {
	uid := r.userID(seat)
	r.emit(Event{
		Kind:       EventTileDrawn,
		Payload:    TileDrawnPayload{UserID: uid, Tile: t.Descriptor(), PoolLeft: r.game.Pool.Len()},
		Recipients: []string{uid},
	})
}

func (r *eventRecorder) Published(seat int, combos []domain.Combination) {
	first := false
	if seat >= 0 && seat < len(r.game.Players) {
		first = r.game.Players[seat].Status == domain.StatusJustPublished
	}
	r.emit(Event{
		Kind: EventPublished,
		Payload: PublishedPayload{
			UserID:       r.userID(seat),
			Combinations: combinationPayloads(combos),
			FirstPublish: first,
		},
	})
}

// DiscardChosen is not an event; the discard is announced once it happens.
func (r *eventRecorder) DiscardChosen(int, *domain.Tile) {}
