package ports

import (
	"rummy/internal/app"
)

// EventSink receives the events of a running game, in order.
type EventSink interface {
	Publish(gameID string, events []app.Event)
}

// MultiSink fans events out to several sinks.
type MultiSink []EventSink

func (m MultiSink) Publish(gameID string, events []app.Event) {
	for _, s := range m {
		s.Publish(gameID, events)
	}
}
