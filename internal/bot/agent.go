package bot

import (
	"math/rand"
	"time"

	botinternal "rummy/internal/bot/internal"
	"rummy/internal/domain"
)

// Agent represents an autonomous rummy player.
type Agent struct {
	ID   string
	Name string

	rules    Rules
	rng      *rand.Rand
	observer Observer
}

// NewAgent creates an agent. A nil rng falls back to a time-seeded source and
// a nil observer to NopObserver.
func NewAgent(id, name string, rules Rules, rng *rand.Rand, observer Observer) *Agent {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if observer == nil {
		observer = NopObserver{}
	}
	return &Agent{ID: id, Name: name, rules: rules, rng: rng, observer: observer}
}

// Rules returns the rules the agent plays by.
func (a *Agent) Rules() Rules {
	return a.rules
}

// Draw puts a freshly drawn tile into the player's hand.
func (a *Agent) Draw(p *domain.Player, t *domain.Tile) {
	p.Draw(t)
	a.observer.TileDrawn(p.Seat, t)
}

// Play decides the player's turn: it publishes the selected combinations and
// records the tile to discard. The discard itself is left to the caller.
func (a *Agent) Play(p *domain.Player) Decision {
	hand := p.Hand
	constellations := botinternal.SearchConstellations(hand)
	selection := botinternal.Select(constellations, hand, botinternal.Policy{
		Threshold:    a.rules.PublishThreshold,
		HasPublished: p.HasPublished(),
	})

	var d Decision
	if len(selection.Publish) > 0 {
		p.Publish(selection.Publish)
		d.Published = selection.Publish
		a.observer.Published(p.Seat, d.Published)
	}

	d.Discard = botinternal.ChooseDiscard(selection.DiscardPool, a.rng)
	p.SetDiscard(d.Discard)
	if d.Discard != nil {
		a.observer.DiscardChosen(p.Seat, d.Discard)
	}
	return d
}
