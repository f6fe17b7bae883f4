package domain

// PlayerStatus tracks whether a player has published combinations yet.
type PlayerStatus int

const (
	// StatusHandOnly means nothing has been published this game.
	StatusHandOnly PlayerStatus = iota
	// StatusJustPublished is held for the turn of the first publish.
	StatusJustPublished
	// StatusPublished means the player published on an earlier turn.
	StatusPublished
)

func (s PlayerStatus) String() string {
	switch s {
	case StatusHandOnly:
		return "hand_only"
	case StatusJustPublished:
		return "just_published"
	case StatusPublished:
		return "published"
	default:
		return "unknown"
	}
}

// Player holds one participant's hand, yard and pending discard.
type Player struct {
	ID     string
	Seat   int // 0-based, doubles as the hand Location
	Hand   []*Tile
	Yard   []Combination
	Status PlayerStatus

	discard *Tile
}

// NewPlayer creates a player and draws the given tiles into the hand.
func NewPlayer(id string, seat int, hand []*Tile) *Player {
	p := &Player{ID: id, Seat: seat, Hand: make([]*Tile, 0, len(hand)+1)}
	for _, t := range hand {
		p.Draw(t)
	}
	return p
}

// Draw moves a tile into the hand.
func (p *Player) Draw(t *Tile) {
	t.Location = HandLocation(p.Seat)
	p.Hand = append(p.Hand, t)
}

// HasPublished reports whether the player published at least once this game.
func (p *Player) HasPublished() bool {
	return p.Status != StatusHandOnly
}

// Victorious reports whether the hand is empty.
func (p *Player) Victorious() bool {
	return len(p.Hand) == 0
}

// HandValue sums the values still held in hand.
func (p *Player) HandValue() int {
	return TilesValue(p.Hand)
}

// Publish moves the combinations' tiles from the hand to the yard.
func (p *Player) Publish(combos []Combination) {
	if len(combos) == 0 {
		return
	}
	var published []*Tile
	for _, c := range combos {
		for _, t := range c.Tiles {
			t.Location = LocationYards
			published = append(published, t)
		}
	}
	p.Hand = RemoveTiles(p.Hand, published)
	p.Yard = append(p.Yard, combos...)
	if p.Status == StatusHandOnly {
		p.Status = StatusJustPublished
	}
}

// SetDiscard records the tile to discard; nil clears the choice.
func (p *Player) SetDiscard(t *Tile) {
	p.discard = t
}

// PendingDiscard returns the recorded discard choice, or nil.
func (p *Player) PendingDiscard() *Tile {
	return p.discard
}

// Discard removes the recorded discard from the hand and returns it. ok is
// false when no tile was chosen, which happens when the whole hand went into
// combinations.
func (p *Player) Discard() (tile *Tile, ok bool) {
	tile = p.discard
	if tile == nil {
		return nil, false
	}
	p.discard = nil
	p.Hand = RemoveTiles(p.Hand, []*Tile{tile})
	tile.Location = LocationPool
	return tile, true
}

// EndTurn promotes a first-time publisher to StatusPublished.
func (p *Player) EndTurn() {
	if p.Status == StatusJustPublished {
		p.Status = StatusPublished
	}
}

// RemoveTiles returns hand without the given physical tiles.
func RemoveTiles(hand []*Tile, remove []*Tile) []*Tile {
	if len(remove) == 0 || len(hand) == 0 {
		return hand
	}
	drop := make(map[*Tile]bool, len(remove))
	for _, t := range remove {
		drop[t] = true
	}
	updated := make([]*Tile, 0, len(hand))
	for _, t := range hand {
		if drop[t] {
			continue
		}
		updated = append(updated, t)
	}
	return updated
}
