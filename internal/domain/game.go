package domain

// Phase represents the lifecycle stage of a game.
type Phase string

const (
	// PhaseLobby is the pre-game state.
	PhaseLobby Phase = "lobby"
	// PhasePlaying is the active game state where turns are taken.
	PhasePlaying Phase = "playing"
	// PhaseEnded is the state after a game concludes.
	PhaseEnded Phase = "ended"
)

// EndReason explains why a game ended.
type EndReason string

const (
	EndReasonNone          EndReason = ""
	EndReasonVictory       EndReason = "victory"
	EndReasonPoolExhausted EndReason = "pool_exhausted"
	EndReasonTurnLimit     EndReason = "turn_limit"
)

// Game holds the authoritative state of one rummy game.
type Game struct {
	ID      string
	Phase   Phase
	Pool    *Pool
	Players []*Player // seat order

	CurrentTurn int // seat index of the player on turn
	Turn        int // completed turns
	MaxTurns    int

	WinnerSeat int // -1 while nobody has won
	EndReason  EndReason
}

// CurrentPlayer returns the player whose turn it is.
func (g *Game) CurrentPlayer() *Player {
	if g.CurrentTurn < 0 || g.CurrentTurn >= len(g.Players) {
		return nil
	}
	return g.Players[g.CurrentTurn]
}

// NextSeat returns the seat after the given one, wrapping around.
func (g *Game) NextSeat(seat int) int {
	if len(g.Players) == 0 {
		return 0
	}
	return (seat + 1) % len(g.Players)
}

// End moves the game to PhaseEnded.
func (g *Game) End(reason EndReason, winnerSeat int) {
	g.Phase = PhaseEnded
	g.EndReason = reason
	g.WinnerSeat = winnerSeat
}

// TileCount returns the number of tiles across the pool, all hands and all
// yards. It is constant for the lifetime of a game.
func (g *Game) TileCount() int {
	n := 0
	if g.Pool != nil {
		n += g.Pool.Len()
	}
	for _, p := range g.Players {
		n += len(p.Hand)
		for _, c := range p.Yard {
			n += c.Len()
		}
	}
	return n
}

// Settlement is the per-player score outcome of an ended game.
type Settlement struct {
	Scores map[string]int // player ID -> points
}

// CalculateSettlement scores an ended game. Each loser pays the value left in
// hand; the winner collects the total. Without a winner everybody pays.
func (g *Game) CalculateSettlement() Settlement {
	s := Settlement{Scores: make(map[string]int, len(g.Players))}
	pot := 0
	for _, p := range g.Players {
		if p.Seat == g.WinnerSeat {
			continue
		}
		penalty := p.HandValue()
		s.Scores[p.ID] = -penalty
		pot += penalty
	}
	if g.WinnerSeat >= 0 && g.WinnerSeat < len(g.Players) {
		s.Scores[g.Players[g.WinnerSeat].ID] = pot
	}
	return s
}
