package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"rummy/internal/bot"
	"rummy/internal/config"
	"rummy/internal/domain"
)

// Service contains rummy use-cases operating on domain state.
type Service struct {
	rng *rand.Rand
	cfg config.GameConfig
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand, cfg config.GameConfig) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng, cfg: cfg}
}

var (
	ErrNotPlaying        = errors.New("game not in playing phase")
	ErrGameEnded         = errors.New("game already ended")
	ErrTooFewPlayers     = errors.New("not enough players to start")
	ErrTooManyPlayers    = errors.New("too many players to start")
	ErrPresetUnavailable = errors.New("preset tile not available")
)

// Table is a running game together with the agents seated at it.
type Table struct {
	Game   *domain.Game
	agents []*bot.Agent
	rec    *eventRecorder
}

// Agent returns the agent playing the given seat.
func (t *Table) Agent(seat int) *bot.Agent {
	if seat < 0 || seat >= len(t.agents) {
		return nil
	}
	return t.agents[seat]
}

// StartGame deals a new game to the given players in seat order. Empty IDs
// mark empty seats and are skipped.
func (s *Service) StartGame(playerIDs []string) (*Table, []Event, error) {
	var seats []string
	for _, userID := range playerIDs {
		if userID != "" {
			seats = append(seats, userID)
		}
	}
	if len(seats) < MinPlayersToStartGame {
		return nil, nil, ErrTooFewPlayers
	}
	if len(seats) > MaxPlayersToStartGame {
		return nil, nil, ErrTooManyPlayers
	}

	game := &domain.Game{
		ID:         uuid.NewString(),
		Phase:      domain.PhasePlaying,
		Pool:       domain.NewPool(rand.New(rand.NewSource(s.rng.Int63()))),
		MaxTurns:   s.cfg.MaxTurns,
		WinnerSeat: -1,
	}
	table := &Table{Game: game, rec: &eventRecorder{game: game}}
	rules := bot.Rules{PublishThreshold: s.cfg.PublishThreshold}

	hands, err := s.deal(game.Pool, len(seats))
	if err != nil {
		return nil, nil, err
	}

	events := make([]Event, 0, len(seats)+1)
	for seat, userID := range seats {
		pl := domain.NewPlayer(userID, seat, hands[seat])
		game.Players = append(game.Players, pl)
		agentRng := rand.New(rand.NewSource(s.rng.Int63()))
		table.agents = append(table.agents, bot.NewAgent(userID, userID, rules, agentRng, table.rec))

		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{UserID: userID, Hand: domain.Descriptors(pl.Hand)},
			Recipients: []string{userID},
		})
	}

	game.CurrentTurn = 0
	events = append(events, Event{
		Kind: EventGameStarted,
		Payload: GameStartedPayload{
			GameID:          game.ID,
			Players:         seats,
			FirstTurnUserID: seats[0],
			PoolSize:        game.Pool.Len(),
		},
	})
	return table, events, nil
}

// deal takes the preset tiles first, then fills every hand from the pool.
func (s *Service) deal(pool *domain.Pool, players int) ([][]*domain.Tile, error) {
	hands := make([][]*domain.Tile, players)
	for seat := 0; seat < players && seat < len(s.cfg.PresetHands); seat++ {
		for _, code := range s.cfg.PresetHands[seat] {
			d, err := domain.ParseDescriptor(code)
			if err != nil {
				return nil, err
			}
			t, ok := pool.Take(d)
			if !ok {
				return nil, fmt.Errorf("%w: %s for seat %d", ErrPresetUnavailable, d, seat)
			}
			hands[seat] = append(hands[seat], t)
		}
	}
	for seat := range hands {
		if n := s.cfg.HandSize - len(hands[seat]); n > 0 {
			hands[seat] = append(hands[seat], pool.Deal(n)...)
		}
	}
	return hands, nil
}

// PlayTurn plays one full turn for the player on turn: draw, publish,
// discard, then victory and turn-limit checks.
func (s *Service) PlayTurn(t *Table) ([]Event, error) {
	game := t.Game
	switch game.Phase {
	case domain.PhasePlaying:
	case domain.PhaseEnded:
		return nil, ErrGameEnded
	default:
		return nil, ErrNotPlaying
	}

	pl := game.CurrentPlayer()
	agent := t.Agent(game.CurrentTurn)

	tile, ok := game.Pool.Draw()
	if !ok {
		game.End(domain.EndReasonPoolExhausted, -1)
		return append(t.rec.drain(), s.endedEvent(game)), nil
	}
	agent.Draw(pl, tile)
	agent.Play(pl)

	discarded := false
	if d, ok := pl.Discard(); ok {
		game.Pool.Return(d)
		discarded = true
		t.rec.emit(Event{
			Kind:    EventTileDiscarded,
			Payload: TileDiscardedPayload{UserID: pl.ID, Tile: d.Descriptor()},
		})
	}

	pl.EndTurn()
	game.Turn++

	if pl.Victorious() {
		game.End(domain.EndReasonVictory, pl.Seat)
	} else if game.MaxTurns > 0 && game.Turn >= game.MaxTurns {
		game.End(domain.EndReasonTurnLimit, -1)
	} else {
		game.CurrentTurn = game.NextSeat(game.CurrentTurn)
	}

	next := ""
	if game.Phase == domain.PhasePlaying {
		next = game.CurrentPlayer().ID
	}
	t.rec.emit(Event{
		Kind: EventTurnEnded,
		Payload: TurnEndedPayload{
			UserID:         pl.ID,
			Turn:           game.Turn,
			HandSize:       len(pl.Hand),
			Discarded:      discarded,
			NextTurnUserID: next,
		},
	})

	events := t.rec.drain()
	if game.Phase == domain.PhaseEnded {
		events = append(events, s.endedEvent(game))
	}
	return events, nil
}

// Run plays turns until the game ends or ctx is done, handing each turn's
// events to emit.
func (s *Service) Run(ctx context.Context, t *Table, emit func([]Event)) error {
	for t.Game.Phase == domain.PhasePlaying {
		if err := ctx.Err(); err != nil {
			return err
		}
		events, err := s.PlayTurn(t)
		if err != nil {
			return err
		}
		if emit != nil {
			emit(events)
		}
	}
	return nil
}

func (s *Service) endedEvent(game *domain.Game) Event {
	winner := ""
	if game.WinnerSeat >= 0 {
		winner = game.Players[game.WinnerSeat].ID
	}
	return Event{
		Kind: EventGameEnded,
		Payload: GameEndedPayload{
			GameID:       game.ID,
			Reason:       game.EndReason,
			WinnerUserID: winner,
			Turns:        game.Turn,
			Scores:       game.CalculateSettlement().Scores,
		},
	}
}
