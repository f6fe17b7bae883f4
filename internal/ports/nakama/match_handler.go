package nakama

import (
	"context"
	"database/sql"
	"math/rand"
	"strconv"

	"github.com/heroiclabs/nakama-common/runtime"

	"rummy/internal/app"
	"rummy/internal/bot"
	"rummy/internal/config"
	"rummy/internal/domain"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
// Every seat is played by an agent; presences are spectators and the owner
// (the longest-connected spectator) may start a game.
type MatchState struct {
	Seats       []string                    `json:"seats"`         // bot user IDs in seat order
	OwnerUserID string                      `json:"owner_user_id"` // spectator allowed to start games
	Tick        int64                       `json:"tick"`
	TurnTicks   int64                       `json:"turn_ticks"` // ticks between two turns
	LastTurn    int64                       `json:"last_turn"`  // tick of the last played turn
	GamesPlayed int                         `json:"games_played"`
	Presences   map[string]runtime.Presence `json:"-"` // Map UserId -> Presence for targeted messaging
	App         *app.Service                `json:"-"`
	Table       *app.Table                  `json:"-"` // nil until the first game starts
	Config      config.GameConfig           `json:"-"`

	joinOrder []string
}

// Phase returns the label phase of the match.
func (ms *MatchState) Phase() domain.Phase {
	if ms.Table == nil || ms.Table.Game.Phase != domain.PhasePlaying {
		return domain.PhaseLobby
	}
	return domain.PhasePlaying
}

func newMatchHandler() *matchHandler {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := bot.LoadIdentities(BotIdentitiesPath); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}
	if err := config.LoadGameConfig(GameConfigPath); err != nil {
		logger.Warn("MatchInit: Could not load game config, using defaults: %v", err)
	}
	cfg := config.GetGameConfig()
	applyEnv(ctx, &cfg, logger)

	state := newMatchState(cfg)

	label, err := encodeLabel(state.label())
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}
	return state, cfg.TickRate, label
}

func newMatchState(cfg config.GameConfig) *MatchState {
	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}
	seats := make([]string, cfg.Players)
	for i := range seats {
		seats[i] = bot.GetBotIdentity(i).UserID
	}
	return &MatchState{
		Seats:     seats,
		TurnTicks: 1,
		Presences: make(map[string]runtime.Presence),
		App:       app.NewService(rng, cfg),
		Config:    cfg,
	}
}

// applyEnv lets the Nakama runtime environment override per-table settings.
func applyEnv(ctx context.Context, cfg *config.GameConfig, logger runtime.Logger) {
	env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if !ok {
		return
	}
	if val, ok := env["rummy_publish_threshold"]; ok {
		if i, err := strconv.Atoi(val); err == nil && i >= 0 {
			cfg.PublishThreshold = i
		} else {
			logger.Warn("MatchInit: Ignoring rummy_publish_threshold=%q", val)
		}
	}
	if val, ok := env["rummy_players"]; ok {
		if i, err := strconv.Atoi(val); err == nil && i >= app.MinPlayersToStartGame && i <= app.MaxPlayersToStartGame {
			cfg.Players = i
		} else {
			logger.Warn("MatchInit: Ignoring rummy_players=%q", val)
		}
	}
}

func (ms *MatchState) label() MatchLabel {
	phase := ms.Phase()
	return MatchLabel{
		Open:       phase == domain.PhaseLobby && len(ms.Presences) < MaxSpectators,
		Game:       GameLabel,
		Phase:      string(phase),
		Spectators: len(ms.Presences),
	}
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}
	if len(matchState.Presences) >= MaxSpectators {
		return state, false, "Match full"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		if _, seen := matchState.Presences[p.GetUserId()]; !seen {
			matchState.joinOrder = append(matchState.joinOrder, p.GetUserId())
		}
		matchState.Presences[p.GetUserId()] = p
	}
	if matchState.OwnerUserID == "" && len(matchState.joinOrder) > 0 {
		matchState.OwnerUserID = matchState.joinOrder[0]
		logger.Debug("MatchJoin: Owner set to %s.", matchState.OwnerUserID)
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger, nil)
	return matchState
}

// MatchLeave is called when one or more spectators leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
		matchState.joinOrder = removeString(matchState.joinOrder, p.GetUserId())
		logger.Debug("MatchLeave: User %s left.", p.GetUserId())
	}

	if _, ok := matchState.Presences[matchState.OwnerUserID]; !ok {
		matchState.OwnerUserID = ""
		if len(matchState.joinOrder) > 0 {
			matchState.OwnerUserID = matchState.joinOrder[0]
			logger.Debug("MatchLeave: Owner set to %s.", matchState.OwnerUserID)
		}
	}

	if len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: Terminating match with no spectators.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(matchState, dispatcher, logger, msg)
		case OpRequestSnapshot:
			if p, ok := matchState.Presences[msg.GetUserId()]; ok {
				mh.broadcastMatchState(matchState, dispatcher, logger, []runtime.Presence{p})
			}
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	mh.processTurn(matchState, dispatcher, logger)
	return matchState
}

// processTurn plays one turn when a game is running and the turn delay elapsed.
func (mh *matchHandler) processTurn(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Phase() != domain.PhasePlaying {
		return
	}
	if state.Tick-state.LastTurn < state.TurnTicks {
		return
	}
	state.LastTurn = state.Tick

	events, err := state.App.PlayTurn(state.Table)
	if err != nil {
		logger.Error("processTurn: Failed to play turn: %v", err)
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}

	if state.Phase() != domain.PhasePlaying {
		state.GamesPlayed++
		game := state.Table.Game
		logger.Info("processTurn: Game %s ended after %d turns (%s).", game.ID, game.Turn, game.EndReason)
		mh.updateLabel(state, dispatcher, logger)
	}
}

func (mh *matchHandler) handleStartGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	logger.Info("StartGame: Request received from %s (owner=%s)", senderID, state.OwnerUserID)

	if senderID != state.OwnerUserID {
		logger.Warn("StartGame: User %s tried to start game but is not owner", senderID)
		mh.sendError(state, dispatcher, logger, senderID, 403, "only the match owner can start a game")
		return
	}
	if state.Phase() == domain.PhasePlaying {
		logger.Warn("StartGame: Game already running.")
		mh.sendError(state, dispatcher, logger, senderID, 409, "game already running")
		return
	}

	table, events, err := state.App.StartGame(state.Seats)
	if err != nil {
		logger.Error("StartGame: Failed to start game: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, 500, err.Error())
		return
	}
	for seat, pl := range table.Game.Players {
		logger.Debug("StartGame: Seat %d (%s) dealt %v", seat, pl.ID, domain.Descriptors(pl.Hand))
	}

	state.Table = table
	state.LastTurn = state.Tick

	mh.updateLabel(state, dispatcher, logger)
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	logger.Info("StartGame: Game %s started with %d players.", table.Game.ID, len(table.Game.Players))
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, ok := eventOpCode(ev.Kind)
	if !ok {
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	// Determine recipients (default to broadcast)
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}
		// Private events for seats nobody is connected to (the agents) go nowhere.
		if len(recipients) == 0 {
			return
		}
	}

	bytes, err := encodePayload(ev.Payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}
	if err := dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true); err != nil {
		logger.Error("Failed to broadcast event %v: %v", ev.Kind, err)
	}
}

func (mh *matchHandler) snapshot(state *MatchState) MatchSnapshot {
	snap := MatchSnapshot{
		Phase:       string(state.Phase()),
		CurrentSeat: -1,
		OwnerUserID: state.OwnerUserID,
	}
	if state.Table == nil {
		for i, userID := range state.Seats {
			snap.Players = append(snap.Players, PlayerSnapshot{
				UserID:      userID,
				DisplayName: bot.GetBotIdentity(i).DisplayName,
				Seat:        i,
				Status:      domain.StatusHandOnly.String(),
				Yard:        [][]domain.Descriptor{},
			})
		}
		return snap
	}

	game := state.Table.Game
	snap.GameID = game.ID
	snap.Turn = game.Turn
	snap.PoolLeft = game.Pool.Len()
	if game.Phase == domain.PhasePlaying {
		snap.CurrentSeat = game.CurrentTurn
	}
	for _, pl := range game.Players {
		snap.Players = append(snap.Players, PlayerSnapshot{
			UserID:      pl.ID,
			DisplayName: bot.GetBotIdentity(pl.Seat).DisplayName,
			Seat:        pl.Seat,
			HandSize:    len(pl.Hand),
			Status:      pl.Status.String(),
			Yard:        yardDescriptors(pl.Yard),
		})
	}
	return snap
}

// broadcastMatchState sends the public snapshot to the given presences, or to
// everyone when presences is nil.
func (mh *matchHandler) broadcastMatchState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, presences []runtime.Presence) {
	bytes, err := encodePayload(mh.snapshot(state))
	if err != nil {
		logger.Error("Failed to marshal match state: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpMatchState, bytes, presences, nil, true); err != nil {
		logger.Error("Failed to broadcast match state: %v", err)
	}
}

// GameErrorPayload is sent privately when a request is rejected.
type GameErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// sendError sends a GameErrorPayload to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}
	bytes, err := encodePayload(GameErrorPayload{Code: code, Message: message})
	if err != nil {
		logger.Error("Failed to marshal GameErrorPayload: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("Failed to send error to %s: %v", userID, err)
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := encodeLabel(state.label())
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated (grace %ds)", graceSeconds)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
