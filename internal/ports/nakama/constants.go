package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a table to watch.
	RpcQuickMatch = "quick_match"

	// MatchNameRummy is the authoritative match handler name registered with Nakama.
	MatchNameRummy = "rummy_match"

	// GameLabel is the label.game value of every rummy match.
	GameLabel = "rummy"

	// MaxSpectators bounds the presences one table accepts.
	MaxSpectators = 16

	// GameConfigPath is read once per process when the first match starts.
	GameConfigPath = "data/game_config.yaml"

	// BotIdentitiesPath holds the profiles used to name the seated agents.
	BotIdentitiesPath = "data/bot_identities.json"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame       int64 = 1
	OpRequestSnapshot int64 = 2

	// Server -> Client events
	OpMatchState    int64 = 100
	OpGameStarted   int64 = 103
	OpHandDealt     int64 = 104 // send privately
	OpTileDrawn     int64 = 105 // send privately
	OpPublished     int64 = 106
	OpTileDiscarded int64 = 107
	OpTurnEnded     int64 = 108
	OpGameEnded     int64 = 109
	OpGameError     int64 = 110
)
