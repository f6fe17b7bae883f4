package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// BotIdentity is the public face of a seat filled by an agent.
type BotIdentity struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarIndex int    `json:"avatar_index"`
}

var (
	botIdentities []BotIdentity
	botIDMap      map[string]bool
	loadOnce      sync.Once
	loadErr       error
)

// LoadIdentities loads the bot profiles from a JSON file. Only the first call
// reads the file.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}
		var identities []BotIdentity
		if err := json.Unmarshal(data, &identities); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}
		setIdentities(identities)
	})
	return loadErr
}

func setIdentities(identities []BotIdentity) {
	botIdentities = identities
	botIDMap = make(map[string]bool, len(identities))
	for _, identity := range identities {
		if identity.UserID != "" {
			botIDMap[identity.UserID] = true
		}
	}
}

// GetBotIdentity returns an identity for a bot by index (mod pool size).
// Without loaded profiles a generated identity is returned.
func GetBotIdentity(index int) BotIdentity {
	if len(botIdentities) == 0 {
		return BotIdentity{
			UserID:      fmt.Sprintf("bot-%d", index),
			Username:    fmt.Sprintf("bot%d", index),
			DisplayName: fmt.Sprintf("AI Player %d", index),
		}
	}
	identity := botIdentities[index%len(botIdentities)]
	if n := index / len(botIdentities); n > 0 {
		identity.UserID = fmt.Sprintf("%s-%d", identity.UserID, n)
	}
	return identity
}

// IsBot reports whether the given user ID belongs to the loaded bot pool.
func IsBot(userID string) bool {
	if botIDMap == nil {
		return false
	}
	return botIDMap[userID]
}
