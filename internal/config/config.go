package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"rummy/internal/domain"
)

// ErrInvalidConfig is returned when a loaded configuration cannot run a game.
var ErrInvalidConfig = errors.New("invalid game config")

// EnvPrefix prefixes environment overrides, e.g. RUMMY_PUBLISH_THRESHOLD.
const EnvPrefix = "RUMMY"

// GameConfig holds the table settings shared by every game a process runs.
type GameConfig struct {
	// PublishThreshold is the minimum value of a player's first publish.
	PublishThreshold int `mapstructure:"publish_threshold"`
	Players          int `mapstructure:"players"`
	HandSize         int `mapstructure:"hand_size"`
	// MaxTurns caps a game; it ends with no winner once reached.
	MaxTurns int    `mapstructure:"max_turns"`
	Seed     int64  `mapstructure:"seed"` // 0 seeds from the clock
	LogLevel string `mapstructure:"log_level"`
	// BotIdentities optionally points at a JSON file of bot profiles.
	BotIdentities string `mapstructure:"bot_identities"`
	// PresetHands deals fixed tiles, one list of tile codes per seat.
	PresetHands [][]string `mapstructure:"preset_hands"`
	// TickRate is the Nakama match tick rate; one turn is played per tick.
	TickRate int `mapstructure:"tick_rate"`
}

// Default returns the configuration used when no file is given.
func Default() GameConfig {
	return GameConfig{
		PublishThreshold: 30,
		Players:          4,
		HandSize:         14,
		MaxTurns:         500,
		LogLevel:         "info",
		TickRate:         2,
	}
}

// Validate checks that the configuration describes a playable game.
func (c GameConfig) Validate() error {
	if c.Players < 2 || c.Players > domain.MaxSeats {
		return fmt.Errorf("%w: players must be between 2 and %d, got %d", ErrInvalidConfig, domain.MaxSeats, c.Players)
	}
	if maxHand := domain.PoolSize/c.Players - 1; c.HandSize < 1 || c.HandSize > maxHand {
		return fmt.Errorf("%w: hand_size must be between 1 and %d for %d players, got %d", ErrInvalidConfig, maxHand, c.Players, c.HandSize)
	}
	if c.PublishThreshold < 0 {
		return fmt.Errorf("%w: publish_threshold must not be negative", ErrInvalidConfig)
	}
	if c.MaxTurns <= 0 {
		return fmt.Errorf("%w: max_turns must be positive", ErrInvalidConfig)
	}
	if c.TickRate < 1 || c.TickRate > 60 {
		return fmt.Errorf("%w: tick_rate must be between 1 and 60", ErrInvalidConfig)
	}
	if len(c.PresetHands) > c.Players {
		return fmt.Errorf("%w: %d preset hands for %d players", ErrInvalidConfig, len(c.PresetHands), c.Players)
	}
	for seat, hand := range c.PresetHands {
		if len(hand) > c.HandSize {
			return fmt.Errorf("%w: preset hand %d has %d tiles, hand_size is %d", ErrInvalidConfig, seat, len(hand), c.HandSize)
		}
		for _, code := range hand {
			if _, err := domain.ParseDescriptor(code); err != nil {
				return fmt.Errorf("%w: preset hand %d: %v", ErrInvalidConfig, seat, err)
			}
		}
	}
	return nil
}

// Load reads a YAML or JSON file (chosen by extension) on top of the defaults
// and applies RUMMY_* environment overrides. An empty path skips the file.
func Load(path string) (GameConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return GameConfig{}, fmt.Errorf("failed to read game config: %w", err)
		}
	}

	var c GameConfig
	if err := v.Unmarshal(&c); err != nil {
		return GameConfig{}, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return GameConfig{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("publish_threshold", d.PublishThreshold)
	v.SetDefault("players", d.Players)
	v.SetDefault("hand_size", d.HandSize)
	v.SetDefault("max_turns", d.MaxTurns)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("bot_identities", d.BotIdentities)
	v.SetDefault("tick_rate", d.TickRate)
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the process-wide game configuration from the given
// path. Only the first call has any effect.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		c, err := Load(path)
		if err != nil {
			loadErr = err
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, or the defaults when
// none was loaded.
func GetGameConfig() GameConfig {
	if cfg == nil {
		return Default()
	}
	return *cfg
}
