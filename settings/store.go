// Package settings persists per-community verification requirements in
// redis, one JSON document per community.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Dopachen/wisk-bot/verify"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "wisk-bot:settings:"

// The fixed set of recognized setting keys. An update naming anything else
// is rejected, and every key exists after any update.
const (
	KeyLeastDiscordAccountAge = "least_discord_account_age"
	KeyLeastHypixelAccountAge = "least_hypixel_account_age"
	KeyLeastHypixelLevel      = "least_hypixel_level"
)

var ErrUnknownKey = errors.New("settings: unknown setting key")

// Settings is one community's document. Field tags match the setting keys
// exposed to admins.
type Settings struct {
	LeastDiscordAccountAge string `json:"least_discord_account_age"`
	LeastHypixelAccountAge string `json:"least_hypixel_account_age"`
	LeastHypixelLevel      int    `json:"least_hypixel_level"`
}

// Requirements converts a document into the evaluator's input form.
func (s Settings) Requirements() verify.Requirements {
	return verify.Requirements{
		MinDiscordAge: s.LeastDiscordAccountAge,
		MinHypixelAge: s.LeastHypixelAccountAge,
		MinLevel:      s.LeastHypixelLevel,
	}
}

// Pairs returns the document as ordered key/value pairs for display.
func (s Settings) Pairs() [][2]string {
	return [][2]string{
		{KeyLeastDiscordAccountAge, s.LeastDiscordAccountAge},
		{KeyLeastHypixelAccountAge, s.LeastHypixelAccountAge},
		{KeyLeastHypixelLevel, strconv.Itoa(s.LeastHypixelLevel)},
	}
}

// ValidateValue checks a proposed value for a key at the admin command
// boundary, so malformed settings never reach the evaluation pipeline.
func ValidateValue(key, value string) error {
	switch key {
	case KeyLeastDiscordAccountAge, KeyLeastHypixelAccountAge:
		if !verify.ValidDurationString(value) {
			return fmt.Errorf("invalid time format %q: use formats like 30d, 2w, 1m or 1y", value)
		}
		return nil
	case KeyLeastHypixelLevel:
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("value must be a number for %s", key)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// redisClient is the slice of the redis API the store uses.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Store reads and writes community documents. Defaults seed a community's
// document the first time it is read.
type Store struct {
	rdb      redisClient
	defaults map[string]Settings
}

func NewStore(rdb redisClient, defaults map[string]Settings) *Store {
	return &Store{rdb: rdb, defaults: defaults}
}

func communityKey(community string) string {
	return keyPrefix + community
}

// Get returns the community's current settings, seeding and persisting the
// configured defaults when no document exists yet.
func (s *Store) Get(ctx context.Context, community string) (Settings, error) {
	data, err := s.rdb.Get(ctx, communityKey(community)).Result()
	if err == redis.Nil {
		defaults, ok := s.defaults[community]
		if !ok {
			return Settings{}, fmt.Errorf("settings: no defaults for community %s", community)
		}
		if err := s.put(ctx, community, defaults); err != nil {
			return Settings{}, err
		}
		return defaults, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("settings: reading %s: %w", community, err)
	}

	var doc Settings
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return Settings{}, fmt.Errorf("settings: decoding %s: %w", community, err)
	}
	return doc, nil
}

// Update overwrites one key in place. Unknown keys and malformed values are
// rejected before anything is written.
func (s *Store) Update(ctx context.Context, community, key, value string) (Settings, error) {
	if err := ValidateValue(key, value); err != nil {
		return Settings{}, err
	}

	doc, err := s.Get(ctx, community)
	if err != nil {
		return Settings{}, err
	}

	switch key {
	case KeyLeastDiscordAccountAge:
		doc.LeastDiscordAccountAge = value
	case KeyLeastHypixelAccountAge:
		doc.LeastHypixelAccountAge = value
	case KeyLeastHypixelLevel:
		doc.LeastHypixelLevel, _ = strconv.Atoi(value)
	}

	if err := s.put(ctx, community, doc); err != nil {
		return Settings{}, err
	}
	return doc, nil
}

func (s *Store) put(ctx context.Context, community string, doc Settings) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("settings: encoding %s: %w", community, err)
	}
	if err := s.rdb.Set(ctx, communityKey(community), data, 0).Err(); err != nil {
		return fmt.Errorf("settings: writing %s: %w", community, err)
	}
	return nil
}

// Requirements implements verify.RequirementsSource.
func (s *Store) Requirements(ctx context.Context, community string) (verify.Requirements, error) {
	doc, err := s.Get(ctx, community)
	if err != nil {
		return verify.Requirements{}, err
	}
	return doc.Requirements(), nil
}
