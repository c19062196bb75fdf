// Package config loads process configuration from the environment and the
// per-community definitions from communities.yaml.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Env holds process-level configuration. Secrets come from the environment
// (a .env file is honored when present); everything structural lives in the
// communities file.
type Env struct {
	DiscordToken  string `envconfig:"DISCORD_TOKEN" required:"true"`
	HypixelAPIKey string `envconfig:"HYPIXEL_API_KEY" required:"true"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	StatusAddr      string `envconfig:"STATUS_ADDR" default:"127.0.0.1:8095"`
	CommunitiesFile string `envconfig:"COMMUNITIES_FILE" default:"communities.yaml"`
}

// LoadEnv reads a .env file if one exists, then the environment.
func LoadEnv() (*Env, error) {
	_ = godotenv.Load()

	var e Env
	if err := envconfig.Process("", &e); err != nil {
		return nil, fmt.Errorf("config: processing environment: %w", err)
	}
	return &e, nil
}
