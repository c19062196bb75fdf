package config

import (
	"fmt"
	"os"

	"github.com/Dopachen/wisk-bot/roles"
	"github.com/Dopachen/wisk-bot/verify"
	"gopkg.in/yaml.v3"
)

// Community describes one Discord server the bot manages. The two deployed
// communities share this structure but keep independent instances of every
// table and threshold.
type Community struct {
	Name    string `yaml:"name"`
	GuildID string `yaml:"guild_id"`

	VerifyChannelID     string `yaml:"verify_channel_id"`
	LogChannelID        string `yaml:"log_channel_id"`
	EssentialsChannelID string `yaml:"essentials_channel_id"`
	QueueChannelID      string `yaml:"queue_channel_id"`
	GuideChannelID      string `yaml:"guide_channel_id"`

	UnverifiedRoleID string   `yaml:"unverified_role_id"`
	AccessRoleIDs    []string `yaml:"access_role_ids"`
	StaffRoleID      string   `yaml:"staff_role_id"`
	QueuePingRoleID  string   `yaml:"queue_ping_role_id"`

	// WinRoles is empty for communities without win-tier roles.
	WinRoles roles.Table `yaml:"win_roles"`

	DefaultRequirements Requirements `yaml:"default_requirements"`
}

// Requirements mirrors the settings-store document for default seeding.
type Requirements struct {
	LeastDiscordAccountAge string `yaml:"least_discord_account_age"`
	LeastHypixelAccountAge string `yaml:"least_hypixel_account_age"`
	LeastHypixelLevel      int    `yaml:"least_hypixel_level"`
}

// Communities is the parsed communities.yaml.
type Communities struct {
	BotLogChannelID string               `yaml:"bot_log_channel_id"`
	Communities     map[string]Community `yaml:"communities"`
}

// ByGuild finds the community key and definition for a guild ID.
func (c *Communities) ByGuild(guildID string) (string, Community, bool) {
	for key, community := range c.Communities {
		if community.GuildID == guildID {
			return key, community, true
		}
	}
	return "", Community{}, false
}

// LoadCommunities reads and validates the communities file. Bad threshold
// tables and malformed default durations are startup failures, never
// runtime ones.
func LoadCommunities(path string) (*Communities, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var c Communities
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &c, nil
}

// Validate checks every community definition.
func (c *Communities) Validate() error {
	if len(c.Communities) == 0 {
		return fmt.Errorf("no communities defined")
	}
	for key, community := range c.Communities {
		if community.GuildID == "" {
			return fmt.Errorf("community %s: missing guild_id", key)
		}
		if community.VerifyChannelID == "" {
			return fmt.Errorf("community %s: missing verify_channel_id", key)
		}
		if community.LogChannelID == "" {
			return fmt.Errorf("community %s: missing log_channel_id", key)
		}
		if len(community.AccessRoleIDs) == 0 {
			return fmt.Errorf("community %s: missing access_role_ids", key)
		}
		if err := community.WinRoles.Validate(); err != nil {
			return fmt.Errorf("community %s: win_roles: %w", key, err)
		}

		defaults := community.DefaultRequirements
		for _, dur := range []string{defaults.LeastDiscordAccountAge, defaults.LeastHypixelAccountAge} {
			if _, err := verify.ParseDuration(dur); err != nil {
				return fmt.Errorf("community %s: default requirements: %w", key, err)
			}
		}
		if defaults.LeastHypixelLevel < 1 {
			return fmt.Errorf("community %s: least_hypixel_level must be at least 1", key)
		}
	}
	return nil
}
