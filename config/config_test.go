package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validCommunitiesYAML = `
bot_log_channel_id: "111"
communities:
  ppy:
    name: "Pixel Party"
    guild_id: "900"
    verify_channel_id: "901"
    log_channel_id: "902"
    essentials_channel_id: "903"
    queue_channel_id: "904"
    unverified_role_id: "910"
    access_role_ids: ["911", "912"]
    staff_role_id: "913"
    queue_ping_role_id: "914"
    default_requirements:
      least_discord_account_age: "2w"
      least_hypixel_account_age: "1m"
      least_hypixel_level: 3
    win_roles:
      - { threshold: 500, role_id: "920" }
      - { threshold: 100, role_id: "921" }
  arcade:
    name: "Arcade"
    guild_id: "730"
    verify_channel_id: "731"
    log_channel_id: "732"
    unverified_role_id: "740"
    access_role_ids: ["741"]
    staff_role_id: "742"
    default_requirements:
      least_discord_account_age: "2w"
      least_hypixel_account_age: "1m"
      least_hypixel_level: 3
`

func writeCommunitiesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "communities.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCommunities_Success(t *testing.T) {
	path := writeCommunitiesFile(t, validCommunitiesYAML)

	c, err := LoadCommunities(path)
	require.NoError(t, err)

	assert.Equal(t, "111", c.BotLogChannelID)
	require.Len(t, c.Communities, 2)

	ppy := c.Communities["ppy"]
	assert.Equal(t, "Pixel Party", ppy.Name)
	assert.Equal(t, []string{"911", "912"}, ppy.AccessRoleIDs)
	require.Len(t, ppy.WinRoles, 2)
	assert.Equal(t, 500, ppy.WinRoles[0].Threshold)

	arcade := c.Communities["arcade"]
	assert.Empty(t, arcade.WinRoles)
	assert.Empty(t, arcade.QueueChannelID)
}

func TestLoadCommunities_MissingFile(t *testing.T) {
	_, err := LoadCommunities(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadCommunities_MalformedYAML(t *testing.T) {
	path := writeCommunitiesFile(t, "communities: [")
	_, err := LoadCommunities(path)
	assert.Error(t, err)
}

func TestLoadCommunities_ValidationFailures(t *testing.T) {
	base := `
communities:
  ppy:
    guild_id: "900"
    verify_channel_id: "901"
    log_channel_id: "902"
    access_role_ids: ["911"]
    default_requirements:
      least_discord_account_age: "2w"
      least_hypixel_account_age: "1m"
      least_hypixel_level: 3
`

	cases := []struct {
		name    string
		mutate  string
		wantErr string
	}{
		{
			name:    "no communities",
			mutate:  "communities: {}\n",
			wantErr: "no communities defined",
		},
		{
			name: "missing guild id",
			mutate: `
communities:
  ppy:
    verify_channel_id: "901"
    log_channel_id: "902"
    access_role_ids: ["911"]
    default_requirements: { least_discord_account_age: "2w", least_hypixel_account_age: "1m", least_hypixel_level: 3 }
`,
			wantErr: "missing guild_id",
		},
		{
			name: "non-decreasing win roles",
			mutate: base + `    win_roles:
      - { threshold: 100, role_id: "920" }
      - { threshold: 500, role_id: "921" }
`,
			wantErr: "win_roles",
		},
		{
			name: "bad default duration",
			mutate: `
communities:
  ppy:
    guild_id: "900"
    verify_channel_id: "901"
    log_channel_id: "902"
    access_role_ids: ["911"]
    default_requirements: { least_discord_account_age: "soon", least_hypixel_account_age: "1m", least_hypixel_level: 3 }
`,
			wantErr: "default requirements",
		},
		{
			name: "level below one",
			mutate: `
communities:
  ppy:
    guild_id: "900"
    verify_channel_id: "901"
    log_channel_id: "902"
    access_role_ids: ["911"]
    default_requirements: { least_discord_account_age: "2w", least_hypixel_account_age: "1m", least_hypixel_level: 0 }
`,
			wantErr: "least_hypixel_level",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeCommunitiesFile(t, tc.mutate)
			_, err := LoadCommunities(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestByGuild(t *testing.T) {
	path := writeCommunitiesFile(t, validCommunitiesYAML)
	c, err := LoadCommunities(path)
	require.NoError(t, err)

	key, community, ok := c.ByGuild("730")
	require.True(t, ok)
	assert.Equal(t, "arcade", key)
	assert.Equal(t, "Arcade", community.Name)

	_, _, ok = c.ByGuild("999")
	assert.False(t, ok)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token-123")
	t.Setenv("HYPIXEL_API_KEY", "key-456")

	env, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "token-123", env.DiscordToken)
	assert.Equal(t, "key-456", env.HypixelAPIKey)
	assert.Equal(t, "localhost:6379", env.RedisAddr)
	assert.Equal(t, "127.0.0.1:8095", env.StatusAddr)
	assert.Equal(t, "communities.yaml", env.CommunitiesFile)
}

func TestLoadEnv_MissingToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("HYPIXEL_API_KEY", "key-456")
	os.Unsetenv("DISCORD_TOKEN")

	_, err := LoadEnv()
	assert.Error(t, err)
}
