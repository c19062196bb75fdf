package events

import (
	"fmt"

	logger "github.com/Dopachen/wisk-bot/log"
	"github.com/Dopachen/wisk-bot/settings"
	"github.com/bwmarrin/discordgo"
)

// showCurrentSettings is the pseudo-key admins pick to view instead of set.
const showCurrentSettings = "show_current_settings"

// registerCommands creates the guild-scoped slash commands. The stats
// commands only exist in communities that track Pixel Party wins.
func (h *Handler) registerCommands(s *discordgo.Session, appID string) {
	configCommand := &discordgo.ApplicationCommand{
		Name:        "verification_config",
		Description: "Set or view verification settings for this server",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "setting",
				Description: "The setting you want to change, or show_current_settings",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: settings.KeyLeastDiscordAccountAge, Value: settings.KeyLeastDiscordAccountAge},
					{Name: settings.KeyLeastHypixelAccountAge, Value: settings.KeyLeastHypixelAccountAge},
					{Name: settings.KeyLeastHypixelLevel, Value: settings.KeyLeastHypixelLevel},
					{Name: showCurrentSettings, Value: showCurrentSettings},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "value",
				Description: "The new value to apply (not needed if viewing)",
				Required:    false,
			},
		},
	}

	statsCommand := &discordgo.ApplicationCommand{
		Name:        "stats",
		Description: "Check the Pixel Party statistics of a player.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "username",
				Description: "Minecraft username",
				Required:    true,
			},
		},
	}

	compareCommand := &discordgo.ApplicationCommand{
		Name:        "compare",
		Description: "Compare two players' Pixel Party stats side-by-side.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "player1",
				Description: "Minecraft username of the first player",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "player2",
				Description: "Minecraft username of the second player",
				Required:    true,
			},
		},
	}

	for key, community := range h.Communities.Communities {
		commands := []*discordgo.ApplicationCommand{configCommand}
		if len(community.WinRoles) > 0 {
			commands = append(commands, statsCommand, compareCommand)
		}
		for _, cmd := range commands {
			if _, err := s.ApplicationCommandCreate(appID, community.GuildID, cmd); err != nil {
				logger.Error(fmt.Sprintf("registering /%s for community %s", cmd.Name, key), err)
			}
		}
	}
}

func optionValue(data discordgo.ApplicationCommandInteractionData, name string) string {
	for _, opt := range data.Options {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}
