package session

import (
	"github.com/bwmarrin/discordgo"
)

// New creates a Discord session with the intents the bot needs: guilds and
// members for role management, messages for panel cleanup.
func New(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages
	return s, nil
}
