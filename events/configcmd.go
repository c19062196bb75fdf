package events

import (
	"context"
	"fmt"
	"strings"

	logger "github.com/Dopachen/wisk-bot/log"
	"github.com/bwmarrin/discordgo"
)

// handleConfig serves the staff-gated settings command. Format errors are
// rejected here, at the command boundary, so the evaluation pipeline never
// sees a malformed setting.
func (h *Handler) handleConfig(s *discordgo.Session, i *discordgo.InteractionCreate) {
	communityKey, community, ok := h.Communities.ByGuild(i.GuildID)
	if !ok || i.Member == nil {
		return
	}

	if !hasRole(i.Member, community.StaffRoleID) {
		respondEphemeralText(s, i, "You don't have permission to execute this command.")
		return
	}

	data := i.ApplicationCommandData()
	setting := optionValue(data, "setting")
	value := optionValue(data, "value")
	ctx := context.Background()

	if setting == showCurrentSettings {
		doc, err := h.Settings.Get(ctx, communityKey)
		if err != nil {
			logger.Error(fmt.Sprintf("loading settings for community %s", communityKey), err)
			respondEphemeralText(s, i, fmt.Sprintf("Failed to load settings: %v", err))
			return
		}
		var lines []string
		for _, pair := range doc.Pairs() {
			lines = append(lines, fmt.Sprintf("**%s**: %s", pair[0], pair[1]))
		}
		respondEphemeralText(s, i, fmt.Sprintf("**Current %s Verification Settings:**\n%s", community.Name, strings.Join(lines, "\n")))
		return
	}

	if value == "" {
		respondEphemeralText(s, i, "You need to provide a value for that setting.")
		return
	}

	if _, err := h.Settings.Update(ctx, communityKey, setting, value); err != nil {
		respondEphemeralText(s, i, err.Error())
		return
	}
	respondEphemeralText(s, i, fmt.Sprintf("Updated `%s` to `%s` for %s.", setting, value, community.Name))
}

func hasRole(member *discordgo.Member, roleID string) bool {
	for _, id := range member.Roles {
		if id == roleID {
			return true
		}
	}
	return false
}
