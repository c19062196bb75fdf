package events

import (
	"fmt"

	"github.com/Dopachen/wisk-bot/config"
	logger "github.com/Dopachen/wisk-bot/log"
	"github.com/bwmarrin/discordgo"
)

// postPanels replaces the verify and essentials panels in every community.
// The bot's previous panel message is deleted first so each channel keeps a
// single live panel.
func (h *Handler) postPanels(s *discordgo.Session) {
	for key, community := range h.Communities.Communities {
		h.postVerifyPanel(s, key, community)
		if community.EssentialsChannelID != "" {
			h.postEssentialsPanel(s, key, community)
		}
	}
}

func deletePreviousPanel(s *discordgo.Session, channelID string) {
	messages, err := s.ChannelMessages(channelID, 1, "", "", "")
	if err != nil || len(messages) == 0 {
		return
	}
	if messages[0].Author != nil && messages[0].Author.ID == s.State.User.ID {
		_ = s.ChannelMessageDelete(channelID, messages[0].ID)
	}
}

func (h *Handler) postVerifyPanel(s *discordgo.Session, key string, community config.Community) {
	deletePreviousPanel(s, community.VerifyChannelID)

	description := "To gain access to this server, you need to verify that you own a Minecraft account.\n\n" +
		"➤ **What do I need to do?**\n" +
		"Make sure you've linked your **Discord account** to your Minecraft account **on Hypixel**. To do this:\n" +
		"• Join Hypixel (`mc.hypixel.net`)\n" +
		"• Right-click the **'My Profile'** head (2nd slot in your hotbar)\n" +
		"• Go to **'Social Media'**, and link your Discord there\n\n"
	if community.GuideChannelID != "" {
		description += fmt.Sprintf("➤ **Not sure how?**\nCheck out <#%s> for a step-by-step guide.\n\n", community.GuideChannelID)
	}
	description += "➤ **How does this system work?**\n" +
		"This verification system uses the **official Hypixel API** to check if your Minecraft account is linked to your Discord. You only enter your **Minecraft username** — nothing else.\n\n" +
		"We never ask for passwords or tokens. Everything is handled securely through Hypixel."

	_, err := s.ChannelMessageSendComplex(community.VerifyChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       "Minecraft Account Verification",
			Description: description,
			Color:       colorGreen,
			Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Verification System • %s", community.Name)},
		}},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Verify",
					Style:    discordgo.SuccessButton,
					CustomID: "verify:open:" + key,
				},
			}},
		},
	})
	if err != nil {
		logger.Error(fmt.Sprintf("posting verify panel for community %s", key), err)
	}
}

func (h *Handler) postEssentialsPanel(s *discordgo.Session, key string, community config.Community) {
	deletePreviousPanel(s, community.EssentialsChannelID)

	_, err := s.ChannelMessageSendComplex(community.EssentialsChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{
			Title: "Pixel Party Essentials",
			Description: "Use the buttons below to manage your roles and name.\n\n" +
				"➤ **Wins**: Grants you roles based on your Pixel Party wins (based on your server nickname).\n" +
				"➤ **Nickname**: If you recently changed your in-game name, click below to update your server nickname.",
			Color:  colorGold,
			Footer: &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Essentials System • %s", community.Name)},
		}},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Wins",
					Style:    discordgo.PrimaryButton,
					CustomID: "essentials:wins:" + key,
				},
				discordgo.Button{
					Label:    "Nickname",
					Style:    discordgo.SuccessButton,
					CustomID: "essentials:nick:" + key,
				},
			}},
		},
	})
	if err != nil {
		logger.Error(fmt.Sprintf("posting essentials panel for community %s", key), err)
	}
}
