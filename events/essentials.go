package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dopachen/wisk-bot/audit"
	"github.com/Dopachen/wisk-bot/hypixel"
	logger "github.com/Dopachen/wisk-bot/log"
	"github.com/Dopachen/wisk-bot/mojang"
	"github.com/bwmarrin/discordgo"
)

// handleWins re-runs the win-tier reconciliation for the member's stored
// display name (server nickname, falling back to the account name).
func (h *Handler) handleWins(s *discordgo.Session, i *discordgo.InteractionCreate, communityKey string) {
	community, ok := h.Communities.Communities[communityKey]
	if !ok || i.Member == nil {
		return
	}
	if !deferEphemeral(s, i) {
		return
	}
	sink := h.audits[communityKey]

	ign := i.Member.Nick
	if ign == "" {
		ign = i.Member.User.Username
	}

	ctx := context.Background()
	profile, err := h.Mojang.Resolve(ctx, ign)
	if err != nil {
		followupEmbed(s, i, failureEmbed(
			"❌ Invalid IGN",
			fmt.Sprintf("`%s` is not a valid Minecraft username.", ign),
			"Win Role Assignment Failed",
		))
		sink.Post(audit.Record{
			Title:       "❌ Win Role Assignment Failed",
			Description: "Could not find valid Minecraft account for nickname.",
			Color:       audit.ColorRed,
			Fields: []audit.Field{
				{Name: "User", Value: i.Member.User.Mention(), Inline: true},
				{Name: "Submitted Nickname", Value: fmt.Sprintf("`%s`", ign), Inline: true},
			},
		})
		return
	}

	player, err := h.Hypixel.Player(ctx, profile.UUID)
	if err != nil {
		if errors.Is(err, hypixel.ErrRateLimited) {
			e := failureEmbed(
				"⚠️ Rate Limited",
				"The Hypixel API is currently rate-limiting me. Try again in a bit.",
				"Win Role Assignment Failed",
			)
			e.Color = colorOrange
			followupEmbed(s, i, e)
			sink.Post(audit.Record{
				Title:       "⚠️ API Rate Limit Hit",
				Description: "Could not fetch wins due to Hypixel API rate limiting.",
				Color:       audit.ColorOrange,
				Fields: []audit.Field{
					{Name: "User", Value: i.Member.User.Mention(), Inline: true},
					{Name: "IGN", Value: fmt.Sprintf("`%s`", ign), Inline: true},
				},
			})
			return
		}
		logger.Error(fmt.Sprintf("fetching player document for %s", profile.UUID), err)
		followupEmbed(s, i, failureEmbed(
			"Hypixel Lookup Failed",
			"Couldn't fetch your stats from Hypixel. Try again in a bit.",
			"Win Role Assignment Failed",
		))
		return
	}

	stats, _ := player.PixelParty()
	result := h.Granter.GrantTier(i.GuildID, i.Member.User.ID, stats.Wins, community.WinRoles)
	h.Metrics.TierGrants.Add(uint64(result.Granted))

	if result.Granted > 0 {
		followupEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "✅ Roles Granted",
			Description: fmt.Sprintf("%d roles assigned for `%d` wins.", result.Granted, stats.Wins),
			Color:       colorGreen,
		})
		sink.Post(audit.Record{
			Title:       "✅ Win Roles Assigned",
			Description: "User received win-based roles.",
			Color:       audit.ColorGreen,
			Fields: []audit.Field{
				{Name: "User", Value: i.Member.User.Mention(), Inline: true},
				{Name: "IGN", Value: fmt.Sprintf("`%s`", ign), Inline: true},
				{Name: "Wins", Value: fmt.Sprintf("`%d`", stats.Wins), Inline: true},
				{Name: "Roles Given", Value: fmt.Sprintf("%d", result.Granted), Inline: true},
			},
		})
		return
	}

	followupEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "No Roles Given",
		Description: fmt.Sprintf("You have `%d` Pixel Party wins — no new roles unlocked.", stats.Wins),
		Color:       colorBlue,
	})
	sink.Post(audit.Record{
		Title:       "No Win Roles Assigned",
		Description: "User did not meet any thresholds.",
		Color:       audit.ColorBlue,
		Fields: []audit.Field{
			{Name: "User", Value: i.Member.User.Mention(), Inline: true},
			{Name: "IGN", Value: fmt.Sprintf("`%s`", ign), Inline: true},
			{Name: "Wins", Value: fmt.Sprintf("`%d`", stats.Wins), Inline: true},
		},
	})
}

func (h *Handler) openNicknameModal(s *discordgo.Session, i *discordgo.InteractionCreate, community string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: "essentials:nickname:" + community,
			Title:    "Change Ingame Name",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID: "new_name",
						Label:    "Your new ingame name",
						Style:    discordgo.TextInputShort,
						Required: true,
					},
				}},
			},
		},
	})
	if err != nil {
		logger.Error("opening nickname modal", err)
	}
}

// nicknameCheck is the decision for one rename request after the IGN has
// resolved: the requester must be the Discord account linked to that IGN on
// Hypixel, and a rename to the current nickname is a no-op.
type nicknameCheck int

const (
	nicknameOK nicknameCheck = iota
	nicknameMismatch
	nicknameAlreadySet
)

func checkNickname(player *hypixel.Player, userTag, currentNick, ign string) nicknameCheck {
	if player == nil || player.LinkedDiscord() != userTag {
		return nicknameMismatch
	}
	if currentNick == ign {
		return nicknameAlreadySet
	}
	return nicknameOK
}

// handleNicknameSubmit renames the member to a Mojang-validated IGN whose
// Hypixel-linked Discord account matches the requester.
func (h *Handler) handleNicknameSubmit(s *discordgo.Session, i *discordgo.InteractionCreate, communityKey string) {
	if _, ok := h.Communities.Communities[communityKey]; !ok || i.Member == nil {
		return
	}
	if !deferEphemeral(s, i) {
		return
	}
	sink := h.audits[communityKey]

	ctx := context.Background()
	ign := modalInput(i.ModalSubmitData(), "new_name")
	profile, err := h.Mojang.Resolve(ctx, ign)
	if err != nil {
		if errors.Is(err, mojang.ErrNotFound) {
			followupEmbed(s, i, failureEmbed(
				"❌ Invalid IGN",
				fmt.Sprintf("`%s` is not a valid Minecraft username.", ign),
				"Nickname Change Failed",
			))
			sink.Post(audit.Record{
				Title:       "❌ Nickname Update Failed",
				Description: "Invalid Minecraft name submitted.",
				Color:       audit.ColorRed,
				Fields: []audit.Field{
					{Name: "User", Value: i.Member.User.Mention(), Inline: true},
					{Name: "Submitted IGN", Value: fmt.Sprintf("`%s`", ign), Inline: true},
				},
			})
			return
		}
		followupEmbed(s, i, failureEmbed(
			"Mojang Lookup Failed",
			"Couldn't validate that username right now. Try again in a bit.",
			"Nickname Change Failed",
		))
		return
	}

	player, err := h.Hypixel.Player(ctx, profile.UUID)
	if err != nil && !errors.Is(err, hypixel.ErrNoProfile) {
		e := failureEmbed(
			"⚠️ Service Unavailable",
			"Hypixel API is currently not responding or rate-limited.\nTry again later.",
			"Nickname Change Failed",
		)
		e.Color = colorOrange
		followupEmbed(s, i, e)
		sink.Post(audit.Record{
			Title:       "⚠️ Nickname Update Failed",
			Description: "Could not fetch linked Discord from Hypixel API.",
			Color:       audit.ColorOrange,
			Fields: []audit.Field{
				{Name: "User", Value: i.Member.User.Mention(), Inline: true},
				{Name: "IGN", Value: fmt.Sprintf("`%s`", ign), Inline: true},
			},
		})
		return
	}

	currentNick := i.Member.Nick
	if currentNick == "" {
		currentNick = i.Member.User.Username
	}
	switch checkNickname(player, i.Member.User.String(), currentNick, ign) {
	case nicknameMismatch:
		linked := "None"
		if player != nil && player.LinkedDiscord() != "" {
			linked = player.LinkedDiscord()
		}
		embed := failureEmbed(
			"❌ Couldn't Update Nickname",
			"Your Discord tag doesn't match the one linked to that Minecraft name.",
			"Nickname Change Failed",
		)
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "Submitted IGN", Value: fmt.Sprintf("`%s`", ign)},
			{Name: "IGN's Linked Discord", Value: fmt.Sprintf("`%s`", linked)},
		}
		followupEmbed(s, i, embed)
		sink.Post(audit.Record{
			Title:       "❌ Nickname Update Failed",
			Description: "Discord tag didn't match the linked account on Hypixel.",
			Color:       audit.ColorRed,
			Fields: []audit.Field{
				{Name: "User", Value: i.Member.User.Mention(), Inline: true},
				{Name: "Submitted IGN", Value: fmt.Sprintf("`%s`", ign), Inline: true},
				{Name: "IGN's Linked Discord", Value: fmt.Sprintf("`%s`", linked), Inline: true},
			},
		})
		return
	case nicknameAlreadySet:
		followupEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "Nickname Already Set",
			Description: fmt.Sprintf("Your server nickname is already `%s`.", ign),
			Color:       colorBlue,
		})
		sink.Post(audit.Record{
			Title:       "Nickname Not Updated",
			Description: "User attempted to set the same nickname they already have.",
			Color:       audit.ColorBlue,
			Fields: []audit.Field{
				{Name: "User", Value: i.Member.User.Mention(), Inline: true},
				{Name: "IGN", Value: fmt.Sprintf("`%s`", ign), Inline: true},
			},
		})
		return
	}

	if err := s.GuildMemberNickname(i.GuildID, i.Member.User.ID, ign); err != nil {
		logger.Error(fmt.Sprintf("renaming %s to %s", i.Member.User.ID, ign), err)
		followupEmbed(s, i, failureEmbed(
			"❌ Couldn't Change Nickname",
			"I don't have permission to change your nickname on this server.",
			"Nickname Change Failed",
		))
		return
	}

	followupEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "✅ Nickname Updated",
		Description: fmt.Sprintf("Your server nickname is now `%s`.", ign),
		Color:       colorGreen,
	})
	sink.Post(audit.Record{
		Title: "Nickname Changed",
		Color: audit.ColorGreen,
		Fields: []audit.Field{
			{Name: "User", Value: i.Member.User.Mention(), Inline: true},
			{Name: "New Nickname", Value: fmt.Sprintf("`%s`", ign), Inline: true},
		},
	})
}
