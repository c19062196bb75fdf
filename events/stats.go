package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dopachen/wisk-bot/hypixel"
	"github.com/Dopachen/wisk-bot/mojang"
	"github.com/bwmarrin/discordgo"
)

func (h *Handler) handleStats(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !deferPublic(s, i) {
		return
	}
	username := optionValue(i.ApplicationCommandData(), "username")

	ctx := context.Background()
	profile, err := h.Mojang.Resolve(ctx, username)
	if err != nil {
		followupText(s, i, fmt.Sprintf("Couldn't find UUID for `%s`.", username))
		return
	}

	stats, errEmbed := h.pixelPartyStats(ctx, profile)
	if errEmbed != nil {
		followupEmbed(s, i, errEmbed)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Pixel Party Stats for %s", profile.Name),
		Color: colorPurple,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: fmt.Sprintf("https://minotar.net/helm/%s/100", profile.UUID),
		},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "**__Overall Stats__**", Value: statBlock(overallStats(stats)), Inline: true},
			{Name: "**__Hyper Stats__**", Value: statBlock(hyperStats(stats)), Inline: true},
			{Name: "**__Normal Stats__**", Value: statBlock(normalStats(stats)), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Pixel Party Statistics"},
	}
	followupEmbed(s, i, embed)
}

func (h *Handler) handleCompare(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !deferPublic(s, i) {
		return
	}
	data := i.ApplicationCommandData()
	name1 := optionValue(data, "player1")
	name2 := optionValue(data, "player2")

	ctx := context.Background()
	profile1, err1 := h.Mojang.Resolve(ctx, name1)
	profile2, err2 := h.Mojang.Resolve(ctx, name2)
	if err1 != nil || err2 != nil {
		followupEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "Invalid Username",
			Description: "Couldn't find one or both Minecraft usernames. Please double-check the spelling.",
			Color:       colorPurple,
		})
		return
	}

	stats1, errEmbed := h.pixelPartyStats(ctx, profile1)
	if errEmbed == nil {
		var stats2 hypixel.PixelPartyStats
		stats2, errEmbed = h.pixelPartyStats(ctx, profile2)
		if errEmbed == nil {
			followupEmbed(s, i, compareEmbed(profile1.Name, profile2.Name, stats1, stats2))
			return
		}
	}
	followupEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Failed to Fetch Stats",
		Description: "One of the usernames is currently on cooldown due to Hypixel API limits. Please wait a few minutes before trying again.",
		Color:       colorPurple,
	})
}

// pixelPartyStats fetches and extracts the counters, mapping each failure
// to the embed the stats commands show.
func (h *Handler) pixelPartyStats(ctx context.Context, profile *mojang.Profile) (hypixel.PixelPartyStats, *discordgo.MessageEmbed) {
	player, err := h.Hypixel.Player(ctx, profile.UUID)
	if err != nil {
		description := "Failed to fetch player data from Hypixel. Try again in a bit."
		if errors.Is(err, hypixel.ErrRateLimited) {
			description = "The Hypixel API is currently rate-limiting me. Please wait a few minutes before trying again."
		}
		return hypixel.PixelPartyStats{}, &discordgo.MessageEmbed{
			Title:       "Failed to Fetch Stats",
			Description: description,
			Color:       colorPurple,
		}
	}

	stats, present := player.PixelParty()
	if !present {
		return hypixel.PixelPartyStats{}, &discordgo.MessageEmbed{
			Title:       "No Pixel Party Data",
			Description: fmt.Sprintf("`%s` probably hasn't played Pixel Party yet.", profile.Name),
			Color:       colorPurple,
		}
	}
	return stats, nil
}

func compareEmbed(name1, name2 string, stats1, stats2 hypixel.PixelPartyStats) *discordgo.MessageEmbed {
	o1, o2 := compareBlocks(overallStats(stats1), overallStats(stats2))
	h1, h2 := compareBlocks(hyperStats(stats1), hyperStats(stats2))
	n1, n2 := compareBlocks(normalStats(stats1), normalStats(stats2))

	spacer := &discordgo.MessageEmbedField{Name: "​", Value: "​"}
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Comparison: %s vs %s", name1, name2),
		Color: colorPurple,
		Fields: []*discordgo.MessageEmbedField{
			{Name: fmt.Sprintf("**%s — Overall**", name1), Value: o1, Inline: true},
			{Name: fmt.Sprintf("**%s — Overall**", name2), Value: o2, Inline: true},
			spacer,
			{Name: fmt.Sprintf("**%s — Hyper**", name1), Value: h1, Inline: true},
			{Name: fmt.Sprintf("**%s — Hyper**", name2), Value: h2, Inline: true},
			spacer,
			{Name: fmt.Sprintf("**%s — Normal**", name1), Value: n1, Inline: true},
			{Name: fmt.Sprintf("**%s — Normal**", name2), Value: n2, Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Pixel Party Statistics"},
	}
}
