package events

import (
	"context"
	"fmt"

	logger "github.com/Dopachen/wisk-bot/log"
	"github.com/Dopachen/wisk-bot/verify"
	"github.com/bwmarrin/discordgo"
)

func (h *Handler) openVerifyModal(s *discordgo.Session, i *discordgo.InteractionCreate, community string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: "verify:submit:" + community,
			Title:    "Verify your Minecraft account",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "minecraft_username",
						Label:       "Minecraft Username",
						Style:       discordgo.TextInputShort,
						Placeholder: "e.g. Notch",
						Required:    true,
					},
				}},
			},
		},
	})
	if err != nil {
		logger.Error("opening verify modal", err)
	}
}

func (h *Handler) handleVerifySubmit(s *discordgo.Session, i *discordgo.InteractionCreate, communityKey string) {
	community, ok := h.Communities.Communities[communityKey]
	if !ok || i.Member == nil {
		return
	}
	if !deferEphemeral(s, i) {
		return
	}

	username := modalInput(i.ModalSubmitData(), "minecraft_username")
	h.Metrics.VerificationsAttempted.Add(1)

	created, err := discordgo.SnowflakeTimestamp(i.Member.User.ID)
	if err != nil {
		// Evaluated as unknown requester age downstream.
		logger.Error("deriving account creation time", err)
	}

	req := verify.Request{
		Community:        communityKey,
		GuildID:          i.GuildID,
		UserID:           i.Member.User.ID,
		UserTag:          i.Member.User.String(),
		UserCreated:      created,
		SubmittedName:    username,
		UnverifiedRoleID: community.UnverifiedRoleID,
		AccessRoleIDs:    community.AccessRoleIDs,
		WinTable:         community.WinRoles,
		SetNickname:      true,
	}
	outcome := h.orchestrators[communityKey].Run(context.Background(), req)

	if outcome.Status == verify.StatusVerified {
		h.Metrics.VerificationsSucceeded.Add(1)
		h.Metrics.TierGrants.Add(uint64(outcome.TierGranted))
		followupText(s, i, fmt.Sprintf("✅ You've been verified as `%s`!", outcome.Profile.Name))
		return
	}
	followupEmbed(s, i, outcomeEmbed(outcome, username))
}

func modalInput(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, component := range actionsRow.Components {
			if input, ok := component.(*discordgo.TextInput); ok && input.CustomID == customID {
				return input.Value
			}
		}
	}
	return ""
}

// outcomeEmbed maps every non-success terminal state to its user-facing
// message. Each state has exactly one message with remediation guidance.
func outcomeEmbed(out verify.Outcome, username string) *discordgo.MessageEmbed {
	switch out.Status {
	case verify.StatusNameNotFound:
		return failureEmbed(
			"Minecraft Username Invalid",
			fmt.Sprintf("The username `%s` could not be found.\nPlease make sure it's typed correctly and that the account exists.", username),
			"Verification Failed • Invalid Username",
		)
	case verify.StatusRateLimited:
		e := failureEmbed(
			"Hypixel API Error",
			"I'm currently being rate-limited.\nPlease wait at least 2 minutes before trying again.",
			"Verification Failed • Hypixel API Issue",
		)
		e.Color = colorOrange
		return e
	case verify.StatusNoProfile:
		return failureEmbed(
			"Hypixel Account Not Found",
			fmt.Sprintf("The account `%s` exists but hasn't joined Hypixel yet, or the data couldn't be retrieved.\nMake sure the account has logged into Hypixel at least once.", username),
			"Verification Failed • No Hypixel Data",
		)
	case verify.StatusLookupFailed:
		e := failureEmbed(
			"Hypixel Lookup Failed",
			"Failed to fetch player data from Hypixel. Try again in a bit.",
			"Verification Failed • Hypixel API Issue",
		)
		e.Color = colorOrange
		return e
	case verify.StatusRejected:
		return rejectionEmbed(out.Verdict, username)
	}
	return failureEmbed(
		"Verification Error",
		"An unexpected error occurred. Please try again later or contact an admin if this issue persists.",
		"Verification Failed",
	)
}

func rejectionEmbed(v verify.Verdict, username string) *discordgo.MessageEmbed {
	switch v.Reason {
	case verify.ReasonNoLinkedAccount:
		return failureEmbed(
			"No Discord Linked on Hypixel",
			fmt.Sprintf("The Minecraft account `%s` does not have a Discord account linked on Hypixel.\nPlease join Hypixel and link your Discord.", username),
			"Verification Failed • Missing Discord Link",
		)
	case verify.ReasonHandleMismatch:
		return failureEmbed(
			"Discord Tag Mismatch",
			fmt.Sprintf("The Discord account linked to `%s` on Hypixel does not match your current tag.\n\n"+
				"**Linked on Hypixel:** `%s`\n**Your Discord tag:** `%s`\n\n"+
				"To fix this, join Hypixel and link the correct Discord account.", username, v.LinkedHandle, v.ActualHandle),
			"Verification Failed • Tag Mismatch",
		)
	case verify.ReasonLevelTooLow:
		return failureEmbed(
			"Insufficient Hypixel Level",
			fmt.Sprintf("Your Hypixel level is `%d`, but the minimum required level is `%d`.\nKeep playing on Hypixel to level up, then try verifying again later.", int(v.Level), v.RequiredLevel),
			"Verification Failed • Hypixel Level Too Low",
		)
	case verify.ReasonUnknownPlatformAge:
		return failureEmbed(
			"Unable to Verify Hypixel Account Age",
			"We couldn't determine when this account first joined Hypixel.\nPlease ensure the account has logged into Hypixel at least once and try again later.",
			"Verification Failed • Missing Join Date",
		)
	case verify.ReasonPlatformAccountTooNew:
		return failureEmbed(
			"Hypixel Account Too New",
			fmt.Sprintf("Your Hypixel account must be at least `%s` old to verify.\nCurrent age: `%d` days.", v.RequiredAge, v.AgeDays),
			"Verification Failed • Account Age Too Low",
		)
	case verify.ReasonUnknownRequesterAge:
		return failureEmbed(
			"Unable to Verify Discord Account Age",
			"We couldn't determine the creation date of your Discord account.\nPlease try again later or contact an admin if this issue persists.",
			"Verification Failed • Missing Account Date",
		)
	case verify.ReasonRequesterAccountTooNew:
		return failureEmbed(
			"Discord Account Too New",
			fmt.Sprintf("Your Discord account must be at least `%s` old to verify.\nCurrent age: `%d` days.", v.RequiredAge, v.AgeDays),
			"Verification Failed • Discord Account Age Too Low",
		)
	}
	return failureEmbed("Verification Failed", "Your account did not meet the requirements.", "Verification Failed")
}
