// Package events wires Discord gateway events to the verification
// pipeline, the self-service panels and the slash commands.
package events

import (
	"strings"

	"github.com/Dopachen/wisk-bot/audit"
	"github.com/Dopachen/wisk-bot/config"
	"github.com/Dopachen/wisk-bot/hypixel"
	logger "github.com/Dopachen/wisk-bot/log"
	"github.com/Dopachen/wisk-bot/mojang"
	"github.com/Dopachen/wisk-bot/roles"
	"github.com/Dopachen/wisk-bot/settings"
	"github.com/Dopachen/wisk-bot/statusd"
	"github.com/Dopachen/wisk-bot/verify"
	"github.com/bwmarrin/discordgo"
)

// Handler owns the per-community collaborators the interaction handlers
// need. One instance serves every community.
type Handler struct {
	Communities *config.Communities
	Settings    *settings.Store
	Mojang      *mojang.Client
	Hypixel     *hypixel.Client
	Granter     *roles.Granter
	Metrics     *statusd.Metrics

	audits        map[string]*audit.Logger
	orchestrators map[string]*verify.Orchestrator
}

func New(s *discordgo.Session, communities *config.Communities, store *settings.Store, mojangClient *mojang.Client, hypixelClient *hypixel.Client, metrics *statusd.Metrics) *Handler {
	members := sessionMembers{s: s}
	granter := roles.NewGranter(members)

	h := &Handler{
		Communities:   communities,
		Settings:      store,
		Mojang:        mojangClient,
		Hypixel:       hypixelClient,
		Granter:       granter,
		Metrics:       metrics,
		audits:        make(map[string]*audit.Logger),
		orchestrators: make(map[string]*verify.Orchestrator),
	}
	for key, community := range communities.Communities {
		sink := audit.New(s, community.LogChannelID)
		h.audits[key] = sink
		h.orchestrators[key] = &verify.Orchestrator{
			Resolver: mojangClient,
			Stats:    hypixelClient,
			Settings: store,
			Members:  members,
			Granter:  granter,
			Audit:    sink,
		}
	}
	return h
}

// Ready registers the guild commands and posts the interactive panels.
func (h *Handler) Ready(s *discordgo.Session, r *discordgo.Ready) {
	logger.Info("connected as " + r.User.String())
	h.registerCommands(s, r.User.ID)
	h.postPanels(s)
}

// InteractionCreate routes every interaction by type and custom ID.
// Component and modal IDs follow the scheme "<feature>:<action>:<community>".
func (h *Handler) InteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		switch data.Name {
		case "stats":
			h.handleStats(s, i)
		case "compare":
			h.handleCompare(s, i)
		case "verification_config":
			h.handleConfig(s, i)
		}

	case discordgo.InteractionMessageComponent:
		feature, action, community, ok := splitCustomID(i.MessageComponentData().CustomID)
		if !ok {
			return
		}
		switch {
		case feature == "verify" && action == "open":
			h.openVerifyModal(s, i, community)
		case feature == "essentials" && action == "wins":
			h.handleWins(s, i, community)
		case feature == "essentials" && action == "nick":
			h.openNicknameModal(s, i, community)
		}

	case discordgo.InteractionModalSubmit:
		feature, action, community, ok := splitCustomID(i.ModalSubmitData().CustomID)
		if !ok {
			return
		}
		switch {
		case feature == "verify" && action == "submit":
			h.handleVerifySubmit(s, i, community)
		case feature == "essentials" && action == "nickname":
			h.handleNicknameSubmit(s, i, community)
		}
	}
}

func splitCustomID(id string) (feature, action, community string, ok bool) {
	parts := strings.SplitN(id, ":", 3)
	if len(parts) != 3 {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

// sessionMembers adapts the Discord session to the member-mutation
// interfaces of the pipeline.
type sessionMembers struct {
	s *discordgo.Session
}

func (m sessionMembers) AddRole(guildID, userID, roleID string) error {
	return m.s.GuildMemberRoleAdd(guildID, userID, roleID)
}

func (m sessionMembers) RemoveRole(guildID, userID, roleID string) error {
	return m.s.GuildMemberRoleRemove(guildID, userID, roleID)
}

func (m sessionMembers) SetNickname(guildID, userID, nick string) error {
	return m.s.GuildMemberNickname(guildID, userID, nick)
}
