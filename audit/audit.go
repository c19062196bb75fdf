// Package audit appends verification records to a community's log channel.
// Records are write-only: nothing in the bot ever reads them back.
package audit

import (
	"fmt"
	"time"

	logger "github.com/Dopachen/wisk-bot/log"
	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

// Embed colors for audit records.
const (
	ColorGreen  = 0x2ECC71
	ColorRed    = 0xE74C3C
	ColorOrange = 0xE67E22
	ColorBlue   = 0x5865F2
)

type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Record is one audit entry. ID is generated at post time when empty.
type Record struct {
	ID          string
	Title       string
	Description string
	Color       int
	Fields      []Field
	Thumbnail   string
	When        time.Time
}

// Logger posts records to a fixed channel.
type Logger struct {
	session   *discordgo.Session
	channelID string
}

func New(s *discordgo.Session, channelID string) *Logger {
	return &Logger{session: s, channelID: channelID}
}

// Post appends one record. Failures are logged and swallowed: the audit
// surface must never fail a verification.
func (l *Logger) Post(rec Record) {
	if l == nil || l.session == nil || l.channelID == "" {
		return
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.When.IsZero() {
		rec.When = time.Now().UTC()
	}

	embed := &discordgo.MessageEmbed{
		Title:       rec.Title,
		Description: rec.Description,
		Color:       rec.Color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Verification Logger • %s • %s", rec.When.Format("2006-01-02 15:04:05 UTC"), rec.ID),
		},
	}
	if rec.Thumbnail != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: rec.Thumbnail}
	}
	for _, f := range rec.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}

	if _, err := l.session.ChannelMessageSendEmbed(l.channelID, embed); err != nil {
		logger.Error(fmt.Sprintf("posting audit record %s to channel %s", rec.ID, l.channelID), err)
	}
}
