// Package queuestatus posts a Pixel Party queue status embed whenever the
// queue comes alive or dies, and refreshes it on each Eastern-time day
// rollover together with the map rotation flag.
package queuestatus

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	logger "github.com/Dopachen/wisk-bot/log"
	"github.com/bwmarrin/discordgo"
)

const (
	// DefaultInterval between counts polls.
	DefaultInterval = 10 * time.Second
	// DefaultThreshold is the player count at which the game queues.
	DefaultThreshold = 10
)

// CountsSource yields the current Pixel Party player count.
type CountsSource interface {
	PixelPartyQueue(ctx context.Context) (int, error)
}

// State is the poller's entire recoverable state, passed explicitly
// through ticks.
type State struct {
	Queueing   bool
	Day        time.Time // midnight (poller zone) of the last posted day
	InRotation bool
}

// Update describes a status change worth posting.
type Update struct {
	Queueing       bool
	Count          int
	InRotation     bool
	RotationChange time.Time
	At             time.Time
}

// Poller runs the fixed-interval status loop. It shares no state with the
// verification pipeline.
type Poller struct {
	Counts     CountsSource
	Session    *discordgo.Session
	ChannelID  string
	PingRoleID string
	Interval   time.Duration
	Threshold  int

	// Updates counts posted status changes when set.
	Updates *atomic.Uint64

	// Now and Location are swappable for tests.
	Now      func() time.Time
	Location *time.Location
}

func New(counts CountsSource, s *discordgo.Session, channelID, pingRoleID string) *Poller {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}
	return &Poller{
		Counts:     counts,
		Session:    s,
		ChannelID:  channelID,
		PingRoleID: pingRoleID,
		Interval:   DefaultInterval,
		Threshold:  DefaultThreshold,
		Now:        time.Now,
		Location:   loc,
	}
}

// Run polls until the context is cancelled. Initial rotation is assumed
// active; the flag flips at each midnight in the poller's zone.
func (p *Poller) Run(ctx context.Context) {
	st := State{Queueing: true, InRotation: true}

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		count, err := p.Counts.PixelPartyQueue(ctx)
		if err == nil {
			var update *Update
			st, update = p.Tick(st, count)
			if update != nil {
				p.post(*update)
				if p.Updates != nil {
					p.Updates.Add(1)
				}
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Tick folds one observed player count into the state and reports whether
// an update should be posted: on a queueing transition or on the first
// tick of a new day.
func (p *Poller) Tick(st State, count int) (State, *Update) {
	now := p.Now().In(p.Location)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, p.Location)
	queueing := count >= p.Threshold

	rotation := st.InRotation
	if !st.Day.IsZero() && !day.Equal(st.Day) {
		// One flip per elapsed midnight.
		elapsed := int(day.Sub(st.Day).Hours() / 24)
		if elapsed%2 != 0 {
			rotation = !rotation
		}
	}

	changed := queueing != st.Queueing || !day.Equal(st.Day)
	next := State{Queueing: queueing, Day: day, InRotation: rotation}
	if !changed {
		return next, nil
	}
	return next, &Update{
		Queueing:       queueing,
		Count:          count,
		InRotation:     rotation,
		RotationChange: day.AddDate(0, 0, 1),
		At:             now,
	}
}

func (p *Poller) post(u Update) {
	if p.Session == nil || p.ChannelID == "" {
		return
	}

	queueDot, rotationDot := "🔴", "🔴"
	color := 0xFF0000
	description := fmt.Sprintf("The game is **not** currently queueing. %s (<t:%d:R>)", queueDot, u.At.Unix())
	footer := "A notification will be sent immediately when the game is queueing again."
	if u.Queueing {
		queueDot = "🟢"
		color = 0x00FF00
		description = fmt.Sprintf("The game is currently queueing. %s (<t:%d:R>)", queueDot, u.At.Unix())
		footer = "A notification will be sent immediately when the queue has died."
	}
	if u.InRotation {
		rotationDot = "🟢"
	}

	rotationLabel := "Not In Rotation"
	if u.InRotation {
		rotationLabel = "In Rotation"
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Queue Status Update",
		Color:       color,
		Description: description,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "**Current playercount**", Value: fmt.Sprintf("%d", u.Count)},
			{Name: "**Rotation Status**", Value: fmt.Sprintf("%s %s (Changes <t:%d:R>)", rotationLabel, rotationDot, u.RotationChange.Unix())},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: footer},
	}

	if u.Queueing && p.PingRoleID != "" {
		if _, err := p.Session.ChannelMessageSend(p.ChannelID, fmt.Sprintf("<@&%s>", p.PingRoleID)); err != nil {
			logger.Error("sending queue ping", err)
		}
	}
	if _, err := p.Session.ChannelMessageSendEmbed(p.ChannelID, embed); err != nil {
		logger.Error("posting queue status update", err)
	}
}
