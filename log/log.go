package log

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
)

var (
	session      *discordgo.Session
	logChannelID string
	readyOnce    sync.Once
	ready        = make(chan struct{})
)

// Init wires the log module to a Discord session. Output is mirrored to the
// configured channel once the gateway reports ready.
func Init(s *discordgo.Session, channelID string) {
	session = s
	logChannelID = channelID
	s.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		readyOnce.Do(func() { close(ready) })
	})
	log.SetOutput(&discordWriter{})
	log.SetFlags(0)
}

// Post sends a message to the log channel.
func Post(msg string) {
	if session != nil && logChannelID != "" {
		<-ready
		session.ChannelMessageSend(logChannelID, msg)
	}
}

// PostBootMessage sends the boot status message and returns it so it can be
// edited as startup phases complete.
func PostBootMessage(msg string) (*discordgo.Message, error) {
	<-ready
	if session != nil && logChannelID != "" {
		return session.ChannelMessageSend(logChannelID, msg)
	}
	return nil, fmt.Errorf("session not initialized")
}

// UpdateBootMessage edits the boot message with new content.
func UpdateBootMessage(messageID, newContent string) {
	if session != nil && logChannelID != "" {
		session.ChannelMessageEdit(logChannelID, messageID, newContent)
	}
}

// Info logs an informational message.
func Info(msg string) {
	log.Printf("[INFO] %s\n", msg)
}

// Error logs an error with the caller's file and line.
func Error(context string, err error) {
	_, file, line, ok := runtime.Caller(1)
	var callerInfo string
	if ok {
		parts := strings.Split(file, "/")
		if len(parts) > 2 {
			file = strings.Join(parts[len(parts)-2:], "/")
		}
		callerInfo = fmt.Sprintf("%s:%d", file, line)
	}
	log.Printf("[ERROR] in %s: %s\n%v\n", callerInfo, context, err)
}

// Fatal logs an error and exits.
func Fatal(context string, err error) {
	Error(context, err)
	os.Exit(1)
}

// discordWriter mirrors standard log output into the log channel.
type discordWriter struct{}

func (w *discordWriter) Write(p []byte) (n int, err error) {
	msg := string(p)
	fmt.Print(msg)
	if session != nil && logChannelID != "" {
		if len(msg) > 1900 {
			msg = msg[:1900] + "..."
		}
		go Post("```\n" + msg + "```")
	}
	return len(p), nil
}
