package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Dopachen/wisk-bot/config"
	"github.com/Dopachen/wisk-bot/events"
	"github.com/Dopachen/wisk-bot/hypixel"
	logger "github.com/Dopachen/wisk-bot/log"
	"github.com/Dopachen/wisk-bot/mojang"
	"github.com/Dopachen/wisk-bot/queuestatus"
	"github.com/Dopachen/wisk-bot/session"
	"github.com/Dopachen/wisk-bot/settings"
	"github.com/Dopachen/wisk-bot/statusd"
	"github.com/Dopachen/wisk-bot/system"
	"github.com/redis/go-redis/v9"
)

const version = "2.0.0"

func main() {
	// 1. Load configuration
	env, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("Fatal error loading environment: %v", err)
	}
	communities, err := config.LoadCommunities(env.CommunitiesFile)
	if err != nil {
		log.Fatalf("Fatal error loading communities: %v", err)
	}

	// 2. Initialize Discord session
	s, err := session.New(env.DiscordToken)
	if err != nil {
		log.Fatalf("Error creating Discord session: %v", err)
	}

	// 3. Initialize logger
	logger.Init(s, communities.BotLogChannelID)

	// 4. Connect redis for the settings store
	rdb := redis.NewClient(&redis.Options{
		Addr:     env.RedisAddr,
		Password: env.RedisPassword,
		DB:       env.RedisDB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Error connecting to redis at %s: %v", env.RedisAddr, err)
	}
	store := settings.NewStore(rdb, settingsDefaults(communities))

	// 5. Build API clients and the interaction handler
	mojangClient := mojang.NewClient()
	hypixelClient := hypixel.NewClient(env.HypixelAPIKey)
	metrics := &statusd.Metrics{}
	handler := events.New(s, communities, store, mojangClient, hypixelClient, metrics)
	s.AddHandler(handler.Ready)
	s.AddHandler(handler.InteractionCreate)

	// 6. Connect to Discord
	if err = s.Open(); err != nil {
		logger.Fatal("Error opening connection to Discord", err)
	}

	// 7. Post boot message
	bootMessage, err := logger.PostBootMessage("`Wisk` is starting up...")
	if err != nil {
		logger.Error("Failed to post boot message", err)
	}
	bootMessageID := ""
	if bootMessage != nil {
		bootMessageID = bootMessage.ID
	}
	updateBoot := func(content string) {
		if bootMessageID != "" {
			logger.UpdateBootMessage(bootMessageID, content)
		}
	}
	updateBoot("`Wisk` is starting up...\n✅ Discord connection established")

	// 8. Start background services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for key, community := range communities.Communities {
		if community.QueueChannelID == "" {
			continue
		}
		poller := queuestatus.New(hypixelClient, s, community.QueueChannelID, community.QueuePingRoleID)
		poller.Updates = &metrics.QueueUpdates
		go poller.Run(ctx)
		logger.Info(fmt.Sprintf("queue status poller started for community %s", key))
	}
	go statusd.New(env.StatusAddr, version, metrics, s, rdb).Start(ctx)

	// 9. Final status report
	postStatusReport(bootMessageID, rdb)

	// 10. Wait for shutdown signal
	fmt.Println("Bot is now running. Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	cancel()
	s.Close()
	fmt.Println("\nBot shutting down.")
}

// settingsDefaults converts the per-community default requirements into
// settings documents for first-read seeding.
func settingsDefaults(communities *config.Communities) map[string]settings.Settings {
	defaults := make(map[string]settings.Settings, len(communities.Communities))
	for key, community := range communities.Communities {
		defaults[key] = settings.Settings{
			LeastDiscordAccountAge: community.DefaultRequirements.LeastDiscordAccountAge,
			LeastHypixelAccountAge: community.DefaultRequirements.LeastHypixelAccountAge,
			LeastHypixelLevel:      community.DefaultRequirements.LeastHypixelLevel,
		}
	}
	return defaults
}

// postStatusReport edits the boot message into the final system report.
func postStatusReport(bootMessageID string, rdb *redis.Client) {
	if bootMessageID == "" {
		return
	}
	cpuUsage, _ := system.CPUUsage()
	memUsage, _ := system.MemoryUsage()

	redisStatus := "✅ connected"
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		redisStatus = "❌ unreachable"
	}

	fields := []string{
		"**System Status**",
		fmt.Sprintf("💻 CPU: `%.2f%%`", cpuUsage),
		fmt.Sprintf("🧠 Memory: `%.2f%%`", memUsage),
		"",
		"**Service Status**",
		"🤖 Discord: ✅ connected",
		fmt.Sprintf("🗄️ Redis: %s", redisStatus),
	}
	logger.UpdateBootMessage(bootMessageID, strings.Join(fields, "\n"))
}
