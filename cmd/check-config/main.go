package main

import (
	"fmt"
	"os"

	"github.com/Dopachen/wisk-bot/config"
)

// ANSI color codes for formatted output
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
)

func main() {
	fmt.Printf("%s--- Wisk Config Checker ---%s\n", ColorBlue, ColorReset)

	allChecksPassed := true
	if !checkEnv() {
		allChecksPassed = false
	}
	if !checkCommunities() {
		allChecksPassed = false
	}

	fmt.Println("\n--------------------------")
	if allChecksPassed {
		fmt.Printf("%s✅ All configuration seems correct.%s\n", ColorGreen, ColorReset)
	} else {
		fmt.Printf("%s❌ Some issues were found in the configuration.%s\n", ColorRed, ColorReset)
		os.Exit(1)
	}
}

func checkEnv() bool {
	fmt.Printf("\nVerifying %senvironment%s...\n", ColorBlue, ColorReset)

	env, err := config.LoadEnv()
	if err != nil {
		fmt.Printf("  %s[FAIL]%s Environment is incomplete: %v\n", ColorRed, ColorReset, err)
		return false
	}
	fmt.Printf("  %s[OK]%s Required environment variables are set.\n", ColorGreen, ColorReset)

	if env.RedisPassword == "" {
		fmt.Printf("  %s[WARN]%s REDIS_PASSWORD is empty; fine for local redis.\n", ColorYellow, ColorReset)
	}
	fmt.Printf("  %s[OK]%s Status server will listen on %s.\n", ColorGreen, ColorReset, env.StatusAddr)
	return true
}

func checkCommunities() bool {
	path := os.Getenv("COMMUNITIES_FILE")
	if path == "" {
		path = "communities.yaml"
	}
	fmt.Printf("\nVerifying %s'%s'%s...\n", ColorBlue, path, ColorReset)

	communities, err := config.LoadCommunities(path)
	if err != nil {
		fmt.Printf("  %s[FAIL]%s %v\n", ColorRed, ColorReset, err)
		return false
	}
	fmt.Printf("  %s[OK]%s File parses and passes validation.\n", ColorGreen, ColorReset)

	for key, community := range communities.Communities {
		fmt.Printf("  %s[OK]%s Community '%s' (%s): guild %s, %d win roles.\n",
			ColorGreen, ColorReset, key, community.Name, community.GuildID, len(community.WinRoles))
		if community.QueueChannelID == "" {
			fmt.Printf("  %s[WARN]%s Community '%s' has no queue channel; poller disabled for it.\n", ColorYellow, ColorReset, key)
		}
		if len(community.WinRoles) == 0 {
			fmt.Printf("  %s[WARN]%s Community '%s' has no win roles; stats commands disabled for it.\n", ColorYellow, ColorReset, key)
		}
	}
	return true
}
