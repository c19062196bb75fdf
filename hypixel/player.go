package hypixel

import (
	"encoding/json"
	"math"
	"time"
)

// Player is the slice of the Hypixel player document the bot reads.
type Player struct {
	Displayname string   `json:"displayname"`
	NetworkExp  float64  `json:"networkExp"`
	FirstLogin  *int64   `json:"firstLogin"` // milliseconds since epoch
	SocialMedia struct {
		Links map[string]string `json:"links"`
	} `json:"socialMedia"`
	Stats struct {
		Arcade map[string]json.RawMessage `json:"Arcade"`
	} `json:"stats"`
}

// LinkedDiscord returns the Discord handle linked on the Hypixel profile,
// or "" when none is linked.
func (p *Player) LinkedDiscord() string {
	return p.SocialMedia.Links["DISCORD"]
}

// FirstLoginTime converts the firstLogin millisecond timestamp. ok is false
// when the document has no first-login record.
func (p *Player) FirstLoginTime() (time.Time, bool) {
	if p.FirstLogin == nil {
		return time.Time{}, false
	}
	return time.UnixMilli(*p.FirstLogin).UTC(), true
}

// PixelPartyStats are the per-player Pixel Party counters. Hyper fields
// cover the hyper mode subset; normal-mode numbers are derived by
// subtraction because the API only reports overall and hyper.
type PixelPartyStats struct {
	GamesPlayed            int `json:"games_played"`
	Wins                   int `json:"wins"`
	RoundsCompleted        int `json:"rounds_completed"`
	PowerUpsCollected      int `json:"power_ups_collected"`
	GamesPlayedHyper       int `json:"games_played_hyper"`
	WinsHyper              int `json:"wins_hyper"`
	RoundsCompletedHyper   int `json:"rounds_completed_hyper"`
	PowerUpsCollectedHyper int `json:"power_ups_collected_hyper"`
}

// PixelParty extracts the Pixel Party counters, tolerating the three key
// schemes the API has used over time: a "pixel_party" object, a camel-cased
// "pixelParty" object, and a deprecated flat "pixel_party_wins" counter
// (wrapped as a wins-only record). The first present key wins. ok is false
// when the player has no Pixel Party data at all.
func (p *Player) PixelParty() (PixelPartyStats, bool) {
	arcade := p.Stats.Arcade
	for _, key := range []string{"pixel_party", "pixelParty"} {
		raw, present := arcade[key]
		if !present {
			continue
		}
		var stats PixelPartyStats
		if err := json.Unmarshal(raw, &stats); err != nil {
			continue
		}
		return stats, true
	}
	if raw, present := arcade["pixel_party_wins"]; present {
		var wins int
		if err := json.Unmarshal(raw, &wins); err == nil {
			return PixelPartyStats{Wins: wins}, true
		}
	}
	return PixelPartyStats{}, false
}

// NetworkLevel converts raw network experience to the Hypixel network
// level, rounded to two decimals. The formula must match Hypixel's exactly;
// eligibility comparisons use this value while user-facing text truncates
// it to an integer.
func NetworkLevel(exp float64) float64 {
	level := (math.Sqrt(exp+15312.5) - 125/math.Sqrt2) / (25 * math.Sqrt2)
	level = math.Round(level*100) / 100
	return math.Max(1, level)
}
