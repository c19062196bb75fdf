package events

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Dopachen/wisk-bot/hypixel"
)

// modeStats are the derived counters for one Pixel Party mode slice. The
// API only reports overall and hyper numbers; normal mode is overall minus
// hyper.
type modeStats struct {
	Games    int
	Wins     int
	Losses   int
	Rounds   int
	Powerups int
}

func overallStats(s hypixel.PixelPartyStats) modeStats {
	return modeStats{
		Games:    s.GamesPlayed,
		Wins:     s.Wins,
		Losses:   s.GamesPlayed - s.Wins,
		Rounds:   s.RoundsCompleted,
		Powerups: s.PowerUpsCollected,
	}
}

func hyperStats(s hypixel.PixelPartyStats) modeStats {
	return modeStats{
		Games:    s.GamesPlayedHyper,
		Wins:     s.WinsHyper,
		Losses:   s.GamesPlayedHyper - s.WinsHyper,
		Rounds:   s.RoundsCompletedHyper,
		Powerups: s.PowerUpsCollectedHyper,
	}
}

func normalStats(s hypixel.PixelPartyStats) modeStats {
	games := s.GamesPlayed - s.GamesPlayedHyper
	wins := s.Wins - s.WinsHyper
	return modeStats{
		Games:    games,
		Wins:     wins,
		Losses:   games - wins,
		Rounds:   s.RoundsCompleted - s.RoundsCompletedHyper,
		Powerups: s.PowerUpsCollected - s.PowerUpsCollectedHyper,
	}
}

// winLoss is the W/L ratio; with no losses the win count stands in.
func (m modeStats) winLoss() float64 {
	if m.Losses == 0 {
		return float64(m.Wins)
	}
	return float64(m.Wins) / float64(m.Losses)
}

func (m modeStats) winrate() float64 {
	if m.Games == 0 {
		return 0
	}
	return float64(m.Wins) / float64(m.Games) * 100
}

func (m modeStats) roundsPerGame() float64 {
	if m.Games == 0 {
		return 0
	}
	return float64(m.Rounds) / float64(m.Games)
}

func (m modeStats) powerupsPerGame() float64 {
	if m.Games == 0 {
		return 0
	}
	return float64(m.Powerups) / float64(m.Games)
}

// dotted renders a number with dots as thousands separators, the way the
// communities are used to reading counts.
func dotted(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	intPart := s
	fracPart := ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		intPart, fracPart = s[:idx], s[idx:]
	}
	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}
	out := b.String() + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

func sepInt(n int) string {
	return dotted(float64(n), 0)
}

// statBlock renders one mode column for the /stats embed.
func statBlock(m modeStats) string {
	return fmt.Sprintf(
		"**Total Games**: %s\n"+
			"**Wins**: %s\n"+
			"**Losses**: %s\n"+
			"**W/L Ratio**: %.3f\n"+
			"**Winrate**: %.3f%%\n\n"+
			"**Total Rounds**: %s\n"+
			"**RPG**: %.2f\n"+
			"**Powerups**: %s\n"+
			"**PPG**: %.2f",
		sepInt(m.Games), sepInt(m.Wins), sepInt(m.Losses), m.winLoss(), m.winrate(),
		sepInt(m.Rounds), m.roundsPerGame(), sepInt(m.Powerups), m.powerupsPerGame(),
	)
}

// compareLabels drive the side-by-side comparison rows: label, decimal
// places and whether the value is a percentage.
var compareLabels = []struct {
	name     string
	decimals int
	percent  bool
}{
	{"Games", 0, false},
	{"Wins", 0, false},
	{"Losses", 0, false},
	{"W/L", 2, false},
	{"Winrate", 2, true},
	{"Rounds", 0, false},
	{"RPG", 2, false},
	{"Powerups", 0, false},
	{"PPG", 2, false},
}

func (m modeStats) values() []float64 {
	return []float64{
		float64(m.Games), float64(m.Wins), float64(m.Losses),
		m.winLoss(), m.winrate(),
		float64(m.Rounds), m.roundsPerGame(),
		float64(m.Powerups), m.powerupsPerGame(),
	}
}

// diffTag annotates how v1 compares to v2: "(+x)", "(-x)" or "(=)".
func diffTag(v1, v2 float64, decimals int, suffix string) string {
	d := v1 - v2
	if math.Abs(d) < 1e-6 {
		if suffix == "" {
			return "(=)"
		}
		return fmt.Sprintf("(= %s)", suffix)
	}
	sign := "+"
	if d < 0 {
		sign = "-"
	}
	return fmt.Sprintf("(%s%s%s)", sign, dotted(math.Abs(d), decimals), suffix)
}

// compareBlocks renders both sides of one mode comparison, each annotated
// with its diff against the other.
func compareBlocks(a, b modeStats) (string, string) {
	av, bv := a.values(), b.values()
	var left, right []string
	for idx, label := range compareLabels {
		suffix := ""
		if label.percent {
			suffix = "%"
		}
		left = append(left, fmt.Sprintf("**%s**: %s%s %s",
			label.name, dotted(av[idx], label.decimals), suffix, diffTag(av[idx], bv[idx], label.decimals, suffix)))
		right = append(right, fmt.Sprintf("**%s**: %s%s %s",
			label.name, dotted(bv[idx], label.decimals), suffix, diffTag(bv[idx], av[idx], label.decimals, suffix)))
	}
	return strings.Join(left, "\n"), strings.Join(right, "\n")
}
