package events

import (
	"strings"
	"testing"

	"github.com/Dopachen/wisk-bot/hypixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePixelParty() hypixel.PixelPartyStats {
	return hypixel.PixelPartyStats{
		GamesPlayed:            12500,
		Wins:                   5000,
		RoundsCompleted:        90000,
		PowerUpsCollected:      30000,
		GamesPlayedHyper:       2500,
		WinsHyper:              1000,
		RoundsCompletedHyper:   15000,
		PowerUpsCollectedHyper: 4000,
	}
}

func TestDotted(t *testing.T) {
	assert.Equal(t, "0", dotted(0, 0))
	assert.Equal(t, "999", dotted(999, 0))
	assert.Equal(t, "1.000", dotted(1000, 0))
	assert.Equal(t, "12.500", dotted(12500, 0))
	assert.Equal(t, "1.234.567", dotted(1234567, 0))
}

func TestDotted_Decimals(t *testing.T) {
	assert.Equal(t, "1.234.57", dotted(1234.567, 2))
	assert.Equal(t, "0.40", dotted(0.4, 2))
	assert.Equal(t, "-12.500", dotted(-12500, 0))
}

func TestSepInt(t *testing.T) {
	assert.Equal(t, "5.000", sepInt(5000))
	assert.Equal(t, "42", sepInt(42))
}

func TestModeSlices(t *testing.T) {
	s := samplePixelParty()

	overall := overallStats(s)
	assert.Equal(t, 12500, overall.Games)
	assert.Equal(t, 7500, overall.Losses)

	hyper := hyperStats(s)
	assert.Equal(t, 2500, hyper.Games)
	assert.Equal(t, 1500, hyper.Losses)

	normal := normalStats(s)
	assert.Equal(t, 10000, normal.Games)
	assert.Equal(t, 4000, normal.Wins)
	assert.Equal(t, 6000, normal.Losses)
	assert.Equal(t, 75000, normal.Rounds)
	assert.Equal(t, 26000, normal.Powerups)
}

func TestModeStatsRatios(t *testing.T) {
	m := modeStats{Games: 100, Wins: 40, Losses: 60, Rounds: 700, Powerups: 250}

	assert.InDelta(t, 0.6666667, m.winLoss(), 1e-6)
	assert.InDelta(t, 40.0, m.winrate(), 1e-9)
	assert.InDelta(t, 7.0, m.roundsPerGame(), 1e-9)
	assert.InDelta(t, 2.5, m.powerupsPerGame(), 1e-9)
}

func TestModeStatsRatios_ZeroEdges(t *testing.T) {
	var empty modeStats
	assert.Zero(t, empty.winrate())
	assert.Zero(t, empty.roundsPerGame())
	assert.Zero(t, empty.powerupsPerGame())

	flawless := modeStats{Games: 10, Wins: 10}
	assert.InDelta(t, 10.0, flawless.winLoss(), 1e-9)
}

func TestStatBlock(t *testing.T) {
	block := statBlock(modeStats{Games: 12500, Wins: 5000, Losses: 7500, Rounds: 90000, Powerups: 30000})

	assert.Contains(t, block, "**Total Games**: 12.500")
	assert.Contains(t, block, "**Wins**: 5.000")
	assert.Contains(t, block, "**W/L Ratio**: 0.667")
	assert.Contains(t, block, "**Winrate**: 40.000%")
	assert.Contains(t, block, "**RPG**: 7.20")
	assert.Contains(t, block, "**PPG**: 2.40")
}

func TestDiffTag(t *testing.T) {
	assert.Equal(t, "(+500)", diffTag(1500, 1000, 0, ""))
	assert.Equal(t, "(-500)", diffTag(1000, 1500, 0, ""))
	assert.Equal(t, "(=)", diffTag(1000, 1000, 0, ""))
	assert.Equal(t, "(= %)", diffTag(40, 40, 2, "%"))
	assert.Equal(t, "(+2.50%)", diffTag(42.5, 40, 2, "%"))
	assert.Equal(t, "(+1.500)", diffTag(2500, 1000, 0, ""))
}

func TestCompareBlocks(t *testing.T) {
	a := modeStats{Games: 200, Wins: 120, Losses: 80, Rounds: 1400, Powerups: 500}
	b := modeStats{Games: 100, Wins: 40, Losses: 60, Rounds: 700, Powerups: 250}

	left, right := compareBlocks(a, b)

	require.Equal(t, len(compareLabels), len(strings.Split(left, "\n")))
	require.Equal(t, len(compareLabels), len(strings.Split(right, "\n")))
	assert.Contains(t, left, "**Games**: 200 (+100)")
	assert.Contains(t, right, "**Games**: 100 (-100)")
	assert.Contains(t, left, "**Winrate**: 60.00% (+20.00%)")
	assert.Contains(t, right, "**Winrate**: 40.00% (-20.00%)")
}
