package verify

import (
	"testing"
	"time"

	"github.com/Dopachen/wisk-bot/hypixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var evalNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func testRequirements() Requirements {
	return Requirements{MinDiscordAge: "2w", MinHypixelAge: "1m", MinLevel: 3}
}

// eligiblePlayer builds a player document that passes every predicate
// against testRequirements and evalNow.
func eligiblePlayer(tag string) *hypixel.Player {
	p := &hypixel.Player{Displayname: "Steve", NetworkExp: 37500}
	p.SocialMedia.Links = map[string]string{"DISCORD": tag}
	first := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	p.FirstLogin = &first
	return p
}

func oldEnough() time.Time {
	return evalNow.AddDate(-1, 0, 0)
}

func TestEvaluate_Eligible(t *testing.T) {
	v, err := Evaluate(eligiblePlayer("steve#0"), "steve#0", oldEnough(), testRequirements(), evalNow)
	require.NoError(t, err)
	assert.True(t, v.Eligible)
	assert.Equal(t, ReasonNone, v.Reason)
	assert.InDelta(t, 4.0, v.Level, 1e-9)
}

func TestEvaluate_NoLinkedAccount(t *testing.T) {
	p := eligiblePlayer("steve#0")
	p.SocialMedia.Links = nil

	v, err := Evaluate(p, "steve#0", oldEnough(), testRequirements(), evalNow)
	require.NoError(t, err)
	assert.False(t, v.Eligible)
	assert.Equal(t, ReasonNoLinkedAccount, v.Reason)
}

func TestEvaluate_HandleMismatch(t *testing.T) {
	v, err := Evaluate(eligiblePlayer("someoneelse#0"), "steve#0", oldEnough(), testRequirements(), evalNow)
	require.NoError(t, err)
	assert.Equal(t, ReasonHandleMismatch, v.Reason)
	assert.Equal(t, "someoneelse#0", v.LinkedHandle)
	assert.Equal(t, "steve#0", v.ActualHandle)
}

func TestEvaluate_LevelTooLow(t *testing.T) {
	p := eligiblePlayer("steve#0")
	p.NetworkExp = 10000 // level 2

	v, err := Evaluate(p, "steve#0", oldEnough(), testRequirements(), evalNow)
	require.NoError(t, err)
	assert.Equal(t, ReasonLevelTooLow, v.Reason)
	assert.InDelta(t, 2.0, v.Level, 1e-9)
	assert.Equal(t, 3, v.RequiredLevel)
}

func TestEvaluate_LevelComparisonUsesFraction(t *testing.T) {
	// Level 3.52 displays as 3 but still meets a minimum of 3.
	p := eligiblePlayer("steve#0")
	p.NetworkExp = 30000

	v, err := Evaluate(p, "steve#0", oldEnough(), testRequirements(), evalNow)
	require.NoError(t, err)
	assert.True(t, v.Eligible)
}

func TestEvaluate_MissingFirstLogin(t *testing.T) {
	p := eligiblePlayer("steve#0")
	p.FirstLogin = nil

	v, err := Evaluate(p, "steve#0", oldEnough(), testRequirements(), evalNow)
	require.NoError(t, err)
	assert.Equal(t, ReasonUnknownPlatformAge, v.Reason)
}

func TestEvaluate_HypixelAccountTooNew(t *testing.T) {
	p := eligiblePlayer("steve#0")
	first := evalNow.AddDate(0, 0, -10).UnixMilli()
	p.FirstLogin = &first

	v, err := Evaluate(p, "steve#0", oldEnough(), testRequirements(), evalNow)
	require.NoError(t, err)
	assert.Equal(t, ReasonPlatformAccountTooNew, v.Reason)
	assert.Equal(t, 10, v.AgeDays)
	assert.Equal(t, "1m", v.RequiredAge)
}

func TestEvaluate_HypixelAgeBoundary(t *testing.T) {
	// Exactly the minimum age passes; the comparison is strict.
	p := eligiblePlayer("steve#0")
	first := evalNow.AddDate(0, 0, -30).UnixMilli()
	p.FirstLogin = &first

	v, err := Evaluate(p, "steve#0", oldEnough(), testRequirements(), evalNow)
	require.NoError(t, err)
	assert.True(t, v.Eligible)
}

func TestEvaluate_UnknownRequesterAge(t *testing.T) {
	v, err := Evaluate(eligiblePlayer("steve#0"), "steve#0", time.Time{}, testRequirements(), evalNow)
	require.NoError(t, err)
	assert.Equal(t, ReasonUnknownRequesterAge, v.Reason)
}

func TestEvaluate_RequesterAccountTooNew(t *testing.T) {
	created := evalNow.AddDate(0, 0, -3)

	v, err := Evaluate(eligiblePlayer("steve#0"), "steve#0", created, testRequirements(), evalNow)
	require.NoError(t, err)
	assert.Equal(t, ReasonRequesterAccountTooNew, v.Reason)
	assert.Equal(t, 3, v.AgeDays)
	assert.Equal(t, "2w", v.RequiredAge)
}

func TestEvaluate_ShortCircuitOrder(t *testing.T) {
	// A document failing several predicates reports only the first one.
	p := eligiblePlayer("someoneelse#0")
	p.NetworkExp = 0
	p.FirstLogin = nil

	v, err := Evaluate(p, "steve#0", time.Time{}, testRequirements(), evalNow)
	require.NoError(t, err)
	assert.Equal(t, ReasonHandleMismatch, v.Reason)
}

func TestEvaluate_MalformedRequirementIsError(t *testing.T) {
	reqs := testRequirements()
	reqs.MinHypixelAge = "soon"

	_, err := Evaluate(eligiblePlayer("steve#0"), "steve#0", oldEnough(), reqs, evalNow)
	assert.Error(t, err)
}
