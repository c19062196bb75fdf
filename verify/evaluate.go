package verify

import (
	"time"

	"github.com/Dopachen/wisk-bot/hypixel"
)

// Evaluate runs the eligibility chain against a player document. The
// predicates are ordered so the cheapest and most common failure surfaces
// first, and the first failure short-circuits: later predicates are never
// evaluated, so a verdict never mixes reasons.
//
// The chain: linked account present, linked handle matches the requester's
// current tag, network level meets the minimum, Hypixel account old enough,
// Discord account old enough.
//
// An error return means the requirements themselves are malformed; that is
// a configuration bug and must not be shown as a player rejection.
func Evaluate(p *hypixel.Player, claimedTag string, requesterCreated time.Time, reqs Requirements, now time.Time) (Verdict, error) {
	linked := p.LinkedDiscord()
	if linked == "" {
		return Verdict{Reason: ReasonNoLinkedAccount}, nil
	}

	if linked != claimedTag {
		return Verdict{
			Reason:       ReasonHandleMismatch,
			LinkedHandle: linked,
			ActualHandle: claimedTag,
		}, nil
	}

	level := hypixel.NetworkLevel(p.NetworkExp)
	if level < float64(reqs.MinLevel) {
		return Verdict{
			Reason:        ReasonLevelTooLow,
			Level:         level,
			RequiredLevel: reqs.MinLevel,
		}, nil
	}

	firstLogin, known := p.FirstLoginTime()
	if !known {
		return Verdict{Reason: ReasonUnknownPlatformAge}, nil
	}
	minHypixelAge, err := ParseDuration(reqs.MinHypixelAge)
	if err != nil {
		return Verdict{}, err
	}
	if platformAge := now.Sub(firstLogin); platformAge < minHypixelAge {
		return Verdict{
			Reason:      ReasonPlatformAccountTooNew,
			AgeDays:     int(platformAge.Hours() / 24),
			RequiredAge: reqs.MinHypixelAge,
		}, nil
	}

	if requesterCreated.IsZero() {
		return Verdict{Reason: ReasonUnknownRequesterAge}, nil
	}
	minDiscordAge, err := ParseDuration(reqs.MinDiscordAge)
	if err != nil {
		return Verdict{}, err
	}
	if requesterAge := now.Sub(requesterCreated); requesterAge < minDiscordAge {
		return Verdict{
			Reason:      ReasonRequesterAccountTooNew,
			AgeDays:     int(requesterAge.Hours() / 24),
			RequiredAge: reqs.MinDiscordAge,
		}, nil
	}

	return Verdict{Eligible: true, Level: level}, nil
}
