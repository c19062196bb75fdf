package verify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dopachen/wisk-bot/audit"
	"github.com/Dopachen/wisk-bot/hypixel"
	logger "github.com/Dopachen/wisk-bot/log"
	"github.com/Dopachen/wisk-bot/mojang"
	"github.com/Dopachen/wisk-bot/roles"
)

// Status is the terminal state of one verification pass.
type Status int

const (
	StatusVerified Status = iota
	StatusNameNotFound
	StatusRateLimited
	StatusNoProfile
	StatusLookupFailed
	StatusRejected
	StatusInternalError
)

// Request carries everything one verification attempt needs. Requests are
// self-contained; concurrent attempts for different users share nothing.
type Request struct {
	Community     string
	GuildID       string
	UserID        string
	UserTag       string
	UserCreated   time.Time
	SubmittedName string

	UnverifiedRoleID string
	AccessRoleIDs    []string
	WinTable         roles.Table
	SetNickname      bool
}

// Outcome is what the interaction layer renders. Exactly one outcome is
// produced per request; on StatusRejected the Verdict is set.
type Outcome struct {
	Status  Status
	Verdict Verdict

	Profile    *mojang.Profile
	Level      float64
	FirstLogin time.Time
	Wins       int

	TierGranted int
	TierFailed  int

	// BaseRolesFailed is set when the access-role swap errored on an
	// otherwise successful verification.
	BaseRolesFailed bool
}

// IdentityResolver maps a display name to a stable identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, name string) (*mojang.Profile, error)
}

// StatsSource fetches the player document for an identity.
type StatsSource interface {
	Player(ctx context.Context, uuid string) (*hypixel.Player, error)
}

// RequirementsSource yields the community's current thresholds.
type RequirementsSource interface {
	Requirements(ctx context.Context, community string) (Requirements, error)
}

// MemberEditor is the slice of the chat platform the success path mutates.
type MemberEditor interface {
	AddRole(guildID, userID, roleID string) error
	RemoveRole(guildID, userID, roleID string) error
	SetNickname(guildID, userID, nick string) error
}

// TierGranter reconciles win-tier roles against a threshold table and
// performs the base access swap.
type TierGranter interface {
	GrantTier(guildID, userID string, counter int, table roles.Table) roles.GrantResult
	SwapBase(guildID, userID, unverifiedRoleID string, accessRoleIDs []string) error
}

// AuditSink records terminal states. May be nil when a community has no
// log channel configured.
type AuditSink interface {
	Post(rec audit.Record)
}

// Orchestrator runs the verification pipeline: resolve, fetch, evaluate,
// reconcile. Every stage before reconciliation can fail terminally; no
// mutation happens until the player is eligible, so there is nothing to
// roll back.
type Orchestrator struct {
	Resolver IdentityResolver
	Stats    StatsSource
	Settings RequirementsSource
	Members  MemberEditor
	Granter  TierGranter
	Audit    AuditSink

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func (o *Orchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now().UTC()
	}
	return time.Now().UTC()
}

// Run executes one verification pass. A failed request is simply
// resubmitted by the user; there is no retry state.
func (o *Orchestrator) Run(ctx context.Context, req Request) Outcome {
	reqs, err := o.Settings.Requirements(ctx, req.Community)
	if err != nil {
		logger.Error(fmt.Sprintf("loading requirements for community %s", req.Community), err)
		return o.finish(req, Outcome{Status: StatusInternalError})
	}

	profile, err := o.Resolver.Resolve(ctx, req.SubmittedName)
	if err != nil {
		switch {
		case errors.Is(err, mojang.ErrNotFound):
			return o.finish(req, Outcome{Status: StatusNameNotFound})
		default:
			logger.Error(fmt.Sprintf("resolving name %q", req.SubmittedName), err)
			return o.finish(req, Outcome{Status: StatusLookupFailed})
		}
	}

	player, err := o.Stats.Player(ctx, profile.UUID)
	if err != nil {
		out := Outcome{Profile: profile}
		switch {
		case errors.Is(err, hypixel.ErrRateLimited):
			out.Status = StatusRateLimited
		case errors.Is(err, hypixel.ErrNoProfile):
			out.Status = StatusNoProfile
		default:
			logger.Error(fmt.Sprintf("fetching player document for %s", profile.UUID), err)
			out.Status = StatusLookupFailed
		}
		return o.finish(req, out)
	}

	now := o.now()
	verdict, err := Evaluate(player, req.UserTag, req.UserCreated, reqs, now)
	if err != nil {
		logger.Error(fmt.Sprintf("evaluating eligibility for community %s", req.Community), err)
		return o.finish(req, Outcome{Status: StatusInternalError, Profile: profile})
	}
	if !verdict.Eligible {
		return o.finish(req, Outcome{Status: StatusRejected, Verdict: verdict, Profile: profile})
	}

	// Eligible: commit side effects. Order matters for user experience,
	// not correctness; every grant is idempotent.
	baseRolesFailed := false
	if err := o.Granter.SwapBase(req.GuildID, req.UserID, req.UnverifiedRoleID, req.AccessRoleIDs); err != nil {
		logger.Error(fmt.Sprintf("granting access roles to %s", req.UserID), err)
		baseRolesFailed = true
	}

	if req.SetNickname {
		// A missing Manage Nicknames permission must not fail the
		// verification.
		if err := o.Members.SetNickname(req.GuildID, req.UserID, profile.Name); err != nil {
			logger.Error(fmt.Sprintf("setting nickname for %s", req.UserID), err)
		}
	}

	stats, _ := player.PixelParty()
	var grant roles.GrantResult
	if len(req.WinTable) > 0 {
		grant = o.Granter.GrantTier(req.GuildID, req.UserID, stats.Wins, req.WinTable)
	}

	out := Outcome{
		Status:          StatusVerified,
		Verdict:         verdict,
		Profile:         profile,
		Level:           hypixel.NetworkLevel(player.NetworkExp),
		Wins:            stats.Wins,
		TierGranted:     grant.Granted,
		TierFailed:      grant.Failed,
		BaseRolesFailed: baseRolesFailed,
	}
	if first, known := player.FirstLoginTime(); known {
		out.FirstLogin = first
	}
	return o.finish(req, out)
}

// finish emits the audit record for a terminal state and passes the
// outcome through. Every terminal state produces exactly one record.
func (o *Orchestrator) finish(req Request, out Outcome) Outcome {
	if o.Audit != nil {
		o.Audit.Post(o.record(req, out))
	}
	return out
}

func (o *Orchestrator) record(req Request, out Outcome) audit.Record {
	rec := audit.Record{
		Color: audit.ColorRed,
		When:  o.now(),
		Fields: []audit.Field{
			{Name: "User", Value: fmt.Sprintf("%s (`%s`)", req.UserTag, req.UserID)},
			{Name: "Entered Username", Value: req.SubmittedName},
		},
	}

	switch out.Status {
	case StatusVerified:
		rec.Title = "✅ New Verification Logged"
		rec.Color = audit.ColorGreen
		rec.Description = fmt.Sprintf("User `%s` has successfully verified as `%s`.", req.UserTag, out.Profile.Name)
		rec.Thumbnail = fmt.Sprintf("https://minotar.net/helm/%s/100", out.Profile.UUID)
		firstLogin := "Unknown"
		if !out.FirstLogin.IsZero() {
			firstLogin = out.FirstLogin.Format("2006-01-02 15:04:05 UTC")
		}
		discordAge := "Unknown"
		created := "Unknown"
		if !req.UserCreated.IsZero() {
			created = req.UserCreated.UTC().Format("2006-01-02 15:04:05 UTC")
			discordAge = fmt.Sprintf("%d days", int(o.now().Sub(req.UserCreated).Hours()/24))
		}
		rec.Fields = []audit.Field{
			{Name: "Minecraft IGN", Value: out.Profile.Name},
			{Name: "UUID", Value: out.Profile.UUID},
			{Name: "Hypixel Level", Value: fmt.Sprintf("%.2f", out.Level)},
			{Name: "First Hypixel Join", Value: firstLogin},
			{Name: "Discord Tag", Value: req.UserTag},
			{Name: "Discord ID", Value: req.UserID},
			{Name: "Discord Created", Value: created},
			{Name: "Account Age", Value: discordAge},
			{Name: "Tier Roles", Value: fmt.Sprintf("%d granted, %d failed", out.TierGranted, out.TierFailed)},
		}
		baseRoles := "granted"
		if out.BaseRolesFailed {
			baseRoles = "failed"
		}
		rec.Fields = append(rec.Fields, audit.Field{Name: "Base Roles", Value: baseRoles})
	case StatusNameNotFound:
		rec.Title = "Verification Attempt Failed"
		rec.Fields = append(rec.Fields, audit.Field{Name: "Reason", Value: "Invalid Minecraft username"})
	case StatusRateLimited:
		rec.Title = "Verification Error: Hypixel API Unavailable"
		rec.Color = audit.ColorOrange
		rec.Fields = append(rec.Fields, audit.Field{Name: "Reason", Value: "Hypixel API is rate limiting requests; the user needs to wait before trying again."})
	case StatusNoProfile:
		rec.Title = "Verification Error: No Hypixel Account"
		rec.Fields = append(rec.Fields, audit.Field{Name: "Reason", Value: "No player document in the Hypixel response — the account likely never joined Hypixel."})
	case StatusLookupFailed:
		rec.Title = "Verification Error: Lookup Failed"
		rec.Color = audit.ColorOrange
		rec.Fields = append(rec.Fields, audit.Field{Name: "Reason", Value: "An upstream API was unavailable."})
	case StatusInternalError:
		rec.Title = "Verification Error: Internal"
		rec.Color = audit.ColorOrange
		rec.Fields = append(rec.Fields, audit.Field{Name: "Reason", Value: "A configuration or internal error stopped the attempt."})
	case StatusRejected:
		rec.Title = fmt.Sprintf("Verification Error: %s", rejectionTitle(out.Verdict.Reason))
		rec.Fields = append(rec.Fields, rejectionFields(out.Verdict)...)
	}
	return rec
}

func rejectionTitle(r Reason) string {
	switch r {
	case ReasonNoLinkedAccount:
		return "Missing Discord Link"
	case ReasonHandleMismatch:
		return "Discord Tag Mismatch"
	case ReasonLevelTooLow:
		return "Hypixel Level Too Low"
	case ReasonUnknownPlatformAge:
		return "Missing Hypixel Join Date"
	case ReasonPlatformAccountTooNew:
		return "Hypixel Account Too New"
	case ReasonUnknownRequesterAge:
		return "Discord Account Age Unknown"
	case ReasonRequesterAccountTooNew:
		return "Discord Account Too New"
	}
	return "Rejected"
}

func rejectionFields(v Verdict) []audit.Field {
	fields := []audit.Field{}
	switch v.Reason {
	case ReasonHandleMismatch:
		fields = append(fields,
			audit.Field{Name: "Linked Discord", Value: v.LinkedHandle, Inline: true},
			audit.Field{Name: "User's Discord Tag", Value: v.ActualHandle, Inline: true},
		)
	case ReasonLevelTooLow:
		fields = append(fields,
			audit.Field{Name: "Level", Value: fmt.Sprintf("%d", int(v.Level)), Inline: true},
			audit.Field{Name: "Required Level", Value: fmt.Sprintf("%d", v.RequiredLevel), Inline: true},
		)
	case ReasonPlatformAccountTooNew, ReasonRequesterAccountTooNew:
		fields = append(fields,
			audit.Field{Name: "Account Age", Value: fmt.Sprintf("%d days", v.AgeDays), Inline: true},
			audit.Field{Name: "Required Age", Value: v.RequiredAge, Inline: true},
		)
	}
	fields = append(fields, audit.Field{Name: "Reason", Value: v.Reason.String()})
	return fields
}
