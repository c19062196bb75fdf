package verify

// Reason enumerates why an eligibility check rejected a player. The
// evaluator short-circuits, so a verdict carries exactly one reason.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonNoLinkedAccount
	ReasonHandleMismatch
	ReasonLevelTooLow
	ReasonUnknownPlatformAge
	ReasonPlatformAccountTooNew
	ReasonUnknownRequesterAge
	ReasonRequesterAccountTooNew
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonNoLinkedAccount:
		return "no linked Discord account"
	case ReasonHandleMismatch:
		return "Discord tag mismatch"
	case ReasonLevelTooLow:
		return "Hypixel level too low"
	case ReasonUnknownPlatformAge:
		return "unknown Hypixel account age"
	case ReasonPlatformAccountTooNew:
		return "Hypixel account too new"
	case ReasonUnknownRequesterAge:
		return "unknown Discord account age"
	case ReasonRequesterAccountTooNew:
		return "Discord account too new"
	}
	return "unknown"
}

// Verdict is the outcome of the eligibility chain. For rejections the
// context fields relevant to the reason are populated so messages and audit
// records can show the compared values.
type Verdict struct {
	Eligible bool
	Reason   Reason

	// Handle mismatch context.
	LinkedHandle string
	ActualHandle string

	// Level context. Level is the two-decimal value the comparison used.
	Level         float64
	RequiredLevel int

	// Age context. AgeDays is the actual account age in whole days;
	// RequiredAge is the configured requirement string (e.g. "30d").
	AgeDays     int
	RequiredAge string
}

// Requirements are the per-community thresholds the evaluator applies.
// The age fields keep the settings-store string form; they are parsed at
// evaluation time so a bad value surfaces as a configuration error.
type Requirements struct {
	MinDiscordAge string
	MinHypixelAge string
	MinLevel      int
}
