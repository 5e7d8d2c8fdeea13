package models

import "strings"

// Credibility is the qualitative outcome of an analysis.
type Credibility string

const (
	CredibilityHigh   Credibility = "high"
	CredibilityMedium Credibility = "medium"
	CredibilityLow    Credibility = "low"
)

// Credibilities lists every level, best first.
var Credibilities = []Credibility{CredibilityHigh, CredibilityMedium, CredibilityLow}

// ParseCredibility normalizes s and reports whether it names a known level.
func ParseCredibility(s string) (Credibility, bool) {
	c := Credibility(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CredibilityHigh, CredibilityMedium, CredibilityLow:
		return c, true
	default:
		return "", false
	}
}

// Verdict is the fixed display information attached to a credibility level.
// Score is display emphasis only, not a measured probability.
type Verdict struct {
	Level       Credibility
	Title       string
	Description string
	Score       int
	Icon        string
	Color       string
}

var verdicts = map[Credibility]Verdict{
	CredibilityHigh: {
		Level:       CredibilityHigh,
		Title:       "Likely Credible",
		Description: "This content appears to be from reliable sources and contains factually accurate information.",
		Score:       90,
		Icon:        "check",
		Color:       "green",
	},
	CredibilityMedium: {
		Level:       CredibilityMedium,
		Title:       "Potentially Misleading",
		Description: "This content may contain some misleading information or requires further verification.",
		Score:       50,
		Icon:        "alert",
		Color:       "amber",
	},
	CredibilityLow: {
		Level:       CredibilityLow,
		Title:       "Likely Fake News",
		Description: "This content contains information that appears to be false or highly misleading.",
		Score:       15,
		Icon:        "cross",
		Color:       "red",
	},
}

// Verdict returns the display information for c. Unknown levels get the
// zero Verdict.
func (c Credibility) Verdict() Verdict {
	return verdicts[c]
}

func (c Credibility) String() string {
	return string(c)
}

// VerificationTips are shown under every verdict.
var VerificationTips = []string{
	"Check if other reputable sources are reporting the same information",
	"Verify the author or publisher's credentials",
	"Look for cited sources within the article",
	"Consider if the content seems emotionally manipulative",
}
