package domain

import "strings"

// Category is a productivity tier used by the productivity score.
type Category int

const (
	CategoryHighlyProductive Category = iota
	CategoryProductive
	CategoryNeutral
	CategoryDistracting
	CategoryHighlyDistracting
)

func (c Category) String() string {
	switch c {
	case CategoryHighlyProductive:
		return "highly-productive"
	case CategoryProductive:
		return "productive"
	case CategoryDistracting:
		return "distracting"
	case CategoryHighlyDistracting:
		return "highly-distracting"
	default:
		return "neutral"
	}
}

// Multiplier returns the score multiplier of the tier.
func (c Category) Multiplier() float64 {
	switch c {
	case CategoryHighlyProductive:
		return 2
	case CategoryProductive:
		return 1
	case CategoryDistracting:
		return -1
	case CategoryHighlyDistracting:
		return -2
	default:
		return 0
	}
}

// Keywords is a case-insensitive substring match list.
type Keywords []string

// Matches reports whether any keyword occurs in name, ignoring case.
func (k Keywords) Matches(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range k {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// CategoryRule binds a tier to its keywords.
type CategoryRule struct {
	Category Category
	Keywords Keywords
}

// ProductivityCategories is evaluated in order; the first matching tier wins.
var ProductivityCategories = []CategoryRule{
	{CategoryHighlyProductive, Keywords{"code", "cursor", "terminal", "git", "intellij", "vscode"}},
	{CategoryProductive, Keywords{"word", "excel", "powerpoint", "notion", "slack", "teams"}},
	{CategoryNeutral, Keywords{"chrome", "firefox", "brave", "explorer"}},
	{CategoryDistracting, Keywords{"youtube", "netflix", "spotify", "games"}},
	{CategoryHighlyDistracting, Keywords{"facebook", "instagram", "twitter", "tiktok"}},
}

// PeakProductiveApps selects the time that counts toward the peak productivity window.
// It is narrower than ProductivityCategories and must stay a separate table.
var PeakProductiveApps = Keywords{"code", "cursor", "terminal", "git"}

// WorkApps selects the time that counts as work inside the work-hour window.
var WorkApps = Keywords{
	"code", "visual studio", "intellij", "pycharm",
	"git", "github", "terminal", "cmd", "powershell",
	"word", "excel", "powerpoint", "outlook",
	"teams", "slack", "zoom", "chrome", "firefox", "edge", "brave", "cursor",
}

// ClassifyProductivity returns the first tier whose keywords match, or neutral.
func ClassifyProductivity(appName string) Category {
	return ClassifyWith(ProductivityCategories, appName)
}

// ClassifyWith classifies against an explicit ordered rule table.
func ClassifyWith(rules []CategoryRule, appName string) Category {
	for _, rule := range rules {
		if rule.Keywords.Matches(appName) {
			return rule.Category
		}
	}
	return CategoryNeutral
}

// HourlyWeights returns the time-of-day weighting used by the productivity score.
func HourlyWeights() [24]float64 {
	var w [24]float64
	for h := range w {
		w[h] = 1
	}
	for h := 9; h <= 17; h++ {
		w[h] = 1.5
	}
	for _, h := range []int{23, 0, 1, 2, 3, 4} {
		w[h] = 0.5
	}
	return w
}
