package components

import (
	"fmt"
	"strings"

	"github.com/aryan-gupta7/track-it-v1/internal/pkg/tui/theme"
)

// KeyBinding is one key hint in the footer.
type KeyBinding struct {
	Key  string
	Desc string
}

// HelpBar renders footer key hints. Screen hints come first, then the global ones.
type HelpBar struct {
	global   []KeyBinding
	byScreen map[int][]KeyBinding
	styles   *theme.Styles
}

// NewHelpBar creates a help bar whose first hint selects among screens by number.
func NewHelpBar(screens []string, global ...KeyBinding) HelpBar {
	var bindings []KeyBinding
	if len(screens) > 0 {
		key := "1"
		if len(screens) > 1 {
			key = fmt.Sprintf("1-%d", len(screens))
		}
		bindings = append(bindings, KeyBinding{Key: key, Desc: strings.ToLower(strings.Join(screens, "/"))})
	}
	return HelpBar{
		global:   append(bindings, global...),
		byScreen: make(map[int][]KeyBinding),
		styles:   theme.Default(),
	}
}

// On adds hints shown only while screen is active.
func (h *HelpBar) On(screen int, bindings ...KeyBinding) {
	h.byScreen[screen] = append(h.byScreen[screen], bindings...)
}

// View renders the hints for screen.
func (h HelpBar) View(screen int) string {
	var parts []string
	for _, kb := range append(append([]KeyBinding{}, h.byScreen[screen]...), h.global...) {
		parts = append(parts, h.styles.HelpKey.Render(kb.Key)+h.styles.Muted.Render(":"+kb.Desc))
	}
	return strings.Join(parts, " ")
}
