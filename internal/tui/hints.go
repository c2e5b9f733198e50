package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "open")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for bottom bar: "j/k:move l:toggle"
func (a App) renderHints(hints HintSet) string {
	allHints := hints.All()
	if len(allHints) == 0 {
		return ""
	}

	parts := make([]string, len(allHints))
	for i, h := range allHints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, gg/G)
	Action []Hint // Action hints (Enter, o, Y)
	View   []Hint // View hints (sort, expand, search)
	System []Hint // System hints (T, q, Esc)
}

// All returns all hints flattened in display order: Nav + Action + View + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.View)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.View...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the hints for the current mode and selection.
func (a App) getContextualHints() HintSet {
	if a.mode == ModeSearch {
		return HintSet{
			Action: []Hint{{"Enter", "apply"}},
			System: []Hint{{"Esc", "clear"}},
		}
	}

	hints := HintSet{
		Nav:  []Hint{{"j/k", "move"}, {"gg/G", "top/bottom"}},
		View: []Hint{{"1-4", "sort"}, {"E/C", "expand/collapse"}, {"/", "search"}},
		System: []Hint{
			{"T", "theme"},
			{"q", "quit"},
		},
	}

	if row, ok := a.selectedRow(); ok {
		if row.IsHeader() {
			desc := "expand"
			if row.Expanded {
				desc = "collapse"
			}
			hints.Action = []Hint{{"l", desc}}
		} else {
			hints.Action = []Hint{{"l/o", "open"}, {"Y", "copy link"}}
		}
	}

	if a.Frame().Query != "" {
		hints.System = append([]Hint{{"Esc", "clear search"}}, hints.System...)
	}
	return hints
}
