package advisory

import "strings"

// Entry is an advisory line split for display.
type Entry struct {
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

var separators = []string{" - ", " — ", " – ", ":"}

// SplitEntry splits "title - detail" text at the earliest separator. Text
// without a separator, or with nothing before it, is returned whole as the
// title.
func SplitEntry(text string) Entry {
	text = strings.TrimSpace(text)

	cut, width := -1, 0
	for _, sep := range separators {
		if i := strings.Index(text, sep); i >= 0 && (cut < 0 || i < cut) {
			cut, width = i, len(sep)
		}
	}
	if cut < 0 {
		return Entry{Title: text}
	}

	title := strings.TrimSpace(text[:cut])
	if title == "" {
		return Entry{Title: text}
	}
	return Entry{Title: title, Detail: strings.TrimSpace(text[cut+width:])}
}

// SplitEntries applies SplitEntry to every line, preserving order.
func SplitEntries(lines []string) []Entry {
	out := make([]Entry, 0, len(lines))
	for _, l := range lines {
		out = append(out, SplitEntry(l))
	}
	return out
}
