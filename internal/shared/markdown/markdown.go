// Package markdown holds the small text helpers used to read LLM markdown output.
package markdown

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	boldStars       = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicStar      = regexp.MustCompile(`\*(.*?)\*`)
	boldUnderscore  = regexp.MustCompile(`__(.*?)__`)
	italicUnderline = regexp.MustCompile(`_(.*?)_`)
	headerPrefix    = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	link            = regexp.MustCompile(`\[(.*?)\]\(.*?\)`)
)

// Clean strips emphasis, header markers and links, keeping the visible text.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	text = boldStars.ReplaceAllString(text, "$1")
	text = italicStar.ReplaceAllString(text, "$1")
	text = boldUnderscore.ReplaceAllString(text, "$1")
	text = italicUnderline.ReplaceAllString(text, "$1")
	text = headerPrefix.ReplaceAllString(text, "")
	text = link.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}

// IsBullet reports whether a trimmed line starts with -, * or •.
func IsBullet(line string) bool {
	line = strings.TrimSpace(line)
	return strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "•")
}

// IsNumbered reports whether a trimmed line starts like "1." or "2)".
func IsNumbered(line string) bool {
	line = strings.TrimSpace(line)
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	return i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')')
}

// Item returns the text of a bullet line without its marker. Numbered lines are
// accepted when numbered is set. ok is false for plain lines.
func Item(line string, numbered bool) (text string, ok bool) {
	line = strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(line, "**"):
		// A bold lead-in is an item in the LLM's lists; Clean removes the markers.
		return line, true
	case IsBullet(line):
		_, size := firstRune(line)
		return strings.TrimSpace(line[size:]), true
	case numbered && IsNumbered(line):
		i := strings.IndexAny(line, ".)")
		return strings.TrimSpace(line[i+1:]), true
	}
	return "", false
}

// Items returns the cleaned, non-empty list items found in body.
func Items(body string, numbered bool) []string {
	out := []string{}
	for _, line := range strings.Split(body, "\n") {
		text, ok := Item(line, numbered)
		if !ok {
			continue
		}
		if text = Clean(text); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// After returns the text following the first occurrence of marker, cut at the next "##".
func After(text, marker string) (string, bool) {
	idx := strings.Index(text, marker)
	if idx < 0 {
		return "", false
	}
	rest := text[idx+len(marker):]
	if end := strings.Index(rest, "##"); end >= 0 {
		rest = rest[:end]
	}
	return rest, true
}

// HeadingTitle turns a "## **Title**:" line into "Title".
func HeadingTitle(line string) string {
	title := strings.TrimLeft(strings.TrimSpace(line), "#")
	title = Clean(title)
	return strings.TrimRightFunc(strings.TrimSuffix(title, ":"), unicode.IsSpace)
}

func firstRune(s string) (rune, int) {
	for _, r := range s {
		return r, len(string(r))
	}
	return 0, 0
}
