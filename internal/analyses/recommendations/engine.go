package recommendations

import (
	"strings"
	"unicode"

	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/markdown"
)

const (
	currentSkillsLabel = "Current Skills"
	missingSkillsLabel = "Missing Skills"
	proficiencyLabel   = "Skill Proficiency"
	coursesHeading     = "## Recommended Courses"
	videosHeading      = "## Recommended Videos"
	skillsHeading      = "## Skills Analysis"
	defaultPlatform    = "YouTube"
)

// FromText parses every recommendation kind out of an analysis response.
func FromText(text string) Set {
	return Set{
		Courses:       ExtractCourses(text),
		Videos:        ExtractVideos(text),
		CurrentSkills: CurrentSkills(text),
		MissingSkills: MissingSkills(text),
	}
}

// CurrentSkills lists the items between "Current Skills" and "Missing Skills".
func CurrentSkills(text string) []string {
	scope := skillsScope(text)
	idx := strings.Index(scope, currentSkillsLabel)
	if idx < 0 {
		return []string{}
	}
	part := dropFirstLine(scope[idx+len(currentSkillsLabel):])
	if end := strings.Index(part, missingSkillsLabel); end >= 0 {
		part = part[:end]
	}
	return skillItems(part)
}

// MissingSkills lists the items after "Missing Skills" up to the next "##".
func MissingSkills(text string) []string {
	part, ok := markdown.After(skillsScope(text), missingSkillsLabel)
	if !ok {
		return []string{}
	}
	return skillItems(dropFirstLine(part))
}

// skillsScope narrows the search to the Skills Analysis section when there is one.
func skillsScope(text string) string {
	if section, ok := markdown.After(text, skillsHeading); ok {
		return section
	}
	return text
}

func skillItems(body string) []string {
	items := markdown.Items(body, true)
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if strings.HasPrefix(item, proficiencyLabel) || strings.HasPrefix(item, missingSkillsLabel) {
			continue
		}
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

// entry is one list item plus the continuation lines that belong to it.
type entry struct {
	head  string
	lines []string
}

// groupEntries splits a section into list entries. A bullet or numbered line starts a new
// entry unless it is indented deeper than the current entry's marker, in which case it
// continues it. Other lines continue the current entry.
func groupEntries(body string) []entry {
	var out []entry
	var current *entry
	indent := 0
	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lead := leadingWidth(raw)
		isItem := markdown.IsBullet(line) || markdown.IsNumbered(line)
		if isItem && (current == nil || lead <= indent) {
			if current != nil {
				out = append(out, *current)
			}
			text, _ := markdown.Item(line, true)
			current = &entry{head: markdown.Clean(text)}
			indent = lead
			continue
		}
		if current == nil {
			continue
		}
		if text, ok := markdown.Item(line, true); ok {
			line = text
		}
		if cleaned := markdown.Clean(line); cleaned != "" {
			current.lines = append(current.lines, cleaned)
		}
	}
	if current != nil {
		out = append(out, *current)
	}
	return out
}

// ExtractCourses parses the Recommended Courses section into courses.
func ExtractCourses(text string) []Course {
	body, ok := markdown.After(text, coursesHeading)
	if !ok {
		return []Course{}
	}
	entries := groupEntries(dropFirstLine(body))
	out := make([]Course, 0, len(entries))
	for _, e := range entries {
		if c, ok := parseCourse(e); ok {
			out = append(out, c)
		}
	}
	return out
}

func parseCourse(e entry) (Course, bool) {
	if e.head == "" {
		return Course{}, false
	}
	c := Course{Name: e.head}
	for _, line := range e.lines {
		lower := strings.ToLower(line)
		switch {
		case containsAny(lower, "http", "www."):
			c.URL = line
		case containsAny(lower, "platform", "udemy", "coursera", "edx"):
			c.Platform = line
		case containsAny(lower, "hour", "week", "month", "self-paced"):
			c.Duration = line
		case containsAny(lower, ".com", ".org"):
			c.URL = line
		default:
			c.Description = appendSentence(c.Description, line)
		}
	}
	if c.Platform == "" {
		if name, platform, ok := splitDash(c.Name); ok {
			c.Name, c.Platform = name, platform
		}
	}
	return c, true
}

// ExtractVideos parses the Recommended Videos section into videos.
func ExtractVideos(text string) []Video {
	body, ok := markdown.After(text, videosHeading)
	if !ok {
		return []Video{}
	}
	entries := groupEntries(dropFirstLine(body))
	out := make([]Video, 0, len(entries))
	for _, e := range entries {
		if v, ok := parseVideo(e); ok {
			out = append(out, v)
		}
	}
	return out
}

func parseVideo(e entry) (Video, bool) {
	if e.head == "" {
		return Video{}, false
	}
	v := Video{Title: e.head, Platform: defaultPlatform}
	for _, line := range e.lines {
		lower := strings.ToLower(line)
		switch {
		case containsAny(lower, "youtube.com", "youtu.be"):
			v.URL = line
		case containsAny(lower, "channel", "youtube") || strings.Contains(line, "-"):
			if _, after, ok := strings.Cut(line, "-"); ok && strings.TrimSpace(after) != "" {
				v.Channel = strings.TrimSpace(after)
			} else {
				v.Channel = line
			}
		case containsAny(lower, "minute", "hour", "min"):
			v.Duration = line
		default:
			v.Description = appendSentence(v.Description, line)
		}
	}
	if v.Channel == "" {
		if title, channel, ok := splitDash(v.Title); ok {
			v.Title, v.Channel = title, channel
		}
	}
	return v, true
}

// splitDash splits "Name - Platform" on its last " - ".
func splitDash(s string) (string, string, bool) {
	i := strings.LastIndex(s, " - ")
	if i <= 0 {
		return s, "", false
	}
	left := strings.Trim(strings.TrimSpace(s[:i]), `"`)
	right := strings.Trim(strings.TrimSpace(s[i+3:]), `"`)
	if left == "" || right == "" {
		return s, "", false
	}
	return left, right, true
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func appendSentence(existing, line string) string {
	if existing == "" {
		return line
	}
	return existing + " " + line
}

func dropFirstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return ""
}

func leadingWidth(s string) int {
	n := 0
	for _, r := range s {
		switch {
		case r == '\t':
			n += 4
		case unicode.IsSpace(r):
			n++
		default:
			return n
		}
	}
	return n
}
