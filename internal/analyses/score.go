package analyses

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/markdown"
)

var (
	resumeScorePattern = regexp.MustCompile(`Resume Score:\s*(\d{1,3})/100`)
	atsScorePattern    = regexp.MustCompile(`ATS Score:\s*(\d{1,3})/100`)
	firstNumberPattern = regexp.MustCompile(`\b(\d{1,3})\b`)
)

// ExtractScore finds the overall resume score, clamped to 0..100. It returns 0 when absent.
func ExtractScore(text string) int {
	text = stripBold(text)
	if section, ok := markdown.After(text, "## "+SectionResumeScore); ok {
		if score, ok := matchScore(resumeScorePattern, section); ok {
			return score
		}
		if score, ok := matchScore(firstNumberPattern, section); ok {
			return score
		}
	}
	if score, ok := matchScore(resumeScorePattern, text); ok {
		return score
	}
	return 0
}

// ExtractATSScore reads "ATS Score: N/100" from the ATS Optimization Assessment section only.
func ExtractATSScore(text string) int {
	text = stripBold(text)
	section, ok := markdown.After(text, "## "+SectionATS)
	if !ok {
		return 0
	}
	if score, ok := matchScore(atsScorePattern, section); ok {
		return score
	}
	return 0
}

func matchScore(re *regexp.Regexp, text string) (int, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return clampScore(n), true
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

func stripBold(text string) string {
	return strings.ReplaceAll(text, "**", "")
}
