package pipelines

import (
	"regexp"
	"strings"
)

var (
	timestampPattern = regexp.MustCompile(`\(\d{1,2}:\d{2} - \d{1,2}:\d{2}\)`)
	boldPattern      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	parensPattern    = regexp.MustCompile(`\(.*?\)`)
	blankPattern     = regexp.MustCompile(`\n+`)

	titleNumberPattern = regexp.MustCompile(`^\d+[\.\)]?\s*`)
)

// CleanScript strips generator artifacts from a raw script: timestamp ranges,
// markdown bold markers, parenthetical stage directions, and runs of blank
// lines. The passes run in that order; timestamps must go before the general
// parenthetical pass or their digits would leak through.
func CleanScript(raw string) string {
	cleaned := timestampPattern.ReplaceAllString(raw, "")
	cleaned = boldPattern.ReplaceAllString(cleaned, "$1")
	cleaned = parensPattern.ReplaceAllString(cleaned, "")
	cleaned = blankPattern.ReplaceAllString(cleaned, "\n")
	return strings.TrimSpace(cleaned)
}

// processTitles splits generator output into at most five titles, stripping
// any list numbering the generator added despite instructions.
func processTitles(raw string) []string {
	titles := []string{}
	for _, line := range strings.Split(raw, "\n") {
		title := strings.TrimSpace(titleNumberPattern.ReplaceAllString(strings.TrimSpace(line), ""))
		if title == "" {
			continue
		}
		titles = append(titles, title)
		if len(titles) == 5 {
			break
		}
	}
	return titles
}
