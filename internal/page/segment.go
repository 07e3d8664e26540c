package page

import (
	"regexp"
	"strings"

	"github.com/campusbuddy/soc-events/internal/event"
)

// headerWindow bounds the date-line search. Dates announcing the page's
// own event appear near the top; a date line further down is more likely
// to belong to embedded related-content and must be ignored.
const headerWindow = 100

// junkLines are boilerplate/navigation tokens that never contribute to
// any output field. Kept as a single table so the segmentation rules are
// auditable in one place.
var junkLines = map[string]bool{
	"Invite":           true,
	"Details":          true,
	"Host":             true,
	"Suggested events": true,
	"Privacy":          true,
	"Terms":            true,
	"Advertising":      true,
	"Ad choices":       true,
	"Cookies":          true,
	"More":             true,
	"About":            true,
	"Discussion":       true,
}

var (
	suggestedPattern = regexp.MustCompile(`(?i)^Suggested events$`)
	respondedPattern = regexp.MustCompile(`(?i)people responded`)
	eventByPattern   = regexp.MustCompile(`(?i)^Event by `)
	publicPattern    = regexp.MustCompile(`(?i)^Public$`)
	anyonePattern    = regexp.MustCompile(`(?i)Anyone on or off Facebook`)
	seeMorePattern   = regexp.MustCompile(`(?i)^See (less|more)$`)
	stopPattern      = regexp.MustCompile(`(?i)^(Host|Suggested events|Privacy)$`)
)

// Date-line predicate signals. Literal phrasing varies across page
// variants (full sentence vs. compact range), so a month name alone is
// not enough; one corroborating signal is required.
var (
	monthPattern     = regexp.MustCompile(`(?i)\b(Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\b`)
	timePattern      = regexp.MustCompile(`\b\d{1,2}(:\d{2})?\s*([AaPp][Mm])?\b`)
	atFromPattern    = regexp.MustCompile(`(?i)\b(at|from)\b`)
	timezonePattern  = regexp.MustCompile(`(?i)\b(AEDT|AEST|NZDT|NZST|UTC|GMT)\b`)
	dayOfWeekPattern = regexp.MustCompile(`(?i)\b(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday|Mon|Tue|Wed|Thu|Fri|Sat|Sun)\b`)
	dashPattern      = regexp.MustCompile(`[–—-]`)
)

// IsDateLine reports whether a line is judged to encode the event's
// date/time span. A qualifying line contains a month name plus at least
// one corroborating signal: "at"/"from" with a time, a timezone
// abbreviation with a time, a day-of-week with a time, or a time with a
// range separator.
func IsDateLine(line string) bool {
	if !monthPattern.MatchString(line) {
		return false
	}
	hasTime := timePattern.MatchString(line)
	if atFromPattern.MatchString(line) && hasTime {
		return true
	}
	if timezonePattern.MatchString(line) && hasTime {
		return true
	}
	if dayOfWeekPattern.MatchString(line) && hasTime {
		return true
	}
	if hasTime && dashPattern.MatchString(line) {
		return true
	}
	return false
}

// Segment turns one opaque block of page text into a best-effort event
// candidate. It never fails: every field independently degrades to an
// empty string when its anchor cannot be found, and an empty Title or
// DateText tells the caller the page yielded nothing usable.
func Segment(raw string) event.Candidate {
	lines := splitLines(raw)

	// Everything at or after "Suggested events" is related-content noise
	// from the same page and must never leak into any field.
	for i, l := range lines {
		if suggestedPattern.MatchString(l) {
			lines = lines[:i]
			break
		}
	}

	dateIdx := -1
	window := lines
	if len(window) > headerWindow {
		window = window[:headerWindow]
	}
	for i, l := range window {
		if IsDateLine(l) {
			dateIdx = i
			break
		}
	}

	var dateText, title string
	if dateIdx >= 0 {
		dateText = lines[dateIdx]
		if dateIdx+1 < len(lines) {
			title = lines[dateIdx+1]
		}
	}

	location := findLocation(lines, dateIdx, title)
	description := collectDescription(lines, dateIdx)

	return event.Candidate{
		Title:       title,
		DateText:    dateText,
		Location:    location,
		Description: description,
	}
}

func splitLines(raw string) []string {
	parts := strings.Split(raw, "\n")
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			lines = append(lines, p)
		}
	}
	return lines
}

// findLocation scans forward from two lines after the date line for the
// first line that is not boilerplate. Titles are sometimes echoed below
// the date block, so a line equal to the title is skipped too.
func findLocation(lines []string, dateIdx int, title string) string {
	for i := dateIdx + 2; i >= 0 && i < len(lines); i++ {
		l := lines[i]
		if junkLines[l] {
			continue
		}
		if respondedPattern.MatchString(l) {
			continue
		}
		if eventByPattern.MatchString(l) {
			continue
		}
		if publicPattern.MatchString(l) {
			continue
		}
		if anyonePattern.MatchString(l) {
			continue
		}
		if l == title {
			continue
		}
		return l
	}
	return ""
}

// collectDescription accumulates lines into the description until a stop
// line is reached, skipping anything that belongs to other fields or to
// boilerplate. The start anchor prefers the visibility blurb, then a
// standalone "Public" line, then falls back to three lines after the
// date line.
func collectDescription(lines []string, dateIdx int) string {
	startIdx := -1
	for i, l := range lines {
		if anyonePattern.MatchString(l) {
			startIdx = i + 1
			break
		}
	}
	if startIdx < 0 {
		for i, l := range lines {
			if publicPattern.MatchString(l) {
				startIdx = i + 1
				break
			}
		}
	}
	if startIdx < 0 {
		startIdx = dateIdx + 3
	}

	var desc []string
	for i := startIdx; i >= 0 && i < len(lines); i++ {
		l := lines[i]
		if stopPattern.MatchString(l) {
			break
		}
		if junkLines[l] {
			continue
		}
		if IsDateLine(l) {
			continue
		}
		if respondedPattern.MatchString(l) {
			continue
		}
		if eventByPattern.MatchString(l) {
			continue
		}
		if publicPattern.MatchString(l) {
			continue
		}
		if seeMorePattern.MatchString(l) {
			continue
		}
		desc = append(desc, l)
	}

	return strings.TrimSpace(strings.Join(desc, "\n"))
}
