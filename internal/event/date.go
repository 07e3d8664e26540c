package event

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Zone is the fixed civil timezone against which all wall-clock text is
// interpreted. Event pages show times local to the campus, not UTC.
const Zone = "Australia/Sydney"

var sydney = func() *time.Location {
	loc, err := time.LoadLocation(Zone)
	if err != nil {
		panic("loading timezone " + Zone + ": " + err.Error())
	}
	return loc
}()

// Parse failure modes. Both are expected filter outcomes for the caller,
// never crashes: an unparseable or past date means "skip this candidate".
var (
	// ErrUnparseable indicates no known layout matched the start text.
	ErrUnparseable = errors.New("date text does not match any known format")
	// ErrPastEvent indicates the start parsed but is not in the future.
	ErrPastEvent = errors.New("event start is not in the future")
)

var (
	tzAbbrevPattern  = regexp.MustCompile(`(?i)\b(AEDT|AEST|NZDT|NZST|UTC|GMT)\b`)
	utcOffsetPattern = regexp.MustCompile(`\s+[+-]\d{1,2}(:\d{2})?\s*$`)
	fromPattern      = regexp.MustCompile(`(?i)\bfrom\b`)
	meridiemPattern  = regexp.MustCompile(`(?i)\b(am|pm)\b`)
	// Compact ranges like "6:00-7:00" or "12-13" need spaces around the
	// hyphen to tokenize as "<start> - <end>". The trailing [^:] guard on
	// the day-range pattern keeps it from mangling times like "12:30".
	compactTimePattern = regexp.MustCompile(`(\d{1,2}:\d{2})-(\d{1,2}:\d{2})`)
	compactDayPattern  = regexp.MustCompile(`(\d{1,2})-(\d{1,2})($|[^:])`)
	rangeSplitPattern  = regexp.MustCompile(`\s-\s`)
)

var dashReplacer = strings.NewReplacer("–", "-", "—", "-")

// dateLayout is one entry in the ordered table of candidate formats.
// Layouts without a year parse to year 0 and have the year inferred from
// the reference time. Ordering matters: more specific layouts come first
// so looser ones cannot misfire on partial text.
type dateLayout struct {
	layout  string
	hasYear bool
}

// startLayouts covers the date phrasings observed on event pages, from
// full "Wednesday, March 4, 2026 at 18:00" sentences down to compact
// "Jan 2 at 18:00" fragments. Go's numeric tokens accept one or two
// digits, so "15:04" matches both "8:30" and "18:30". The am/pm layouts
// rely on normalizeDateText upper-casing the meridiem.
var startLayouts = []dateLayout{
	{"Monday, January 2, 2006 at 15:04", true},
	{"Monday, January 2, 2006 at 15", true},
	{"Monday, January 2, 2006 at 3:04 PM", true},
	{"Monday, January 2, 2006 at 3 PM", true},
	{"Monday 2 January 2006 at 15:04", true},
	{"Monday 2 January 2006 at 15", true},
	{"Monday 2 January 2006 at 3:04 PM", true},
	{"Monday 2 January 2006 at 3 PM", true},
	{"Mon, 2 Jan at 15:04", false},
	{"Mon, 2 Jan at 15", false},
	{"Mon, 2 Jan at 3:04 PM", false},
	{"Mon, 2 Jan at 3 PM", false},
	{"Mon 2 Jan at 15:04", false},
	{"Mon 2 Jan at 15", false},
	{"2 Jan at 15:04", false},
	{"2 Jan at 15", false},
	{"Jan 2 at 15:04", false},
	{"Jan 2 at 15", false},
	{"Jan 2 at 3:04 PM", false},
	{"Jan 2 at 3 PM", false},
}

// endTimeLayouts are bare time-of-day layouts tried first for the end of a
// range; the end instant is built on the start's calendar day.
var endTimeLayouts = []string{
	"3:04 PM",
	"3 PM",
	"15:04",
	"15",
}

// normalizeDateText strips timezone noise and unifies range punctuation so
// the text splits cleanly on " - ". Replacing "from" with "at" handles
// phrasings like "from 6pm"; this is a blunt heuristic and can misfire on
// prose accidentally selected as a date line (see tests).
func normalizeDateText(s string) string {
	s = tzAbbrevPattern.ReplaceAllString(s, "")
	s = utcOffsetPattern.ReplaceAllString(s, "")
	s = dashReplacer.Replace(s)
	s = fromPattern.ReplaceAllString(s, "at")
	s = meridiemPattern.ReplaceAllStringFunc(s, strings.ToUpper)
	s = compactTimePattern.ReplaceAllString(s, "${1} - ${2}")
	s = compactDayPattern.ReplaceAllString(s, "${1} - ${2}${3}")
	return strings.TrimSpace(s)
}

// splitRange splits normalized date text into start text and optional end
// text on a hyphen surrounded by whitespace.
func splitRange(s string) (string, string) {
	parts := rangeSplitPattern.Split(s, -1)
	fields := make([]string, 0, 2)
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		fields = append(fields, p)
		if len(fields) == 2 {
			break
		}
	}
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	default:
		return fields[0], fields[1]
	}
}

// parseAbsolute tries the ordered layout table against text, interpreting
// wall-clock values in the Sydney timezone. Layouts without a year resolve
// to the current year relative to now, or the following year if that
// instant has already passed (event pages only list upcoming events, so a
// bare "3 Jan" seen in December means next January).
func parseAbsolute(text string, now time.Time) (time.Time, bool) {
	for _, dl := range startLayouts {
		t, err := time.ParseInLocation(dl.layout, text, sydney)
		if err != nil {
			continue
		}
		if !dl.hasYear {
			t = resolveYear(t, now)
		}
		return t, true
	}
	return time.Time{}, false
}

func resolveYear(t, now time.Time) time.Time {
	year := now.In(sydney).Year()
	resolved := time.Date(year, t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, sydney)
	if !resolved.After(now) {
		resolved = time.Date(year+1, t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, sydney)
	}
	return resolved
}

// ParseRange converts a free-text date/time span into a DateRange, or
// reports that it cannot be trusted. The reference time now drives both
// year inference and past-event rejection, making the function a pure
// mapping from (dateText, now) to a result.
//
// Returns ErrUnparseable when no layout matches the start text, and
// ErrPastEvent when the start is not strictly after now. A missing or
// unparseable end never invalidates a valid start; End is nil instead.
func ParseRange(dateText string, now time.Time) (DateRange, error) {
	cleaned := normalizeDateText(dateText)
	if cleaned == "" {
		return DateRange{}, ErrUnparseable
	}

	startText, endText := splitRange(cleaned)
	start, ok := parseAbsolute(startText, now)
	if !ok {
		return DateRange{}, ErrUnparseable
	}
	if !start.After(now) {
		return DateRange{}, ErrPastEvent
	}

	if endText == "" {
		return DateRange{Start: start}, nil
	}

	// Bare time of day first: combine with the start's calendar day, and
	// roll past midnight when the end clock-time is not after the start
	// ("9pm - 1am" ends the next civil day).
	for _, layout := range endTimeLayouts {
		t, err := time.Parse(layout, endText)
		if err != nil {
			continue
		}
		y, m, d := start.In(sydney).Date()
		end := time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, sydney)
		if !end.After(start) {
			end = end.AddDate(0, 0, 1)
		}
		return DateRange{Start: start, End: &end}, nil
	}

	// Multi-day events spell out the full end date.
	if end, ok := parseAbsolute(endText, now); ok && end.After(start) {
		return DateRange{Start: start, End: &end}, nil
	}

	return DateRange{Start: start}, nil
}
