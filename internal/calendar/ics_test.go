package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/campusbuddy/soc-events/internal/event"
)

func TestGenerate(t *testing.T) {
	start := time.Date(2025, time.December, 5, 18, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	events := []*event.Event{
		{
			ID:          "abc123",
			SocietyName: "Chess Society",
			Title:       "Trivia Night",
			Location:    "Upstairs Bar",
			Description: "Bring a team of four.",
			Start:       start,
			End:         &end,
		},
	}

	ics := Generate(events)

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"END:VCALENDAR",
		"BEGIN:VEVENT",
		"UID:abc123@soc-events",
		"SUMMARY:Trivia Night",
		"LOCATION:Upstairs Bar",
		"DTSTART:20251205T180000Z",
		"DTEND:20251205T200000Z",
		"Hosted by Chess Society",
	} {
		if !strings.Contains(ics, want) {
			t.Errorf("Generate() missing %q\n%s", want, ics)
		}
	}
}

func TestGenerate_DefaultDurationWhenEndUnknown(t *testing.T) {
	start := time.Date(2025, time.December, 5, 18, 0, 0, 0, time.UTC)
	events := []*event.Event{
		{
			ID:    "def456",
			Title: "Open Mic",
			Start: start,
		},
	}

	ics := Generate(events)

	if !strings.Contains(ics, "DTEND:20251205T200000Z") {
		t.Errorf("Generate() missing default two-hour DTEND\n%s", ics)
	}
}

func TestGenerate_Empty(t *testing.T) {
	ics := Generate(nil)
	if !strings.Contains(ics, "BEGIN:VCALENDAR") {
		t.Errorf("Generate(nil) is not a calendar:\n%s", ics)
	}
	if strings.Contains(ics, "BEGIN:VEVENT") {
		t.Errorf("Generate(nil) contains events:\n%s", ics)
	}
}
