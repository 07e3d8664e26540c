package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/campusbuddy/soc-events/internal/event"
	"github.com/campusbuddy/soc-events/internal/pipeline"
)

func sampleResult() *pipeline.Result {
	start := time.Date(2025, time.December, 5, 18, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	return &pipeline.Result{
		SocietyName: "Chess Society",
		Candidate: event.Candidate{
			Title:    "Trivia Night",
			DateText: "Fri, 5 Dec at 18:00 - 20:00",
			Location: "Upstairs Bar",
		},
		Range:   event.DateRange{Start: start, End: &end},
		Outcome: pipeline.OutcomeSaved,
		Event: &event.Event{
			ID:          "abc123",
			SocietyName: "Chess Society",
			Title:       "Trivia Night",
			Location:    "Upstairs Bar",
			Start:       start,
			End:         &end,
		},
	}
}

func TestWriteExtract_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteExtract(&buf, sampleResult(), FormatText); err != nil {
		t.Fatalf("WriteExtract() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Trivia Night", "Upstairs Bar", "2025-12-05T18:00:00Z"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteExtract_TextSkipped(t *testing.T) {
	result := &pipeline.Result{
		Candidate: event.Candidate{DateText: "food from 6pm onwards"},
		Outcome:   pipeline.OutcomeUnparseableDate,
	}

	var buf bytes.Buffer
	if err := WriteExtract(&buf, result, FormatText); err != nil {
		t.Fatalf("WriteExtract() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Skipped (unparseable_date)") {
		t.Errorf("output missing skip reason:\n%s", out)
	}
	if !strings.Contains(out, "food from 6pm onwards") {
		t.Errorf("output missing offending date text:\n%s", out)
	}
}

func TestWriteExtract_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteExtract(&buf, sampleResult(), FormatJSON); err != nil {
		t.Fatalf("WriteExtract() error = %v", err)
	}

	var decoded pipeline.Result
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Outcome != pipeline.OutcomeSaved {
		t.Errorf("Outcome = %s", decoded.Outcome)
	}
	if decoded.Event == nil || decoded.Event.Title != "Trivia Night" {
		t.Errorf("Event = %+v", decoded.Event)
	}
}

func TestWriteScan_Text(t *testing.T) {
	result := &ScanResult{
		ScannedAt: time.Now().UTC(),
		Stats: &pipeline.Stats{
			Pages:      3,
			Saved:      2,
			PastEvents: 1,
		},
		NewEvents: []*event.Event{sampleResult().Event},
	}

	var buf bytes.Buffer
	if err := WriteScan(&buf, result, FormatText, false); err != nil {
		t.Fatalf("WriteScan() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Scanned 3 pages") {
		t.Errorf("output missing summary line:\n%s", out)
	}
	if !strings.Contains(out, "NEW: Chess Society: Trivia Night") {
		t.Errorf("output missing new event line:\n%s", out)
	}
}

func TestWriteScan_TextNoNewEvents(t *testing.T) {
	result := &ScanResult{
		ScannedAt: time.Now().UTC(),
		Stats:     &pipeline.Stats{Pages: 1, PastEvents: 1},
	}

	var buf bytes.Buffer
	if err := WriteScan(&buf, result, FormatText, false); err != nil {
		t.Fatalf("WriteScan() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No new events.") {
		t.Errorf("output missing no-new-events line:\n%s", buf.String())
	}
}

func TestWriteURLs(t *testing.T) {
	entries := []URLEntry{
		{Society: "Chess Society", URL: "https://www.facebook.com/unswchess/upcoming_hosted_events"},
	}

	var buf bytes.Buffer
	if err := WriteURLs(&buf, entries, FormatText); err != nil {
		t.Fatalf("WriteURLs() error = %v", err)
	}
	if !strings.Contains(buf.String(), "unswchess/upcoming_hosted_events") {
		t.Errorf("output missing URL:\n%s", buf.String())
	}
}
