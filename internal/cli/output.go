package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/campusbuddy/soc-events/internal/event"
	"github.com/campusbuddy/soc-events/internal/pipeline"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ScanResult contains the data reported after one scan pass.
type ScanResult struct {
	ScannedAt time.Time        `json:"scanned_at"`
	Stats     *pipeline.Stats  `json:"stats"`
	NewEvents []*event.Event   `json:"new_events"`
	Counters  map[string]int64 `json:"counters,omitempty"`
}

// URLEntry is one event-listing URL for the rendering collaborator.
type URLEntry struct {
	Society string `json:"society"`
	URL     string `json:"url"`
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// WriteExtract writes a single-page extraction result
func WriteExtract(w io.Writer, result *pipeline.Result, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, result)
	}

	if result.Outcome != pipeline.OutcomeSaved {
		fmt.Fprintf(w, "Skipped (%s)\n", result.Outcome)
		if result.Candidate.DateText != "" {
			fmt.Fprintf(w, "  Date text: %s\n", result.Candidate.DateText)
		}
		return nil
	}

	evt := result.Event
	fmt.Fprintf(w, "Title:    %s\n", evt.Title)
	fmt.Fprintf(w, "Start:    %s\n", evt.Start.Format(time.RFC3339))
	if evt.End != nil {
		fmt.Fprintf(w, "End:      %s\n", evt.End.Format(time.RFC3339))
	}
	if evt.Location != "" {
		fmt.Fprintf(w, "Location: %s\n", evt.Location)
	}
	if evt.Description != "" {
		fmt.Fprintf(w, "\n%s\n", evt.Description)
	}
	return nil
}

// WriteScan writes a scan summary
func WriteScan(w io.Writer, result *ScanResult, format OutputFormat, verbose bool) error {
	if format == FormatJSON {
		return writeJSON(w, result)
	}

	st := result.Stats
	fmt.Fprintf(w, "Scanned %d pages: %d saved, %d without date line, %d unparseable, %d past\n",
		st.Pages, st.Saved, st.NoDateLine, st.Unparseable, st.PastEvents)

	if len(result.NewEvents) == 0 {
		fmt.Fprintln(w, "No new events.")
		return nil
	}

	fmt.Fprintf(w, "\n%d new event(s):\n", len(result.NewEvents))
	for _, evt := range result.NewEvents {
		fmt.Fprintf(w, "  NEW: %s: %s (%s)\n",
			evt.SocietyName, evt.Title, evt.Start.Format("Mon 2 Jan 15:04"))
		if verbose {
			fmt.Fprintf(w, "       ID: %s\n", evt.ID)
			if evt.Location != "" {
				fmt.Fprintf(w, "       Location: %s\n", evt.Location)
			}
		}
	}
	return nil
}

// WriteURLs writes the event-listing URL list
func WriteURLs(w io.Writer, entries []URLEntry, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, entries)
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\n", e.Society, e.URL)
	}
	return nil
}
