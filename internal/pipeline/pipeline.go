// Package pipeline orchestrates extraction for event pages: segmenting
// page text, parsing the date line, and classifying the outcome.
//
// Every failure mode is an explicit skip outcome, never a crash or a
// guessed value; the caller's loop always continues to the next page.
// Skips are logged with the offending literal text so drift in the page
// format stays observable.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/campusbuddy/soc-events/internal/event"
	"github.com/campusbuddy/soc-events/internal/logger"
	"github.com/campusbuddy/soc-events/internal/page"
)

// Outcome classifies what one page yielded.
type Outcome string

const (
	OutcomeSaved           Outcome = "saved"
	OutcomeNoDateLine      Outcome = "no_date_line"
	OutcomeUnparseableDate Outcome = "unparseable_date"
	OutcomePastEvent       Outcome = "past_event"
)

// Result is the outcome of processing one event page.
type Result struct {
	SocietyName string          `json:"society_name"`
	Candidate   event.Candidate `json:"candidate"`
	Range       event.DateRange `json:"range,omitempty"`
	Outcome     Outcome         `json:"outcome"`
	Event       *event.Event    `json:"event,omitempty"` // nil unless saved
}

// Process runs the segmenter and date-range parser over one page's text.
// now drives year inference and past-event rejection; threading it
// through keeps the result deterministic for a given input.
func Process(societyName, pageText string, now time.Time) Result {
	result := Result{SocietyName: societyName}
	result.Candidate = page.Segment(pageText)

	if result.Candidate.Title == "" || result.Candidate.DateText == "" {
		logger.Warn("no date line found in page text", logger.Fields{
			"society":    societyName,
			"lines_head": headLines(pageText, 20),
		})
		logger.IncrCounter("scan.skipped.no_date_line")
		result.Outcome = OutcomeNoDateLine
		return result
	}

	r, err := event.ParseRange(result.Candidate.DateText, now)
	switch {
	case errors.Is(err, event.ErrPastEvent):
		// Expected filter outcome: the page listed a past or recurring
		// event that slipped through.
		logger.Debug("past event skipped", logger.Fields{
			"society":   societyName,
			"title":     result.Candidate.Title,
			"date_text": result.Candidate.DateText,
		})
		logger.IncrCounter("scan.skipped.past_event")
		result.Outcome = OutcomePastEvent
		return result
	case err != nil:
		logger.Warn("date text unparseable", logger.Fields{
			"society":   societyName,
			"title":     result.Candidate.Title,
			"date_text": result.Candidate.DateText,
		})
		logger.IncrCounter("scan.skipped.unparseable_date")
		result.Outcome = OutcomeUnparseableDate
		return result
	}

	result.Range = r
	result.Event = event.NewEvent(societyName, result.Candidate, r)
	result.Outcome = OutcomeSaved
	logger.IncrCounter("scan.saved")
	return result
}

// headLines returns up to n leading lines of raw text for diagnostics.
func headLines(raw string, n int) []string {
	lines := strings.Split(raw, "\n")
	head := make([]string, 0, n)
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		head = append(head, l)
		if len(head) == n {
			break
		}
	}
	return head
}

// Stats summarizes one scan over a spool directory.
type Stats struct {
	Pages       int `json:"pages"`
	Saved       int `json:"saved"`
	NoDateLine  int `json:"no_date_line"`
	Unparseable int `json:"unparseable_date"`
	PastEvents  int `json:"past_events"`
}

func (st *Stats) record(o Outcome) {
	st.Pages++
	switch o {
	case OutcomeSaved:
		st.Saved++
	case OutcomeNoDateLine:
		st.NoDateLine++
	case OutcomeUnparseableDate:
		st.Unparseable++
	case OutcomePastEvent:
		st.PastEvents++
	}
}

// ScanDir walks a spool directory of rendered page texts and processes
// each page. The layout is <spool>/<society name>/<page>.txt for
// innerText dumps, or .html for saved snapshots which are flattened
// first. Saved events are handed to sink in walk order.
//
// A page that fails to read or flatten is logged and skipped; it never
// aborts the scan.
func ScanDir(spoolDir string, now time.Time, sink func(*event.Event)) (*Stats, error) {
	societies, err := os.ReadDir(spoolDir)
	if err != nil {
		return nil, fmt.Errorf("reading spool directory: %w", err)
	}

	stats := &Stats{}
	for _, entry := range societies {
		if !entry.IsDir() {
			continue
		}
		societyName := entry.Name()
		societyDir := filepath.Join(spoolDir, societyName)

		pages, err := os.ReadDir(societyDir)
		if err != nil {
			logger.Error("reading society spool", logger.Fields{
				"society": societyName,
			}, err)
			continue
		}

		for _, p := range pages {
			if p.IsDir() {
				continue
			}
			path := filepath.Join(societyDir, p.Name())
			text, err := readPageText(path)
			if err != nil {
				logger.Error("reading page text", logger.Fields{
					"society": societyName,
					"path":    path,
				}, err)
				continue
			}

			result := Process(societyName, text, now)
			stats.record(result.Outcome)
			if result.Event != nil && sink != nil {
				sink(result.Event)
			}
		}
	}

	return stats, nil
}

func readPageText(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		return page.FromHTML(f)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}
