package event

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"
)

// Candidate is the segmenter's best-effort guess at one event's fields.
// DateText is the verbatim line believed to encode the date/time span; it
// has not yet been validated as parseable. An empty Title or DateText means
// the page yielded nothing usable and the candidate should be skipped.
type Candidate struct {
	Title       string `json:"title"`
	DateText    string `json:"date_text"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// DateRange is a concrete start/end pair derived from a free-text date
// line. Start is always strictly in the future relative to parse time.
// End is nil when the end time is missing or unparseable; when present it
// strictly exceeds Start.
type DateRange struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

// Event represents one society event ready for persistence
type Event struct {
	ID          string     `json:"id"`
	SocietyName string     `json:"society_name"`
	Title       string     `json:"title"`
	Location    string     `json:"location,omitempty"`
	Description string     `json:"description,omitempty"`
	Start       time.Time  `json:"start"`
	End         *time.Time `json:"end,omitempty"`
	FirstSeen   time.Time  `json:"first_seen"`
}

// GenerateID creates a deterministic ID for an event from its society name
// and normalized title. Duplicate scans of the same page produce the same
// ID, so inserts are upsert-tolerant.
func GenerateID(societyName, title string) string {
	normalized := strings.ToLower(strings.TrimSpace(title))
	h := sha1.New()
	h.Write([]byte(societyName + "|" + normalized))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// NewEvent creates a new Event from a segmented candidate and its parsed
// date range, with ID and FirstSeen populated.
func NewEvent(societyName string, c Candidate, r DateRange) *Event {
	return &Event{
		ID:          GenerateID(societyName, c.Title),
		SocietyName: societyName,
		Title:       c.Title,
		Location:    c.Location,
		Description: c.Description,
		Start:       r.Start,
		End:         r.End,
		FirstSeen:   time.Now().UTC(),
	}
}
