// Package society manages the roster of student societies whose event
// pages are scanned.
//
// The roster is a JSON file of society titles and Facebook page URLs.
// Page URLs are validated and normalized before the event-listing URL is
// derived; fetching and rendering those URLs is the headless-browser
// collaborator's job.
package society

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
)

// Society is one roster entry. FacebookURL may be empty for societies
// without a page; those are skipped by callers.
type Society struct {
	Title       string `json:"title"`
	FacebookURL string `json:"facebookurl"`
}

var pagePathPattern = regexp.MustCompile(`^/[A-Za-z0-9._-]+$`)

// Load reads the society roster from a JSON file.
func Load(path string) ([]Society, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading societies file: %w", err)
	}

	var societies []Society
	if err := json.Unmarshal(data, &societies); err != nil {
		return nil, fmt.Errorf("parsing societies file: %w", err)
	}

	return societies, nil
}

// NormalizePageURL validates a raw Facebook page URL and returns its
// canonical form. Only https URLs on facebook.com with a single bare path
// segment qualify; anything with a query, fragment, or nested path is
// rejected since it cannot be a plain page URL.
func NormalizePageURL(raw string) (string, bool) {
	s := strings.TrimRight(strings.TrimSpace(raw), "/")
	if s == "" {
		return "", false
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	if host != "www.facebook.com" && host != "facebook.com" {
		return "", false
	}
	if u.Scheme != "https" {
		return "", false
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return "", false
	}

	path := strings.TrimRight(u.Path, "/")
	if !pagePathPattern.MatchString(path) {
		return "", false
	}

	return "https://www.facebook.com" + path, true
}

// EventsURL derives the upcoming-events listing URL for a page URL. The
// result is handed to the rendering collaborator to visit.
func EventsURL(pageURL string) string {
	base := strings.TrimRight(strings.TrimSpace(pageURL), "/")
	return base + "/upcoming_hosted_events"
}
