// Package event provides types and parsing for society events extracted
// from social-network event pages.
//
// The event package holds the candidate fields recovered by the page
// segmenter, the fuzzy date-range parser that turns free-text date lines
// into concrete start/end instants in the Australia/Sydney timezone, and
// the persisted Event record. Each event is assigned a deterministic
// SHA1-based ID generated from its society name and title, enabling
// duplicate-tolerant upserts across scan runs.
package event
