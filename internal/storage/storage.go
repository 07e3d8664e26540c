// Package storage persists extracted events as a JSON snapshot on disk.
//
// The snapshot is keyed by deterministic event ID (society + normalized
// title), so re-scanning the same pages is an idempotent upsert: existing
// events are refreshed in place and duplicate inserts are tolerated.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/campusbuddy/soc-events/internal/event"
)

// Snapshot is the on-disk collection of extracted events.
type Snapshot struct {
	Events    map[string]*event.Event `json:"events"` // keyed by Event.ID
	UpdatedAt string                  `json:"updated_at"`
}

// NewSnapshot creates an empty snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Events: make(map[string]*event.Event),
	}
}

// Upsert inserts or refreshes an event, returning true when the event was
// not previously present. On update the original FirstSeen is preserved.
func (s *Snapshot) Upsert(evt *event.Event) bool {
	existing, exists := s.Events[evt.ID]
	if exists {
		evt.FirstSeen = existing.FirstSeen
	}
	s.Events[evt.ID] = evt
	return !exists
}

// Upcoming returns the stored events starting after now, sorted by start
// time.
func (s *Snapshot) Upcoming(now time.Time) []*event.Event {
	upcoming := make([]*event.Event, 0, len(s.Events))
	for _, evt := range s.Events {
		if evt.Start.After(now) {
			upcoming = append(upcoming, evt)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		if upcoming[i].Start.Equal(upcoming[j].Start) {
			return upcoming[i].Title < upcoming[j].Title
		}
		return upcoming[i].Start.Before(upcoming[j].Start)
	})
	return upcoming
}

// Storage handles persistence of event snapshots
type Storage struct {
	dataDir string
}

// New creates a new Storage instance, creating the data directory if
// needed.
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

func (s *Storage) snapshotPath() string {
	return filepath.Join(s.dataDir, "events.json")
}

// Load reads the snapshot from disk, returning an empty snapshot when
// none exists yet.
func (s *Storage) Load() (*Snapshot, error) {
	data, err := os.ReadFile(s.snapshotPath())
	if err != nil {
		if os.IsNotExist(err) {
			return NewSnapshot(), nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	if snapshot.Events == nil {
		snapshot.Events = make(map[string]*event.Event)
	}

	return &snapshot, nil
}

// Save writes the snapshot to disk
func (s *Storage) Save(snapshot *Snapshot) error {
	snapshot.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.WriteFile(s.snapshotPath(), data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}
