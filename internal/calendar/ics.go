// Package calendar exports extracted events as an iCalendar feed that a
// personal calendar app can subscribe to.
package calendar

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/campusbuddy/soc-events/internal/event"
)

// DefaultDuration is assumed for events whose end time was missing or
// unparseable on the source page.
const DefaultDuration = 2 * time.Hour

// Generate builds an iCalendar document for the given events. UIDs are
// the deterministic event IDs, so regenerating the feed updates entries
// instead of duplicating them.
func Generate(events []*event.Event) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//campusbuddy//soc-events//EN")

	now := time.Now().UTC()
	for _, evt := range events {
		ve := cal.AddEvent(fmt.Sprintf("%s@soc-events", evt.ID))
		ve.SetDtStampTime(now)
		ve.SetStartAt(evt.Start)
		if evt.End != nil {
			ve.SetEndAt(*evt.End)
		} else {
			ve.SetEndAt(evt.Start.Add(DefaultDuration))
		}
		ve.SetSummary(evt.Title)
		if evt.Location != "" {
			ve.SetLocation(evt.Location)
		}
		description := evt.Description
		if evt.SocietyName != "" {
			description = fmt.Sprintf("Hosted by %s", evt.SocietyName)
			if evt.Description != "" {
				description += "\n\n" + evt.Description
			}
		}
		if description != "" {
			ve.SetDescription(description)
		}
	}

	return cal.Serialize()
}
