// Package cli implements the command-line interface for soc-events.
//
// The cli package provides the Cobra-based CLI with subcommands for
// extracting a single event page, scanning a spool directory of rendered
// page texts (optionally on a cron schedule), printing the event-listing
// URLs for the rendering collaborator, and exporting the stored events as
// an iCalendar feed. It coordinates the page, event, pipeline, storage,
// society and calendar packages.
package cli
