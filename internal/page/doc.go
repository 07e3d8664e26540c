// Package page turns the rendered text of a social-network event page into
// a structured event candidate.
//
// The input is one opaque string: the newline-joined visible text of the
// page's main content region, as delivered by the headless-browser
// collaborator (with "See more" already expanded and dialogs dismissed).
// There is no stable markup; the only structural signal is human-readable
// word order, so segmentation is anchored on the event's date line and a
// fixed table of known boilerplate tokens. Saved HTML snapshots can be
// flattened to the same text shape with FromHTML.
package page
