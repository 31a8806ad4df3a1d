// Package logtail reads the tail of tally's own log file for the in-app log
// pane.
//
// Read keeps a ring buffer of the last maxLines lines so memory stays
// proportional to the window, not the file. A missing file is not an error;
// the pane simply stays empty until something is logged.
//
// Parse understands the JSON lines written by the logging package and
// splits out timestamp, level, message, and any remaining structured fields.
// Console-format or foreign lines are passed through as Raw.
package logtail
