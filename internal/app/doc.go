// Package app wires configuration, polling, state, and the UI into the
// tally dashboard. It is the composition root.
//
// Run follows this sequence:
//
//  1. Load the dashboard config and build the zap logger it describes
//  2. Load user prefs; a stored page size overrides the config
//  3. Build the record fetcher (HTTP endpoint or JSON file)
//  4. Fetch once so the first frame has data
//  5. Run the poller and the TUI under one errgroup; quitting the TUI
//     cancels the poller
//
// # Polling
//
// Poll refetches on a fixed interval (default 5 seconds). After a failure
// the wait doubles, capped at 30 seconds, and resets on the next success.
// Failures are recorded in the store so the UI can show an offline badge
// while it keeps displaying the last good records.
//
// LoadRecords is the one-shot variant used by the query command: it retries
// with exponential backoff until a deadline instead of polling forever.
package app
