// Package ui is the Bubble Tea front end for the tally dashboard.
//
// The Model holds one grid engine and forwards each key press to exactly one
// engine mutation; rendering reads Engine.View. Records arrive as
// state.Snapshot values pulled from the store on every tick, and are pushed
// into the engine only when the snapshot generation changes, so search,
// sort, page, and selection survive refreshes.
//
// # Layout
//
//	┌ header: title, LIVE/OFFLINE, counts, last update ┐
//	│ command bar or search box                        │
//	├──── grid ────────────────┬──── side pane ────────┤
//	│ [ ] 1:Name ▲  2:Email    │ Details | Filters |   │
//	│ [x] alice     a@x        │ Log                   │
//	│ Page 1 of 3 · 25 matched │                       │
//	└──────────────────────────┴───────────────────────┘
//
// The side pane shows the record under the cursor, the filter panel when it
// is open, or the tail of tally's log file when toggled with L.
//
// # Keys
//
// "/" starts a live search; enter keeps it and esc restores the previous
// query. "s" sorts by the next sortable column, "S" flips the direction,
// and 1-9 toggle the sort on column N. Space toggles the row under the
// cursor, "a" selects every visible row, and "A" clears the selection.
// "n"/"p" page, "f" toggles the filter panel, tab moves focus to the side
// pane, "T" cycles the theme (persisted to prefs), and "?" shows help.
package ui
