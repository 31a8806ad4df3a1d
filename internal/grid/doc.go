// Package grid implements the data engine behind the dashboard's record table.
//
// # Overview
//
// An Engine takes an in-memory collection of records plus a column schema and
// derives the visible window: free-text search, then a stable single-field
// sort, then pagination. It also tracks which records the operator has
// selected. The engine is generic over the record type R and the selection
// key type K, so it never looks fields up by name at runtime; columns carry
// typed extractor functions instead.
//
// # Pipeline
//
//  1. Search: a record matches when any of its fields, rendered to text and
//     lower-cased, contains the lower-cased query. Search scans every value
//     returned by Options.Fields, not just the displayed columns.
//  2. Sort: records are ordered by the active column. Absent values sort
//     last, equal values keep their filtered order, and everything else is
//     compared as text with an English collator. Numbers therefore order as
//     text ("10" before "2") unless the column supplies a Compare override
//     such as NumericCompare.
//  3. Paginate: the window is [(page-1)*size, page*size) clipped to the
//     matched rows. Pages outside that range are accepted and yield an empty
//     window; the engine never clamps the page.
//
// Derive is the pure form of the pipeline. Engine recomputes the view after
// every mutation and caches the filtered and sorted stages by their inputs.
//
// # Selection
//
// Selection is keyed by the identity function passed to New, so records that
// are rebuilt between refreshes stay selected as long as their key is
// stable. Only ToggleSelection, SelectAllVisible and ClearSelection change
// it; search, sort, page and source changes never do.
//
// # Concurrency
//
// An Engine is not safe for concurrent use. The UI drives it from the
// Bubble Tea update loop, which already serializes every call.
package grid
