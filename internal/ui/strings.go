package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// truncate shortens value to at most limit terminal cells, ending in an
// ellipsis when anything was cut.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= limit {
		return value
	}
	if limit == 1 {
		return runewidth.Truncate(value, limit, "")
	}
	return runewidth.Truncate(value, limit, ellipsis)
}

// truncateMiddle keeps both ends of value, which suits URLs and paths.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || runewidth.StringWidth(value) <= limit {
		return value
	}
	if limit <= 3 {
		return truncate(value, limit)
	}
	keep := limit - runewidth.StringWidth(ellipsis)
	prefix := keep / 2
	suffix := keep - prefix

	runes := []rune(value)
	tail := ""
	for i := len(runes) - 1; i >= 0; i-- {
		next := string(runes[i]) + tail
		if runewidth.StringWidth(next) > suffix {
			break
		}
		tail = next
	}
	return runewidth.Truncate(value, prefix, "") + ellipsis + tail
}

// fit truncates or pads value to exactly width cells.
func fit(value string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(truncate(oneLine(value), width), width)
}

// padRight pads a string with spaces to the given width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.FillRight(s, width)
}

// oneLine collapses line breaks so a cell never spans rows.
func oneLine(value string) string {
	if !strings.ContainsAny(value, "\r\n\t") {
		return value
	}
	return strings.Join(strings.Fields(value), " ")
}
