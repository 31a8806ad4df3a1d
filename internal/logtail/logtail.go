package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// Entry is one parsed log line.
type Entry struct {
	Time    string
	Level   string
	Message string
	// Fields holds the remaining structured fields as key=value pairs,
	// sorted by key.
	Fields []string
	// Raw is set when the line was not a JSON object.
	Raw string
}

var reservedKeys = map[string]bool{
	"timestamp": true,
	"level":     true,
	"msg":       true,
	"version":   true,
}

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Parse splits a JSON log line into its parts. Lines that are not JSON
// objects come back with only Raw set.
func Parse(line string) Entry {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") || !gjson.Valid(trimmed) {
		return Entry{Raw: line}
	}

	parsed := gjson.Parse(trimmed)
	entry := Entry{
		Time:    parsed.Get("timestamp").String(),
		Level:   strings.ToUpper(parsed.Get("level").String()),
		Message: parsed.Get("msg").String(),
	}
	parsed.ForEach(func(key, value gjson.Result) bool {
		if !reservedKeys[key.String()] {
			entry.Fields = append(entry.Fields, key.String()+"="+value.String())
		}
		return true
	})
	sort.Strings(entry.Fields)
	return entry
}

// ParseLines parses every line in order.
func ParseLines(lines []string) []Entry {
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		entries = append(entries, Parse(line))
	}
	return entries
}
