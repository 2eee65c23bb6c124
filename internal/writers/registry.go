package writers

import (
	"fmt"
	"io"
	"sort"

	"protgroup/core/annotate"
	"protgroup/core/greedy"
)

// Writer registries (format → handler). Writers register from init()
// in their own files; registration is idempotent last-wins.
var (
	matchWriters = map[string]func(w io.Writer, rows []annotate.Row, header bool) error{}
	groupWriters = map[string]func(w io.Writer, rows []greedy.Row, header bool) error{}
)

// RegisterMatch installs a writer for the match-row table.
func RegisterMatch(format string, fn func(io.Writer, []annotate.Row, bool) error) {
	matchWriters[format] = fn
}

// RegisterGroup installs a writer for the group-row table.
func RegisterGroup(format string, fn func(io.Writer, []greedy.Row, bool) error) {
	groupWriters[format] = fn
}

// Formats returns the registered format names, sorted. Both registries
// carry the same set by construction.
func Formats() []string {
	names := make([]string, 0, len(matchWriters))
	for n := range matchWriters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// WriteMatches dispatches the match table to the named format.
func WriteMatches(format string, w io.Writer, rows []annotate.Row, header bool) error {
	fn, ok := matchWriters[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (registered: %v)", format, Formats())
	}
	return fn(w, rows, header)
}

// WriteGroups dispatches the group table to the named format.
func WriteGroups(format string, w io.Writer, rows []greedy.Row, header bool) error {
	fn, ok := groupWriters[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (registered: %v)", format, Formats())
	}
	return fn(w, rows, header)
}
