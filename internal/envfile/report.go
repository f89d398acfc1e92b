package envfile

import (
	"fmt"
	"strings"
)

// FormatTrace renders a discovery trace as human-readable text: one numbered
// line per candidate, one confirmation line per loaded file, and a summary
// count. Pure formatting; the caller decides whether and where to print it.
func FormatTrace(trace []TraceEntry) string {
	var b strings.Builder

	for i, entry := range trace {
		status := "not found"
		if entry.Existed {
			status = "exists"
		}
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, entry.Candidate.Path, status)
	}

	loaded := 0
	for _, entry := range trace {
		if entry.Loaded {
			loaded++
			fmt.Fprintf(&b, "✓ Loaded: %s\n", entry.Candidate.Path)
		}
	}

	fmt.Fprintf(&b, "Loaded %d env file(s)\n", loaded)
	return b.String()
}
