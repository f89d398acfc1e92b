package settings

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// FormatEnvDiff renders what the merged env files would change in the given
// base environment, as +/- lines over sorted KEY=VALUE text. Values are
// scrubbed before diffing so secrets never reach the output. An empty string
// means the merge changes nothing.
func FormatEnvDiff(base, merged map[string]string, scrubber *Scrubber) string {
	beforeText := renderEnv(base, scrubber)
	afterText := renderEnv(overlay(base, merged), scrubber)
	if beforeText == afterText {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(beforeText, afterText)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var out strings.Builder
	out.WriteString("--- current environment\n")
	out.WriteString("+++ with env files applied\n")
	for _, d := range diffs {
		var marker string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			marker = "-"
		case diffmatchpatch.DiffInsert:
			marker = "+"
		default:
			continue
		}
		for _, line := range splitLines(d.Text) {
			fmt.Fprintf(&out, "%s%s\n", marker, line)
		}
	}
	return out.String()
}

// overlay applies merged on top of a copy of base.
func overlay(base, merged map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(merged))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range merged {
		out[k] = v
	}
	return out
}

func renderEnv(env map[string]string, scrubber *Scrubber) string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, scrubber.Scrub(k, env[k]))
	}
	return b.String()
}

func splitLines(text string) []string {
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
