package settings

import (
	"fmt"
	"sort"
	"strings"
)

// Report holds the material the settings command prints: relevant process
// environment variables, built-in defaults, and the resolved option values.
type Report struct {
	EnvVars  map[string]string
	Defaults map[string]string
	Options  map[string]string
}

// Environment variable names outside the CODEFIND_ and AWS_ prefixes that
// still influence behavior and belong in the report.
var reportedEnvVars = map[string]bool{
	"NODE_ENV":    true,
	"ENVIRONMENT": true,
	"ENV":         true,
}

// CollectEnvVars filters a process environment (os.Environ form) down to the
// variables worth reporting.
func CollectEnvVars(environ []string) map[string]string {
	vars := make(map[string]string)
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if strings.HasPrefix(name, "CODEFIND_") || strings.HasPrefix(name, "AWS_") || reportedEnvVars[name] {
			vars[name] = value
		}
	}
	return vars
}

// FormatSettings renders the report with sensitive values masked. Sections
// mirror the startup settings dump: environment variables first, then
// defaults, then the resolved options.
func FormatSettings(r Report, scrubber *Scrubber) string {
	var b strings.Builder

	b.WriteString("Environment variables:\n")
	if len(r.EnvVars) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, name := range sortedKeys(r.EnvVars) {
		fmt.Fprintf(&b, "  %s=%s\n", name, scrubber.Scrub(name, r.EnvVars[name]))
	}

	b.WriteString("\nDefaults:\n")
	for _, name := range sortedKeys(r.Defaults) {
		fmt.Fprintf(&b, "  %s: %s\n", name, r.Defaults[name])
	}

	b.WriteString("\nOption settings:\n")
	for _, name := range sortedKeys(r.Options) {
		fmt.Fprintf(&b, "  - %s: %s\n", name, scrubber.Scrub(name, r.Options[name]))
	}

	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
