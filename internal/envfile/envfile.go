package envfile

import "strings"

// Category classifies where a Candidate came from.
type Category string

const (
	CategoryOAuthKeys     Category = "oauth-keys"
	CategoryEnvSpecific   Category = "env-specific"
	CategoryTraversal     Category = "traversal"
	CategoryStandard      Category = "standard"
	CategoryCommonVariant Category = "common-variant"
	CategoryExplicit      Category = "explicit"
)

// Candidate is one prospective env file in discovery order.
type Candidate struct {
	// Path is the canonical absolute path of the file.
	Path string `json:"path"`
	// Category names the strategy that produced the candidate.
	Category Category `json:"category"`
	// Rank is the candidate's position in the final ordered list.
	Rank int `json:"rank"`
}

// Result is the ordered, de-duplicated candidate list from one discovery run.
// It is built once per invocation and read-only afterwards.
type Result struct {
	Candidates []Candidate `json:"candidates"`
}

// TraceEntry records what happened to one Candidate during loading.
type TraceEntry struct {
	Candidate Candidate `json:"candidate"`
	// Existed reports whether a regular file was present at the path.
	Existed bool `json:"existed"`
	// Loaded reports whether the file was read and parsed. A file that reads
	// but yields no valid pairs still counts as loaded.
	Loaded bool `json:"loaded"`
	// VarsSet is the number of variables the file contributed to the merge.
	VarsSet int `json:"variables_set"`
}

// Environment toggles recognized when the CLI flags are absent.
const (
	EnvDynamicToggle = "CODEFIND_DYNAMIC_ENV"
	EnvVerboseToggle = "CODEFIND_ENV_DISCOVERY_VERBOSE"
)

// Config controls one discovery invocation. It is constructed once from CLI
// flags and environment toggles, then read-only for the run.
type Config struct {
	// Dynamic enables multi-strategy discovery. When false, only the three
	// standard .env locations and the explicit file are considered.
	Dynamic bool
	// Verbose enables the discovery trace.
	Verbose bool
	// ExplicitFile is an extra env file loaded last, or empty. Relative paths
	// resolve against the working directory.
	ExplicitFile string
}

// DefaultConfig returns the discovery defaults: dynamic mode on, quiet.
func DefaultConfig() Config {
	return Config{Dynamic: true}
}

// ConfigFromEnviron returns the default Config adjusted by the
// CODEFIND_DYNAMIC_ENV and CODEFIND_ENV_DISCOVERY_VERBOSE toggles.
func ConfigFromEnviron(getenv func(string) string) Config {
	cfg := DefaultConfig()
	if enabled, ok := ParseToggle(getenv(EnvDynamicToggle)); ok {
		cfg.Dynamic = enabled
	}
	if enabled, ok := ParseToggle(getenv(EnvVerboseToggle)); ok {
		cfg.Verbose = enabled
	}
	return cfg
}

// ParseToggle interprets a true/false environment toggle, case-insensitively.
// Anything other than "true" or "false" reports ok=false.
func ParseToggle(value string) (enabled, ok bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}
