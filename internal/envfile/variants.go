package envfile

import "strings"

// Selector variables consulted for the active environment, in priority order.
var selectorVars = []string{"NODE_ENV", "ENVIRONMENT", "ENV"}

// Canonical spellings for the recognized environment names. Aliases map to
// the full name used in variant filenames.
var canonicalEnvs = map[string]string{
	"local":       "local",
	"development": "development",
	"dev":         "development",
	"staging":     "staging",
	"production":  "production",
	"prod":        "production",
	"test":        "test",
}

// Common variant filenames probed unconditionally, in load order. Existence
// filtering happens later, so listing names that rarely exist is cheap.
var commonVariantNames = []string{
	".env.local",
	".env.development",
	".env.development.local",
	".env.production",
	".env.production.local",
	".env.staging",
	".env.test",
}

// selectorValue returns the first non-empty selector variable value, or "".
func selectorValue(getenv func(string) string) string {
	for _, name := range selectorVars {
		if value := getenv(name); value != "" {
			return value
		}
	}
	return ""
}

// selectorFilenames expands the active environment selector into the
// environment-specific filenames to probe. The raw selector spelling is tried
// verbatim first; when it is an alias (dev, prod) or differs in case, the
// canonical spelling follows. Unrecognized selectors expand to nothing; the
// common variants are still probed separately.
func selectorFilenames(getenv func(string) string) []string {
	raw := selectorValue(getenv)
	if raw == "" {
		return nil
	}
	canonical, ok := canonicalEnvs[strings.ToLower(raw)]
	if !ok {
		return nil
	}
	names := []string{".env." + raw, ".env." + raw + ".local"}
	if canonical != raw {
		names = append(names, ".env."+canonical, ".env."+canonical+".local")
	}
	return names
}
