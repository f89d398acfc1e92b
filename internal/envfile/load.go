package envfile

import (
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"github.com/codefind-ai/codefind/internal/logging"
)

// Env is the merged variable mapping produced by Load.
type Env map[string]string

// Loader reads and merges discovered env files.
type Loader struct {
	Prober   Prober
	ReadFile func(string) ([]byte, error)
}

// NewLoader returns a Loader reading the real filesystem.
func NewLoader() *Loader {
	return &Loader{Prober: OSProber{}, ReadFile: os.ReadFile}
}

// Load processes candidates strictly in rank order and merges their variables
// last-write-wins. It never fails: missing files, unreadable files, and
// malformed lines only reduce what gets loaded.
func (l *Loader) Load(result *Result) (Env, []TraceEntry) {
	env := make(Env)
	trace := make([]TraceEntry, 0, len(result.Candidates))

	for _, cand := range result.Candidates {
		entry := TraceEntry{Candidate: cand}
		if !l.prober().Exists(cand.Path) {
			trace = append(trace, entry)
			continue
		}
		entry.Existed = true

		data, err := l.readFile()(cand.Path)
		if err != nil {
			logging.Debug().Str("path", cand.Path).Err(err).Msg("env file unreadable, skipping")
			trace = append(trace, entry)
			continue
		}

		vars := parseEnv(data)
		entry.Loaded = true
		entry.VarsSet = len(vars)
		for key, value := range vars {
			env[key] = value
		}
		trace = append(trace, entry)
	}

	return env, trace
}

func (l *Loader) prober() Prober {
	if l.Prober != nil {
		return l.Prober
	}
	return OSProber{}
}

func (l *Loader) readFile() func(string) ([]byte, error) {
	if l.ReadFile != nil {
		return l.ReadFile
	}
	return os.ReadFile
}

// parseEnv parses .env content. A file that fails to parse as a whole is
// salvaged line by line so one bad line never discards the rest.
func parseEnv(data []byte) map[string]string {
	vars, err := godotenv.UnmarshalBytes(data)
	if err == nil {
		return vars
	}

	vars = make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lineVars, err := godotenv.Unmarshal(line)
		if err != nil {
			continue
		}
		for key, value := range lineVars {
			vars[key] = value
		}
	}
	return vars
}

// Apply writes every merged variable into the process environment. Loaded
// files override variables already present in the process.
func (e Env) Apply() {
	for key, value := range e {
		if err := os.Setenv(key, value); err != nil {
			logging.Warn().Str("key", key).Err(err).Msg("failed to set environment variable")
		}
	}
}

// Lookup resolves a variable by name, falling back to the process
// environment for names the env files do not set.
func (e Env) Lookup(name string) string {
	if value, ok := e[name]; ok {
		return value
	}
	return os.Getenv(name)
}

// Keys returns the merged variable names, sorted.
func (e Env) Keys() []string {
	keys := make([]string, 0, len(e))
	for key := range e {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Environ returns base with the merged variables appended as KEY=VALUE pairs.
// With exec.Cmd.Env, later entries win, so the merged values override base.
func (e Env) Environ(base []string) []string {
	out := make([]string, 0, len(base)+len(e))
	out = append(out, base...)
	for _, key := range e.Keys() {
		out = append(out, key+"="+e[key])
	}
	return out
}
