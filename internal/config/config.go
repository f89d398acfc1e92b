package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"

	"github.com/tidwall/jsonc"
)

// Config holds CodeFind tool settings.
type Config struct {
	// Model is the default Bedrock model identifier.
	Model string `json:"model,omitempty"`
	// Region is the AWS region used for Bedrock.
	Region string `json:"region,omitempty"`
	// DynamicEnv toggles the default for dynamic env-file discovery.
	DynamicEnv *bool `json:"dynamic_env,omitempty"`
	// EnvDiscoveryVerbose toggles the default for discovery tracing.
	EnvDiscoveryVerbose *bool `json:"env_discovery_verbose,omitempty"`
	// ScrubPatterns adds sensitive-key patterns on top of the built-in set.
	ScrubPatterns []string `json:"scrub_patterns,omitempty"`
}

// Load loads configuration from multiple sources (priority order):
// 1. Global config (~/.codefind/config.json or config.jsonc)
// 2. Project config (.codefind.json or .codefind.jsonc)
// 3. Environment variables (CODEFIND_MODEL, CODEFIND_REGION)
func Load(directory string) (*Config, error) {
	config := &Config{}

	// Track loaded files to avoid duplicates
	loaded := make(map[string]bool)

	loadOnce := func(path string) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return
		}
		if loaded[absPath] {
			return
		}
		if loadConfigFile(path, config) == nil {
			loaded[absPath] = true
		}
	}

	// 1. Global config (~/.codefind/)
	home := GetPaths().Home
	loadOnce(filepath.Join(home, "config.json"))
	loadOnce(filepath.Join(home, "config.jsonc"))

	// 2. Project config
	if directory != "" {
		loadOnce(filepath.Join(directory, ".codefind.json"))
		loadOnce(filepath.Join(directory, ".codefind.jsonc"))
	}

	// 3. Environment variables (highest priority)
	applyEnvOverrides(config)

	return config, nil
}

// LoadGlobal reads only the global settings file, without project overrides,
// environment overrides, or {env:} interpolation. This is the file Save
// writes, so read-modify-write cycles preserve stored placeholders verbatim.
// A missing file yields an empty config.
func LoadGlobal() (*Config, error) {
	config := &Config{}

	data, err := os.ReadFile(GetPaths().SettingsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(jsonc.ToJSON(data), config); err != nil {
		return nil, err
	}
	return config, nil
}

// loadConfigFile loads a single config file with interpolation support.
func loadConfigFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err // File doesn't exist, skip
	}

	// Strip JSONC comments using tidwall/jsonc
	data = jsonc.ToJSON(data)

	// Apply interpolation
	data = interpolate(data)

	var fileConfig Config
	if err := json.Unmarshal(data, &fileConfig); err != nil {
		return err
	}

	mergeConfig(config, &fileConfig)
	return nil
}

// interpolate processes {env:VAR} placeholders.
func interpolate(data []byte) []byte {
	envPattern := regexp.MustCompile(`\{env:([^}]+)\}`)
	str := envPattern.ReplaceAllStringFunc(string(data), func(match string) string {
		varName := envPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
	return []byte(str)
}

// mergeConfig merges source config into target.
func mergeConfig(target, source *Config) {
	if source.Model != "" {
		target.Model = source.Model
	}
	if source.Region != "" {
		target.Region = source.Region
	}
	if source.DynamicEnv != nil {
		target.DynamicEnv = source.DynamicEnv
	}
	if source.EnvDiscoveryVerbose != nil {
		target.EnvDiscoveryVerbose = source.EnvDiscoveryVerbose
	}

	// Scrub patterns accumulate across sources
	if len(source.ScrubPatterns) > 0 {
		target.ScrubPatterns = append(target.ScrubPatterns, source.ScrubPatterns...)
	}
}

// applyEnvOverrides applies environment variable overrides.
func applyEnvOverrides(config *Config) {
	if model := os.Getenv("CODEFIND_MODEL"); model != "" {
		config.Model = model
	}
	if region := os.Getenv("CODEFIND_REGION"); region != "" {
		config.Region = region
	}
}

// DynamicEnvEnabled reports whether dynamic env-file discovery is enabled.
// Defaults to true when the config does not say otherwise.
func (c *Config) DynamicEnvEnabled() bool {
	if c.DynamicEnv != nil {
		return *c.DynamicEnv
	}
	return true
}

// DiscoveryVerbose reports whether discovery tracing defaults to on.
func (c *Config) DiscoveryVerbose() bool {
	if c.EnvDiscoveryVerbose != nil {
		return *c.EnvDiscoveryVerbose
	}
	return false
}

// Save saves the configuration to a file.
func Save(config *Config, path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
