package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateHome points HOME at a fresh temp dir and clears the CODEFIND_*
// overrides so tests never read the developer's real configuration.
func isolateHome(t *testing.T) string {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "codefind-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	for _, key := range []string{"CODEFIND_HOME", "CODEFIND_MODEL", "CODEFIND_REGION"} {
		old, had := os.LookupEnv(key)
		os.Unsetenv(key)
		t.Cleanup(func() {
			if had {
				os.Setenv(key, old)
			}
		})
	}

	oldHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpDir)
	t.Cleanup(func() { os.Setenv("HOME", oldHome) })

	return tmpDir
}

func TestLoadGlobalConfig(t *testing.T) {
	tmpDir := isolateHome(t)

	globalConfig := `{
		"model": "bedrock/us.anthropic.claude-3-7-sonnet-20250109-v1:0",
		"region": "us-east-1",
		"dynamic_env": false
	}`

	configPath := filepath.Join(tmpDir, ".codefind", "config.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0755))
	require.NoError(t, os.WriteFile(configPath, []byte(globalConfig), 0644))

	cfg, err := Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "bedrock/us.anthropic.claude-3-7-sonnet-20250109-v1:0", cfg.Model)
	assert.Equal(t, "us-east-1", cfg.Region)
	require.NotNil(t, cfg.DynamicEnv)
	assert.False(t, *cfg.DynamicEnv)
	assert.False(t, cfg.DynamicEnvEnabled())
}

func TestJSONCComments(t *testing.T) {
	tmpDir := isolateHome(t)

	jsoncConfig := `{
		// This is a single-line comment
		"model": "bedrock/anthropic.claude-3-haiku-20240307-v1:0",
		/* This is a
		   multi-line comment */
		"region": "eu-west-1" // inline comment
	}`

	configPath := filepath.Join(tmpDir, ".codefind", "config.jsonc")
	require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0755))
	require.NoError(t, os.WriteFile(configPath, []byte(jsoncConfig), 0644))

	cfg, err := Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "bedrock/anthropic.claude-3-haiku-20240307-v1:0", cfg.Model)
	assert.Equal(t, "eu-west-1", cfg.Region)
}

func TestEnvInterpolation(t *testing.T) {
	tmpDir := isolateHome(t)

	os.Setenv("TEST_BEDROCK_REGION", "ap-southeast-2")
	defer os.Unsetenv("TEST_BEDROCK_REGION")

	config := `{
		"region": "{env:TEST_BEDROCK_REGION}"
	}`

	configPath := filepath.Join(tmpDir, ".codefind", "config.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0755))
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0644))

	cfg, err := Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "ap-southeast-2", cfg.Region)
}

func TestConfigMerge(t *testing.T) {
	tmpHome := isolateHome(t)

	tmpProject, err := os.MkdirTemp("", "codefind-project-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpProject)

	// Global config
	globalConfig := `{
		"model": "bedrock/us.anthropic.claude-3-7-sonnet-20250109-v1:0",
		"region": "us-west-2",
		"scrub_patterns": ["*_TOKEN"]
	}`

	globalDir := filepath.Join(tmpHome, ".codefind")
	require.NoError(t, os.MkdirAll(globalDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(globalDir, "config.json"), []byte(globalConfig), 0644))

	// Project config (should override)
	projectConfig := `{
		"model": "bedrock/meta.llama3-70b-instruct-v1:0",
		"scrub_patterns": ["INTERNAL_*"]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(tmpProject, ".codefind.json"), []byte(projectConfig), 0644))

	cfg, err := Load(tmpProject)
	require.NoError(t, err)

	// Project model should override global
	assert.Equal(t, "bedrock/meta.llama3-70b-instruct-v1:0", cfg.Model)

	// Global region should be preserved
	assert.Equal(t, "us-west-2", cfg.Region)

	// Scrub patterns accumulate, global first
	assert.Equal(t, []string{"*_TOKEN", "INTERNAL_*"}, cfg.ScrubPatterns)
}

func TestEnvVarOverride(t *testing.T) {
	tmpDir := isolateHome(t)

	config := `{
		"model": "file-model",
		"region": "file-region"
	}`

	configPath := filepath.Join(tmpDir, ".codefind", "config.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0755))
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0644))

	os.Setenv("CODEFIND_MODEL", "env-model")
	os.Setenv("CODEFIND_REGION", "env-region")
	defer func() {
		os.Unsetenv("CODEFIND_MODEL")
		os.Unsetenv("CODEFIND_REGION")
	}()

	cfg, err := Load(tmpDir)
	require.NoError(t, err)

	// Environment variables should override file config
	assert.Equal(t, "env-model", cfg.Model)
	assert.Equal(t, "env-region", cfg.Region)
}

func TestDefaultsWithoutConfig(t *testing.T) {
	tmpDir := isolateHome(t)

	cfg, err := Load(tmpDir)
	require.NoError(t, err)

	assert.Empty(t, cfg.Model)
	assert.Empty(t, cfg.Region)
	assert.True(t, cfg.DynamicEnvEnabled())
	assert.False(t, cfg.DiscoveryVerbose())
}

func TestSaveAndReload(t *testing.T) {
	tmpDir := isolateHome(t)

	verbose := true
	cfg := &Config{
		Model:               "bedrock/amazon.titan-text-premier-v1:0",
		Region:              "us-west-2",
		EnvDiscoveryVerbose: &verbose,
	}

	path := filepath.Join(tmpDir, ".codefind", "config.json")
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, cfg.Model, loaded.Model)
	assert.Equal(t, cfg.Region, loaded.Region)
	assert.True(t, loaded.DiscoveryVerbose())
}

func TestLoadGlobalVerbatim(t *testing.T) {
	tmpDir := isolateHome(t)

	// A stored {env:} placeholder and a comment must survive a
	// read-modify-write cycle untouched.
	globalConfig := `{
		// region comes from the environment at load time
		"region": "{env:TEST_VERBATIM_REGION}"
	}`

	configPath := filepath.Join(tmpDir, ".codefind", "config.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0755))
	require.NoError(t, os.WriteFile(configPath, []byte(globalConfig), 0644))

	os.Setenv("TEST_VERBATIM_REGION", "ap-northeast-1")
	defer os.Unsetenv("TEST_VERBATIM_REGION")
	os.Setenv("CODEFIND_MODEL", "env-model")
	defer os.Unsetenv("CODEFIND_MODEL")

	cfg, err := LoadGlobal()
	require.NoError(t, err)

	assert.Equal(t, "{env:TEST_VERBATIM_REGION}", cfg.Region)
	assert.Empty(t, cfg.Model, "LoadGlobal must ignore CODEFIND_MODEL")
}

func TestLoadGlobalMissing(t *testing.T) {
	isolateHome(t)

	cfg, err := LoadGlobal()
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadGlobalCorrupt(t *testing.T) {
	tmpDir := isolateHome(t)

	configPath := filepath.Join(tmpDir, ".codefind", "config.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0755))
	require.NoError(t, os.WriteFile(configPath, []byte(`{"model": `), 0644))

	_, err := LoadGlobal()
	require.Error(t, err)
}

func TestPathsDefault(t *testing.T) {
	tmpDir := isolateHome(t)

	p := GetPaths()
	assert.Equal(t, filepath.Join(tmpDir, ".codefind"), p.Home)
	assert.Equal(t, filepath.Join(tmpDir, ".codefind", "oauth-keys.env"), p.OAuthKeysPath())
	assert.Equal(t, filepath.Join(tmpDir, ".codefind", "config.json"), p.SettingsPath())
	assert.Equal(t, filepath.Join(tmpDir, ".codefind", "state.json"), p.StatePath())
}

func TestPathsCodefindHomeOverride(t *testing.T) {
	isolateHome(t)

	override, err := os.MkdirTemp("", "codefind-home-*")
	require.NoError(t, err)
	defer os.RemoveAll(override)

	os.Setenv("CODEFIND_HOME", override)
	defer os.Unsetenv("CODEFIND_HOME")

	p := GetPaths()
	assert.Equal(t, override, p.Home)
	assert.Equal(t, filepath.Join(override, "oauth-keys.env"), p.OAuthKeysPath())

	require.NoError(t, p.EnsurePaths())
	info, err := os.Stat(override)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
