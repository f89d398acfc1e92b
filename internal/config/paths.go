package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Paths contains the standard paths for CodeFind data.
type Paths struct {
	Home string // ~/.codefind
}

// GetPaths returns the standard paths for CodeFind data.
// CODEFIND_HOME relocates the whole directory.
func GetPaths() *Paths {
	if dir := os.Getenv("CODEFIND_HOME"); dir != "" {
		return &Paths{Home: dir}
	}
	return &Paths{Home: filepath.Join(userHome(), ".codefind")}
}

// EnsurePaths creates all required directories.
func (p *Paths) EnsurePaths() error {
	return os.MkdirAll(p.Home, 0755)
}

// OAuthKeysPath returns the path to the OAuth keys env file.
func (p *Paths) OAuthKeysPath() string {
	return filepath.Join(p.Home, "oauth-keys.env")
}

// SettingsPath returns the path to the global settings file.
func (p *Paths) SettingsPath() string {
	return filepath.Join(p.Home, "config.json")
}

// StatePath returns the path to the persisted state file.
func (p *Paths) StatePath() string {
	return filepath.Join(p.Home, "state.json")
}

// ProjectConfigPath returns the path to the project config file.
func ProjectConfigPath(directory string) string {
	return filepath.Join(directory, ".codefind.json")
}

func userHome() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("USERPROFILE")
	}
	return os.Getenv("HOME")
}
