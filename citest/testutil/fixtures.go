// Package testutil builds throwaway project trees for env file discovery
// scenarios and loads scenario definitions from YAML.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Tree is a temporary directory tree acting as a fake project.
type Tree struct {
	Root string
}

// NewTree creates a temp directory, resolved past symlinks so the paths the
// discoverer reports compare equal to the paths tests build.
func NewTree() (*Tree, error) {
	path, err := os.MkdirTemp("", "codefind-test-*")
	if err != nil {
		return nil, err
	}
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		os.RemoveAll(path)
		return nil, err
	}
	return &Tree{Root: resolved}, nil
}

// WriteFile creates a file under the tree, making parent directories as
// needed. The relative path uses forward slashes.
func (t *Tree) WriteFile(rel, content string) error {
	path := t.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// MkdirAll creates a directory under the tree.
func (t *Tree) MkdirAll(rel string) error {
	return os.MkdirAll(t.Path(rel), 0755)
}

// Path resolves a slash-separated relative path against the tree root.
func (t *Tree) Path(rel string) string {
	return filepath.Join(t.Root, filepath.FromSlash(rel))
}

// Cleanup removes the tree and all contents.
func (t *Tree) Cleanup() {
	os.RemoveAll(t.Root)
}

// Scenario describes one discovery-and-merge case: the files to lay out,
// where discovery starts, the selector environment, and what the merge must
// produce.
type Scenario struct {
	Name    string            `yaml:"name"`
	Files   map[string]string `yaml:"files"`   // relative path -> content
	Dirs    []string          `yaml:"dirs"`    // extra directories, e.g. nested VCS markers
	WorkDir string            `yaml:"workdir"` // discovery start, relative to the tree root
	Env     map[string]string `yaml:"env"`     // selector variables visible to discovery

	Config struct {
		Dynamic      *bool  `yaml:"dynamic"`       // nil means enabled
		ExplicitFile string `yaml:"explicit_file"` // relative paths resolve against workdir
	} `yaml:"config"`

	Expect Expectation `yaml:"expect"`
}

// Expectation is what the merged environment and trace must look like.
type Expectation struct {
	Variables   map[string]string `yaml:"variables"`    // merged values that must be present
	Absent      []string          `yaml:"absent"`       // keys that must not be set
	LoadedCount *int              `yaml:"loaded_count"` // number of loaded=true entries
	LoadedOrder []string          `yaml:"loaded_order"` // path suffixes of loaded files, in order
}

type scenarioFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// LoadScenarios reads a scenario YAML file.
func LoadScenarios(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenarios: %w", err)
	}

	var file scenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scenarios: %w", err)
	}
	if len(file.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios in %s", path)
	}
	return file.Scenarios, nil
}

// MustLoadScenarios is LoadScenarios for test setup paths that cannot return
// an error.
func MustLoadScenarios(path string) []Scenario {
	scenarios, err := LoadScenarios(path)
	if err != nil {
		panic(err)
	}
	return scenarios
}

// Build materializes the scenario's directories and files under the tree.
func (t *Tree) Build(s Scenario) error {
	for _, dir := range s.Dirs {
		if err := t.MkdirAll(dir); err != nil {
			return err
		}
	}
	for rel, content := range s.Files {
		if err := t.WriteFile(rel, content); err != nil {
			return err
		}
	}
	return nil
}
