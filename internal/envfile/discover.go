package envfile

import (
	"os"
	"path/filepath"

	"github.com/codefind-ai/codefind/internal/config"
	"github.com/codefind-ai/codefind/internal/project"
)

// Discoverer enumerates candidate env files. Construct with NewDiscoverer and
// override fields to run against a fake filesystem or environment.
type Discoverer struct {
	// WorkDir is the directory discovery starts from.
	WorkDir string
	// Home is the user's home directory. Empty skips the home slots.
	Home string
	// OAuthKeys is the path of the OAuth keys env file. Empty skips it.
	OAuthKeys string
	// Prober filters traversal candidates by existence.
	Prober Prober
	// Getenv supplies the selector variables.
	Getenv func(string) string
	// FindRoot locates the version-control root above a directory.
	FindRoot func(string) (string, bool)
}

// NewDiscoverer returns a Discoverer wired to the real filesystem and process
// environment.
func NewDiscoverer() *Discoverer {
	wd, _ := os.Getwd()
	home, _ := os.UserHomeDir()
	return &Discoverer{
		WorkDir:   wd,
		Home:      home,
		OAuthKeys: config.GetPaths().OAuthKeysPath(),
		Prober:    OSProber{},
		Getenv:    os.Getenv,
		FindRoot:  project.FindRoot,
	}
}

// Discover builds the ordered candidate list for cfg. It never fails; path
// resolution problems degrade to skipping the affected slot.
func (d *Discoverer) Discover(cfg Config) *Result {
	wd := canonicalDir(d.WorkDir)
	home := canonicalDir(d.Home)

	root, haveRoot := "", false
	if d.FindRoot != nil && wd != "" {
		root, haveRoot = d.FindRoot(wd)
	}
	if !haveRoot {
		// No repository: the slot degrades to the working directory and is
		// removed by de-duplication.
		root = wd
	}

	var cands []Candidate
	seen := make(map[string]int)
	add := func(path string, category Category) {
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = len(cands)
		cands = append(cands, Candidate{Path: path, Category: category})
	}

	standardDirs := []string{home, root, wd}
	variantDirs := []string{wd, root, home}

	if cfg.Dynamic {
		// 1. OAuth keys, loaded first so any later file can override them.
		if d.OAuthKeys != "" {
			add(canonicalPath(d.OAuthKeys, wd), CategoryOAuthKeys)
		}

		// 2. Environment-specific variants, working directory first.
		names := selectorFilenames(d.getenv())
		for _, dir := range variantDirs {
			if dir == "" {
				continue
			}
			for _, name := range names {
				add(filepath.Join(dir, name), CategoryEnvSpecific)
			}
		}

		// 3. Base .env files walking up from the working directory. Only
		// directories that actually hold one contribute a candidate.
		if wd != "" {
			for _, dir := range traverseUp(wd, root, haveRoot) {
				path := filepath.Join(dir, ".env")
				if d.prober().Exists(path) {
					add(path, CategoryTraversal)
				}
			}
		}

		// 4. Standard .env locations.
		for _, dir := range standardDirs {
			if dir == "" {
				continue
			}
			add(filepath.Join(dir, ".env"), CategoryStandard)
		}

		// 5. Common variants against the same directories.
		for _, dir := range variantDirs {
			if dir == "" {
				continue
			}
			for _, name := range commonVariantNames {
				add(filepath.Join(dir, name), CategoryCommonVariant)
			}
		}
	} else {
		// Legacy mode: the three standard locations only.
		for _, dir := range standardDirs {
			if dir == "" {
				continue
			}
			add(filepath.Join(dir, ".env"), CategoryStandard)
		}
	}

	// 6. The explicit file is always last and always wins, even when an
	// earlier strategy already found the same path.
	if cfg.ExplicitFile != "" {
		path := canonicalPath(cfg.ExplicitFile, wd)
		if i, dup := seen[path]; dup {
			cands = append(cands[:i], cands[i+1:]...)
		}
		cands = append(cands, Candidate{Path: path, Category: CategoryExplicit})
	}

	for i := range cands {
		cands[i].Rank = i
	}
	return &Result{Candidates: cands}
}

// DiscoverAndLoad runs discovery and loading with the default OS wiring.
func DiscoverAndLoad(cfg Config) (Env, []TraceEntry) {
	result := NewDiscoverer().Discover(cfg)
	return NewLoader().Load(result)
}

func (d *Discoverer) getenv() func(string) string {
	if d.Getenv != nil {
		return d.Getenv
	}
	return os.Getenv
}

func (d *Discoverer) prober() Prober {
	if d.Prober != nil {
		return d.Prober
	}
	return OSProber{}
}

// canonicalDir resolves dir to a canonical absolute path. Missing directories
// keep their lexical absolute form.
func canonicalDir(dir string) string {
	if dir == "" {
		return ""
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = filepath.Clean(dir)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

// canonicalPath resolves a file path against base. Missing files resolve
// through their parent directory; missing parents keep the lexical form.
func canonicalPath(path, base string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	dir, file := filepath.Split(path)
	if resolved, err := filepath.EvalSymlinks(filepath.Clean(dir)); err == nil {
		return filepath.Join(resolved, file)
	}
	return filepath.Clean(path)
}
