package discovery_test

import (
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/codefind-ai/codefind/citest/testutil"
	"github.com/codefind-ai/codefind/internal/envfile"
	"github.com/codefind-ai/codefind/internal/project"
)

var scenarios = testutil.MustLoadScenarios("testdata/scenarios.yaml")

var _ = Describe("env file discovery", func() {
	var tree *testutil.Tree

	BeforeEach(func() {
		var err error
		tree, err = testutil.NewTree()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(tree.Cleanup)

		// A marker at the tree root keeps traversal and root detection from
		// escaping into the real filesystem.
		Expect(tree.MkdirAll(".git")).To(Succeed())
		Expect(tree.MkdirAll("home")).To(Succeed())
	})

	run := func(s testutil.Scenario) (envfile.Env, []envfile.TraceEntry) {
		Expect(tree.Build(s)).To(Succeed())

		cfg := envfile.DefaultConfig()
		if s.Config.Dynamic != nil {
			cfg.Dynamic = *s.Config.Dynamic
		}
		cfg.ExplicitFile = s.Config.ExplicitFile

		d := &envfile.Discoverer{
			WorkDir:   tree.Path(s.WorkDir),
			Home:      tree.Path("home"),
			OAuthKeys: tree.Path("home/.codefind/oauth-keys.env"),
			Prober:    envfile.OSProber{},
			Getenv:    func(name string) string { return s.Env[name] },
			FindRoot:  project.FindRoot,
		}
		return envfile.NewLoader().Load(d.Discover(cfg))
	}

	for _, s := range scenarios {
		s := s
		It(s.Name, func() {
			env, trace := run(s)

			for key, want := range s.Expect.Variables {
				Expect(env).To(HaveKeyWithValue(key, want), "variable %s", key)
			}
			for _, key := range s.Expect.Absent {
				Expect(env).NotTo(HaveKey(key), "variable %s", key)
			}

			var loaded []string
			for _, entry := range trace {
				if entry.Loaded {
					loaded = append(loaded, entry.Candidate.Path)
				}
			}
			if s.Expect.LoadedCount != nil {
				Expect(loaded).To(HaveLen(*s.Expect.LoadedCount))
			}
			if len(s.Expect.LoadedOrder) > 0 {
				Expect(loaded).To(HaveLen(len(s.Expect.LoadedOrder)))
				for i, suffix := range s.Expect.LoadedOrder {
					want := string(filepath.Separator) + filepath.FromSlash(suffix)
					Expect(strings.HasSuffix(loaded[i], want)).To(BeTrue(),
						"loaded[%d] = %s, want suffix %s", i, loaded[i], want)
				}
			}
		})
	}
})

var _ = Describe("discovery determinism", func() {
	It("produces identical results across repeated runs", func() {
		tree, err := testutil.NewTree()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(tree.Cleanup)

		Expect(tree.MkdirAll(".git")).To(Succeed())
		Expect(tree.MkdirAll("home")).To(Succeed())
		Expect(tree.WriteFile("app/.env", "A=1\n")).To(Succeed())
		Expect(tree.WriteFile("app/.env.local", "A=2\nB=3\n")).To(Succeed())

		d := &envfile.Discoverer{
			WorkDir:   tree.Path("app"),
			Home:      tree.Path("home"),
			OAuthKeys: tree.Path("home/.codefind/oauth-keys.env"),
			Prober:    envfile.OSProber{},
			Getenv:    func(string) string { return "" },
			FindRoot:  project.FindRoot,
		}

		cfg := envfile.DefaultConfig()
		first := d.Discover(cfg)
		second := d.Discover(cfg)
		Expect(second.Candidates).To(Equal(first.Candidates))

		envFirst, _ := envfile.NewLoader().Load(first)
		envSecond, _ := envfile.NewLoader().Load(second)
		Expect(envSecond).To(Equal(envFirst))
		Expect(envFirst).To(HaveKeyWithValue("A", "2"))
	})
})
