package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codefind-ai/codefind/internal/config"
	"github.com/codefind-ai/codefind/internal/envfile"
	"github.com/codefind-ai/codefind/internal/settings"
)

var (
	envJSON        bool
	envValues      bool
	envShowSecrets bool
	envDiff        bool
	envDir         string
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show which env files would load and what they set",
	Long: `Run env file discovery and report the result without changing anything.

By default the discovery trace is printed: every candidate path in load
order, whether it exists, and which files loaded. Nothing in the current
process environment is modified.

Examples:
  codefind env                   # Show the discovery trace
  codefind env --values          # Show the merged variables (secrets masked)
  codefind env --diff            # Show what loading would change
  codefind env --json            # Full report as JSON
  codefind env --env-file extra.env  # Include an explicit file, loaded last`,
	RunE: runEnv,
}

func init() {
	envCmd.Flags().BoolVar(&envJSON, "json", false, "Emit the full report as JSON")
	envCmd.Flags().BoolVar(&envValues, "values", false, "Print the merged variables as KEY=VALUE lines")
	envCmd.Flags().BoolVar(&envShowSecrets, "show-secrets", false, "Print sensitive values unmasked")
	envCmd.Flags().BoolVar(&envDiff, "diff", false, "Diff the merged variables against the current environment")
	envCmd.Flags().StringVarP(&envDir, "directory", "C", "", "Run discovery from this directory")
}

// envReport is the --json payload.
type envReport struct {
	Config     envfile.Config       `json:"config"`
	Candidates []envfile.Candidate  `json:"candidates"`
	Trace      []envfile.TraceEntry `json:"trace"`
	Variables  map[string]string    `json:"variables"`
}

func runEnv(cmd *cobra.Command, args []string) error {
	workDir, err := GetWorkDir(envDir)
	if err != nil {
		return err
	}

	appConfig, err := config.Load(workDir)
	if err != nil {
		return err
	}

	cfg := discoveryConfig(cmd, appConfig)
	d := envfile.NewDiscoverer()
	if envDir != "" {
		d.WorkDir = workDir
	}

	result := d.Discover(cfg)
	env, trace := envfile.NewLoader().Load(result)

	scrubber := settings.NewScrubber(appConfig.ScrubPatterns)
	if envShowSecrets {
		scrubber = nil
	}

	switch {
	case envJSON:
		variables := make(map[string]string, len(env))
		for name, value := range env {
			variables[name] = scrubber.Scrub(name, value)
		}
		report := envReport{
			Config:     cfg,
			Candidates: result.Candidates,
			Trace:      trace,
			Variables:  variables,
		}
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case envValues:
		for _, name := range env.Keys() {
			fmt.Printf("%s=%s\n", name, scrubber.Scrub(name, env[name]))
		}

	case envDiff:
		diff := settings.FormatEnvDiff(environMap(os.Environ()), env, scrubber)
		if diff == "" {
			fmt.Println("No changes.")
			return nil
		}
		fmt.Print(diff)

	default:
		fmt.Print(envfile.FormatTrace(trace))
	}

	return nil
}

// environMap converts os.Environ form into a map, last duplicate winning.
func environMap(environ []string) map[string]string {
	out := make(map[string]string, len(environ))
	for _, kv := range environ {
		if name, value, ok := strings.Cut(kv, "="); ok {
			out[name] = value
		}
	}
	return out
}
