// Package commands provides the CLI commands for CodeFind.
package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codefind-ai/codefind/internal/config"
	"github.com/codefind-ai/codefind/internal/envfile"
	"github.com/codefind-ai/codefind/internal/logging"
)

var (
	// Version information set at build time
	Version   = "0.1.0"
	BuildTime = "dev"
)

// Global flags
var (
	logLevel     string
	dynamicEnv   bool
	noDynamicEnv bool
	envFileFlag  string
	envVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "codefind",
	Short: "CodeFind - AI pair programming on AWS Bedrock",
	Long: `CodeFind is an AI pair programming tool backed by AWS Bedrock models.

Before anything else runs, CodeFind discovers and loads .env files: OAuth
keys from ~/.codefind, environment-specific variants selected by NODE_ENV,
.env files from the current directory up to the repository root, and the
standard home/repo/cwd locations. Later files override earlier ones.

Run 'codefind env' to see exactly which files would load, 'codefind exec'
to run a command with that environment, or 'codefind doctor' to check the
AWS credential setup.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg := logging.DefaultConfig()
		cfg.Level = logging.ParseLevel(logLevel)
		logging.Init(cfg)
	},
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand, show help
		cmd.Help()
	},
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "WARN", "Log level (DEBUG|INFO|WARN|ERROR)")
	rootCmd.PersistentFlags().BoolVar(&dynamicEnv, "dynamic-env", true, "Enable dynamic env file discovery")
	rootCmd.PersistentFlags().BoolVar(&noDynamicEnv, "no-dynamic-env", false, "Disable dynamic env file discovery")
	rootCmd.PersistentFlags().StringVar(&envFileFlag, "env-file", "", "Additional env file, loaded last")
	rootCmd.PersistentFlags().BoolVar(&envVerbose, "env-discovery-verbose", false, "Print the env discovery trace")

	// Version template
	rootCmd.SetVersionTemplate(fmt.Sprintf("codefind %s (%s)\n", Version, BuildTime))

	// Add subcommands
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(settingsCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// GetWorkDir returns the working directory from flag or current directory.
func GetWorkDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	return os.Getwd()
}

// discoveryConfig resolves the env discovery configuration with flags taking
// precedence over the CODEFIND_* toggles, toggles over the config file, and
// the config file over built-in defaults.
func discoveryConfig(cmd *cobra.Command, appConfig *config.Config) envfile.Config {
	cfg := envfile.DefaultConfig()

	if appConfig != nil {
		cfg.Dynamic = appConfig.DynamicEnvEnabled()
		cfg.Verbose = appConfig.DiscoveryVerbose()
	}

	if v, ok := envfile.ParseToggle(os.Getenv(envfile.EnvDynamicToggle)); ok {
		cfg.Dynamic = v
	}
	if v, ok := envfile.ParseToggle(os.Getenv(envfile.EnvVerboseToggle)); ok {
		cfg.Verbose = v
	}

	flags := cmd.Flags()
	if flags.Changed("dynamic-env") || flags.Changed("no-dynamic-env") {
		cfg.Dynamic = resolveDynamic(
			flags.Changed("dynamic-env"), dynamicEnv,
			flags.Changed("no-dynamic-env"), noDynamicEnv,
			os.Args[1:])
	}
	if flags.Changed("env-discovery-verbose") {
		cfg.Verbose = envVerbose
	}
	if envFileFlag != "" {
		cfg.ExplicitFile = envFileFlag
	}

	return cfg
}

// resolveDynamic reconciles the --dynamic-env / --no-dynamic-env flag pair.
// When only one was given it wins; when both appear the later one on the
// command line wins.
func resolveDynamic(dynSet, dynVal, noSet, noVal bool, argv []string) bool {
	if dynSet && !noSet {
		return dynVal
	}
	if noSet && !dynSet {
		return !noVal
	}

	dynamic := true
	for _, arg := range argv {
		switch {
		case arg == "--dynamic-env" || strings.HasPrefix(arg, "--dynamic-env="):
			dynamic = boolFlagValue(arg)
		case arg == "--no-dynamic-env" || strings.HasPrefix(arg, "--no-dynamic-env="):
			dynamic = !boolFlagValue(arg)
		}
	}
	return dynamic
}

// boolFlagValue extracts the value of a boolean long flag argument. A bare
// flag means true; an explicit =value is parsed, defaulting to true on junk.
func boolFlagValue(arg string) bool {
	_, value, found := strings.Cut(arg, "=")
	if !found {
		return true
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return true
	}
	return parsed
}
