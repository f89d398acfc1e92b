package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codefind-ai/codefind/internal/config"
	"github.com/codefind-ai/codefind/internal/envfile"
	"github.com/codefind-ai/codefind/internal/models"
	"github.com/codefind-ai/codefind/internal/onboarding"
	"github.com/codefind-ai/codefind/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
	Long: `Print the settings CodeFind would run with: relevant environment
variables, built-in defaults, and the resolved options from config files,
toggles, and flags. Sensitive values are masked to their last characters.

Subcommands:
  set      Change a setting in the global config file
  unset    Remove a setting from the global config file`,
	RunE: runSettings,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting in the global config file",
	Long: `Write a setting to ~/.codefind/config.json.

Supported keys:
  model                  Default Bedrock model
  region                 AWS region for Bedrock
  dynamic_env            Enable dynamic env file discovery (true|false)
  env_discovery_verbose  Print the env discovery trace (true|false)`,
	RunE: runSettingsSet,
}

var settingsUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a setting from the global config file",
	RunE:  runSettingsUnset,
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsUnsetCmd)
}

func runSettings(cmd *cobra.Command, args []string) error {
	workDir, err := os.Getwd()
	if err != nil {
		return err
	}

	appConfig, err := config.Load(workDir)
	if err != nil {
		return err
	}

	cfg := discoveryConfig(cmd, appConfig)

	model := appConfig.Model
	if model == "" {
		model = models.DefaultModelID
	}
	region := appConfig.Region
	if region == "" {
		region = onboarding.DefaultRegion
	}

	report := settings.Report{
		EnvVars: settings.CollectEnvVars(os.Environ()),
		Defaults: map[string]string{
			"model":       models.DefaultModelID,
			"region":      onboarding.DefaultRegion,
			"dynamic_env": "true",
			"log_level":   "WARN",
		},
		Options: map[string]string{
			"model":                 model,
			"region":                region,
			"dynamic_env":           strconv.FormatBool(cfg.Dynamic),
			"env_discovery_verbose": strconv.FormatBool(cfg.Verbose),
			"env_file":              cfg.ExplicitFile,
			"log_level":             logLevel,
		},
	}

	fmt.Print(settings.FormatSettings(report, settings.NewScrubber(appConfig.ScrubPatterns)))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("key and value required. Use: codefind settings set <key> <value>")
	}
	key, value := args[0], args[1]

	appConfig, err := config.LoadGlobal()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	switch key {
	case "model":
		if _, err := models.Resolve(value); err != nil {
			if suggestions := models.Suggest(value, 3); len(suggestions) > 0 {
				return fmt.Errorf("unknown model %q. Did you mean: %s", value, strings.Join(suggestions, ", "))
			}
			return fmt.Errorf("unknown model %q", value)
		}
		appConfig.Model = value
	case "region":
		if value == "" {
			return fmt.Errorf("region cannot be empty")
		}
		appConfig.Region = value
	case "dynamic_env":
		parsed, ok := envfile.ParseToggle(value)
		if !ok {
			return fmt.Errorf("invalid value %q for %s (use true or false)", value, key)
		}
		appConfig.DynamicEnv = &parsed
	case "env_discovery_verbose":
		parsed, ok := envfile.ParseToggle(value)
		if !ok {
			return fmt.Errorf("invalid value %q for %s (use true or false)", value, key)
		}
		appConfig.EnvDiscoveryVerbose = &parsed
	default:
		return fmt.Errorf("unknown setting: %s (valid: model, region, dynamic_env, env_discovery_verbose)", key)
	}

	if err := saveGlobal(appConfig); err != nil {
		return err
	}

	fmt.Printf("Set %s = %s\n", key, value)
	return nil
}

func runSettingsUnset(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("key required. Use: codefind settings unset <key>")
	}
	key := args[0]

	appConfig, err := config.LoadGlobal()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	switch key {
	case "model":
		if appConfig.Model == "" {
			return fmt.Errorf("%s is not set", key)
		}
		appConfig.Model = ""
	case "region":
		if appConfig.Region == "" {
			return fmt.Errorf("%s is not set", key)
		}
		appConfig.Region = ""
	case "dynamic_env":
		if appConfig.DynamicEnv == nil {
			return fmt.Errorf("%s is not set", key)
		}
		appConfig.DynamicEnv = nil
	case "env_discovery_verbose":
		if appConfig.EnvDiscoveryVerbose == nil {
			return fmt.Errorf("%s is not set", key)
		}
		appConfig.EnvDiscoveryVerbose = nil
	default:
		return fmt.Errorf("unknown setting: %s (valid: model, region, dynamic_env, env_discovery_verbose)", key)
	}

	if err := saveGlobal(appConfig); err != nil {
		return err
	}

	fmt.Printf("Unset %s\n", key)
	return nil
}

func saveGlobal(appConfig *config.Config) error {
	paths := config.GetPaths()
	if err := paths.EnsurePaths(); err != nil {
		return err
	}
	if err := config.Save(appConfig, paths.SettingsPath()); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}
