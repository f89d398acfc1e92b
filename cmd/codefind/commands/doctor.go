package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/codefind-ai/codefind/internal/config"
	"github.com/codefind-ai/codefind/internal/envfile"
	"github.com/codefind-ai/codefind/internal/logging"
	"github.com/codefind-ai/codefind/internal/models"
	"github.com/codefind-ai/codefind/internal/onboarding"
	"github.com/codefind-ai/codefind/internal/project"
	"github.com/codefind-ai/codefind/internal/state"
)

var doctorModel string

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check env files, AWS credentials, and model selection",
	Long: `Run the startup sequence and report what it finds.

Doctor loads the discovered env files into this process (so AWS variables
set there count), walks the AWS credential chain the way Bedrock access
will, and reports which model would be used. Problems are reported, never
fatal.`,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().StringVar(&doctorModel, "model", "", "Model to validate instead of the configured one")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	workDir, err := os.Getwd()
	if err != nil {
		return err
	}

	paths := config.GetPaths()
	if err := paths.EnsurePaths(); err != nil {
		return err
	}

	appConfig, err := config.Load(workDir)
	if err != nil {
		return err
	}

	printPathReport(paths, workDir)
	fmt.Println()

	// Env files next: credentials configured there must be visible to the
	// chain below.
	cfg := discoveryConfig(cmd, appConfig)
	env, trace := envfile.DiscoverAndLoad(cfg)
	env.Apply()

	if cfg.Verbose {
		fmt.Print(envfile.FormatTrace(trace))
	} else {
		loaded := 0
		for _, entry := range trace {
			if entry.Loaded {
				loaded++
			}
		}
		fmt.Printf("Loaded %d env file(s)\n", loaded)
	}
	fmt.Println()

	info := onboarding.NewChecker().Check(context.Background())
	printCredentialReport(info)

	model := selectModel(doctorModel, appConfig, info)
	fmt.Println()

	persistDoctorRun(model)
	return nil
}

func printPathReport(paths *config.Paths, workDir string) {
	fmt.Println("Paths:")
	fmt.Printf("  Home:           %s\n", paths.Home)
	fmt.Printf("  Config:         %s%s\n", paths.SettingsPath(), missingSuffix(paths.SettingsPath()))
	fmt.Printf("  Project config: %s%s\n", config.ProjectConfigPath(workDir), missingSuffix(config.ProjectConfigPath(workDir)))

	proj := project.Detect(workDir)
	if proj.VCS != "" {
		fmt.Printf("  Project root:   %s (%s)\n", proj.Root, proj.VCS)
	} else {
		fmt.Printf("  Project root:   %s (no repository found)\n", proj.Root)
	}
}

func missingSuffix(path string) string {
	if _, err := os.Stat(path); err != nil {
		return " (missing)"
	}
	return ""
}

func printCredentialReport(info onboarding.CredentialInfo) {
	if !info.HasCredentials {
		fmt.Println("✗ AWS credentials: not found")
		fmt.Println()
		fmt.Println("CodeFind requires AWS credentials to access Bedrock models.")
		fmt.Println("You can set them up in several ways:")
		fmt.Println("  1. AWS CLI: run 'aws configure'")
		fmt.Println("  2. Environment: export AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY")
		fmt.Println("  3. Profile: export AWS_PROFILE=your-profile")
		fmt.Println("  4. IAM role: run on EC2/ECS/Lambda with a role attached")
		return
	}

	switch info.Method {
	case onboarding.MethodProfile:
		fmt.Printf("✓ AWS credentials: found (profile %s)\n", info.Profile)
	default:
		fmt.Printf("✓ AWS credentials: found (%s)\n", info.Method)
	}
	fmt.Printf("✓ Region: %s\n", info.Region)
}

// selectModel resolves the model doctor would start with: an explicit
// --model wins, then the configured one, then the credential-based default.
func selectModel(explicit string, appConfig *config.Config, info onboarding.CredentialInfo) string {
	name := explicit
	if name == "" {
		name = appConfig.Model
	}

	if name != "" {
		if _, err := models.Resolve(name); err != nil {
			fmt.Printf("✗ Model is unknown: %s\n", name)
			if suggestions := models.Suggest(name, 3); len(suggestions) > 0 {
				fmt.Println("  Did you mean:")
				for _, id := range suggestions {
					fmt.Printf("    bedrock/%s\n", id)
				}
			}
			return ""
		}
		fmt.Printf("✓ Model: %s\n", name)
		return name
	}

	if model, ok := onboarding.SelectDefaultModel(info); ok {
		fmt.Printf("✓ Model: %s (default)\n", model)
		return model
	}

	fmt.Println("✗ Model: none selected (no credentials for the default)")
	return ""
}

// persistDoctorRun records the run in the install state. State trouble is
// logged, not surfaced; doctor output stays useful without a writable home.
func persistDoctorRun(model string) {
	store := state.DefaultStore()
	st, err := store.LoadOrInit()
	if err != nil {
		logging.Warn().Err(err).Msg("failed to load install state")
		return
	}

	st.LastDoctorAt = time.Now().UTC()
	if model != "" {
		st.LastModel = model
	}
	if err := store.Save(st); err != nil {
		logging.Warn().Err(err).Msg("failed to save install state")
		return
	}

	fmt.Printf("Install ID: %s\n", st.InstallID)
}
