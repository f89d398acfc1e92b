package commands

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/shell"

	"github.com/codefind-ai/codefind/internal/config"
	"github.com/codefind-ai/codefind/internal/envfile"
)

var (
	execCommandStr string
	execPristine   bool
)

var execCmd = &cobra.Command{
	Use:   "exec [flags] -- command [args...]",
	Short: "Run a command with the discovered env files applied",
	Long: `Run a command with the merged env file variables in its environment.

The child process environment is the current one with the merged variables
layered on top. The calling process is never modified. The child's exit
code becomes codefind's exit code.

Examples:
  codefind exec -- npm start
  codefind exec -- printenv API_URL
  codefind exec -c 'echo $DATABASE_URL'
  codefind exec --pristine -- ./script.sh   # Only env file variables`,
	RunE: runExec,
}

func init() {
	execCmd.Flags().StringVarP(&execCommandStr, "command", "c", "", "Command string, split with shell word rules")
	execCmd.Flags().BoolVar(&execPristine, "pristine", false, "Do not inherit the current environment")
}

func runExec(cmd *cobra.Command, args []string) error {
	workDir, err := os.Getwd()
	if err != nil {
		return err
	}

	appConfig, err := config.Load(workDir)
	if err != nil {
		return err
	}

	cfg := discoveryConfig(cmd, appConfig)
	env, trace := envfile.DiscoverAndLoad(cfg)

	if cfg.Verbose {
		fmt.Fprint(os.Stderr, envfile.FormatTrace(trace))
	}

	argv := args
	if execCommandStr != "" {
		if len(args) > 0 {
			return fmt.Errorf("cannot combine -c with positional arguments")
		}
		argv, err = shell.Fields(execCommandStr, env.Lookup)
		if err != nil {
			return fmt.Errorf("failed to parse command: %w", err)
		}
	}
	if len(argv) == 0 {
		return fmt.Errorf("no command given. Usage: codefind exec -- command [args...]")
	}

	base := os.Environ()
	if execPristine {
		base = nil
	}

	child := exec.Command(argv[0], argv[1:]...)
	child.Env = env.Environ(base)
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr

	if err := child.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run %s: %w", argv[0], err)
	}
	return nil
}
