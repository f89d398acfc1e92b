// Package onboarding checks AWS credential availability for Bedrock access
// and selects the starting model for fresh installs.
package onboarding

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/codefind-ai/codefind/internal/models"
)

// DefaultRegion is used when no region is configured anywhere.
const DefaultRegion = "us-west-2"

// CLI probe timeouts. The sts call hits the network; the region lookup only
// reads local config but still gets a bound.
const (
	stsTimeout    = 10 * time.Second
	regionTimeout = 5 * time.Second
)

// Method identifies how credentials were found.
type Method string

const (
	MethodEnvironment Method = "environment_variables"
	MethodProfile     Method = "aws_profile"
	MethodCLI         Method = "aws_cli"
	MethodIAMRole     Method = "iam_role"
)

// CredentialInfo reports the outcome of a credential check.
type CredentialInfo struct {
	HasCredentials bool   `json:"has_credentials"`
	Method         Method `json:"method,omitempty"`
	Profile        string `json:"profile,omitempty"`
	Region         string `json:"region,omitempty"`
}

// Checker walks the AWS credential chain. The zero value uses the real
// environment, PATH, and SDK; tests override the fields.
type Checker struct {
	Getenv         func(string) string
	LookPath       func(string) (string, error)
	Run            func(ctx context.Context, name string, args ...string) ([]byte, error)
	SDKCredentials func(ctx context.Context) (string, error)
}

// NewChecker returns a checker wired to the real process environment.
func NewChecker() *Checker {
	return &Checker{
		Getenv:         os.Getenv,
		LookPath:       exec.LookPath,
		Run:            runCommand,
		SDKCredentials: sdkCredentials,
	}
}

// Check walks the chain in order: explicit env credentials, a named profile,
// a working aws CLI, then the SDK's own resolution (which covers IAM roles on
// EC2/ECS/Lambda). The first hit wins.
func (c *Checker) Check(ctx context.Context) CredentialInfo {
	getenv := c.getenv()

	if getenv("AWS_ACCESS_KEY_ID") != "" && getenv("AWS_SECRET_ACCESS_KEY") != "" {
		return CredentialInfo{
			HasCredentials: true,
			Method:         MethodEnvironment,
			Region:         regionOrDefault(getenv),
		}
	}

	if profile := getenv("AWS_PROFILE"); profile != "" {
		return CredentialInfo{
			HasCredentials: true,
			Method:         MethodProfile,
			Profile:        profile,
			Region:         regionOrDefault(getenv),
		}
	}

	if info, ok := c.checkCLI(ctx); ok {
		return info
	}

	if region, err := c.sdkCheck()(ctx); err == nil {
		if region == "" {
			region = regionOrDefault(getenv)
		}
		return CredentialInfo{
			HasCredentials: true,
			Method:         MethodIAMRole,
			Region:         region,
		}
	}

	return CredentialInfo{}
}

// checkCLI asks a locally installed aws CLI whether it can authenticate, and
// if so which region it is configured for.
func (c *Checker) checkCLI(ctx context.Context) (CredentialInfo, bool) {
	if _, err := c.lookPath()("aws"); err != nil {
		return CredentialInfo{}, false
	}

	stsCtx, cancel := context.WithTimeout(ctx, stsTimeout)
	defer cancel()
	if _, err := c.run()(stsCtx, "aws", "sts", "get-caller-identity"); err != nil {
		return CredentialInfo{}, false
	}

	info := CredentialInfo{
		HasCredentials: true,
		Method:         MethodCLI,
		Region:         DefaultRegion,
	}

	regionCtx, cancel := context.WithTimeout(ctx, regionTimeout)
	defer cancel()
	if out, err := c.run()(regionCtx, "aws", "configure", "get", "region"); err == nil {
		if region := strings.TrimSpace(string(out)); region != "" {
			info.Region = region
		}
	}

	return info, true
}

// SelectDefaultModel picks the model a fresh install should start with. The
// boolean is false when no credentials are available, leaving the choice to
// the user.
func SelectDefaultModel(info CredentialInfo) (string, bool) {
	if !info.HasCredentials {
		return "", false
	}
	return models.DefaultModelID, true
}

func regionOrDefault(getenv func(string) string) string {
	if region := getenv("AWS_DEFAULT_REGION"); region != "" {
		return region
	}
	return DefaultRegion
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// sdkCredentials resolves the default AWS config and asks it for
// credentials. Success means the SDK chain (shared config, IMDS, container
// credentials) can authenticate even though nothing else could. The region
// the SDK resolved comes back with it.
func sdkCredentials(ctx context.Context) (string, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return "", err
	}
	if _, err := cfg.Credentials.Retrieve(ctx); err != nil {
		return "", err
	}
	return cfg.Region, nil
}

func (c *Checker) getenv() func(string) string {
	if c.Getenv != nil {
		return c.Getenv
	}
	return os.Getenv
}

func (c *Checker) lookPath() func(string) (string, error) {
	if c.LookPath != nil {
		return c.LookPath
	}
	return exec.LookPath
}

func (c *Checker) run() func(ctx context.Context, name string, args ...string) ([]byte, error) {
	if c.Run != nil {
		return c.Run
	}
	return runCommand
}

func (c *Checker) sdkCheck() func(ctx context.Context) (string, error) {
	if c.SDKCredentials != nil {
		return c.SDKCredentials
	}
	return sdkCredentials
}
