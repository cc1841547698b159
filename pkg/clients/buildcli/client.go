package buildcli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/releasetrain/releasetrain-api/pkg/api"
	"github.com/rs/zerolog/log"
)

// Client wraps the local toolchain commands the pipeline stages shell out to
//
//go:generate mockgen -package=buildcli -destination ./mock.go -source=client.go
type Client interface {
	RunTestSuite(ctx context.Context, databaseTypes []string, chatModel string, env map[string]string) (err error)
	BuildPackage(ctx context.Context) (artifactPaths []string, err error)
	InstallPackage(ctx context.Context, artifactPaths []string) (err error)
	RunSmokeTest(ctx context.Context) (err error)
	LoginRegistry(ctx context.Context) (err error)
	BuildImage(ctx context.Context, version string) (err error)
	PushImage(ctx context.Context, tag string) (err error)
}

// NewClient returns a buildcli.Client running commands in the configured work dir
func NewClient(config *api.APIConfig) Client {
	return &client{
		config: config,
	}
}

type client struct {
	config *api.APIConfig
}

// RunTestSuite runs the project test suite once against all configured database
// backends and the configured model
func (c *client) RunTestSuite(ctx context.Context, databaseTypes []string, chatModel string, env map[string]string) (err error) {

	command := append([]string{}, c.config.Build.TestCommand...)
	command = append(command, "--db-type", strings.Join(databaseTypes, ","), "--chat-models", chatModel)

	return c.runCommand(ctx, env, command)
}

// BuildPackage builds the distributable package and returns the artifacts it produced
func (c *client) BuildPackage(ctx context.Context) (artifactPaths []string, err error) {

	err = c.runCommand(ctx, nil, c.config.Build.BuildCommand)
	if err != nil {
		return
	}

	distDir := filepath.Join(c.config.Build.WorkDir, c.config.Build.DistDir)
	for _, pattern := range []string{"*.whl", "*.tar.gz"} {
		matches, globErr := filepath.Glob(filepath.Join(distDir, pattern))
		if globErr != nil {
			return nil, globErr
		}
		artifactPaths = append(artifactPaths, matches...)
	}
	sort.Strings(artifactPaths)

	if len(artifactPaths) == 0 {
		return nil, errors.Errorf("the build produced no artifacts in %v", distDir)
	}

	return
}

// InstallPackage installs the built artifacts into the current environment
func (c *client) InstallPackage(ctx context.Context, artifactPaths []string) (err error) {

	command := append([]string{}, c.config.Build.InstallCommand...)
	command = append(command, artifactPaths...)

	return c.runCommand(ctx, nil, command)
}

// RunSmokeTest exercises the installed command-line entry point end-to-end
func (c *client) RunSmokeTest(ctx context.Context) (err error) {
	return c.runCommand(ctx, nil, c.config.Build.SmokeTestCommand)
}

// LoginRegistry authenticates the local container tooling against the registry
func (c *client) LoginRegistry(ctx context.Context) (err error) {

	registry := c.config.Integrations.Registry

	cmd := exec.CommandContext(ctx, "docker", "login", "--username", registry.Username, "--password-stdin", registry.Host)
	cmd.Dir = c.config.Build.WorkDir
	cmd.Stdin = strings.NewReader(registry.Token)

	output, err := cmd.CombinedOutput()
	if len(output) > 0 {
		log.Debug().Msg(string(output))
	}
	if err != nil {
		return errors.Wrap(err, "docker login failed")
	}

	return nil
}

// BuildImage builds the container image parameterized by the version string,
// tagging it with both the version and latest
func (c *client) BuildImage(ctx context.Context, version string) (err error) {

	repository := c.config.Integrations.Registry.Repository

	command := []string{
		"docker", "build",
		"--build-arg", fmt.Sprintf("VERSION=%v", version),
		"--tag", fmt.Sprintf("%v:%v", repository, version),
		"--tag", fmt.Sprintf("%v:latest", repository),
		".",
	}

	return c.runCommand(ctx, nil, command)
}

// PushImage pushes a single tag of the image to the registry
func (c *client) PushImage(ctx context.Context, tag string) (err error) {

	repository := c.config.Integrations.Registry.Repository

	return c.runCommand(ctx, nil, []string{"docker", "push", fmt.Sprintf("%v:%v", repository, tag)})
}

func (c *client) runCommand(ctx context.Context, env map[string]string, command []string) (err error) {

	if len(command) == 0 {
		return errors.New("an empty command cannot be run")
	}

	log.Info().Str("workDir", c.config.Build.WorkDir).Msgf("Running command %v...", strings.Join(command, " "))

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Dir = c.config.Build.WorkDir
	cmd.Env = os.Environ()
	for key, value := range env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%v=%v", key, value))
	}

	output, err := cmd.CombinedOutput()
	if len(output) > 0 {
		log.Debug().Msg(string(output))
	}
	if err != nil {
		return errors.Wrapf(err, "command %v failed", command[0])
	}

	return nil
}
