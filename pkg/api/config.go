package api

import (
	"errors"
	"fmt"
)

// APIConfig represents the configuration for the entire release pipeline application
type APIConfig struct {
	Project      *ProjectConfig         `yaml:"project,omitempty"`
	Pipeline     *PipelineConfig        `yaml:"pipeline,omitempty"`
	Build        *BuildConfig           `yaml:"build,omitempty"`
	Database     *DatabaseConfig        `yaml:"database,omitempty"`
	Integrations *APIConfigIntegrations `yaml:"integrations,omitempty"`
}

func (c *APIConfig) SetDefaults() {
	if c.Project == nil {
		c.Project = &ProjectConfig{}
	}
	c.Project.SetDefaults()

	if c.Pipeline == nil {
		c.Pipeline = &PipelineConfig{}
	}
	c.Pipeline.SetDefaults()

	if c.Build == nil {
		c.Build = &BuildConfig{}
	}
	c.Build.SetDefaults()

	if c.Database == nil {
		c.Database = &DatabaseConfig{}
	}
	c.Database.SetDefaults()

	if c.Integrations == nil {
		c.Integrations = &APIConfigIntegrations{}
	}
	c.Integrations.SetDefaults()
}

func (c *APIConfig) Validate() (err error) {
	err = c.Project.Validate()
	if err != nil {
		return
	}
	err = c.Pipeline.Validate()
	if err != nil {
		return
	}
	err = c.Build.Validate()
	if err != nil {
		return
	}
	err = c.Database.Validate()
	if err != nil {
		return
	}
	err = c.Integrations.Validate()
	if err != nil {
		return
	}

	return nil
}

// ProjectConfig holds the identity of the project being released
type ProjectConfig struct {
	Name          string `yaml:"name"`
	RepoSource    string `yaml:"repoSource"`
	RepoOwner     string `yaml:"repoOwner"`
	RepoName      string `yaml:"repoName"`
	ChangelogPath string `yaml:"changelogPath"`
}

func (c *ProjectConfig) SetDefaults() {
	if c.RepoSource == "" {
		c.RepoSource = "github.com"
	}
	if c.ChangelogPath == "" {
		c.ChangelogPath = "CHANGELOG.md"
	}
}

func (c *ProjectConfig) Validate() (err error) {
	if c.Name == "" {
		return errors.New("project.name is required; set it in the config file")
	}
	if c.RepoOwner == "" || c.RepoName == "" {
		return errors.New("project.repoOwner and project.repoName are required; set them in the config file")
	}

	return nil
}

// PipelineConfig tunes the dependency-graph executor
type PipelineConfig struct {
	MaxConcurrentStages int64 `yaml:"maxConcurrentStages"`
}

func (c *PipelineConfig) SetDefaults() {
	if c.MaxConcurrentStages <= 0 {
		c.MaxConcurrentStages = 4
	}
}

func (c *PipelineConfig) Validate() (err error) {
	return nil
}

// BuildConfig holds the local toolchain commands the stages shell out to
type BuildConfig struct {
	WorkDir          string   `yaml:"workDir"`
	TestCommand      []string `yaml:"testCommand"`
	DatabaseTypes    []string `yaml:"databaseTypes"`
	ChatModel        string   `yaml:"chatModel"`
	BuildCommand     []string `yaml:"buildCommand"`
	DistDir          string   `yaml:"distDir"`
	InstallCommand   []string `yaml:"installCommand"`
	SmokeTestCommand []string `yaml:"smokeTestCommand"`
}

func (c *BuildConfig) SetDefaults() {
	if c.WorkDir == "" {
		c.WorkDir = "."
	}
	if len(c.TestCommand) == 0 {
		c.TestCommand = []string{"pytest", "-x"}
	}
	if len(c.DatabaseTypes) == 0 {
		c.DatabaseTypes = []string{"sqlite", "postgres"}
	}
	if c.ChatModel == "" {
		c.ChatModel = "gpt-4o-mini"
	}
	if len(c.BuildCommand) == 0 {
		c.BuildCommand = []string{"python", "-m", "build"}
	}
	if c.DistDir == "" {
		c.DistDir = "dist"
	}
	if len(c.InstallCommand) == 0 {
		c.InstallCommand = []string{"pip", "install", "--force-reinstall"}
	}
	if len(c.SmokeTestCommand) == 0 {
		c.SmokeTestCommand = []string{"./scripts/smoke_test.sh"}
	}
}

func (c *BuildConfig) Validate() (err error) {
	return nil
}

// DatabaseConfig points at the Postgres server used for scratch test databases
type DatabaseConfig struct {
	Enable   bool   `yaml:"enable"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password" env:"DATABASE_PASSWORD"`
	SSLMode  string `yaml:"sslMode"`
}

func (c *DatabaseConfig) SetDefaults() {
	if !c.Enable {
		return
	}
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 5432
	}
	if c.User == "" {
		c.User = "postgres"
	}
	if c.SSLMode == "" {
		c.SSLMode = "disable"
	}
}

func (c *DatabaseConfig) Validate() (err error) {
	return nil
}

// ConnectionString returns the lib/pq connection string for the given database
func (c *DatabaseConfig) ConnectionString(databaseName string) string {
	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v", c.Host, c.Port, c.User, c.Password, databaseName, c.SSLMode)
}

// APIConfigIntegrations groups the external service integrations
type APIConfigIntegrations struct {
	PackageIndex *PackageIndexConfig `yaml:"packageIndex,omitempty"`
	Github       *GithubConfig       `yaml:"github,omitempty"`
	Registry     *RegistryConfig     `yaml:"registry,omitempty"`
	Slack        *SlackConfig        `yaml:"slack,omitempty"`
}

func (c *APIConfigIntegrations) SetDefaults() {
	if c.PackageIndex == nil {
		c.PackageIndex = &PackageIndexConfig{}
	}
	c.PackageIndex.SetDefaults()

	if c.Github == nil {
		c.Github = &GithubConfig{}
	}
	c.Github.SetDefaults()

	if c.Registry == nil {
		c.Registry = &RegistryConfig{}
	}
	c.Registry.SetDefaults()

	if c.Slack == nil {
		c.Slack = &SlackConfig{}
	}
	c.Slack.SetDefaults()
}

func (c *APIConfigIntegrations) Validate() (err error) {
	err = c.PackageIndex.Validate()
	if err != nil {
		return
	}
	err = c.Github.Validate()
	if err != nil {
		return
	}
	err = c.Registry.Validate()
	if err != nil {
		return
	}
	err = c.Slack.Validate()
	if err != nil {
		return
	}

	return nil
}

// PackageIndexConfig configures the public package index the artifact is published to
type PackageIndexConfig struct {
	Enable              bool   `yaml:"enable"`
	BaseURL             string `yaml:"baseURL"`
	UploadURL           string `yaml:"uploadURL"`
	Token               string `yaml:"token" env:"PACKAGE_INDEX_TOKEN"`
	PollIntervalSeconds int    `yaml:"pollIntervalSeconds"`
	PollTimeoutSeconds  int    `yaml:"pollTimeoutSeconds"`
}

func (c *PackageIndexConfig) SetDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://pypi.org"
	}
	if c.UploadURL == "" {
		c.UploadURL = "https://upload.pypi.org/legacy/"
	}
	if c.PollIntervalSeconds <= 0 {
		c.PollIntervalSeconds = 15
	}
	if c.PollTimeoutSeconds <= 0 {
		c.PollTimeoutSeconds = 600
	}
}

func (c *PackageIndexConfig) Validate() (err error) {
	if !c.Enable {
		return nil
	}
	if c.Token == "" {
		return errors.New("integrations.packageIndex.token is required when the package index integration is enabled")
	}

	return nil
}

// GithubConfig configures the release record integration
type GithubConfig struct {
	Enable bool   `yaml:"enable"`
	APIURL string `yaml:"apiURL"`
	Token  string `yaml:"token" env:"GITHUB_TOKEN"`
}

func (c *GithubConfig) SetDefaults() {
	if c.APIURL == "" {
		c.APIURL = "https://api.github.com"
	}
}

func (c *GithubConfig) Validate() (err error) {
	if !c.Enable {
		return nil
	}
	if c.Token == "" {
		return errors.New("integrations.github.token is required when the github integration is enabled")
	}

	return nil
}

// RegistryConfig configures the container registry the image is pushed to
type RegistryConfig struct {
	Enable     bool   `yaml:"enable"`
	Host       string `yaml:"host"`
	AuthURL    string `yaml:"authURL"`
	APIURL     string `yaml:"apiURL"`
	Repository string `yaml:"repository"`
	Username   string `yaml:"username"`
	Token      string `yaml:"token" env:"REGISTRY_TOKEN"`
	VerifyPush bool   `yaml:"verifyPush"`
}

func (c *RegistryConfig) SetDefaults() {
	if c.Host == "" {
		c.Host = "docker.io"
	}
	if c.AuthURL == "" {
		c.AuthURL = "https://auth.docker.io"
	}
	if c.APIURL == "" {
		c.APIURL = "https://index.docker.io"
	}
}

func (c *RegistryConfig) Validate() (err error) {
	if !c.Enable {
		return nil
	}
	if c.Repository == "" {
		return errors.New("integrations.registry.repository is required when the registry integration is enabled")
	}
	if c.Token == "" {
		return errors.New("integrations.registry.token is required when the registry integration is enabled")
	}

	return nil
}

// SlackConfig configures the announcement integration
type SlackConfig struct {
	Enable   bool   `yaml:"enable"`
	BotToken string `yaml:"botToken" env:"SLACK_BOT_TOKEN"`
	Channel  string `yaml:"channel"`
}

func (c *SlackConfig) SetDefaults() {
	if c.Channel == "" {
		c.Channel = "#releases"
	}
}

func (c *SlackConfig) Validate() (err error) {
	if !c.Enable {
		return nil
	}
	if c.BotToken == "" {
		return errors.New("integrations.slack.botToken is required when the slack integration is enabled")
	}

	return nil
}
