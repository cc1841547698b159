package release

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/releasetrain/releasetrain-api/pkg/api"
	"github.com/releasetrain/releasetrain-api/pkg/clients/buildcli"
	"github.com/releasetrain/releasetrain-api/pkg/clients/database"
	"github.com/releasetrain/releasetrain-api/pkg/clients/githubapi"
	"github.com/releasetrain/releasetrain-api/pkg/clients/pypiapi"
	"github.com/releasetrain/releasetrain-api/pkg/clients/registryapi"
	"github.com/releasetrain/releasetrain-api/pkg/clients/slackapi"
	"github.com/releasetrain/releasetrain-api/pkg/contracts"
	"github.com/releasetrain/releasetrain-api/pkg/pipeline"
	"github.com/rs/zerolog/log"
)

var (
	ErrNonTagEvent       = errors.New("the event is not a tag push")
	ErrReleaseAlreadyRan = errors.New("the version already has a pipeline run that is running or succeeded")
	ErrReleaseNotFound   = errors.New("the version has no pipeline run")
)

// Service orchestrates release pipeline runs for incoming triggers
//
//go:generate mockgen -package=release -destination ./mock.go -source=service.go
type Service interface {
	CreateReleaseForTagPush(ctx context.Context, event githubapi.PushEvent) (err error)
	TriggerRelease(ctx context.Context, trigger contracts.ReleaseTrigger) (run *contracts.PipelineRun, err error)
	GetRelease(ctx context.Context, version string) (run *contracts.PipelineRun, err error)
	GetReleases(ctx context.Context) (runs []*contracts.PipelineRun, err error)
}

// NewService returns a release.Service running pipelines against the passed clients
func NewService(config *api.APIConfig, pypiapiClient pypiapi.Client, githubapiClient githubapi.Client, registryapiClient registryapi.Client, slackapiClient slackapi.Client, buildcliClient buildcli.Client, databaseClient database.Client, testEnv map[string]string) Service {
	return &service{
		config:            config,
		pypiapiClient:     pypiapiClient,
		githubapiClient:   githubapiClient,
		registryapiClient: registryapiClient,
		slackapiClient:    slackapiClient,
		buildcliClient:    buildcliClient,
		databaseClient:    databaseClient,
		testEnv:           testEnv,
		runs:              map[string]*contracts.PipelineRun{},
	}
}

type service struct {
	config            *api.APIConfig
	pypiapiClient     pypiapi.Client
	githubapiClient   githubapi.Client
	registryapiClient registryapi.Client
	slackapiClient    slackapi.Client
	buildcliClient    buildcli.Client
	databaseClient    database.Client
	testEnv           map[string]string

	runsMutex sync.Mutex
	runs      map[string]*contracts.PipelineRun
}

func (s *service) CreateReleaseForTagPush(ctx context.Context, event githubapi.PushEvent) (err error) {

	if !event.IsTagPush() {
		return ErrNonTagEvent
	}

	tag := event.GetTagName()
	if !contracts.IsReleaseTag(tag) {
		log.Info().Str("tag", tag).Msgf("Tag %v does not match the release tag pattern, ignoring push", tag)
		return contracts.ErrInvalidReleaseTag
	}

	trigger := contracts.ReleaseTrigger{
		Tag:         tag,
		RepoSource:  s.config.Project.RepoSource,
		RepoOwner:   event.Repository.Owner.Login,
		RepoName:    event.Repository.Name,
		EventSource: contracts.EventSourceGithubPush,
		ReceivedAt:  time.Now().UTC(),
	}

	// a webhook response must not wait for the pipeline, so run it detached
	go func() {
		_, err := s.TriggerRelease(context.Background(), trigger)
		if err != nil {
			log.Error().Err(err).Str("tag", trigger.Tag).Msgf("Release pipeline for tag %v failed", trigger.Tag)
		}
	}()

	return nil
}

func (s *service) TriggerRelease(ctx context.Context, trigger contracts.ReleaseTrigger) (run *contracts.PipelineRun, err error) {

	err = trigger.Validate()
	if err != nil {
		return nil, err
	}

	version := trigger.Version()

	run = &contracts.PipelineRun{
		ID:      uuid.New().String(),
		Trigger: trigger,
		Status:  contracts.StatusPending,
	}

	err = s.registerRun(version, run)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("version", version).
		Str("runID", run.ID).
		Str("eventSource", string(trigger.EventSource)).
		Msgf("Starting release pipeline for version %v...", version)

	p, err := s.buildPipeline(run)
	if err != nil {
		return run, err
	}

	err = p.Run(ctx, run)

	log.Info().
		Str("version", version).
		Str("runID", run.ID).
		Str("status", string(run.Status)).
		Msgf("Release pipeline for version %v finished with status %v", version, run.Status)

	return run, err
}

// registerRun claims the version for this run; only a previously failed version
// may be retried
func (s *service) registerRun(version string, run *contracts.PipelineRun) error {
	s.runsMutex.Lock()
	defer s.runsMutex.Unlock()

	if existing, ok := s.runs[version]; ok && existing.Status != contracts.StatusFailed {
		return ErrReleaseAlreadyRan
	}
	s.runs[version] = run

	return nil
}

func (s *service) GetRelease(ctx context.Context, version string) (run *contracts.PipelineRun, err error) {
	s.runsMutex.Lock()
	defer s.runsMutex.Unlock()

	run, ok := s.runs[version]
	if !ok {
		return nil, ErrReleaseNotFound
	}

	return run, nil
}

func (s *service) GetReleases(ctx context.Context) (runs []*contracts.PipelineRun, err error) {
	s.runsMutex.Lock()
	defer s.runsMutex.Unlock()

	runs = make([]*contracts.PipelineRun, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})

	return runs, nil
}

func (s *service) buildPipeline(run *contracts.PipelineRun) (*pipeline.Pipeline, error) {

	trigger := run.Trigger
	version := trigger.Version()
	packageName := s.config.Project.Name

	// the install verification stage hands its built artifacts to the publish
	// stage; the executor guarantees the write happens before the read
	var artifactPaths []string

	awaitTimeout := time.Duration(s.config.Integrations.PackageIndex.PollTimeoutSeconds) * time.Second

	return pipeline.New(s.config.Pipeline.MaxConcurrentStages,
		pipeline.Stage{
			Name: "test",
			Run: func(ctx context.Context) error {
				return s.runTestStage(ctx, run.ID)
			},
		},
		pipeline.Stage{
			Name: "verify-install",
			Run: func(ctx context.Context) error {
				paths, err := s.runVerifyInstallStage(ctx)
				if err != nil {
					return err
				}
				artifactPaths = paths
				return nil
			},
		},
		pipeline.Stage{
			Name:      "publish-package",
			DependsOn: []string{"test", "verify-install"},
			Run: func(ctx context.Context) error {
				return s.runPublishPackageStage(ctx, packageName, version, artifactPaths)
			},
		},
		pipeline.Stage{
			Name:      "record-release",
			DependsOn: []string{"test", "verify-install"},
			Run: func(ctx context.Context) error {
				return s.runRecordReleaseStage(ctx, trigger)
			},
		},
		pipeline.Stage{
			Name:      "await-package",
			DependsOn: []string{"publish-package"},
			Timeout:   awaitTimeout,
			Run: func(ctx context.Context) error {
				return s.pypiapiClient.AwaitVersionPublished(ctx, packageName, version)
			},
		},
		pipeline.Stage{
			Name:      "publish-image",
			DependsOn: []string{"test", "verify-install", "await-package"},
			Run: func(ctx context.Context) error {
				return s.runPublishImageStage(ctx, version)
			},
		},
		pipeline.Stage{
			Name:      "announce",
			DependsOn: []string{"publish-image", "await-package"},
			Run: func(ctx context.Context) error {
				return s.runAnnounceStage(ctx, trigger)
			},
		},
	)
}

// runTestStage runs the test suite against every configured database backend,
// provisioning a clean scratch database for the run when postgres is in the list
func (s *service) runTestStage(ctx context.Context, runID string) (err error) {

	env := map[string]string{}
	for key, value := range s.testEnv {
		env[key] = value
	}

	if s.config.Database.Enable {
		databaseName, connectionString, err := s.databaseClient.CreateScratchDatabase(ctx, runID)
		if err != nil {
			return err
		}
		defer func() {
			dropErr := s.databaseClient.DropScratchDatabase(ctx, databaseName)
			if dropErr != nil {
				log.Warn().Err(dropErr).Msgf("Failed dropping scratch database %v", databaseName)
			}
		}()

		env["TEST_DATABASE_URL"] = connectionString
	}

	return s.buildcliClient.RunTestSuite(ctx, s.config.Build.DatabaseTypes, s.config.Build.ChatModel, env)
}

// runVerifyInstallStage builds the package, installs the artifacts into a clean
// environment and exercises the installed entry point end-to-end
func (s *service) runVerifyInstallStage(ctx context.Context) (artifactPaths []string, err error) {

	artifactPaths, err = s.buildcliClient.BuildPackage(ctx)
	if err != nil {
		return
	}

	err = s.buildcliClient.InstallPackage(ctx, artifactPaths)
	if err != nil {
		return
	}

	err = s.buildcliClient.RunSmokeTest(ctx)
	if err != nil {
		return
	}

	return artifactPaths, nil
}

func (s *service) runPublishPackageStage(ctx context.Context, packageName, version string, artifactPaths []string) (err error) {

	if !s.config.Integrations.PackageIndex.Enable {
		return nil
	}

	// the index refuses overwrites, so a version that's already listed is a
	// hard stop rather than something to retry
	versions, err := s.pypiapiClient.GetPackageVersions(ctx, packageName)
	if err != nil {
		return
	}
	for _, v := range versions {
		if v == version {
			return pypiapi.ErrVersionAlreadyPublished
		}
	}

	return s.pypiapiClient.UploadPackage(ctx, packageName, version, artifactPaths)
}

func (s *service) runRecordReleaseStage(ctx context.Context, trigger contracts.ReleaseTrigger) (err error) {

	if !s.config.Integrations.Github.Enable {
		return nil
	}

	notes, err := s.changelogNotes(trigger.Version())
	if err != nil {
		return
	}

	_, err = s.githubapiClient.CreateRelease(ctx, trigger.RepoOwner, trigger.RepoName, trigger.Tag, trigger.Tag, notes)

	return
}

// changelogNotes returns the top changelog section body, failing when the top
// section isn't for the version being released
func (s *service) changelogNotes(version string) (notes string, err error) {

	changelogPath := filepath.Join(s.config.Build.WorkDir, s.config.Project.ChangelogPath)

	changelog, err := os.ReadFile(changelogPath)
	if err != nil {
		return "", err
	}

	sectionVersion, body, found := firstChangelogSection(string(changelog))
	if !found {
		return "", fmt.Errorf("%v has no version sections", changelogPath)
	}
	if sectionVersion != version {
		return "", fmt.Errorf("the top section of %v is for version %v, expected %v", changelogPath, sectionVersion, version)
	}

	return body, nil
}

func (s *service) runPublishImageStage(ctx context.Context, version string) (err error) {

	if !s.config.Integrations.Registry.Enable {
		return nil
	}

	err = s.buildcliClient.LoginRegistry(ctx)
	if err != nil {
		return
	}

	err = s.buildcliClient.BuildImage(ctx, version)
	if err != nil {
		return
	}

	err = s.buildcliClient.PushImage(ctx, version)
	if err != nil {
		return
	}

	err = s.buildcliClient.PushImage(ctx, "latest")
	if err != nil {
		return
	}

	if s.config.Integrations.Registry.VerifyPush {
		exists, err := s.registryapiClient.HasTag(ctx, s.config.Integrations.Registry.Repository, version)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("tag %v is not visible on the registry after the push", version)
		}
	}

	return nil
}

func (s *service) runAnnounceStage(ctx context.Context, trigger contracts.ReleaseTrigger) (err error) {

	if !s.config.Integrations.Slack.Enable {
		return nil
	}

	text := fmt.Sprintf("%v %v has been released", s.config.Project.Name, trigger.Tag)

	return s.slackapiClient.PostMessage(ctx, s.config.Integrations.Slack.Channel, text)
}
