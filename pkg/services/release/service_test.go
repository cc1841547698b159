package release

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/releasetrain/releasetrain-api/pkg/api"
	"github.com/releasetrain/releasetrain-api/pkg/clients/buildcli"
	"github.com/releasetrain/releasetrain-api/pkg/clients/database"
	"github.com/releasetrain/releasetrain-api/pkg/clients/githubapi"
	"github.com/releasetrain/releasetrain-api/pkg/clients/pypiapi"
	"github.com/releasetrain/releasetrain-api/pkg/clients/registryapi"
	"github.com/releasetrain/releasetrain-api/pkg/clients/slackapi"
	"github.com/releasetrain/releasetrain-api/pkg/contracts"
	"github.com/stretchr/testify/assert"
)

type serviceMocks struct {
	pypiapiClient     *pypiapi.MockClient
	githubapiClient   *githubapi.MockClient
	registryapiClient *registryapi.MockClient
	slackapiClient    *slackapi.MockClient
	buildcliClient    *buildcli.MockClient
	databaseClient    *database.MockClient
}

func getConfig(workDir string) *api.APIConfig {
	config := &api.APIConfig{
		Project: &api.ProjectConfig{Name: "elroy", RepoOwner: "elroy-bot", RepoName: "elroy"},
		Build:   &api.BuildConfig{WorkDir: workDir},
		Integrations: &api.APIConfigIntegrations{
			PackageIndex: &api.PackageIndexConfig{Enable: true, Token: "pypi-token"},
			Github:       &api.GithubConfig{Enable: true, Token: "github-token"},
			Registry:     &api.RegistryConfig{Enable: true, Repository: "elroybot/elroy", Token: "registry-token"},
			Slack:        &api.SlackConfig{Enable: true, BotToken: "xoxb-token"},
		},
	}
	config.SetDefaults()

	return config
}

func getService(ctrl *gomock.Controller, config *api.APIConfig) (Service, serviceMocks) {
	mocks := serviceMocks{
		pypiapiClient:     pypiapi.NewMockClient(ctrl),
		githubapiClient:   githubapi.NewMockClient(ctrl),
		registryapiClient: registryapi.NewMockClient(ctrl),
		slackapiClient:    slackapi.NewMockClient(ctrl),
		buildcliClient:    buildcli.NewMockClient(ctrl),
		databaseClient:    database.NewMockClient(ctrl),
	}

	service := NewService(config, mocks.pypiapiClient, mocks.githubapiClient, mocks.registryapiClient, mocks.slackapiClient, mocks.buildcliClient, mocks.databaseClient, nil)

	return service, mocks
}

func getTrigger() contracts.ReleaseTrigger {
	return contracts.ReleaseTrigger{
		Tag:         "v1.2.3",
		RepoSource:  "github.com",
		RepoOwner:   "elroy-bot",
		RepoName:    "elroy",
		EventSource: contracts.EventSourceManual,
		ReceivedAt:  time.Now().UTC(),
	}
}

func writeChangelog(t *testing.T, workDir string) {
	changelog := "# Changelog\n\n## [1.2.3] - 2026-08-01\n\n- Added plugin support\n\n## [1.2.2]\n\n- Fixed things\n"
	assert.Nil(t, os.WriteFile(filepath.Join(workDir, "CHANGELOG.md"), []byte(changelog), 0600))
}

func expectRoots(mocks serviceMocks, testErr error) {
	mocks.buildcliClient.EXPECT().RunTestSuite(gomock.Any(), []string{"sqlite", "postgres"}, "gpt-4o-mini", gomock.Any()).Return(testErr)
	mocks.buildcliClient.EXPECT().BuildPackage(gomock.Any()).Return([]string{"dist/elroy-1.2.3-py3-none-any.whl"}, nil)
	mocks.buildcliClient.EXPECT().InstallPackage(gomock.Any(), []string{"dist/elroy-1.2.3-py3-none-any.whl"}).Return(nil)
	mocks.buildcliClient.EXPECT().RunSmokeTest(gomock.Any()).Return(nil)
}

func expectRecordRelease(mocks serviceMocks) {
	mocks.githubapiClient.EXPECT().CreateRelease(gomock.Any(), "elroy-bot", "elroy", "v1.2.3", "v1.2.3", "- Added plugin support").Return(&githubapi.Release{TagName: "v1.2.3"}, nil)
}

func expectPublishImage(mocks serviceMocks) {
	mocks.buildcliClient.EXPECT().LoginRegistry(gomock.Any()).Return(nil)
	mocks.buildcliClient.EXPECT().BuildImage(gomock.Any(), "1.2.3").Return(nil)
	mocks.buildcliClient.EXPECT().PushImage(gomock.Any(), "1.2.3").Return(nil)
	mocks.buildcliClient.EXPECT().PushImage(gomock.Any(), "latest").Return(nil)
}

func TestTriggerRelease(t *testing.T) {

	t.Run("RunsAllStagesForAValidTag", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		workDir := t.TempDir()
		writeChangelog(t, workDir)

		service, mocks := getService(ctrl, getConfig(workDir))

		expectRoots(mocks, nil)
		expectRecordRelease(mocks)
		mocks.pypiapiClient.EXPECT().GetPackageVersions(gomock.Any(), "elroy").Return([]string{"1.2.2"}, nil)
		mocks.pypiapiClient.EXPECT().UploadPackage(gomock.Any(), "elroy", "1.2.3", []string{"dist/elroy-1.2.3-py3-none-any.whl"}).Return(nil)
		mocks.pypiapiClient.EXPECT().AwaitVersionPublished(gomock.Any(), "elroy", "1.2.3").Return(nil)
		expectPublishImage(mocks)
		mocks.slackapiClient.EXPECT().PostMessage(gomock.Any(), "#releases", "elroy v1.2.3 has been released").Return(nil)

		// act
		run, err := service.TriggerRelease(context.Background(), getTrigger())

		assert.Nil(t, err)
		assert.Equal(t, contracts.StatusSucceeded, run.Status)
		for _, stageRun := range run.Stages {
			assert.Equal(t, contracts.StatusSucceeded, stageRun.Status, stageRun.Name)
		}
	})

	t.Run("SkipsPublishStagesWhenTestsFailButStillVerifiesInstall", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		workDir := t.TempDir()
		writeChangelog(t, workDir)

		service, mocks := getService(ctrl, getConfig(workDir))

		expectRoots(mocks, assert.AnError)

		// act
		run, err := service.TriggerRelease(context.Background(), getTrigger())

		assert.NotNil(t, err)
		assert.Equal(t, contracts.StatusFailed, run.Status)
		assert.Equal(t, contracts.StatusFailed, run.GetStageRun("test").Status)
		assert.Equal(t, contracts.StatusSucceeded, run.GetStageRun("verify-install").Status)
		assert.Equal(t, contracts.StatusSkipped, run.GetStageRun("publish-package").Status)
		assert.Equal(t, contracts.StatusSkipped, run.GetStageRun("record-release").Status)
		assert.Equal(t, contracts.StatusSkipped, run.GetStageRun("await-package").Status)
		assert.Equal(t, contracts.StatusSkipped, run.GetStageRun("publish-image").Status)
		assert.Equal(t, contracts.StatusSkipped, run.GetStageRun("announce").Status)
	})

	t.Run("FailsPublishPackageWhenTheVersionIsAlreadyOnTheIndex", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		workDir := t.TempDir()
		writeChangelog(t, workDir)

		service, mocks := getService(ctrl, getConfig(workDir))

		expectRoots(mocks, nil)
		expectRecordRelease(mocks)
		mocks.pypiapiClient.EXPECT().GetPackageVersions(gomock.Any(), "elroy").Return([]string{"1.2.2", "1.2.3"}, nil)

		// act
		run, err := service.TriggerRelease(context.Background(), getTrigger())

		assert.NotNil(t, err)
		assert.Equal(t, contracts.StatusFailed, run.Status)
		assert.Equal(t, contracts.StatusFailed, run.GetStageRun("publish-package").Status)
		assert.Contains(t, run.GetStageRun("publish-package").ErrorDetails, pypiapi.ErrVersionAlreadyPublished.Error())
		assert.Equal(t, contracts.StatusSucceeded, run.GetStageRun("record-release").Status)
		assert.Equal(t, contracts.StatusSkipped, run.GetStageRun("await-package").Status)
		assert.Equal(t, contracts.StatusSkipped, run.GetStageRun("publish-image").Status)
		assert.Equal(t, contracts.StatusSkipped, run.GetStageRun("announce").Status)
	})

	t.Run("SkipsImageAndAnnouncementWhenThePackageNeverBecomesVisible", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		workDir := t.TempDir()
		writeChangelog(t, workDir)

		service, mocks := getService(ctrl, getConfig(workDir))

		expectRoots(mocks, nil)
		expectRecordRelease(mocks)
		mocks.pypiapiClient.EXPECT().GetPackageVersions(gomock.Any(), "elroy").Return([]string{}, nil)
		mocks.pypiapiClient.EXPECT().UploadPackage(gomock.Any(), "elroy", "1.2.3", gomock.Any()).Return(nil)
		mocks.pypiapiClient.EXPECT().AwaitVersionPublished(gomock.Any(), "elroy", "1.2.3").Return(pypiapi.ErrVersionNotAvailable)

		// act
		run, err := service.TriggerRelease(context.Background(), getTrigger())

		assert.NotNil(t, err)
		assert.Equal(t, contracts.StatusFailed, run.Status)
		assert.Equal(t, contracts.StatusFailed, run.GetStageRun("await-package").Status)
		assert.Equal(t, contracts.StatusSucceeded, run.GetStageRun("record-release").Status)
		assert.Equal(t, contracts.StatusSkipped, run.GetStageRun("publish-image").Status)
		assert.Equal(t, contracts.StatusSkipped, run.GetStageRun("announce").Status)
	})

	t.Run("FailsPublishImageWhenThePushedTagIsNotVisibleOnTheRegistry", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		workDir := t.TempDir()
		writeChangelog(t, workDir)

		config := getConfig(workDir)
		config.Integrations.Registry.VerifyPush = true

		service, mocks := getService(ctrl, config)

		expectRoots(mocks, nil)
		expectRecordRelease(mocks)
		mocks.pypiapiClient.EXPECT().GetPackageVersions(gomock.Any(), "elroy").Return([]string{}, nil)
		mocks.pypiapiClient.EXPECT().UploadPackage(gomock.Any(), "elroy", "1.2.3", gomock.Any()).Return(nil)
		mocks.pypiapiClient.EXPECT().AwaitVersionPublished(gomock.Any(), "elroy", "1.2.3").Return(nil)
		expectPublishImage(mocks)
		mocks.registryapiClient.EXPECT().HasTag(gomock.Any(), "elroybot/elroy", "1.2.3").Return(false, nil)

		// act
		run, err := service.TriggerRelease(context.Background(), getTrigger())

		assert.NotNil(t, err)
		assert.Equal(t, contracts.StatusFailed, run.GetStageRun("publish-image").Status)
		assert.Equal(t, contracts.StatusSkipped, run.GetStageRun("announce").Status)
	})

	t.Run("RejectsATriggerWithANonReleaseTag", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, _ := getService(ctrl, getConfig(t.TempDir()))

		trigger := getTrigger()
		trigger.Tag = "nightly"

		// act
		_, err := service.TriggerRelease(context.Background(), trigger)

		assert.ErrorIs(t, err, contracts.ErrInvalidReleaseTag)
	})

	t.Run("RejectsARerunOfAVersionThatSucceeded", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _ := getService(ctrl, getConfig(t.TempDir()))
		svc.(*service).runs["1.2.3"] = &contracts.PipelineRun{Status: contracts.StatusSucceeded}

		// act
		_, err := svc.TriggerRelease(context.Background(), getTrigger())

		assert.ErrorIs(t, err, ErrReleaseAlreadyRan)
	})

	t.Run("AllowsARetryOfAVersionThatFailed", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		workDir := t.TempDir()
		writeChangelog(t, workDir)

		svc, mocks := getService(ctrl, getConfig(workDir))
		svc.(*service).runs["1.2.3"] = &contracts.PipelineRun{Status: contracts.StatusFailed}

		expectRoots(mocks, nil)
		expectRecordRelease(mocks)
		mocks.pypiapiClient.EXPECT().GetPackageVersions(gomock.Any(), "elroy").Return([]string{}, nil)
		mocks.pypiapiClient.EXPECT().UploadPackage(gomock.Any(), "elroy", "1.2.3", gomock.Any()).Return(nil)
		mocks.pypiapiClient.EXPECT().AwaitVersionPublished(gomock.Any(), "elroy", "1.2.3").Return(nil)
		expectPublishImage(mocks)
		mocks.slackapiClient.EXPECT().PostMessage(gomock.Any(), "#releases", gomock.Any()).Return(nil)

		// act
		run, err := svc.TriggerRelease(context.Background(), getTrigger())

		assert.Nil(t, err)
		assert.Equal(t, contracts.StatusSucceeded, run.Status)
	})
}

func TestRunTestStage(t *testing.T) {

	t.Run("ProvisionsAndDropsAScratchDatabase", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		config := getConfig(t.TempDir())
		config.Database = &api.DatabaseConfig{Enable: true}
		config.Database.SetDefaults()

		svc, mocks := getService(ctrl, config)

		mocks.databaseClient.EXPECT().CreateScratchDatabase(gomock.Any(), "run-id").Return("release_test_run_id", "host=localhost dbname=release_test_run_id", nil)
		mocks.buildcliClient.EXPECT().RunTestSuite(gomock.Any(), []string{"sqlite", "postgres"}, "gpt-4o-mini", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ []string, _ string, env map[string]string) error {
				assert.Equal(t, "host=localhost dbname=release_test_run_id", env["TEST_DATABASE_URL"])
				return nil
			})
		mocks.databaseClient.EXPECT().DropScratchDatabase(gomock.Any(), "release_test_run_id").Return(nil)

		// act
		err := svc.(*service).runTestStage(context.Background(), "run-id")

		assert.Nil(t, err)
	})
}

func TestCreateReleaseForTagPush(t *testing.T) {

	t.Run("ReturnsErrNonTagEventForABranchPush", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, _ := getService(ctrl, getConfig(t.TempDir()))

		// act
		err := service.CreateReleaseForTagPush(context.Background(), githubapi.PushEvent{Ref: "refs/heads/main"})

		assert.ErrorIs(t, err, ErrNonTagEvent)
	})

	t.Run("IgnoresTagsThatDoNotMatchTheReleasePattern", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, _ := getService(ctrl, getConfig(t.TempDir()))

		// act
		err := service.CreateReleaseForTagPush(context.Background(), githubapi.PushEvent{Ref: "refs/tags/nightly"})

		assert.ErrorIs(t, err, contracts.ErrInvalidReleaseTag)
	})

	t.Run("StartsAPipelineRunForAReleaseTag", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		workDir := t.TempDir()
		writeChangelog(t, workDir)

		service, mocks := getService(ctrl, getConfig(workDir))

		announced := make(chan struct{})

		expectRoots(mocks, nil)
		expectRecordRelease(mocks)
		mocks.pypiapiClient.EXPECT().GetPackageVersions(gomock.Any(), "elroy").Return([]string{}, nil)
		mocks.pypiapiClient.EXPECT().UploadPackage(gomock.Any(), "elroy", "1.2.3", gomock.Any()).Return(nil)
		mocks.pypiapiClient.EXPECT().AwaitVersionPublished(gomock.Any(), "elroy", "1.2.3").Return(nil)
		expectPublishImage(mocks)
		mocks.slackapiClient.EXPECT().PostMessage(gomock.Any(), "#releases", gomock.Any()).DoAndReturn(
			func(_ context.Context, _, _ string) error {
				close(announced)
				return nil
			})

		event := githubapi.PushEvent{
			Ref: "refs/tags/v1.2.3",
			Repository: githubapi.Repository{
				Name:  "elroy",
				Owner: githubapi.Owner{Login: "elroy-bot"},
			},
		}

		// act
		err := service.CreateReleaseForTagPush(context.Background(), event)

		assert.Nil(t, err)

		select {
		case <-announced:
		case <-time.After(5 * time.Second):
			assert.Fail(t, "the pipeline run never reached the announce stage")
		}

		run, err := service.GetRelease(context.Background(), "1.2.3")
		assert.Nil(t, err)
		assert.Equal(t, contracts.EventSourceGithubPush, run.Trigger.EventSource)
	})
}

func TestGetReleases(t *testing.T) {

	t.Run("ReturnsRunsMostRecentFirst", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _ := getService(ctrl, getConfig(t.TempDir()))
		svc.(*service).runs["1.0.0"] = &contracts.PipelineRun{Trigger: contracts.ReleaseTrigger{Tag: "v1.0.0"}, StartedAt: time.Now().Add(-time.Hour)}
		svc.(*service).runs["1.1.0"] = &contracts.PipelineRun{Trigger: contracts.ReleaseTrigger{Tag: "v1.1.0"}, StartedAt: time.Now()}

		// act
		runs, err := svc.GetReleases(context.Background())

		assert.Nil(t, err)
		assert.Equal(t, 2, len(runs))
		assert.Equal(t, "v1.1.0", runs[0].Trigger.Tag)
	})

	t.Run("ReturnsErrReleaseNotFoundForAnUnknownVersion", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _ := getService(ctrl, getConfig(t.TempDir()))

		// act
		_, err := svc.GetRelease(context.Background(), "9.9.9")

		assert.ErrorIs(t, err, ErrReleaseNotFound)
	})
}
