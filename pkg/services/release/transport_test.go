package release

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/releasetrain/releasetrain-api/pkg/contracts"
	"github.com/stretchr/testify/assert"
)

func getRouter(handler *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/api/integrations/github/events", handler.HandleGithubEvent)
	router.POST("/api/releases", handler.CreateRelease)
	router.GET("/api/releases", handler.GetReleases)
	router.GET("/api/releases/:version", handler.GetRelease)

	return router
}

func TestHandleGithubEvent(t *testing.T) {

	t.Run("StartsAReleaseForATagPushEvent", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		releaseService := NewMockService(ctrl)
		releaseService.EXPECT().CreateReleaseForTagPush(gomock.Any(), gomock.Any()).Return(nil)

		handler := NewHandler(getConfig(t.TempDir()), releaseService)
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("POST", "/api/integrations/github/events", strings.NewReader(`{"ref":"refs/tags/v1.2.3","repository":{"name":"elroy","owner":{"login":"elroy-bot"}}}`))
		request.Header.Set("X-Github-Event", "push")

		// act
		getRouter(&handler).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("RespondsOKForIgnoredBranchPushes", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		releaseService := NewMockService(ctrl)
		releaseService.EXPECT().CreateReleaseForTagPush(gomock.Any(), gomock.Any()).Return(ErrNonTagEvent)

		handler := NewHandler(getConfig(t.TempDir()), releaseService)
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("POST", "/api/integrations/github/events", strings.NewReader(`{"ref":"refs/heads/main"}`))
		request.Header.Set("X-Github-Event", "push")

		// act
		getRouter(&handler).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("RespondsOKWithoutStartingARunForOtherEventTypes", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		releaseService := NewMockService(ctrl)

		handler := NewHandler(getConfig(t.TempDir()), releaseService)
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("POST", "/api/integrations/github/events", strings.NewReader(`{}`))
		request.Header.Set("X-Github-Event", "star")

		// act
		getRouter(&handler).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

func TestCreateReleaseEndpoint(t *testing.T) {

	t.Run("ReturnsCreatedWithTheRunForAValidTrigger", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		releaseService := NewMockService(ctrl)
		releaseService.EXPECT().TriggerRelease(gomock.Any(), gomock.Any()).Return(&contracts.PipelineRun{ID: "run-id", Status: contracts.StatusSucceeded}, nil)

		handler := NewHandler(getConfig(t.TempDir()), releaseService)
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("POST", "/api/releases", strings.NewReader(`{"tag":"v1.2.3"}`))
		request.Header.Set("Content-Type", "application/json")

		// act
		getRouter(&handler).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "run-id")
	})

	t.Run("FillsRepositoryIdentityFromConfig", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		releaseService := NewMockService(ctrl)
		releaseService.EXPECT().TriggerRelease(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, trigger contracts.ReleaseTrigger) (*contracts.PipelineRun, error) {
				assert.Equal(t, "elroy-bot", trigger.RepoOwner)
				assert.Equal(t, "elroy", trigger.RepoName)
				assert.Equal(t, contracts.EventSourceManual, trigger.EventSource)
				return &contracts.PipelineRun{}, nil
			})

		handler := NewHandler(getConfig(t.TempDir()), releaseService)
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("POST", "/api/releases", strings.NewReader(`{"tag":"v1.2.3"}`))
		request.Header.Set("Content-Type", "application/json")

		// act
		getRouter(&handler).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusCreated, recorder.Code)
	})

	t.Run("ReturnsBadRequestForANonReleaseTag", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		releaseService := NewMockService(ctrl)
		releaseService.EXPECT().TriggerRelease(gomock.Any(), gomock.Any()).Return(nil, contracts.ErrInvalidReleaseTag)

		handler := NewHandler(getConfig(t.TempDir()), releaseService)
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("POST", "/api/releases", strings.NewReader(`{"tag":"nightly"}`))
		request.Header.Set("Content-Type", "application/json")

		// act
		getRouter(&handler).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("ReturnsConflictWhenTheVersionAlreadyRan", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		releaseService := NewMockService(ctrl)
		releaseService.EXPECT().TriggerRelease(gomock.Any(), gomock.Any()).Return(nil, ErrReleaseAlreadyRan)

		handler := NewHandler(getConfig(t.TempDir()), releaseService)
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("POST", "/api/releases", strings.NewReader(`{"tag":"v1.2.3"}`))
		request.Header.Set("Content-Type", "application/json")

		// act
		getRouter(&handler).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}

func TestGetReleaseEndpoints(t *testing.T) {

	t.Run("ReturnsTheRunForAKnownVersion", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		releaseService := NewMockService(ctrl)
		releaseService.EXPECT().GetRelease(gomock.Any(), "1.2.3").Return(&contracts.PipelineRun{ID: "run-id"}, nil)

		handler := NewHandler(getConfig(t.TempDir()), releaseService)
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("GET", "/api/releases/1.2.3", nil)

		// act
		getRouter(&handler).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "run-id")
	})

	t.Run("ReturnsNotFoundForAnUnknownVersion", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		releaseService := NewMockService(ctrl)
		releaseService.EXPECT().GetRelease(gomock.Any(), "9.9.9").Return(nil, ErrReleaseNotFound)

		handler := NewHandler(getConfig(t.TempDir()), releaseService)
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("GET", "/api/releases/9.9.9", nil)

		// act
		getRouter(&handler).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("ReturnsAllRuns", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		releaseService := NewMockService(ctrl)
		releaseService.EXPECT().GetReleases(gomock.Any()).Return([]*contracts.PipelineRun{{ID: "run-id"}}, nil)

		handler := NewHandler(getConfig(t.TempDir()), releaseService)
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("GET", "/api/releases", nil)

		// act
		getRouter(&handler).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "run-id")
	})
}
