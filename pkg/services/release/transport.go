package release

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/releasetrain/releasetrain-api/pkg/api"
	"github.com/releasetrain/releasetrain-api/pkg/clients/githubapi"
	"github.com/releasetrain/releasetrain-api/pkg/contracts"
	"github.com/rs/zerolog/log"
)

// NewHandler returns a release.Handler
func NewHandler(config *api.APIConfig, service Service) Handler {
	return Handler{
		config:  config,
		service: service,
	}
}

type Handler struct {
	config  *api.APIConfig
	service Service
}

func (h *Handler) HandleGithubEvent(c *gin.Context) {

	// https://developer.github.com/webhooks/
	eventType := c.GetHeader("X-Github-Event")

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Error().Err(err).Msg("Reading body from Github webhook failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	switch eventType {
	case "push":

		// unmarshal json body
		var pushEvent githubapi.PushEvent
		err := json.Unmarshal(body, &pushEvent)
		if err != nil {
			log.Error().Err(err).Str("body", string(body)).Msg("Deserializing body to GithubPushEvent failed")
			c.Status(http.StatusBadRequest)
			return
		}

		err = h.service.CreateReleaseForTagPush(c.Request.Context(), pushEvent)
		if err != nil && !errors.Is(err, ErrNonTagEvent) && !errors.Is(err, contracts.ErrInvalidReleaseTag) {
			log.Error().Err(err).Msg("Starting release pipeline for github push failed")
			c.Status(http.StatusInternalServerError)
			return
		}

	default:
		log.Warn().Str("event", eventType).Msgf("Unsupported Github webhook event of type '%v'", eventType)
	}

	c.Status(http.StatusOK)
}

func (h *Handler) CreateRelease(c *gin.Context) {

	var trigger contracts.ReleaseTrigger
	err := c.BindJSON(&trigger)
	if err != nil {
		log.Error().Err(err).Msg("Binding manual release trigger failed")
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusText(http.StatusBadRequest)})
		return
	}

	trigger.EventSource = contracts.EventSourceManual
	trigger.ReceivedAt = time.Now().UTC()
	if trigger.RepoSource == "" {
		trigger.RepoSource = h.config.Project.RepoSource
	}
	if trigger.RepoOwner == "" {
		trigger.RepoOwner = h.config.Project.RepoOwner
	}
	if trigger.RepoName == "" {
		trigger.RepoName = h.config.Project.RepoName
	}

	run, err := h.service.TriggerRelease(c.Request.Context(), trigger)
	if err != nil {
		switch {
		case errors.Is(err, contracts.ErrInvalidReleaseTag):
			c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusText(http.StatusBadRequest), "message": err.Error()})
		case errors.Is(err, ErrReleaseAlreadyRan):
			c.JSON(http.StatusConflict, gin.H{"code": http.StatusText(http.StatusConflict), "message": err.Error()})
		default:
			log.Error().Err(err).Str("tag", trigger.Tag).Msgf("Release pipeline for tag %v failed", trigger.Tag)
			// the run carries the per-stage outcomes even when it failed
			c.JSON(http.StatusOK, run)
		}
		return
	}

	c.JSON(http.StatusCreated, run)
}

func (h *Handler) GetReleases(c *gin.Context) {

	runs, err := h.service.GetReleases(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Retrieving pipeline runs failed")
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusText(http.StatusInternalServerError)})
		return
	}

	c.JSON(http.StatusOK, runs)
}

func (h *Handler) GetRelease(c *gin.Context) {

	version := c.Param("version")

	run, err := h.service.GetRelease(c.Request.Context(), version)
	if err != nil {
		if errors.Is(err, ErrReleaseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusText(http.StatusNotFound)})
			return
		}
		log.Error().Err(err).Msgf("Retrieving pipeline run for version %v failed", version)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusText(http.StatusInternalServerError)})
		return
	}

	c.JSON(http.StatusOK, run)
}
